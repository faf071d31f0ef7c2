package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// JSONBytes decodes the records held in a JSON payload.
func JSONBytes(b []byte) ([]any, error) { return JSONReader(bytes.NewReader(b)) }

// JSONReader decodes the records held in a JSON payload read from r. Exactly
// one top-level value is allowed.
func JSONReader(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("source: decode json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("source: decode json: unexpected data after top-level value")
	}
	return records(v), nil
}

// WriteJSON encodes v as JSON to w, indented when indent is true.
func WriteJSON(w io.Writer, v any, indent bool) error {
	var (
		b   []byte
		err error
	)
	if indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("source: encode json: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
