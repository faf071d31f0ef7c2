package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/reoring/ucschema"
	"github.com/reoring/ucschema/i18n"
)

// DuplicateKey is an object key repeated within one JSON object. Decoding
// keeps the last value without complaint, so this is the only place the
// repetition is visible.
type DuplicateKey struct {
	Record int              // index of the top-level record holding the key
	At     ucschema.PathRef // location of the key inside the record
	Key    string
}

// Violation reports d as a duplicate_key violation.
func (d DuplicateKey) Violation() ucschema.Violation {
	msg := i18n.T(ucschema.CodeDuplicateKey, map[string]string{"key": d.Key})
	return d.At.Violation(ucschema.CodeDuplicateKey, msg, "key", d.Key)
}

type dupFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	at           ucschema.PathRef
	key          string // last key read (objects)
	index        int    // index of the next element (arrays)
}

// DuplicateKeys scans a JSON payload for repeated object keys. A top-level
// array is treated as a list of records, matching JSONBytes.
func DuplicateKeys(data []byte) ([]DuplicateKey, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		out      []DuplicateKey
		stack    []*dupFrame
		topArray bool
	)
	record := func() int {
		if topArray && len(stack) > 0 {
			return stack[0].index
		}
		return 0
	}
	// next is the location of the value about to start.
	next := func() ucschema.PathRef {
		n := len(stack)
		switch {
		case n == 0:
			return ucschema.Root()
		case n == 1 && topArray:
			return ucschema.Root()
		case stack[n-1].object:
			return stack[n-1].at.Field(stack[n-1].key)
		default:
			return stack[n-1].at.Index(stack[n-1].index)
		}
	}
	// done marks the current value of the enclosing container as complete.
	done := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
			return
		}
		top.index++
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("source: scan json: %w", err)
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				f := &dupFrame{object: v == '{', at: next()}
				if f.object {
					f.keys = map[string]struct{}{}
					f.expectingKey = true
				} else if len(stack) == 0 {
					topArray = true
				}
				stack = append(stack, f)
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				done()
			}
			continue
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := stack[n-1]
				if _, dup := top.keys[v]; dup {
					out = append(out, DuplicateKey{Record: record(), At: top.at.Field(v), Key: v})
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
		}
		done()
	}
	return out, nil
}

// DuplicateViolations groups the duplicates in data by record index.
func DuplicateViolations(data []byte) (map[int]ucschema.Violations, error) {
	dups, err := DuplicateKeys(data)
	if err != nil {
		return nil, err
	}
	if len(dups) == 0 {
		return nil, nil
	}
	out := map[int]ucschema.Violations{}
	for _, d := range dups {
		out[d.Record] = ucschema.AppendViolations(out[d.Record], d.Violation())
	}
	return out, nil
}
