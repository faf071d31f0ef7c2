// Package source reads UseCase records from JSON or YAML input.
//
// A payload may hold a single record (an object) or a list of records (an
// array). Every record is returned as decoded; nothing is validated here.
// Numbers in JSON input are kept as json.Number.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/ucschema"
	"github.com/reoring/ucschema/i18n"
)

// Format identifies the encoding of an input payload.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// ErrEmpty is returned when the payload holds no document at all.
var ErrEmpty = errors.New("source: empty input")

// FormatFor picks the format from a file extension; anything but .yaml/.yml
// is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Read decodes all records from r in the given format.
func Read(r io.Reader, f Format) ([]any, error) {
	if f == FormatYAML {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("source: read: %w", err)
		}
		return YAMLBytes(data)
	}
	return JSONReader(r)
}

// Decode decodes all records held in b.
func Decode(b []byte, f Format) ([]any, error) {
	if f == FormatYAML {
		return YAMLBytes(b)
	}
	return JSONBytes(b)
}

// ParseViolation reports a payload that could not be decoded as a
// parse_error violation at the document root.
func ParseViolation(err error) ucschema.Violation {
	reason := err.Error()
	msg := i18n.T(ucschema.CodeParseError, map[string]string{"reason": reason})
	return ucschema.Root().Violation(ucschema.CodeParseError, msg, "reason", reason)
}

// ReadFile decodes all records from the file at path, choosing the format by
// extension.
func ReadFile(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	recs, err := Read(f, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// records flattens a top-level value: arrays yield their elements, anything
// else is a single record.
func records(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}
	return []any{v}
}
