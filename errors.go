package ucschema

import (
	"errors"
	"fmt"
	"strings"
)

// Violation codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeUnknownKey  = "unknown_key"
	CodeInvalidEnum = "invalid_enum"
	CodeParseError  = "parse_error"

	// CodeDuplicateKey marks a key repeated inside one JSON object. Only input
	// scanning reports it; decoded documents cannot hold duplicates.
	CodeDuplicateKey = "duplicate_key"
)

// Violation is a single schema non-conformance found by Validate.
type Violation struct {
	Path    string // JSON Pointer (for example: /questionnaires/2/sections/0).
	Field   string // Dotted form of Path (for example: questionnaires[2].sections[0]).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"expected":"string", "got":"number"})
	// for i18n and reporting.
	Params map[string]any
}

// Violations is the result of Validate. It implements error so callers that
// prefer error flow can return it directly.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		v := vs[i]
		// e.g. invalid_type at /domains
		fmt.Fprintf(b, "%s at %s", v.Code, v.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages returns the human readable messages only, without location. This is
// the flat list older tooling expects.
func (vs Violations) Messages() []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Message)
	}
	return out
}

// Fields returns the dotted locations of all violations in order.
func (vs Violations) Fields() []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Field)
	}
	return out
}

// HasCode reports whether any violation carries the code.
func (vs Violations) HasCode(code string) bool {
	for _, v := range vs {
		if v.Code == code {
			return true
		}
	}
	return false
}

// AppendViolations appends violations to the destination, initializing the
// slice when needed.
func AppendViolations(dst Violations, more ...Violation) Violations {
	if dst == nil {
		dst = Violations{}
	}
	dst = append(dst, more...)
	return dst
}

// AsViolations extracts Violations from an error using errors.As internally.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

var (
	// ErrInvalidInput matches any *InvalidInputError via errors.Is.
	ErrInvalidInput = errors.New("ucschema: invalid input")
	// ErrMalformedInput matches any *MalformedInputError via errors.Is.
	ErrMalformedInput = errors.New("ucschema: malformed input")
)

// InvalidInputError is returned by Validate when the document is not a
// mapping at all. It is distinct from a non-empty Violations result.
type InvalidInputError struct {
	Got string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("ucschema: document must be an object, got %s", e.Got)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// MalformedInputError is returned by Normalize when a position that must hold
// a mapping or an array holds something else.
type MalformedInputError struct {
	Path     string
	Expected string
	Got      string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("ucschema: malformed input at %s: expected %s, got %s", e.Path, e.Expected, e.Got)
}

func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }
