package ucschema

import (
	"fmt"
	"strings"

	"github.com/reoring/ucschema/i18n"
)

// Document is the untyped wire shape of a UseCase and of raw input records.
type Document = map[string]any

// Mode selects the validation contract.
type Mode int

const (
	Lenient Mode = iota // Presence and type checks only; extra keys are ignored.
	Strict              // Additionally rejects unknown keys and unknown governance statuses.
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	default:
		return "lenient"
	}
}

// ParseMode maps "lenient"/"strict" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lenient", "":
		return Lenient, nil
	case "strict":
		return Strict, nil
	}
	return Lenient, fmt.Errorf("ucschema: unknown mode %q (want lenient or strict)", s)
}

// Options bundles validation options.
type Options struct {
	Mode Mode
	// FailFast stops at the first violation.
	FailFast bool
	// Translator renders violation messages; nil uses the process-wide one.
	Translator i18n.Translator
}
