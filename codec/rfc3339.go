// Package codec converts between wire timestamps and time.Time.
package codec

import (
	"fmt"
	"strings"
	"time"
)

// FormatTimestamp renders t in UTC as RFC 3339 with a literal Z suffix.
// Trailing zeros of the fractional second are trimmed.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp accepts RFC 3339 (with or without fractional seconds) and
// returns the instant in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2.UTC(), nil
		}
		return time.Time{}, fmt.Errorf("codec: invalid RFC3339 timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// IsUTCTimestamp reports whether s parses and ends with the Z designator.
func IsUTCTimestamp(s string) bool {
	if !strings.HasSuffix(s, "Z") {
		return false
	}
	_, err := ParseTimestamp(s)
	return err == nil
}

// Clock returns the current time.
type Clock func() time.Time

// Now formats the clock's current instant; a nil clock uses time.Now.
func (c Clock) Now() string {
	if c == nil {
		return FormatTimestamp(time.Now())
	}
	return FormatTimestamp(c())
}
