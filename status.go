package ucschema

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// GovernanceStatus is the review state of a use case. Documents carry the
// string form; some producers emit the integer code instead, and conversion
// between the two only happens through the functions below.
type GovernanceStatus int

const (
	StatusUnknown GovernanceStatus = iota
	StatusUnderReview
	StatusApproved
	StatusRejected
)

var statusNames = [...]string{"unknown", "under_review", "approved", "rejected"}

// GovernanceStatuses lists every status in code order.
func GovernanceStatuses() []GovernanceStatus {
	return []GovernanceStatus{StatusUnknown, StatusUnderReview, StatusApproved, StatusRejected}
}

// GovernanceStatusNames lists the canonical string forms in code order.
func GovernanceStatusNames() []string {
	return append([]string(nil), statusNames[:]...)
}

func (s GovernanceStatus) Valid() bool { return s >= StatusUnknown && s <= StatusRejected }

// String returns the canonical string form.
func (s GovernanceStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("GovernanceStatus(%d)", int(s))
	}
	return statusNames[s]
}

// Code returns the integer wire code.
func (s GovernanceStatus) Code() int { return int(s) }

// ParseGovernanceStatus accepts the canonical string form only.
func ParseGovernanceStatus(v string) (GovernanceStatus, error) {
	for i, n := range statusNames {
		if v == n {
			return GovernanceStatus(i), nil
		}
	}
	return StatusUnknown, fmt.Errorf("ucschema: unknown governance status %q (allowed: %s)", v, strings.Join(statusNames[:], ", "))
}

// GovernanceStatusFromCode accepts the integer wire code (0..3).
func GovernanceStatusFromCode(code int) (GovernanceStatus, error) {
	s := GovernanceStatus(code)
	if !s.Valid() {
		return StatusUnknown, fmt.Errorf("ucschema: governance status code %d out of range 0..%d", code, int(StatusRejected))
	}
	return s, nil
}

func (s GovernanceStatus) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("ucschema: cannot marshal %s", s)
	}
	return json.Marshal(s.String())
}

func (s *GovernanceStatus) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("ucschema: governance status must be a string: %w", err)
	}
	parsed, err := ParseGovernanceStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// EncodeStatusCodes returns a shallow copy of doc whose governance_status is
// replaced by its integer code. Documents without a recognizable string
// status are returned unchanged (copied).
func EncodeStatusCodes(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	if str, ok := doc[fieldGovernanceStatus].(string); ok {
		if s, err := ParseGovernanceStatus(str); err == nil {
			out[fieldGovernanceStatus] = s.Code()
		}
	}
	return out
}
