package ucschema

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/reoring/ucschema/codec"
)

// Nullable wraps a field that may be explicitly null on the wire.
type Nullable[T any] struct {
	Value T
	Valid bool // false encodes as null
}

// Some returns a non-null Nullable.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Value: v, Valid: true} }

// Null returns a null Nullable.
func Null[T any]() Nullable[T] { return Nullable[T]{} }

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*n = Nullable[T]{}
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// UseCase is the typed form of a valid UseCase document.
type UseCase struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      Nullable[string] `json:"description"`
	AIType           string           `json:"ai_type"`
	GovernanceStatus GovernanceStatus `json:"governance_status"`
	Domains          []string         `json:"domains"`
	Industries       []string         `json:"industries"`
	Regions          []string         `json:"regions"`
	CustomFields     []CustomField    `json:"custom_fields"`
	Questionnaires   []Questionnaire  `json:"questionnaires"`
	InsertedAt       string           `json:"inserted_at"`
	UpdatedAt        string           `json:"updated_at"`

	// Optional extensions; omitted when nil.
	UseCaseNumber           any `json:"use_case_number,omitempty"`
	Icon                    any `json:"icon,omitempty"`
	MonetaryValue           any `json:"monetary_value,omitempty"`
	InReview                any `json:"in_review,omitempty"`
	RiskClassificationLevel any `json:"risk_classification_level,omitempty"`
}

// CustomField is a typed custom field. Value holds a bool, number, string or
// nil.
type CustomField struct {
	ID    string `json:"custom_field_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type Questionnaire struct {
	Name     string    `json:"name"`
	Key      string    `json:"key"`
	Version  float64   `json:"version"`
	Sections []Section `json:"sections"`
}

type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question is a typed question. Answer holds a bool, number, string,
// map[string]any or nil.
type Question struct {
	ID     string `json:"id"`
	Answer any    `json:"answer"`
}

// DecodeUseCase converts a document into a UseCase. The document must pass
// strict validation; otherwise the Violations are returned as the error.
func DecodeUseCase(doc Document) (UseCase, error) {
	vs, err := Validate(doc, Strict)
	if err != nil {
		return UseCase{}, err
	}
	if len(vs) > 0 {
		return UseCase{}, vs
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return UseCase{}, fmt.Errorf("ucschema: encode document: %w", err)
	}
	var uc UseCase
	if err := json.Unmarshal(b, &uc); err != nil {
		return UseCase{}, fmt.Errorf("ucschema: decode use case: %w", err)
	}
	return uc, nil
}

// Document converts the UseCase back into its wire document. Nil slices are
// emitted as empty arrays; numbers come back as json.Number.
func (u UseCase) Document() (Document, error) {
	b, err := json.Marshal(u.withEmptySlices())
	if err != nil {
		return nil, fmt.Errorf("ucschema: encode use case: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("ucschema: decode document: %w", err)
	}
	return doc, nil
}

// InsertedTime parses InsertedAt.
func (u UseCase) InsertedTime() (time.Time, error) { return codec.ParseTimestamp(u.InsertedAt) }

// UpdatedTime parses UpdatedAt.
func (u UseCase) UpdatedTime() (time.Time, error) { return codec.ParseTimestamp(u.UpdatedAt) }

func (u UseCase) withEmptySlices() UseCase {
	if u.Domains == nil {
		u.Domains = []string{}
	}
	if u.Industries == nil {
		u.Industries = []string{}
	}
	if u.Regions == nil {
		u.Regions = []string{}
	}
	if u.CustomFields == nil {
		u.CustomFields = []CustomField{}
	}
	qs := make([]Questionnaire, len(u.Questionnaires))
	for i, q := range u.Questionnaires {
		ss := make([]Section, len(q.Sections))
		for j, s := range q.Sections {
			if s.Questions == nil {
				s.Questions = []Question{}
			}
			ss[j] = s
		}
		q.Sections = ss
		qs[i] = q
	}
	u.Questionnaires = qs
	return u
}
