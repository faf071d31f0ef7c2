package ucschema

import (
	"math"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/reoring/ucschema/codec"
)

// Defaults applied by Normalize when a field is missing.
const (
	DefaultCustomFieldType   = "string"
	DefaultQuestionnaireName = "Default Questionnaire"
	DefaultQuestionnaireKey  = "default_questionnaire"
	DefaultQuestionnaireVer  = 1.0
	DefaultSectionTitle      = "Default Section"
	DefaultGovernanceStatus  = StatusUnderReview
)

// NormalizeOption customizes Normalize.
type NormalizeOption func(*normalizer)

// WithIDGenerator replaces the id source used for missing ids. The generator
// must be safe for concurrent use if Normalize is called concurrently.
func WithIDGenerator(gen func() string) NormalizeOption {
	return func(n *normalizer) {
		if gen != nil {
			n.newID = gen
		}
	}
}

// WithClock replaces the time source used for missing timestamps.
func WithClock(now func() time.Time) NormalizeOption {
	return func(n *normalizer) { n.clock = now }
}

type normalizer struct {
	newID func() string
	clock codec.Clock
}

// Normalize builds a fully populated UseCase document from raw. Fields present
// in raw are deep-copied verbatim, missing ones get defaults, and missing ids
// get freshly generated values. raw is never mutated and the result shares no
// containers with it.
//
// A *MalformedInputError is returned when a nested position Normalize has to
// descend into (custom_fields, questionnaires, sections, questions and their
// entries) is not the expected array or object. A governance_status code
// outside 0..3 is copied as-is and left for Validate to report.
func Normalize(raw Document, opts ...NormalizeOption) (Document, error) {
	n := &normalizer{newID: uuid.NewString}
	for _, o := range opts {
		o(n)
	}
	return n.useCase(raw)
}

func (n *normalizer) useCase(raw Document) (Document, error) {
	at := Root()
	now := n.clock.Now()
	out := Document{
		fieldID:          copyOr(raw, fieldID, n.newID),
		fieldName:        copyOrValue(raw, fieldName, ""),
		fieldDescription: copyOrValue(raw, fieldDescription, ""),
		fieldAIType:      copyOrValue(raw, fieldAIType, ""),
		fieldDomains:     copyOrValue(raw, fieldDomains, []any{}),
		fieldIndustries:  copyOrValue(raw, fieldIndustries, []any{}),
		fieldRegions:     copyOrValue(raw, fieldRegions, []any{}),
		fieldInsertedAt:  copyOrValue(raw, fieldInsertedAt, now),
		fieldUpdatedAt:   copyOrValue(raw, fieldUpdatedAt, now),
	}

	out[fieldGovernanceStatus] = normalizeStatus(raw)

	var err error
	if out[fieldCustomFields], err = n.each(raw, fieldCustomFields, at, n.customField); err != nil {
		return nil, err
	}
	if out[fieldQuestionnaires], err = n.each(raw, fieldQuestionnaires, at, n.questionnaire); err != nil {
		return nil, err
	}

	if v, ok := raw[fieldRiskClassificationLevel]; ok {
		out[fieldRiskClassificationLevel] = deepCopy(v)
	} else if v, ok := raw[fieldLegacyRiskCategoryLevel]; ok {
		out[fieldRiskClassificationLevel] = deepCopy(v)
	}
	if v, ok := raw[fieldIcon]; ok {
		out[fieldIcon] = deepCopy(v)
	}
	return out, nil
}

func (n *normalizer) customField(raw Document, _ PathRef) (Document, error) {
	return Document{
		fieldCustomFieldID: copyOr(raw, fieldCustomFieldID, n.newID),
		fieldType:          copyOrValue(raw, fieldType, DefaultCustomFieldType),
		fieldName:          copyOrValue(raw, fieldName, ""),
		fieldValue:         copyOrValue(raw, fieldValue, nil),
	}, nil
}

func (n *normalizer) questionnaire(raw Document, at PathRef) (Document, error) {
	sections, err := n.each(raw, fieldSections, at, n.section)
	if err != nil {
		return nil, err
	}
	return Document{
		fieldName:     copyOrValue(raw, fieldName, DefaultQuestionnaireName),
		fieldKey:      copyOrValue(raw, fieldKey, DefaultQuestionnaireKey),
		fieldVersion:  copyOrValue(raw, fieldVersion, DefaultQuestionnaireVer),
		fieldSections: sections,
	}, nil
}

func (n *normalizer) section(raw Document, at PathRef) (Document, error) {
	questions, err := n.each(raw, fieldQuestions, at, n.question)
	if err != nil {
		return nil, err
	}
	return Document{
		fieldID:        copyOr(raw, fieldID, n.newID),
		fieldTitle:     copyOrValue(raw, fieldTitle, DefaultSectionTitle),
		fieldQuestions: questions,
	}, nil
}

func (n *normalizer) question(raw Document, _ PathRef) (Document, error) {
	return Document{
		fieldID:     copyOr(raw, fieldID, n.newID),
		fieldAnswer: copyOrValue(raw, fieldAnswer, nil),
	}, nil
}

// each normalizes every entry of the array at raw[field]. A missing field
// yields an empty array.
func (n *normalizer) each(raw Document, field string, parent PathRef, fn func(Document, PathRef) (Document, error)) ([]any, error) {
	at := parent.Field(field)
	v, present := raw[field]
	if !present {
		return []any{}, nil
	}
	items, ok := asArray(v)
	if !ok {
		return nil, &MalformedInputError{Path: at.Pointer(), Expected: kindNameArray, Got: jsonKind(v)}
	}
	out := make([]any, 0, len(items))
	for i, item := range items {
		iat := at.Index(i)
		obj, ok := asObject(item)
		if !ok {
			return nil, &MalformedInputError{Path: iat.Pointer(), Expected: kindNameObject, Got: jsonKind(item)}
		}
		doc, err := fn(obj, iat)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// normalizeStatus converts integer codes 0..3 to the canonical string and
// defaults a missing status. Anything else is copied verbatim.
func normalizeStatus(raw Document) any {
	v, present := raw[fieldGovernanceStatus]
	if !present {
		return DefaultGovernanceStatus.String()
	}
	code, isCode := integerCode(v)
	if !isCode {
		return deepCopy(v)
	}
	s, err := GovernanceStatusFromCode(code)
	if err != nil {
		return deepCopy(v)
	}
	return s.String()
}

func integerCode(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return uintCode(uint64(t))
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return uintCode(uint64(t))
	case uint64:
		return uintCode(t)
	case float32:
		return floatCode(float64(t))
	case float64:
		return floatCode(t)
	case GovernanceStatus:
		return int(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return floatCode(f)
	}
	return 0, false
}

func uintCode(u uint64) (int, bool) {
	if u > math.MaxInt32 {
		return -1, true
	}
	return int(u), true
}

// floatCode accepts whole numbers only. Magnitudes beyond int32 collapse to -1
// so they stay out of range instead of wrapping.
func floatCode(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if math.Abs(f) > math.MaxInt32 {
		return -1, true
	}
	return int(f), true
}

func copyOr(raw Document, field string, gen func() string) any {
	if v, ok := raw[field]; ok {
		return deepCopy(v)
	}
	return gen()
}

func copyOrValue(raw Document, field string, def any) any {
	if v, ok := raw[field]; ok {
		return deepCopy(v)
	}
	return def
}
