package ucschema

// Field names of the UseCase schema.
const (
	fieldID               = "id"
	fieldName             = "name"
	fieldDescription      = "description"
	fieldAIType           = "ai_type"
	fieldGovernanceStatus = "governance_status"
	fieldDomains          = "domains"
	fieldIndustries       = "industries"
	fieldRegions          = "regions"
	fieldCustomFields     = "custom_fields"
	fieldQuestionnaires   = "questionnaires"
	fieldInsertedAt       = "inserted_at"
	fieldUpdatedAt        = "updated_at"

	fieldCustomFieldID = "custom_field_id"
	fieldType          = "type"
	fieldValue         = "value"

	fieldKey      = "key"
	fieldVersion  = "version"
	fieldSections = "sections"

	fieldTitle     = "title"
	fieldQuestions = "questions"

	fieldAnswer = "answer"

	fieldUseCaseNumber           = "use_case_number"
	fieldIcon                    = "icon"
	fieldMonetaryValue           = "monetary_value"
	fieldInReview                = "in_review"
	fieldRiskClassificationLevel = "risk_classification_level"

	// accepted on input only; renamed to risk_classification_level
	fieldLegacyRiskCategoryLevel = "risk_category_level"
)

// valueKind is the declared type of a schema field.
type valueKind int

const (
	kindString         valueKind = iota
	kindNullableString           // string or null
	kindNumber                   // number, never boolean
	kindStringArray              // array whose elements must be strings
	kindObjectArray              // array of nested entities
	kindScalar                   // boolean, number, string or null
	kindAnswer                   // boolean, number, string, object or null
)

func (k valueKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindNullableString:
		return "string or null"
	case kindNumber:
		return "number"
	case kindStringArray, kindObjectArray:
		return "array"
	case kindScalar:
		return "boolean, number, string or null"
	case kindAnswer:
		return "boolean, number, string, object or null"
	}
	return "unknown"
}

type fieldDecl struct {
	name string
	kind valueKind
	elem *entity // element entity for kindObjectArray
}

type entity struct {
	name     string
	fields   []fieldDecl
	optional []string // extra keys allowed in strict mode
	allowed  map[string]struct{}
}

func newEntity(name string, fields []fieldDecl, optional ...string) *entity {
	e := &entity{name: name, fields: fields, optional: optional, allowed: map[string]struct{}{}}
	for _, f := range fields {
		e.allowed[f.name] = struct{}{}
	}
	for _, o := range optional {
		e.allowed[o] = struct{}{}
	}
	return e
}

var (
	questionEntity = newEntity("question", []fieldDecl{
		{name: fieldID, kind: kindString},
		{name: fieldAnswer, kind: kindAnswer},
	})
	sectionEntity = newEntity("section", []fieldDecl{
		{name: fieldID, kind: kindString},
		{name: fieldTitle, kind: kindString},
		{name: fieldQuestions, kind: kindObjectArray, elem: questionEntity},
	})
	questionnaireEntity = newEntity("questionnaire", []fieldDecl{
		{name: fieldName, kind: kindString},
		{name: fieldKey, kind: kindString},
		{name: fieldVersion, kind: kindNumber},
		{name: fieldSections, kind: kindObjectArray, elem: sectionEntity},
	})
	customFieldEntity = newEntity("custom field", []fieldDecl{
		{name: fieldCustomFieldID, kind: kindString},
		{name: fieldType, kind: kindString},
		{name: fieldName, kind: kindString},
		{name: fieldValue, kind: kindScalar},
	})
	useCaseEntity = newEntity("use case", []fieldDecl{
		{name: fieldID, kind: kindString},
		{name: fieldName, kind: kindString},
		{name: fieldDescription, kind: kindNullableString},
		{name: fieldAIType, kind: kindString},
		{name: fieldGovernanceStatus, kind: kindString},
		{name: fieldDomains, kind: kindStringArray},
		{name: fieldIndustries, kind: kindStringArray},
		{name: fieldRegions, kind: kindStringArray},
		{name: fieldCustomFields, kind: kindObjectArray, elem: customFieldEntity},
		{name: fieldQuestionnaires, kind: kindObjectArray, elem: questionnaireEntity},
		{name: fieldInsertedAt, kind: kindString},
		{name: fieldUpdatedAt, kind: kindString},
	}, fieldUseCaseNumber, fieldIcon, fieldMonetaryValue, fieldInReview, fieldRiskClassificationLevel)
)

// RequiredFields returns the required top-level UseCase fields in schema order.
func RequiredFields() []string {
	out := make([]string, 0, len(useCaseEntity.fields))
	for _, f := range useCaseEntity.fields {
		out = append(out, f.name)
	}
	return out
}

// OptionalFields returns the top-level extension fields strict mode permits.
func OptionalFields() []string {
	return append([]string(nil), useCaseEntity.optional...)
}
