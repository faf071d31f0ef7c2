package ucschema

import (
	"github.com/reoring/ucschema/jsonschema"
)

// JSONSchema exports the UseCase schema. In Strict mode objects are closed,
// root extension fields are listed and governance_status carries its enum.
// Constraints the Validator does not enforce (id formats, timestamp syntax)
// are not expressed.
func JSONSchema(mode Mode) *jsonschema.Schema {
	s := entitySchema(useCaseEntity, mode == Strict)
	s.SchemaURI = jsonschema.Draft
	s.Title = "UseCase"
	s.Description = "AI use case record (" + mode.String() + " mode)"
	return s
}

func entitySchema(e *entity, strict bool) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       kindNameObject,
		Properties: make(map[string]*jsonschema.Schema, len(e.fields)+len(e.optional)),
	}
	for _, f := range e.fields {
		s.Required = append(s.Required, f.name)
		s.Properties[f.name] = fieldSchema(f, strict)
	}
	if !strict {
		return s
	}
	if e == useCaseEntity {
		enum := make([]any, 0, len(statusNames))
		for _, n := range statusNames {
			enum = append(enum, n)
		}
		s.Properties[fieldGovernanceStatus].Enum = enum
	}
	for _, o := range e.optional {
		s.Properties[o] = &jsonschema.Schema{}
	}
	return s.Closed()
}

func fieldSchema(f fieldDecl, strict bool) *jsonschema.Schema {
	switch f.kind {
	case kindString:
		return jsonschema.Of(kindNameString)
	case kindNullableString:
		return jsonschema.AnyOf(kindNameString, kindNameNull)
	case kindNumber:
		return jsonschema.Of(kindNameNumber)
	case kindStringArray:
		return jsonschema.ArrayOf(jsonschema.Of(kindNameString))
	case kindObjectArray:
		return jsonschema.ArrayOf(entitySchema(f.elem, strict))
	case kindScalar:
		return jsonschema.AnyOf(kindNameBoolean, kindNameNumber, kindNameString, kindNameNull)
	case kindAnswer:
		return jsonschema.AnyOf(kindNameBoolean, kindNameNumber, kindNameString, kindNameObject, kindNameNull)
	}
	return &jsonschema.Schema{}
}
