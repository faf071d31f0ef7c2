// Package jsonschema holds the JSON Schema document model used to export the
// UseCase schema to other tooling.
package jsonschema

// Draft is the dialect written to "$schema".
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
// Only the keywords the UseCase schema needs are modelled.
type Schema struct {
	// Core
	SchemaURI   string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Enum        []any  `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Of returns a schema accepting a single JSON type.
func Of(typ string) *Schema { return &Schema{Type: typ} }

// AnyOf returns a schema accepting any of the given JSON types.
func AnyOf(types ...string) *Schema {
	s := &Schema{OneOf: make([]*Schema, 0, len(types))}
	for _, t := range types {
		s.OneOf = append(s.OneOf, Of(t))
	}
	return s
}

// ArrayOf returns an array schema with the given item schema.
func ArrayOf(items *Schema) *Schema { return &Schema{Type: "array", Items: items} }

// Closed forbids properties outside Properties.
func (s *Schema) Closed() *Schema {
	f := false
	s.AdditionalProperties = &f
	return s
}
