// Package ucschema normalizes and validates AI governance "use case"
// documents.
//
// - Normalize fills a loosely structured record with schema defaults and fresh ids
// - Validate checks a document in Lenient or Strict mode and returns Violations as data
// - Violations carry a JSON Pointer and a dotted field path (questionnaires[2].sections[0])
// - GovernanceStatus converts between the string and integer wire forms explicitly
// - DecodeUseCase/UseCase.Document move between the untyped and typed forms
// - JSONSchema exports the schema of either mode for other tooling
//
// Design policy:
// - Keep only public APIs in the root package; decoding lives under source/, batch processing under pipeline/.
// - Validation never raises for schema violations; only a non-object document is an error.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := ucschema.Normalize(raw)
//	vs, err := ucschema.Validate(doc, ucschema.Strict)
//	for _, v := range vs {
//		fmt.Println(v.Field, v.Message)
//	}
package ucschema
