package ucschema_test

import (
	"errors"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ucschema"
)

func TestValidate_ValidDocument(t *testing.T) {
	for _, mode := range []ucschema.Mode{ucschema.Lenient, ucschema.Strict} {
		vs, err := ucschema.Validate(validDoc(), mode)
		require.NoError(t, err)
		assert.Empty(t, vs, mode.String())
		assert.True(t, ucschema.Valid(validDoc(), mode))
	}
}

func TestValidate_LenientAcceptsNormalizedOutput(t *testing.T) {
	raws := []ucschema.Document{
		{},
		{"name": "x", "custom_fields": []any{map[string]any{}}},
		{"questionnaires": []any{map[string]any{"sections": []any{map[string]any{"questions": []any{map[string]any{}}}}}}},
		{"governance_status": 3, "description": nil},
	}
	for _, raw := range raws {
		doc, err := ucschema.Normalize(raw)
		require.NoError(t, err)
		vs, err := ucschema.Validate(doc, ucschema.Lenient)
		require.NoError(t, err)
		assert.Empty(t, vs, "%v", raw)
		vs, err = ucschema.Validate(doc, ucschema.Strict)
		require.NoError(t, err)
		assert.Empty(t, vs, "strict %v", raw)
	}
}

func TestValidate_StrictRejectsExtraKey(t *testing.T) {
	doc := validDoc()
	doc["foo"] = 1

	vs, err := ucschema.Validate(doc, ucschema.Lenient)
	require.NoError(t, err)
	assert.Empty(t, vs)

	vs, err = ucschema.Validate(doc, ucschema.Strict)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, ucschema.CodeUnknownKey, vs[0].Code)
	assert.Contains(t, vs[0].Message, "foo")
	assert.Equal(t, "/", vs[0].Path)
}

func TestValidate_StrictAggregatesExtraKeysSorted(t *testing.T) {
	doc := validDoc()
	doc["zeta"] = true
	doc["alpha"] = "a"
	q := dig(doc, "questionnaires", 0, "sections", 0, "questions", 1).(map[string]any)
	q["note"] = "n"

	vs, err := ucschema.Validate(doc, ucschema.Strict)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "extra fields not allowed: note", vs[0].Message)
	assert.Equal(t, "questionnaires[0].sections[0].questions[1]", vs[0].Field)
	assert.Equal(t, "extra fields not allowed: alpha, zeta", vs[1].Message)
	assert.Equal(t, []string{"alpha", "zeta"}, vs[1].Params["keys"])
}

func TestValidate_StrictAllowsOptionalExtensions(t *testing.T) {
	doc := validDoc()
	for i, f := range ucschema.OptionalFields() {
		doc[f] = i
	}
	vs, err := ucschema.Validate(doc, ucschema.Strict)
	require.NoError(t, err)
	assert.Empty(t, vs)

	// extensions are root-only
	cf := dig(doc, "custom_fields", 0).(map[string]any)
	cf["icon"] = "x"
	vs, err = ucschema.Validate(doc, ucschema.Strict)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "/custom_fields/0", vs[0].Path)
}

func TestValidate_EachMissingFieldReportedOnce(t *testing.T) {
	required := ucschema.RequiredFields()
	require.Len(t, required, 12)
	for _, f := range required {
		t.Run(f, func(t *testing.T) {
			doc := validDoc()
			delete(doc, f)
			for _, mode := range []ucschema.Mode{ucschema.Lenient, ucschema.Strict} {
				vs, err := ucschema.Validate(doc, mode)
				require.NoError(t, err)
				require.Len(t, vs, 1)
				assert.Equal(t, ucschema.CodeRequired, vs[0].Code)
				assert.Equal(t, "missing required field: "+f, vs[0].Message)
				assert.Equal(t, f, vs[0].Field)
				assert.Equal(t, "/"+f, vs[0].Path)
			}
		})
	}
}

func TestValidate_WrongTypes(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(ucschema.Document)
		field   string
		message string
	}{
		{
			name:    "domains is a string",
			mutate:  func(d ucschema.Document) { d["domains"] = "tag" },
			field:   "domains",
			message: "field domains has wrong type: expected array, got string",
		},
		{
			name:    "non-string region",
			mutate:  func(d ucschema.Document) { d["regions"] = []any{"eu", 7} },
			field:   "regions[1]",
			message: "field regions[1] has wrong type: expected string, got number",
		},
		{
			name:    "name is a number",
			mutate:  func(d ucschema.Document) { d["name"] = json.Number("1") },
			field:   "name",
			message: "field name has wrong type: expected string, got number",
		},
		{
			name:    "description is a bool",
			mutate:  func(d ucschema.Document) { d["description"] = false },
			field:   "description",
			message: "field description has wrong type: expected string or null, got boolean",
		},
		{
			name: "version is a bool",
			mutate: func(d ucschema.Document) {
				dig(d, "questionnaires", 0).(map[string]any)["version"] = true
			},
			field:   "questionnaires[0].version",
			message: "field version has wrong type: expected number, got boolean",
		},
		{
			name: "custom field value is an array",
			mutate: func(d ucschema.Document) {
				dig(d, "custom_fields", 1).(map[string]any)["value"] = []any{1}
			},
			field:   "custom_fields[1].value",
			message: "field value has wrong type: expected boolean, number, string or null, got array",
		},
		{
			name: "answer is an array",
			mutate: func(d ucschema.Document) {
				dig(d, "questionnaires", 0, "sections", 0, "questions", 0).(map[string]any)["answer"] = []any{"a"}
			},
			field:   "questionnaires[0].sections[0].questions[0].answer",
			message: "field answer has wrong type: expected boolean, number, string, object or null, got array",
		},
		{
			name: "section entry is not an object",
			mutate: func(d ucschema.Document) {
				dig(d, "questionnaires", 0).(map[string]any)["sections"] = []any{"s"}
			},
			field:   "questionnaires[0].sections[0]",
			message: "field questionnaires[0].sections[0] has wrong type: expected object, got string",
		},
		{
			name:    "status is an integer code",
			mutate:  func(d ucschema.Document) { d["governance_status"] = 2 },
			field:   "governance_status",
			message: "field governance_status has wrong type: expected string, got number",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDoc()
			tc.mutate(doc)
			for _, mode := range []ucschema.Mode{ucschema.Lenient, ucschema.Strict} {
				vs, err := ucschema.Validate(doc, mode)
				require.NoError(t, err)
				require.Len(t, vs, 1, "%s: %v", mode, vs.Messages())
				assert.Equal(t, ucschema.CodeInvalidType, vs[0].Code)
				assert.Equal(t, tc.field, vs[0].Field)
				assert.Equal(t, tc.message, vs[0].Message)
			}
		})
	}
}

func TestValidate_AnswerShapes(t *testing.T) {
	for _, answer := range []any{true, 3.5, json.Number("4"), "text", nil, map[string]any{"k": []any{1}}} {
		doc := validDoc()
		dig(doc, "questionnaires", 0, "sections", 0, "questions", 0).(map[string]any)["answer"] = answer
		assert.True(t, ucschema.Valid(doc, ucschema.Strict), "%#v", answer)
	}
}

func TestValidate_GovernanceStatusEnum(t *testing.T) {
	doc := validDoc()
	doc["governance_status"] = "maybe"

	vs, err := ucschema.Validate(doc, ucschema.Lenient)
	require.NoError(t, err)
	assert.Empty(t, vs)

	vs, err = ucschema.Validate(doc, ucschema.Strict)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, ucschema.CodeInvalidEnum, vs[0].Code)
	assert.Equal(t, "governance_status must be one of: unknown, under_review, approved, rejected", vs[0].Message)

	for _, s := range ucschema.GovernanceStatusNames() {
		doc["governance_status"] = s
		assert.True(t, ucschema.Valid(doc, ucschema.Strict), s)
	}
}

func TestValidate_TypedGoValues(t *testing.T) {
	doc := validDoc()
	doc["domains"] = []string{"a", "b"}
	doc["custom_fields"] = []map[string]any{{"custom_field_id": "c", "type": "number", "name": "n", "value": int64(3)}}
	doc["questionnaires"] = []any{}
	vs, err := ucschema.Validate(doc, ucschema.Strict)
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestValidate_NotAnObject(t *testing.T) {
	for _, in := range []any{nil, "x", []any{validDoc()}, 42} {
		vs, err := ucschema.Validate(in, ucschema.Lenient)
		require.Error(t, err)
		assert.Nil(t, vs)
		assert.True(t, errors.Is(err, ucschema.ErrInvalidInput))
		var ie *ucschema.InvalidInputError
		require.ErrorAs(t, err, &ie)
		assert.NotEmpty(t, ie.Got)
	}
}

func TestValidate_EmptyObjectListsEveryField(t *testing.T) {
	vs, err := ucschema.Validate(map[string]any{}, ucschema.Strict)
	require.NoError(t, err)
	assert.Equal(t, ucschema.RequiredFields(), vs.Fields())
}

func TestValidate_FailFast(t *testing.T) {
	vs, err := ucschema.ValidateWithOptions(map[string]any{"foo": 1}, ucschema.Options{Mode: ucschema.Strict, FailFast: true})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "id", vs[0].Field)
}

type codeTranslator struct{}

func (codeTranslator) Message(code string, data map[string]string) string { return code + ":" + data["field"] }

func TestValidate_CustomTranslator(t *testing.T) {
	doc := validDoc()
	delete(doc, "ai_type")
	vs, err := ucschema.ValidateWithOptions(doc, ucschema.Options{Translator: codeTranslator{}})
	require.NoError(t, err)
	assert.Equal(t, []string{"required:ai_type"}, vs.Messages())
}

func TestValidate_DoesNotMutate(t *testing.T) {
	doc := validDoc()
	doc["foo"] = "bar"
	before := validDoc()
	before["foo"] = "bar"
	_, err := ucschema.Validate(doc, ucschema.Strict)
	require.NoError(t, err)
	assert.Equal(t, before, doc)
}

func TestValidate_Concurrent(t *testing.T) {
	doc := validDoc()
	doc["domains"] = "tag"
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vs, err := ucschema.Validate(doc, ucschema.Strict)
			assert.NoError(t, err)
			assert.Len(t, vs, 1)
		}()
	}
	wg.Wait()
}

func TestViolations_Error(t *testing.T) {
	vs, err := ucschema.Validate(map[string]any{}, ucschema.Lenient)
	require.NoError(t, err)
	assert.Equal(t, "required at /id; required at /name; required at /description; ... (total 12)", vs.Error())

	var asErr error = vs
	got, ok := ucschema.AsViolations(asErr)
	require.True(t, ok)
	assert.True(t, got.HasCode(ucschema.CodeRequired))
	assert.False(t, got.HasCode(ucschema.CodeUnknownKey))
}

func TestValidate_StrictSuggestsMisspelledKeys(t *testing.T) {
	doc := validDoc()
	doc["domain"] = []any{}
	doc["regons"] = []any{}
	doc["xyzzy"] = 1
	vs, err := ucschema.Validate(doc, ucschema.Strict)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "extra fields not allowed: domain, regons, xyzzy", vs[0].Message)
	assert.Equal(t, map[string]string{"domain": "domains", "regons": "regions"}, vs[0].Params[ucschema.ParamSuggestions])

	doc = validDoc()
	doc["foo"] = 1
	vs, err = ucschema.Validate(doc, ucschema.Strict)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.NotContains(t, vs[0].Params, ucschema.ParamSuggestions)
}
