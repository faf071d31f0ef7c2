package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ucschema"
)

func TestDuplicateKeys_None(t *testing.T) {
	dups, err := DuplicateKeys([]byte(`{"id":"a","custom_fields":[{"name":"x"},{"name":"y"}],"q":{"id":"b"}}`))
	require.NoError(t, err)
	assert.Empty(t, dups)
}

func TestDuplicateKeys_NestedAndRecords(t *testing.T) {
	in := `[
	  {"id": "a", "name": "x"},
	  {"id": "b", "questionnaires": [{"sections": [{"title": "t", "title": "u", "questions": []}]}], "id": "c"}
	]`
	dups, err := DuplicateKeys([]byte(in))
	require.NoError(t, err)
	require.Len(t, dups, 2)

	assert.Equal(t, 1, dups[0].Record)
	assert.Equal(t, "title", dups[0].Key)
	assert.Equal(t, "/questionnaires/0/sections/0/title", dups[0].At.Pointer())

	assert.Equal(t, 1, dups[1].Record)
	assert.Equal(t, "/id", dups[1].At.Pointer())

	v := dups[1].Violation()
	assert.Equal(t, ucschema.CodeDuplicateKey, v.Code)
	assert.Equal(t, "duplicate key: id", v.Message)
	assert.Equal(t, "id", v.Field)
}

func TestDuplicateKeys_ScalarsBetweenRecords(t *testing.T) {
	dups, err := DuplicateKeys([]byte(`[1, "s", null, {"k": [true, {"a":1}], "k": 2}]`))
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, 3, dups[0].Record)
	assert.Equal(t, "/k", dups[0].At.Pointer())
}

func TestDuplicateViolations_GroupsByRecord(t *testing.T) {
	got, err := DuplicateViolations([]byte(`{"a":1,"a":2,"b":{"c":1,"c":1}}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a", "b.c"}, got[0].Fields())

	got, err = DuplicateViolations([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Nil(t, got)
}
