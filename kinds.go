package ucschema

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
)

// Runtime kind names used in violation messages.
const (
	kindNameNull    = "null"
	kindNameBoolean = "boolean"
	kindNameNumber  = "number"
	kindNameString  = "string"
	kindNameArray   = "array"
	kindNameObject  = "object"
)

// jsonKind classifies a decoded value by its JSON type. Values produced by
// JSON or YAML decoders and plain Go values (ints, typed slices, string-keyed
// maps) are all accepted.
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return kindNameNull
	case bool:
		return kindNameBoolean
	case string:
		return kindNameString
	case json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return kindNameNumber
	case []any:
		return kindNameArray
	case map[string]any:
		return kindNameObject
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return kindNameNull
		}
		return jsonKind(rv.Elem().Interface())
	case reflect.Bool:
		return kindNameBoolean
	case reflect.String:
		return kindNameString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return kindNameNumber
	case reflect.Slice, reflect.Array:
		return kindNameArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return kindNameObject
		}
	}
	return fmt.Sprintf("unsupported (%T)", v)
}

// asArray returns v as []any. Typed slices are copied element by element.
func asArray(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out, true
	}
	if jsonKind(v) != kindNameArray {
		return nil, false
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asObject returns v as map[string]any. Other string-keyed maps are copied.
func asObject(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if jsonKind(v) != kindNameObject {
		return nil, false
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// matchesKind reports whether v satisfies the declared kind (ignoring
// element types of arrays).
func matchesKind(k valueKind, v any) bool {
	got := jsonKind(v)
	switch k {
	case kindString:
		return got == kindNameString
	case kindNullableString:
		return got == kindNameString || got == kindNameNull
	case kindNumber:
		return got == kindNameNumber
	case kindStringArray, kindObjectArray:
		return got == kindNameArray
	case kindScalar:
		return got == kindNameBoolean || got == kindNameNumber || got == kindNameString || got == kindNameNull
	case kindAnswer:
		return got == kindNameBoolean || got == kindNameNumber || got == kindNameString || got == kindNameNull || got == kindNameObject
	}
	return false
}

// deepCopy clones maps and slices so the result shares no containers with v.
func deepCopy(v any) any {
	switch jsonKind(v) {
	case kindNameObject:
		src, _ := asObject(v)
		out := make(map[string]any, len(src))
		for k, val := range src {
			out[k] = deepCopy(val)
		}
		return out
	case kindNameArray:
		src, _ := asArray(v)
		out := make([]any, len(src))
		for i, val := range src {
			out[i] = deepCopy(val)
		}
		return out
	}
	return v
}
