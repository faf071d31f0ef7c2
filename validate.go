package ucschema

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/reoring/ucschema/i18n"
)

// Validate checks doc against the UseCase schema in the given mode. It never
// mutates doc. A nil or empty Violations result means doc is valid; an error
// is returned only when doc is not an object at all (*InvalidInputError).
func Validate(doc any, mode Mode) (Violations, error) {
	return ValidateWithOptions(doc, Options{Mode: mode})
}

// ValidateWithOptions is Validate with explicit Options.
func ValidateWithOptions(doc any, opt Options) (Violations, error) {
	obj, ok := asObject(doc)
	if !ok {
		return nil, &InvalidInputError{Got: jsonKind(doc)}
	}
	tr := opt.Translator
	if tr == nil {
		tr = i18n.Current()
	}
	v := &validator{strict: opt.Mode == Strict, failFast: opt.FailFast, tr: tr}
	v.object(useCaseEntity, obj, Root())
	return v.out, nil
}

// Valid reports whether doc has no violations in the given mode.
func Valid(doc any, mode Mode) bool {
	vs, err := ValidateWithOptions(doc, Options{Mode: mode, FailFast: true})
	return err == nil && len(vs) == 0
}

type validator struct {
	strict   bool
	failFast bool
	tr       i18n.Translator
	out      Violations
}

func (v *validator) done() bool { return v.failFast && len(v.out) > 0 }

func (v *validator) add(at PathRef, code string, data map[string]string, kv ...any) {
	if v.done() {
		return
	}
	v.out = AppendViolations(v.out, at.Violation(code, v.tr.Message(code, data), kv...))
}

func (v *validator) object(e *entity, obj map[string]any, at PathRef) {
	for _, f := range e.fields {
		if v.done() {
			return
		}
		fat := at.Field(f.name)
		val, present := obj[f.name]
		if !present {
			v.add(fat, CodeRequired, map[string]string{"field": f.name}, "entity", e.name)
			continue
		}
		if !matchesKind(f.kind, val) {
			v.typeMismatch(fat, f.name, f.kind.String(), val)
			continue
		}
		switch f.kind {
		case kindStringArray:
			items, _ := asArray(val)
			for i, item := range items {
				if jsonKind(item) != kindNameString {
					iat := fat.Index(i)
					v.typeMismatch(iat, iat.Dotted(), kindNameString, item)
				}
			}
		case kindObjectArray:
			items, _ := asArray(val)
			for i, item := range items {
				if v.done() {
					return
				}
				iat := fat.Index(i)
				child, ok := asObject(item)
				if !ok {
					v.typeMismatch(iat, iat.Dotted(), kindNameObject, item)
					continue
				}
				v.object(f.elem, child, iat)
			}
		}
		if v.strict && e == useCaseEntity && f.name == fieldGovernanceStatus {
			v.governanceStatus(fat, val)
		}
	}
	if v.strict {
		v.extraKeys(e, obj, at)
	}
}

func (v *validator) typeMismatch(at PathRef, field, expected string, got any) {
	gotKind := jsonKind(got)
	v.add(at, CodeInvalidType,
		map[string]string{"field": field, "expected": expected, "got": gotKind},
		"expected", expected, "got", gotKind)
}

func (v *validator) governanceStatus(at PathRef, val any) {
	s, _ := val.(string)
	if _, err := ParseGovernanceStatus(s); err == nil {
		return
	}
	allowed := GovernanceStatusNames()
	v.add(at, CodeInvalidEnum,
		map[string]string{"field": fieldGovernanceStatus, "allowed": strings.Join(allowed, ", ")},
		"allowed", allowed, "got", s)
}

// extraKeys emits one aggregate violation listing every key outside the
// entity's allow-list, in sorted order.
func (v *validator) extraKeys(e *entity, obj map[string]any, at PathRef) {
	var extra []string
	for k := range obj {
		if _, ok := e.allowed[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return
	}
	sort.Strings(extra)
	kv := []any{"entity", e.name, "keys", extra}
	if s := suggestions(e, extra); len(s) > 0 {
		kv = append(kv, ParamSuggestions, s)
	}
	v.add(at, CodeUnknownKey, map[string]string{"keys": strings.Join(extra, ", ")}, kv...)
}

// ParamSuggestions is the Params key of an unknown_key violation holding a
// map from each misspelled key to the closest allowed field.
const ParamSuggestions = "suggestions"

// maxSuggestDistance bounds the edit distance of a suggestion.
const maxSuggestDistance = 2

// suggestions pairs unknown keys with the closest allowed field name, in
// schema order on ties.
func suggestions(e *entity, extra []string) map[string]string {
	var out map[string]string
	candidates := make([]string, 0, len(e.fields)+len(e.optional))
	for _, f := range e.fields {
		candidates = append(candidates, f.name)
	}
	candidates = append(candidates, e.optional...)
	for _, k := range extra {
		best, bestDist := "", maxSuggestDistance+1
		for _, c := range candidates {
			if d := levenshtein.ComputeDistance(k, c); d < bestDist {
				best, bestDist = c, d
			}
		}
		if best == "" || bestDist >= len(k) {
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[k] = best
	}
	return out
}
