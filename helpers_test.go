package ucschema_test

import "github.com/reoring/ucschema"

// validDoc returns a fresh UseCase document that passes strict validation.
func validDoc() ucschema.Document {
	return ucschema.Document{
		"id":                "5b0ad4e1-7f64-4b27-9d6c-0f5c3f4f1c11",
		"name":              "Customer support chatbot",
		"description":       "Answers tier-1 tickets",
		"ai_type":           "gen_ai",
		"governance_status": "approved",
		"domains":           []any{"support", "sales"},
		"industries":        []any{"retail"},
		"regions":           []any{"eu", "us"},
		"custom_fields": []any{
			map[string]any{"custom_field_id": "cf-1", "type": "string", "name": "Owner", "value": "ops"},
			map[string]any{"custom_field_id": "cf-2", "type": "boolean", "name": "PII", "value": true},
		},
		"questionnaires": []any{
			map[string]any{
				"name":    "Risk",
				"key":     "risk",
				"version": 2,
				"sections": []any{
					map[string]any{
						"id":    "s-1",
						"title": "Data",
						"questions": []any{
							map[string]any{"id": "q-1", "answer": "yes"},
							map[string]any{"id": "q-2", "answer": map[string]any{"choice": "b"}},
							map[string]any{"id": "q-3", "answer": nil},
						},
					},
				},
			},
		},
		"inserted_at": "2024-12-16T22:27:24.147Z",
		"updated_at":  "2024-12-16T22:29:31.214Z",
	}
}

func dig(doc ucschema.Document, path ...any) any {
	var cur any = doc
	for _, p := range path {
		switch k := p.(type) {
		case string:
			cur = cur.(map[string]any)[k]
		case int:
			cur = cur.([]any)[k]
		}
	}
	return cur
}
