package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLBytes decodes the records held in a YAML payload. Multi-document
// streams are concatenated; each document may be a mapping or a sequence.
func YAMLBytes(b []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	var out []any
	seen := false
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("source: decode yaml: %w", err)
		}
		keepTimestampText(&doc)
		var node any
		if err := doc.Decode(&node); err != nil {
			return nil, fmt.Errorf("source: decode yaml: %w", err)
		}
		seen = true
		out = append(out, records(yamlNormalizeValue(node))...)
	}
	if !seen {
		return nil, ErrEmpty
	}
	return out, nil
}

// keepTimestampText retags plain timestamp scalars as strings so values such
// as inserted_at keep their source text instead of decoding to time.Time.
func keepTimestampText(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" {
		n.Tag = "!!str"
		return
	}
	for _, c := range n.Content {
		keepTimestampText(c)
	}
}

// yamlNormalizeValue rewrites map[any]any into map[string]any so records look
// the same as JSON-decoded ones. Non-string keys are formatted with %v.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprintf("%v", k)
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
