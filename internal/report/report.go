// Package report renders pipeline reports for the CLI.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/reoring/ucschema"
	"github.com/reoring/ucschema/i18n"
	"github.com/reoring/ucschema/pipeline"
	"github.com/reoring/ucschema/source"
)

// Summary is the JSON shape of a report.
type Summary struct {
	Mode    string   `json:"mode"`
	Total   int      `json:"total"`
	Valid   int      `json:"valid"`
	Invalid int      `json:"invalid"`
	Records []Record `json:"records"`
}

type Record struct {
	Index      int     `json:"index"`
	ID         string  `json:"id,omitempty"`
	Valid      bool    `json:"valid"`
	Error      string  `json:"error,omitempty"`
	Violations []Entry `json:"violations,omitempty"`
}

type Entry struct {
	Field   string `json:"field"`
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"` // spelling suggestions for unknown keys
}

// Summarize flattens a pipeline report.
func Summarize(rep pipeline.Report) Summary {
	s := Summary{
		Mode:    rep.Mode.String(),
		Total:   len(rep.Results),
		Valid:   rep.ValidCount(),
		Invalid: rep.InvalidCount(),
		Records: make([]Record, 0, len(rep.Results)),
	}
	for _, res := range rep.Results {
		r := Record{Index: res.Index, ID: res.ID, Valid: res.Valid()}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		for _, v := range res.Violations {
			r.Violations = append(r.Violations, Entry{Field: v.Field, Path: v.Path, Code: v.Code, Message: v.Message, Hint: hint(v)})
		}
		s.Records = append(s.Records, r)
	}
	return s
}

func hint(v ucschema.Violation) string {
	sugg, ok := v.Params[ucschema.ParamSuggestions].(map[string]string)
	if !ok || len(sugg) == 0 {
		return ""
	}
	keys := make([]string, 0, len(sugg))
	for k := range sugg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, i18n.T("did_you_mean", map[string]string{"key": k, "suggestion": sugg[k]}))
	}
	return strings.Join(parts, " ")
}

// Render writes rep to w as "table" or "json".
func Render(w io.Writer, rep pipeline.Report, format string) error {
	s := Summarize(rep)
	switch format {
	case "json":
		return source.WriteJSON(w, s, true)
	case "table", "":
		renderTable(w, s)
		return nil
	}
	return fmt.Errorf("report: unknown format %q", format)
}

func renderTable(w io.Writer, s Summary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"#", "ID", "Result", "Field", "Code", "Message"})
	for _, r := range s.Records {
		switch {
		case r.Error != "":
			tw.AppendRow(table.Row{r.Index + 1, r.ID, "error", "", "", r.Error})
		case r.Valid:
			tw.AppendRow(table.Row{r.Index + 1, r.ID, "valid", "", "", ""})
		default:
			for i, v := range r.Violations {
				field := v.Field
				if field == "" {
					field = "(root)"
				}
				msg := v.Message
				if v.Hint != "" {
					msg += " " + v.Hint
				}
				if i == 0 {
					tw.AppendRow(table.Row{r.Index + 1, r.ID, "invalid", field, v.Code, msg})
					continue
				}
				tw.AppendRow(table.Row{"", "", "", field, v.Code, msg})
			}
		}
	}
	tw.AppendFooter(table.Row{"", "", s.Mode, fmt.Sprintf("total %d", s.Total), fmt.Sprintf("valid %d", s.Valid), fmt.Sprintf("invalid %d", s.Invalid)})
	tw.Render()
}
