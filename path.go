package ucschema

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds locations inside a document in a chain-safe way and creates
// Violations at them.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	// Pointer renders the location as a JSON Pointer ("/" for the root).
	Pointer() string
	// Dotted renders the location as name[i].name ("" for the root).
	Dotted() string
	Violation(code, msg string, kv ...any) Violation
}

// Root returns the location of the document itself.
func Root() PathRef { return &pathRef{} }

type pathSeg struct {
	name  string
	index int // -1 for named segments
}

type pathRef struct {
	segs []pathSeg
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return &pathRef{segs: append(append([]pathSeg{}, p.segs...), pathSeg{name: name, index: -1})}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{segs: append(append([]pathSeg{}, p.segs...), pathSeg{index: i})}
}

func (p *pathRef) Pointer() string {
	if len(p.segs) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p.segs {
		b.WriteByte('/')
		if s.index >= 0 {
			b.WriteString(strconv.Itoa(s.index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s.name, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

func (p *pathRef) Dotted() string {
	b := &strings.Builder{}
	for _, s := range p.segs {
		if s.index >= 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.name)
	}
	return b.String()
}

func (p *pathRef) Violation(code, msg string, kv ...any) Violation {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Violation{Path: p.Pointer(), Field: p.Dotted(), Code: code, Message: msg, Params: m}
}
