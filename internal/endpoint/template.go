package endpoint

import (
	"fmt"
	"strings"
)

// Segment is a literal run of template text optionally followed by a
// placeholder. Param is empty for the trailing literal.
type Segment struct {
	Literal string
	Param   string
}

// Template is a URL template tokenized once, when the catalog is loaded.
type Template struct {
	raw      string
	segments []Segment
}

// ParseTemplate tokenizes s in a single pass. Placeholders have the form
// {name}; nesting, unbalanced braces and empty names are rejected.
func ParseTemplate(s string) (Template, error) {
	var (
		segments []Segment
		literal  strings.Builder
		open     = -1
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if open >= 0 {
				return Template{}, fmt.Errorf("template %q: nested '{' at offset %d", s, i)
			}
			open = i
		case '}':
			if open < 0 {
				return Template{}, fmt.Errorf("template %q: unexpected '}' at offset %d", s, i)
			}
			name := strings.TrimSpace(s[open+1 : i])
			if name == "" {
				return Template{}, fmt.Errorf("template %q: empty placeholder at offset %d", s, open)
			}
			segments = append(segments, Segment{Literal: literal.String(), Param: name})
			literal.Reset()
			open = -1
		default:
			if open < 0 {
				literal.WriteByte(s[i])
			}
		}
	}
	if open >= 0 {
		return Template{}, fmt.Errorf("template %q: unterminated placeholder at offset %d", s, open)
	}
	if literal.Len() > 0 || len(segments) == 0 {
		segments = append(segments, Segment{Literal: literal.String()})
	}
	return Template{raw: s, segments: segments}, nil
}

func (t Template) String() string { return t.raw }

// Segments returns the tokenized template. The slice must not be modified.
func (t Template) Segments() []Segment { return t.segments }

// Params returns the placeholder names in order of first appearance.
func (t Template) Params() []string {
	seen := make(map[string]struct{}, len(t.segments))
	var out []string
	for _, seg := range t.segments {
		if seg.Param == "" {
			continue
		}
		if _, dup := seen[seg.Param]; dup {
			continue
		}
		seen[seg.Param] = struct{}{}
		out = append(out, seg.Param)
	}
	return out
}
