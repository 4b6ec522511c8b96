package endpoint

import (
	"sort"
	"strings"
)

// Catalog model shared by the resolver, the docs emitters and the CLI.

// Kind is the value shape of a path parameter.
type Kind int

const (
	KindString Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// ParseKind accepts the names used in catalog files.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "str", "string":
		return KindString, true
	case "bool", "boolean":
		return KindBool, true
	default:
		return KindString, false
	}
}

// PathParam describes one placeholder of a URL template.
type PathParam struct {
	Kind Kind `validate:"gte=0,lte=1"`
	// Default fills the placeholder when a required parameter is not supplied.
	// For bool parameters it is "true", "false" or empty.
	Default string
	// TrueText and FalseText are the segment texts of a bool parameter.
	TrueText  string
	FalseText string
	// LeadingSlash and TrailingSlash wrap a non-empty substitution so optional
	// segments vanish cleanly when absent.
	LeadingSlash  bool
	TrailingSlash bool
	Required      bool
}

// BoolText maps a bool parameter value to its segment text. Matching is
// case-insensitive; ok is false for anything other than "true" or "false".
func (p PathParam) BoolText(value string) (text string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return p.TrueText, true
	case "false":
		return p.FalseText, true
	default:
		return "", false
	}
}

// Wrap applies the leading/trailing slash rule to a substituted value. An
// empty value stays empty.
func (p PathParam) Wrap(value string) string {
	if value == "" {
		return ""
	}
	if p.LeadingSlash {
		value = "/" + value
	}
	if p.TrailingSlash {
		value += "/"
	}
	return value
}

// Descriptor is the static description of one remote endpoint.
type Descriptor struct {
	Name string `validate:"required"`
	// URL is the absolute URL template, e.g. https://host/api/{ver}/teams/{teamId}.
	URL            string               `validate:"required"`
	PathParams     map[string]PathParam `validate:"dive,keys,required,endkeys"`
	QueryParams    []string             `validate:"unique,dive,required"`
	RequiredParams [][]string           `validate:"dive,dive,required"`
	Note           string

	template Template
	query    map[string]struct{}
}

// clone copies the exported maps and slices. The template and query index
// are never handed out mutably and stay shared.
func (d *Descriptor) clone() *Descriptor {
	out := *d
	out.PathParams = make(map[string]PathParam, len(d.PathParams))
	for name, p := range d.PathParams {
		out.PathParams[name] = p
	}
	out.QueryParams = append([]string(nil), d.QueryParams...)
	out.RequiredParams = make([][]string, len(d.RequiredParams))
	for i, set := range d.RequiredParams {
		out.RequiredParams[i] = append([]string{}, set...)
	}
	return &out
}

// Template returns the tokenized URL template.
func (d *Descriptor) Template() Template { return d.template }

// PathParam returns the specification of a path parameter.
func (d *Descriptor) PathParam(name string) (PathParam, bool) {
	p, ok := d.PathParams[name]
	return p, ok
}

// AllowsQuery reports whether name is a declared query parameter.
func (d *Descriptor) AllowsQuery(name string) bool {
	_, ok := d.query[name]
	return ok
}

// PathParamNames lists declared path parameters in template order, followed
// by any declared names the template never mentions, sorted.
func (d *Descriptor) PathParamNames() []string {
	out := make([]string, 0, len(d.PathParams))
	seen := make(map[string]bool, len(d.PathParams))
	for _, name := range d.template.Params() {
		if _, ok := d.PathParams[name]; ok {
			out = append(out, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range d.PathParams {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// RequiredPathParams lists required path parameters in template order.
func (d *Descriptor) RequiredPathParams() []string {
	var out []string
	for _, name := range d.template.Params() {
		if p, ok := d.PathParams[name]; ok && p.Required {
			out = append(out, name)
		}
	}
	return out
}

// HasQueryRequirement reports whether any required set is non-empty.
func (d *Descriptor) HasQueryRequirement() bool {
	for _, set := range d.RequiredParams {
		if len(set) == 0 {
			return false
		}
	}
	return len(d.RequiredParams) > 0
}
