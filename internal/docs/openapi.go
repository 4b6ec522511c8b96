package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/statsapi/internal/endpoint"
)

const (
	defaultTitle   = "MLB Stats API"
	defaultVersion = "1.0.0"
)

// BuildOpenAPI describes every endpoint as a GET operation. Placeholders
// become path parameters; OpenAPI has no optional path segments, so optional
// ones are documented as such in their description. The document is
// validated before it is returned.
func BuildOpenAPI(ctx context.Context, c *endpoint.Catalog, title, version string) (*openapi3.T, error) {
	if title == "" {
		title = defaultTitle
	}
	if version == "" {
		version = defaultVersion
	}
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Version:     version,
			Description: "Generated from the statsapi endpoint catalog.",
		},
		Paths: openapi3.Paths{},
	}

	var server string
	for _, name := range c.Names() {
		d, _ := c.Lookup(name)
		srv, path := splitURL(d.URL)
		if _, dup := doc.Paths[path]; dup {
			return nil, fmt.Errorf("docs: endpoint %q shares path %s with another endpoint", name, path)
		}

		item := &openapi3.PathItem{Get: operation(d)}
		switch {
		case server == "":
			server = srv
			doc.Servers = openapi3.Servers{{URL: srv}}
		case srv != server:
			item.Servers = openapi3.Servers{{URL: srv}}
		}
		doc.Paths[path] = item
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("docs: invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

func operation(d *endpoint.Descriptor) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: d.Name,
		Summary:     "GET " + d.Name,
		Description: d.Note,
		Responses: openapi3.Responses{
			"200": &openapi3.ResponseRef{Value: openapi3.NewResponse().
				WithDescription("OK").
				WithJSONSchema(openapi3.NewObjectSchema())},
		},
	}
	if sets := d.RequiredParams; d.HasQueryRequirement() {
		parts := make([]string, 0, len(sets))
		for _, set := range sets {
			parts = append(parts, "["+strings.Join(set, " + ")+"]")
		}
		req := "Required query parameters (any one set): " + strings.Join(parts, " or ") + "."
		if op.Description != "" {
			op.Description += "\n\n"
		}
		op.Description += req
	}

	for _, name := range d.Template().Params() {
		p, declared := d.PathParam(name)
		schema := openapi3.NewStringSchema()
		desc := "Undeclared placeholder; removed when not supplied."
		if declared {
			desc = pathParamDescription(p)
			if p.Kind == endpoint.KindBool {
				schema = openapi3.NewBoolSchema()
				if v := strings.ToLower(p.Default); v == "true" || v == "false" {
					schema = schema.WithDefault(v == "true")
				}
			} else if p.Default != "" {
				schema = schema.WithDefault(p.Default)
			}
		}
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
			Value: openapi3.NewPathParameter(name).WithSchema(schema).WithDescription(desc),
		})
	}
	for _, name := range d.QueryParams {
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter(name).WithSchema(openapi3.NewStringSchema()),
		})
	}
	return op
}

func pathParamDescription(p endpoint.PathParam) string {
	var parts []string
	if p.Required {
		parts = append(parts, "Required.")
	} else {
		parts = append(parts, "Optional; the segment is removed when not supplied.")
	}
	if p.Kind == endpoint.KindBool {
		parts = append(parts, fmt.Sprintf("true renders %q, false renders %q.", p.TrueText, p.FalseText))
	}
	if p.LeadingSlash {
		parts = append(parts, "Prefixed with / when present.")
	}
	if p.TrailingSlash {
		parts = append(parts, "Followed by / when present.")
	}
	return strings.Join(parts, " ")
}

// splitURL separates scheme and host from the path of an absolute template.
func splitURL(raw string) (server, path string) {
	i := strings.Index(raw, "://")
	if i < 0 {
		return "", "/" + strings.TrimPrefix(raw, "/")
	}
	rest := raw[i+3:]
	j := strings.IndexByte(rest, '/')
	if j < 0 {
		return raw, "/"
	}
	return raw[:i+3+j], rest[j:]
}

func marshalJSON(doc *openapi3.T) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi json: %w", err)
	}
	return append(data, '\n'), nil
}

// marshalYAML goes through JSON so the openapi3 marshalers apply, then
// re-emits the node tree in block style with key order preserved.
func marshalYAML(doc *openapi3.T) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi json: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("convert openapi to yaml: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encode openapi yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
