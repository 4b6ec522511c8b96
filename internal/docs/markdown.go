package docs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mark3labs/statsapi/internal/endpoint"
)

// RenderMarkdown lists every endpoint with its URL template, required
// parameters (ver excluded), all parameters and note.
func RenderMarkdown(c *endpoint.Catalog) []byte {
	var b bytes.Buffer
	for _, name := range c.Names() {
		d, _ := c.Lookup(name)

		var required []string
		for _, p := range d.RequiredPathParams() {
			if p != "ver" {
				required = append(required, p)
			}
		}
		for _, set := range d.RequiredParams {
			if len(set) > 0 {
				required = append(required, strings.Join(set, " + "))
			}
		}
		all := append(d.PathParamNames(), d.QueryParams...)

		fmt.Fprintf(&b, "## Endpoint: `%s`\n\n", name)
		fmt.Fprintf(&b, "### URL: `%s`\n\n", d.URL)
		b.WriteString("### Required Parameters\n\n")
		writeBullets(&b, required)
		b.WriteString("### All Parameters\n\n")
		writeBullets(&b, all)
		if d.Note != "" {
			fmt.Fprintf(&b, "### Note\n\n%s\n\n", d.Note)
		}
		b.WriteString("-----\n\n")
	}
	return b.Bytes()
}

func writeBullets(b *bytes.Buffer, items []string) {
	if len(items) == 0 {
		b.WriteString("* *None*\n\n")
		return
	}
	for _, item := range items {
		b.WriteString("* " + item + "\n")
	}
	b.WriteByte('\n')
}
