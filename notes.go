package statsapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/statsapi/internal/resolve"
)

// ErrNoEndpoint is returned by Notes for an empty endpoint name.
var ErrNoEndpoint = errors.New("no endpoint specified")

const hydrateHint = "The hydrate function is supported by this endpoint. " +
	"Call the endpoint with hydrate=hydrations in the parameters to return a list of available hydrations, " +
	"for example get schedule sportId=1 hydrate=hydrations fields=hydrations."

// Notes describes the parameters of an endpoint: all and required path
// parameters, all query parameters, the required query sets, a hint when the
// endpoint supports hydrate, and the endpoint's developer note.
func (c *Client) Notes(name string) (string, error) {
	if name == "" {
		return "", ErrNoEndpoint
	}
	d, ok := c.catalog.Lookup(name)
	if !ok {
		return "", &ResolveError{Kind: resolve.UnknownEndpoint, Endpoint: name}
	}

	requiredPath := "None"
	if names := d.RequiredPathParams(); len(names) > 0 {
		requiredPath = listText(names)
	}
	requiredQuery := "None"
	if d.HasQueryRequirement() {
		requiredQuery = resolve.FormatSets(d.RequiredParams)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Endpoint: %s\n", name)
	fmt.Fprintf(&b, "URL: %s\n", d.URL)
	fmt.Fprintf(&b, "All path parameters: %s.\n", listText(d.PathParamNames()))
	fmt.Fprintf(&b, "Required path parameters (note: ver will be included by default): %s.\n", requiredPath)
	fmt.Fprintf(&b, "All query parameters: %s.\n", listText(d.QueryParams))
	fmt.Fprintf(&b, "Required query parameters: %s.\n", requiredQuery)
	if d.AllowsQuery("hydrate") {
		b.WriteString(hydrateHint + "\n")
	}
	if d.Note != "" {
		fmt.Fprintf(&b, "Developer notes: %s\n", d.Note)
	}
	return b.String(), nil
}

func listText(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}
