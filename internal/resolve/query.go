package resolve

import (
	"strings"

	"github.com/mark3labs/statsapi/internal/endpoint"
)

// appendQuery appends name=value pairs in order. Values are not
// percent-encoded; callers pass URL-safe text.
func appendQuery(base string, query []QueryValue) string {
	if len(query) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	sep := byte('?')
	if strings.Contains(base, "?") {
		sep = '&'
	}
	for _, q := range query {
		b.WriteByte(sep)
		b.WriteString(q.Name)
		b.WriteByte('=')
		b.WriteString(q.Value)
		sep = '&'
	}
	return b.String()
}

// checkRequired reports whether any required set is satisfied by the resolved
// query. When none is, it returns the shortfall of the set with the fewest
// missing names, the first declared set winning ties.
func checkRequired(d *endpoint.Descriptor, c classified) (bool, []string) {
	var best []string
	for _, set := range d.RequiredParams {
		if len(set) == 0 {
			return true, nil
		}
		var missing []string
		for _, name := range set {
			if !c.hasQuery(name) {
				missing = append(missing, name)
			}
		}
		if len(missing) == 0 {
			return true, nil
		}
		if best == nil || len(missing) < len(best) {
			best = missing
		}
	}
	return false, best
}
