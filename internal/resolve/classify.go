package resolve

import (
	"context"
	"log/slog"

	"github.com/mark3labs/statsapi/internal/endpoint"
)

// QueryValue is one resolved query parameter.
type QueryValue struct {
	Name  string
	Value string
}

// classified holds the parameter bag split by destination.
type classified struct {
	path  map[string]string
	query []QueryValue
}

func (c *classified) setQuery(name, value string) {
	for i := range c.query {
		if c.query[i].Name == name {
			c.query[i].Value = value
			return
		}
	}
	c.query = append(c.query, QueryValue{Name: name, Value: value})
}

func (c *classified) hasQuery(name string) bool {
	for _, q := range c.query {
		if q.Name == name {
			return true
		}
	}
	return false
}

// classify routes each parameter to the path or the query. Unknown names are
// forced into the query when force is set and dropped otherwise. It never fails.
func (r *Resolver) classify(ctx context.Context, d *endpoint.Descriptor, params Params, force bool) classified {
	out := classified{path: make(map[string]string)}
	for _, p := range params {
		value := String(p.Value)
		if pp, ok := d.PathParam(p.Name); ok {
			if pp.Kind == endpoint.KindBool {
				text, ok := pp.BoolText(value)
				if !ok {
					r.logger.DebugContext(ctx, "ignoring non-bool value for bool path param",
						slog.String("endpoint", d.Name), slog.String("param", p.Name), slog.String("value", value))
					continue
				}
				value = text
			}
			r.logger.DebugContext(ctx, "found path param", slog.String("endpoint", d.Name), slog.String("param", p.Name))
			out.path[p.Name] = value
			continue
		}
		if d.AllowsQuery(p.Name) {
			r.logger.DebugContext(ctx, "found query param", slog.String("endpoint", d.Name), slog.String("param", p.Name))
			out.setQuery(p.Name, value)
			continue
		}
		if force {
			r.logger.DebugContext(ctx, "forcing unrecognized param into query", slog.String("endpoint", d.Name), slog.String("param", p.Name))
			out.setQuery(p.Name, value)
			continue
		}
		r.logger.DebugContext(ctx, "ignoring unrecognized param", slog.String("endpoint", d.Name), slog.String("param", p.Name))
	}
	return out
}
