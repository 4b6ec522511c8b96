// Package resolve turns an endpoint name and a parameter bag into a request
// URL. Resolution is pure: it performs no I/O and holds no mutable state, so
// a Resolver may be shared by concurrent callers.
package resolve

import (
	"context"
	"log/slog"

	"github.com/mark3labs/statsapi/internal/endpoint"
)

// Request is a fully resolved request.
type Request struct {
	Endpoint string
	URL      string
	// Path holds the supplied path values after bool mapping.
	Path  map[string]string
	Query []QueryValue
	// Warnings lists requirements bypassed in force mode.
	Warnings []string
}

func (r *Request) String() string { return r.URL }

// Resolver resolves requests against a read-only catalog.
type Resolver struct {
	catalog *endpoint.Catalog
	logger  *slog.Logger
}

// New returns a Resolver. A nil logger discards resolution traces.
func New(catalog *endpoint.Catalog, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{catalog: catalog, logger: logger}
}

// Catalog returns the catalog the resolver reads.
func (r *Resolver) Catalog() *endpoint.Catalog { return r.catalog }

// Resolve builds the request URL for endpoint name. With force set, names
// the endpoint does not declare are forwarded as query parameters and
// missing requirements are bypassed; an unknown endpoint always fails.
func (r *Resolver) Resolve(name string, params Params, force bool) (*Request, error) {
	return r.ResolveContext(context.Background(), name, params, force)
}

// ResolveContext is Resolve with a context for log records.
func (r *Resolver) ResolveContext(ctx context.Context, name string, params Params, force bool) (*Request, error) {
	d, ok := r.catalog.Lookup(name)
	if !ok {
		return nil, &Error{Kind: UnknownEndpoint, Endpoint: name}
	}
	r.logger.DebugContext(ctx, "resolving endpoint", slog.String("endpoint", name), slog.String("template", d.URL))

	c := r.classify(ctx, d, params, force)

	base, warnings, err := r.resolvePath(ctx, d, c.path, force)
	if err != nil {
		return nil, err
	}

	if !force {
		if ok, missing := checkRequired(d, c); !ok {
			return nil, &Error{
				Kind:         MissingQueryParams,
				Endpoint:     name,
				Params:       missing,
				Alternatives: copySets(d.RequiredParams),
				Note:         d.Note,
			}
		}
	}

	url := appendQuery(base, c.query)
	r.logger.DebugContext(ctx, "resolved endpoint", slog.String("endpoint", name), slog.String("url", url))
	return &Request{
		Endpoint: name,
		URL:      url,
		Path:     c.path,
		Query:    c.query,
		Warnings: warnings,
	}, nil
}

func copySets(sets [][]string) [][]string {
	out := make([][]string, 0, len(sets))
	for _, set := range sets {
		out = append(out, append([]string{}, set...))
	}
	return out
}
