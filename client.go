// Package statsapi is a client for the MLB Stats API. Endpoints are described
// by a declarative catalog; callers name an endpoint and pass a flat parameter
// bag, and the client resolves the request URL, performs the GET and decodes
// the JSON response.
package statsapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/statsapi/internal/endpoint"
	"github.com/mark3labs/statsapi/internal/resolve"
	"github.com/mark3labs/statsapi/internal/transport"
)

type (
	// Param is one named request parameter.
	Param = resolve.Param
	// Params is an ordered parameter bag.
	Params = resolve.Params
	// Request is a resolved request.
	Request = resolve.Request
	// ResolveError is returned when a request cannot be resolved.
	ResolveError = resolve.Error
	// StatusError is returned for responses outside 200 and 201.
	StatusError = transport.StatusError
	// Catalog is a compiled endpoint catalog.
	Catalog = endpoint.Catalog
)

var (
	ErrUnknownEndpoint    = resolve.ErrUnknownEndpoint
	ErrMissingPathParam   = resolve.ErrMissingPathParam
	ErrMissingQueryParams = resolve.ErrMissingQueryParams
)

// FromMap builds a parameter bag from a map, names sorted.
func FromMap(m map[string]any) Params { return resolve.FromMap(m) }

type settings struct {
	catalog   *endpoint.Catalog
	baseURL   string
	doer      transport.Doer
	logger    *slog.Logger
	userAgent string
	timeout   time.Duration
	now       func() time.Time
}

// Option configures a Client.
type Option func(*settings)

// WithCatalog replaces the embedded endpoint catalog.
func WithCatalog(c *endpoint.Catalog) Option { return func(s *settings) { s.catalog = c } }

// WithBaseURL points the embedded catalog at another host. It has no effect
// together with WithCatalog.
func WithBaseURL(u string) Option { return func(s *settings) { s.baseURL = u } }

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(d transport.Doer) Option { return func(s *settings) { s.doer = d } }

func WithLogger(logger *slog.Logger) Option { return func(s *settings) { s.logger = logger } }
func WithUserAgent(ua string) Option        { return func(s *settings) { s.userAgent = ua } }
func WithTimeout(d time.Duration) Option    { return func(s *settings) { s.timeout = d } }
func WithNow(now func() time.Time) Option   { return func(s *settings) { s.now = now } }

// Client calls the Stats API. It is safe for concurrent use.
type Client struct {
	catalog  *endpoint.Catalog
	resolver *resolve.Resolver
	http     *transport.Client
	logger   *slog.Logger
	now      func() time.Time
}

// New returns a Client backed by the embedded catalog unless WithCatalog is given.
func New(opts ...Option) (*Client, error) {
	s := settings{now: time.Now}
	for _, o := range opts {
		o(&s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.catalog == nil {
		c, err := endpoint.Default(endpoint.WithBaseURL(s.baseURL), endpoint.WithNow(s.now))
		if err != nil {
			return nil, fmt.Errorf("load default catalog: %w", err)
		}
		s.catalog = c
	}

	topts := []transport.Option{transport.WithLogger(s.logger)}
	if s.doer != nil {
		topts = append(topts, transport.WithDoer(s.doer))
	}
	if s.userAgent != "" {
		topts = append(topts, transport.WithUserAgent(s.userAgent))
	}
	if s.timeout > 0 {
		topts = append(topts, transport.WithTimeout(s.timeout))
	}

	return &Client{
		catalog:  s.catalog,
		resolver: resolve.New(s.catalog, s.logger),
		http:     transport.New(topts...),
		logger:   s.logger,
		now:      s.now,
	}, nil
}

type callSettings struct {
	force bool
}

// CallOption adjusts a single call.
type CallOption func(*callSettings)

// Force forwards undeclared parameters into the query string and bypasses
// required-parameter checks. Responses may not be what you expect.
func Force() CallOption { return func(c *callSettings) { c.force = true } }

func applyCall(opts []CallOption) callSettings {
	var c callSettings
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Catalog returns the endpoint catalog in use.
func (c *Client) Catalog() *endpoint.Catalog { return c.catalog }

// Endpoints returns all endpoint names, sorted.
func (c *Client) Endpoints() []string { return c.catalog.Names() }

// Resolve builds the request for endpoint without sending it.
func (c *Client) Resolve(name string, params Params, opts ...CallOption) (*Request, error) {
	return c.ResolveContext(context.Background(), name, params, opts...)
}

// ResolveContext is Resolve with a context for log records.
func (c *Client) ResolveContext(ctx context.Context, name string, params Params, opts ...CallOption) (*Request, error) {
	return c.resolver.ResolveContext(ctx, name, params, applyCall(opts).force)
}

// Get resolves and calls endpoint and returns the decoded JSON document.
// Objects decode to map[string]any and numbers to json.Number.
func (c *Client) Get(ctx context.Context, name string, params Params, opts ...CallOption) (any, error) {
	resp, err := c.do(ctx, name, params, opts)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// GetInto resolves and calls endpoint and decodes the response into out.
func (c *Client) GetInto(ctx context.Context, name string, params Params, out any, opts ...CallOption) error {
	resp, err := c.do(ctx, name, params, opts)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (c *Client) do(ctx context.Context, name string, params Params, opts []CallOption) (*transport.Response, error) {
	req, err := c.ResolveContext(ctx, name, params, opts...)
	if err != nil {
		return nil, err
	}
	return c.http.Get(ctx, req.URL)
}
