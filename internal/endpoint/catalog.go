package endpoint

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode categorizes catalog errors for clearer handling and messaging.
type ErrorCode string

const (
	InputError      ErrorCode = "InputError"
	NetworkError    ErrorCode = "NetworkError"
	ParseError      ErrorCode = "ParseError"
	ValidationError ErrorCode = "ValidationError"
)

// CatalogError is a structured error with an optional location and endpoint.
type CatalogError struct {
	Code     ErrorCode
	Message  string
	Location string // file path or URL
	Endpoint string
	Cause    error
}

func (e *CatalogError) Error() string { return e.Message }
func (e *CatalogError) Unwrap() error { return e.Cause }

var validate = validator.New()

// Catalog is an immutable set of endpoint descriptors keyed by name. It is
// safe for concurrent use.
type Catalog struct {
	endpoints map[string]*Descriptor
	names     []string
}

// NewCatalog validates and compiles descriptors. The map key is the endpoint
// name; a descriptor's Name field is overwritten with it.
func NewCatalog(descriptors map[string]Descriptor) (*Catalog, error) {
	c := &Catalog{
		endpoints: make(map[string]*Descriptor, len(descriptors)),
		names:     make([]string, 0, len(descriptors)),
	}
	for name := range descriptors {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)

	for _, name := range c.names {
		d := descriptors[name]
		d.Name = name
		compiled, err := compile(d)
		if err != nil {
			return nil, err
		}
		c.endpoints[name] = compiled
	}
	return c, nil
}

func compile(d Descriptor) (*Descriptor, error) {
	fail := func(format string, args ...any) error {
		return &CatalogError{
			Code:     ValidationError,
			Message:  fmt.Sprintf("endpoint %q: ", d.Name) + fmt.Sprintf(format, args...),
			Endpoint: d.Name,
		}
	}

	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return nil, fail("%s", strings.Join(msgs, "; "))
		}
		return nil, fail("%v", err)
	}

	tmpl, err := ParseTemplate(d.URL)
	if err != nil {
		return nil, fail("%v", err)
	}

	pathParams := make(map[string]PathParam, len(d.PathParams))
	for name, p := range d.PathParams {
		if p.Kind == KindBool {
			switch strings.ToLower(p.Default) {
			case "", "true", "false":
			default:
				return nil, fail("bool path parameter %q has non-bool default %q", name, p.Default)
			}
		}
		pathParams[name] = p
	}

	query := make(map[string]struct{}, len(d.QueryParams))
	queryParams := make([]string, 0, len(d.QueryParams))
	for _, name := range d.QueryParams {
		if _, isPath := pathParams[name]; isPath {
			return nil, fail("parameter %q is declared as both path and query parameter", name)
		}
		query[name] = struct{}{}
		queryParams = append(queryParams, name)
	}

	required := make([][]string, 0, len(d.RequiredParams))
	for _, set := range d.RequiredParams {
		for _, name := range set {
			if _, ok := query[name]; !ok {
				return nil, fail("required parameter %q is not a declared query parameter", name)
			}
		}
		required = append(required, append([]string{}, set...))
	}
	if len(required) == 0 {
		required = [][]string{{}}
	}

	return &Descriptor{
		Name:           d.Name,
		URL:            d.URL,
		PathParams:     pathParams,
		QueryParams:    queryParams,
		RequiredParams: required,
		Note:           d.Note,
		template:       tmpl,
		query:          query,
	}, nil
}

// Lookup returns a copy of the descriptor registered under name. Changes to
// the copy never reach the catalog.
func (c *Catalog) Lookup(name string) (*Descriptor, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.endpoints[name]
	if !ok {
		return nil, false
	}
	return d.clone(), true
}

// Names returns all endpoint names, sorted.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Len returns the number of endpoints.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}
