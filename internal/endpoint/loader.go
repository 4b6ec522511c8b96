package endpoint

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DraftYearToken as a path parameter default expands to DraftYear(now).
const DraftYearToken = "$draftYear"

//go:embed catalog/endpoints.yaml
var defaultCatalogYAML []byte

// Settings configures loader behavior.
type Settings struct {
	// HTTPTimeout bounds the request when the catalog is fetched over HTTP.
	HTTPTimeout time.Duration
	// BaseURL overrides the base_url declared by the catalog file.
	BaseURL string
	// Now is the clock used to expand DraftYearToken.
	Now func() time.Time
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
	return Settings{
		HTTPTimeout: 10 * time.Second,
		Now:         time.Now,
	}
}

// Option mutates Settings.
type Option func(*Settings)

func WithHTTPTimeout(d time.Duration) Option { return func(s *Settings) { s.HTTPTimeout = d } }
func WithBaseURL(u string) Option            { return func(s *Settings) { s.BaseURL = u } }
func WithNow(now func() time.Time) Option    { return func(s *Settings) { s.Now = now } }

// fileCatalog is the on-disk YAML shape.
type fileCatalog struct {
	BaseURL   string                  `yaml:"base_url"`
	Endpoints map[string]fileEndpoint `yaml:"endpoints"`
}

type fileEndpoint struct {
	URL            string                   `yaml:"url"`
	PathParams     map[string]filePathParam `yaml:"path_params"`
	QueryParams    []string                 `yaml:"query_params"`
	RequiredParams [][]string               `yaml:"required_params"`
	Note           string                   `yaml:"note"`
}

type filePathParam struct {
	Type          string `yaml:"type"`
	Default       string `yaml:"default"`
	TrueText      string `yaml:"true_text"`
	FalseText     string `yaml:"false_text"`
	LeadingSlash  bool   `yaml:"leading_slash"`
	TrailingSlash bool   `yaml:"trailing_slash"`
	Required      bool   `yaml:"required"`
}

// Default parses the catalog embedded in the binary.
func Default(opts ...Option) (*Catalog, error) {
	return Parse(defaultCatalogYAML, "embedded:catalog/endpoints.yaml", opts...)
}

// Load reads and validates a YAML catalog. input may be a filesystem path or
// an http/https URL; file:// URLs are blocked. The document is fetched once;
// there are no retries.
func Load(ctx context.Context, input string, opts ...Option) (*Catalog, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &CatalogError{Code: InputError, Message: "catalog: input is empty"}
	}
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	u, uerr := url.Parse(input)
	isURL := uerr == nil && u.Scheme != "" && u.Host != ""
	if isURL {
		scheme := strings.ToLower(u.Scheme)
		if scheme == "file" {
			return nil, &CatalogError{Code: InputError, Message: "catalog: file:// URLs are blocked", Location: input}
		}
		if scheme != "http" && scheme != "https" {
			return nil, &CatalogError{Code: InputError, Message: fmt.Sprintf("catalog: unsupported URL scheme %q (only http/https allowed)", scheme), Location: input}
		}
		raw, err := fetch(ctx, input, settings)
		if err != nil {
			return nil, &CatalogError{Code: NetworkError, Message: fmt.Sprintf("fetch %s: %v", input, err), Location: input, Cause: err}
		}
		return Parse(raw, input, opts...)
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, &CatalogError{Code: InputError, Message: fmt.Sprintf("resolve path: %v", err), Location: input, Cause: err}
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return nil, &CatalogError{Code: InputError, Message: fmt.Sprintf("read file %s: %v", abs, err), Location: abs, Cause: err}
	}
	return Parse(raw, abs, opts...)
}

// Parse builds a catalog from YAML bytes. location is only used in errors.
func Parse(data []byte, location string, opts ...Option) (*Catalog, error) {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, &CatalogError{Code: ParseError, Message: fmt.Sprintf("parse catalog: %v", err), Location: location, Cause: err}
	}
	if len(fc.Endpoints) == 0 {
		return nil, &CatalogError{Code: ValidationError, Message: "catalog: no endpoints defined", Location: location}
	}

	base := fc.BaseURL
	if strings.TrimSpace(settings.BaseURL) != "" {
		base = strings.TrimSpace(settings.BaseURL)
	}
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	draftYear := strconv.Itoa(DraftYear(settings.Now()))

	descriptors := make(map[string]Descriptor, len(fc.Endpoints))
	for name, fe := range fc.Endpoints {
		d := Descriptor{
			Name:           name,
			URL:            base + strings.TrimPrefix(fe.URL, "/"),
			PathParams:     make(map[string]PathParam, len(fe.PathParams)),
			QueryParams:    fe.QueryParams,
			RequiredParams: fe.RequiredParams,
			Note:           strings.TrimSpace(fe.Note),
		}
		if base == "" {
			d.URL = fe.URL
		}
		for pname, fp := range fe.PathParams {
			kind, ok := ParseKind(fp.Type)
			if !ok {
				return nil, &CatalogError{
					Code:     ValidationError,
					Message:  fmt.Sprintf("endpoint %q: path parameter %q has unknown type %q", name, pname, fp.Type),
					Location: location,
					Endpoint: name,
				}
			}
			def := fp.Default
			if def == DraftYearToken {
				def = draftYear
			}
			d.PathParams[pname] = PathParam{
				Kind:          kind,
				Default:       def,
				TrueText:      fp.TrueText,
				FalseText:     fp.FalseText,
				LeadingSlash:  fp.LeadingSlash,
				TrailingSlash: fp.TrailingSlash,
				Required:      fp.Required,
			}
		}
		descriptors[name] = d
	}

	c, err := NewCatalog(descriptors)
	if err != nil {
		if ce, ok := err.(*CatalogError); ok && ce.Location == "" {
			ce.Location = location
		}
		return nil, err
	}
	return c, nil
}

// DraftYear returns the most recent draft year: the previous year through
// July, the current year from August on.
func DraftYear(now time.Time) int {
	if now.Month() > time.July {
		return now.Year()
	}
	return now.Year() - 1
}

func fetch(ctx context.Context, rawURL string, settings Settings) ([]byte, error) {
	client := &http.Client{Timeout: settings.HTTPTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return io.ReadAll(resp.Body)
}
