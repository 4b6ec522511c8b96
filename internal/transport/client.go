// Package transport performs the single HTTP GET behind every Stats API call
// and decodes the JSON body.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "statsapi-go"

const maxErrorBody = 1024

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Settings controls the client.
type Settings struct {
	Timeout   time.Duration
	UserAgent string
	Doer      Doer
	Logger    *slog.Logger
}

// DefaultSettings returns the default transport settings.
func DefaultSettings() Settings {
	return Settings{
		Timeout:   30 * time.Second,
		UserAgent: DefaultUserAgent,
	}
}

// Option mutates Settings.
type Option func(*Settings)

func WithTimeout(d time.Duration) Option    { return func(s *Settings) { s.Timeout = d } }
func WithUserAgent(ua string) Option        { return func(s *Settings) { s.UserAgent = ua } }
func WithDoer(d Doer) Option                { return func(s *Settings) { s.Doer = d } }
func WithLogger(logger *slog.Logger) Option { return func(s *Settings) { s.Logger = logger } }

// Client issues GET requests against resolved URLs.
type Client struct {
	doer      Doer
	userAgent string
	logger    *slog.Logger
}

// New builds a Client. Without WithDoer it uses an *http.Client bounded by the
// configured timeout.
func New(opts ...Option) *Client {
	s := DefaultSettings()
	for _, o := range opts {
		o(&s)
	}
	if s.Doer == nil {
		s.Doer = &http.Client{Timeout: s.Timeout}
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	if s.UserAgent == "" {
		s.UserAgent = DefaultUserAgent
	}
	return &Client{doer: s.Doer, userAgent: s.UserAgent, logger: s.Logger}
}

// Response is a successful Stats API response.
type Response struct {
	StatusCode int
	// Raw is the undecoded body.
	Raw []byte
	// Body is the decoded JSON document. Numbers are json.Number.
	Body any
}

// Decode unmarshals the raw body into out.
func (r *Response) Decode(out any) error {
	if err := json.Unmarshal(r.Raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError reports a response outside 200 and 201.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Get fetches url and decodes its JSON body.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "fetching", slog.String("url", url))
	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.WarnContext(ctx, "unexpected status", slog.String("url", url), slog.Int("status", resp.StatusCode))
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url, Body: strings.TrimSpace(string(body))}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	c.logger.DebugContext(ctx, "fetched", slog.String("url", url),
		slog.Int("status", resp.StatusCode), slog.Int("bytes", len(raw)), slog.Duration("elapsed", time.Since(start)))

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return &Response{StatusCode: resp.StatusCode, Raw: raw, Body: body}, nil
}
