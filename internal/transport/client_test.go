package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGet_DecodesJSON(t *testing.T) {
	t.Parallel()
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"teams":[{"id":143,"name":"Philadelphia Phillies"}],"era":3.25}`))
	}))
	defer srv.Close()

	c := New(WithUserAgent("test-agent"))
	resp, err := c.Get(context.Background(), srv.URL+"/api/v1/teams/143")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotUA != "test-agent" || gotAccept != "application/json" {
		t.Fatalf("headers: ua=%q accept=%q", gotUA, gotAccept)
	}
	body, ok := resp.Body.(map[string]any)
	if !ok {
		t.Fatalf("body type %T", resp.Body)
	}
	if era, ok := body["era"].(json.Number); !ok || era.String() != "3.25" {
		t.Fatalf("era = %#v", body["era"])
	}

	var typed struct {
		Teams []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"teams"`
	}
	if err := resp.Decode(&typed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(typed.Teams) != 1 || typed.Teams[0].ID != 143 {
		t.Fatalf("typed = %+v", typed)
	}
}

func TestGet_AcceptsCreated(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	resp, err := New().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGet_StatusError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	_, err := New().Get(context.Background(), srv.URL+"/missing")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound || !strings.HasSuffix(se.URL, "/missing") {
		t.Fatalf("unexpected error: %+v", se)
	}
	if len(se.Body) != maxErrorBody {
		t.Fatalf("body excerpt len = %d", len(se.Body))
	}
}

func TestGet_TransportError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	c := New(WithDoer(doerFunc(func(*http.Request) (*http.Response, error) { return nil, boom })))
	_, err := c.Get(context.Background(), "https://example.com/api/v1/teams")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestGet_InvalidJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	if _, err := New().Get(context.Background(), srv.URL); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }
