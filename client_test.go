package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeAPI serves canned JSON per path and records the queries it saw.
type fakeAPI struct {
	mu      sync.Mutex
	routes  map[string]string
	queries map[string]url.Values
}

func newFakeAPI(t *testing.T, routes map[string]string) (*fakeAPI, *Client) {
	t.Helper()
	f := &fakeAPI{routes: routes, queries: make(map[string]url.Values)}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := New(
		WithBaseURL(srv.URL+"/api/"),
		WithNow(func() time.Time { return time.Date(2019, 4, 24, 12, 0, 0, 0, time.UTC) }),
		WithUserAgent("statsapi-test"),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return f, c
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries[r.URL.Path] = r.URL.Query()
	body, ok := f.routes[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeAPI) query(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

func newDefaultClient(t *testing.T) *Client {
	t.Helper()
	c, err := New()
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestClient_ResolveDefaultCatalog(t *testing.T) {
	t.Parallel()
	c := newDefaultClient(t)
	const base = "https://statsapi.mlb.com/api/"

	tests := []struct {
		name     string
		endpoint string
		params   Params
		opts     []CallOption
		want     string
	}{
		{"team", "team", Params{{Name: "teamId", Value: 143}}, nil, base + "v1/teams/143"},
		{"team with hydrate", "team", Params{{Name: "teamId", Value: 143}, {Name: "hydrate", Value: "league"}}, nil, base + "v1/teams/143?hydrate=league"},
		{"awards list", "awards", nil, nil, base + "v1/awards"},
		{"award", "awards", Params{{Name: "awardId", Value: "MVP"}}, nil, base + "v1/awards/MVP"},
		{"award recipients", "awards", Params{{Name: "awardId", Value: "MVP"}, {Name: "recipients", Value: true}}, nil, base + "v1/awards/MVP/recipients"},
		{"award recipients false", "awards", Params{{Name: "awardId", Value: "MVP"}, {Name: "recipients", Value: "False"}}, nil, base + "v1/awards/MVP"},
		{"attendance by league", "attendance", Params{{Name: "leagueId", Value: 103}}, nil, base + "v1/attendance?leagueId=103"},
		{"game uses v1.1", "game", Params{{Name: "gamePk", Value: 565997}}, nil, base + "v1.1/game/565997/feed/live"},
		{"forced unknown param", "team", Params{{Name: "teamId", Value: 143}, {Name: "foo", Value: "bar"}}, []CallOption{Force()}, base + "v1/teams/143?foo=bar"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req, err := c.Resolve(tt.endpoint, tt.params, tt.opts...)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if req.URL != tt.want {
				t.Fatalf("url = %q, want %q", req.URL, tt.want)
			}
		})
	}
}

func TestClient_ResolveErrors(t *testing.T) {
	t.Parallel()
	c := newDefaultClient(t)

	if _, err := c.Resolve("team", nil); !errors.Is(err, ErrMissingPathParam) {
		t.Errorf("team without teamId: %v", err)
	}
	if _, err := c.Resolve("attendance", Params{{Name: "season", Value: 2019}}); !errors.Is(err, ErrMissingQueryParams) {
		t.Errorf("attendance without ids: %v", err)
	}
	for _, opts := range [][]CallOption{nil, {Force()}} {
		if _, err := c.Resolve("unknown_endpoint", nil, opts...); !errors.Is(err, ErrUnknownEndpoint) {
			t.Errorf("unknown endpoint: %v", err)
		}
	}
	var re *ResolveError
	_, err := c.Resolve("attendance", nil)
	if !errors.As(err, &re) || len(re.Alternatives) != 3 {
		t.Fatalf("expected all attendance alternatives, got %v", err)
	}
}

func TestClient_GetAndGetInto(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{
		"/api/v1/teams/143": `{"teams":[{"id":143,"name":"Philadelphia Phillies"}]}`,
	})

	body, err := c.Get(context.Background(), "team", Params{{Name: "teamId", Value: 143}, {Name: "season", Value: 2019}})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	teams := body.(map[string]any)["teams"].([]any)
	if id := teams[0].(map[string]any)["id"].(json.Number); id.String() != "143" {
		t.Fatalf("id = %v", id)
	}
	if got := f.query("/api/v1/teams/143").Get("season"); got != "2019" {
		t.Fatalf("season query = %q", got)
	}

	var typed struct {
		Teams []struct {
			Name string `json:"name"`
		} `json:"teams"`
	}
	if err := c.GetInto(context.Background(), "team", Params{{Name: "teamId", Value: 143}}, &typed); err != nil {
		t.Fatalf("get into: %v", err)
	}
	if typed.Teams[0].Name != "Philadelphia Phillies" {
		t.Fatalf("typed = %+v", typed)
	}
}

func TestClient_GetStatusError(t *testing.T) {
	t.Parallel()
	_, c := newFakeAPI(t, nil)
	_, err := c.Get(context.Background(), "team", Params{{Name: "teamId", Value: 1}})
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}

func TestClient_GetResolveFailureMakesNoRequest(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, nil)
	if _, err := c.Get(context.Background(), "team", nil); !errors.Is(err, ErrMissingPathParam) {
		t.Fatalf("expected missing path param, got %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) != 0 {
		t.Fatalf("no request should be sent, saw %v", f.queries)
	}
}

func TestClient_Endpoints(t *testing.T) {
	t.Parallel()
	c := newDefaultClient(t)
	names := c.Endpoints()
	if len(names) != c.Catalog().Len() || len(names) == 0 {
		t.Fatalf("endpoints = %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}

func TestClient_Notes(t *testing.T) {
	t.Parallel()
	c := newDefaultClient(t)

	notes, err := c.Notes("schedule")
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	for _, want := range []string{
		"Endpoint: schedule",
		"All path parameters: [ver].",
		"Required path parameters (note: ver will be included by default): [ver].",
		"Required query parameters: [sportId] or [gamePk] or [gamePks].",
		"The hydrate function is supported",
	} {
		if !strings.Contains(notes, want) {
			t.Errorf("notes missing %q:\n%s", want, notes)
		}
	}

	notes, _ = c.Notes("awards")
	if !strings.Contains(notes, "Required query parameters: None.") || !strings.Contains(notes, "Developer notes: Call awards endpoint") {
		t.Errorf("awards notes:\n%s", notes)
	}

	if _, err := c.Notes(""); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("empty name: %v", err)
	}
	if _, err := c.Notes("nope"); !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("unknown name: %v", err)
	}
}

func TestClient_Meta(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{
		"/api/v1/gameTypes": `[{"id":"R","description":"Regular Season"}]`,
	})

	got, err := c.Meta(context.Background(), "gameTypes")
	if err != nil {
		t.Fatalf("meta: %v", err)
	}
	if list, ok := got.([]any); !ok || len(list) != 1 {
		t.Fatalf("meta body = %#v", got)
	}

	_, err = c.Meta(context.Background(), "bogus")
	var me *MetaTypeError
	if !errors.As(err, &me) || len(me.Allowed) != len(MetaTypes) {
		t.Fatalf("expected MetaTypeError, got %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, sent := f.queries["/api/v1/bogus"]; sent {
		t.Fatalf("invalid meta type must not reach the API")
	}
}
