package location_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurantmap/pkg/location"
)

func newTestClient(serverURL string) *location.Client {
	return location.NewClient(
		location.WithBaseURL(serverURL),
		location.WithUserAgent("test-agent"),
		location.WithRateLimit(0),
		location.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestResolve_SendsQueryAndParsesFirstCandidate(t *testing.T) {
	var gotQuery, gotFormat, gotLimit, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery, gotFormat, gotLimit = q.Get("q"), q.Get("format"), q.Get("limit")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"lat":"47.6062","lon":"-122.3321","display_name":"Seattle"},{"lat":"1","lon":"2"}]`)
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).Resolve(context.Background(), "Seattle, Washington, USA")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.Lat != 47.6062 || got.Lon != -122.3321 {
		t.Errorf("Resolve = %+v, want 47.6062,-122.3321", got)
	}
	if gotQuery != "Seattle, Washington, USA" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotFormat != "json" || gotLimit != "1" {
		t.Errorf("format=%q limit=%q, want json and 1", gotFormat, gotLimit)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q, want test-agent", gotUA)
	}
}

func TestResolve_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{name: "empty candidate list", status: http.StatusOK, payload: `[]`},
		{name: "upstream error", status: http.StatusServiceUnavailable, payload: `busy`},
		{name: "malformed json", status: http.StatusOK, payload: `{"oops"`},
		{name: "unparseable latitude", status: http.StatusOK, payload: `[{"lat":"north","lon":"1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.payload)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Resolve(context.Background(), "xyzxyzxyz123")
			if !errors.Is(err, location.ErrNotFound) {
				t.Fatalf("Resolve error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestResolve_TransportErrorIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Resolve(context.Background(), "Paris")
	if !errors.Is(err, location.ErrNotFound) {
		t.Fatalf("Resolve error = %v, want ErrNotFound", err)
	}
}
