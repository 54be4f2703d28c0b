package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jloaiza/melisearch/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Options{
		BaseURL: srv.URL,
		SiteID:  "MLM",
		Timeout: 2 * time.Second,
		Tokens:  StaticToken("test-token"),
	}, logger.NewNop())

	return client, srv
}

func TestSearchSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"keywords": "headphones",
			"paging": {"total": 2, "limit": 50, "offset": 0},
			"results": [
				{"id": "MLM1", "name": "Sony Headphones", "attributes": [{"id": "BRAND", "value_name": "Sony"}]},
				{"id": "MLM2", "name": "Generic Headphones"}
			]
		}`))
	})

	records, err := client.Search(context.Background(), "headphones")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotPath != "/products/search" {
		t.Errorf("request path = %q, want /products/search", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
	}
	for key, want := range map[string]string{"status": "active", "site_id": "MLM", "q": "headphones"} {
		if len(gotQuery[key]) != 1 || gotQuery[key][0] != want {
			t.Errorf("query param %s = %v, want %q", key, gotQuery[key], want)
		}
	}

	if len(records) != 2 {
		t.Fatalf("Search() = %d records, want 2", len(records))
	}
	if v, ok := AttributeValue(records[0], AttrBrand); !ok || v != "Sony" {
		t.Errorf("first record brand = (%q, %v), want Sony", v, ok)
	}
}

func TestSearchEmptyResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	})

	records, err := client.Search(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Search() = %d records, want 0", len(records))
	}
}

func TestSearchHTTPStatusError(t *testing.T) {
	tests := []struct {
		status int
	}{
		{status: 400},
		{status: 401},
		{status: 404},
		{status: 500},
	}

	for _, tt := range tests {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})

		_, err := client.Search(context.Background(), "anything")

		var cerr *Error
		if !errors.As(err, &cerr) {
			t.Fatalf("Search() status %d error = %v, want *Error", tt.status, err)
		}
		if cerr.Kind != KindHTTPStatus || cerr.Status != tt.status {
			t.Errorf("Search() status %d = kind %v status %d", tt.status, cerr.Kind, cerr.Status)
		}
	}
}

func TestSearchDecodeFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [not json`))
	})

	_, err := client.Search(context.Background(), "anything")

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("Search() error = %v, want *Error", err)
	}
	if cerr.Kind != KindDecode {
		t.Errorf("Search() kind = %v, want KindDecode", cerr.Kind)
	}
}

func TestSearchTransportFailure(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // nothing listening anymore

	_, err := client.Search(context.Background(), "anything")

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("Search() error = %v, want *Error", err)
	}
	if cerr.Kind != KindTransport {
		t.Errorf("Search() kind = %v, want KindTransport", cerr.Kind)
	}
}

func TestSearchSendsQueryAsGiven(t *testing.T) {
	// The client does no validation: an empty term still goes out.
	var gotQ string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"results": []}`))
	})

	if _, err := client.Search(context.Background(), ""); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotQ != "" {
		t.Errorf("q param = %q, want empty", gotQ)
	}
}
