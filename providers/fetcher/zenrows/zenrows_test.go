package zenrows

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leofalp/scrapego/providers/fetcher"
)

// TestFetch_Basic verifies the proxied request shape and body passthrough.
func TestFetch_Basic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apikey") != "test-key" {
			t.Errorf("unexpected apikey %q", q.Get("apikey"))
		}
		if q.Get("url") != "https://example.com/page" {
			t.Errorf("unexpected target %q", q.Get("url"))
		}
		if q.Get("premium_proxy") != "true" {
			t.Errorf("expected premium_proxy=true, got %q", q.Get("premium_proxy"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>proxied</body></html>"))
	}))
	defer server.Close()

	f := New(WithAPIKey("test-key"), WithBaseURL(server.URL))
	payload, err := f.Fetch(context.Background(), "https://example.com/page", fetcher.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(payload.Body, "proxied") {
		t.Errorf("unexpected body %q", payload.Body)
	}
	if payload.ContentType != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", payload.ContentType)
	}
	if payload.FinalURL != "https://example.com/page" {
		t.Errorf("unexpected final URL %q", payload.FinalURL)
	}
}

// TestFetch_Unconfigured verifies the missing-key guard.
func TestFetch_Unconfigured(t *testing.T) {
	f := New(WithAPIKey(""))
	_, err := f.Fetch(context.Background(), "https://example.com/", fetcher.Options{})

	var fe *fetcher.Error
	if !errors.As(err, &fe) || fe.Reason != fetcher.ReasonAuth {
		t.Errorf("expected authentication failure, got %v", err)
	}
}

// TestFetch_StatusClassification verifies API status codes map to reasons.
func TestFetch_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   fetcher.Reason
	}{
		{401, fetcher.ReasonAuth},
		{429, fetcher.ReasonRateLimited},
		{422, fetcher.ReasonStatus},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte("error detail"))
		}))

		f := New(WithAPIKey("key"), WithBaseURL(server.URL))
		_, err := f.Fetch(context.Background(), "https://example.com/", fetcher.Options{})
		server.Close()

		var fe *fetcher.Error
		if !errors.As(err, &fe) {
			t.Fatalf("status %d: expected classified error, got %v", tt.status, err)
		}
		if fe.Reason != tt.want {
			t.Errorf("status %d: expected reason %s, got %s", tt.status, tt.want, fe.Reason)
		}
	}
}

// TestStrategyAndMetrics verifies identity and the premium cost profile.
func TestStrategyAndMetrics(t *testing.T) {
	f := New(WithAPIKey("key"))
	if f.Strategy() != fetcher.StrategyProxy {
		t.Errorf("expected proxy-api, got %s", f.Strategy())
	}
	if m := f.Metrics(); m == nil || m.Amount <= 0 {
		t.Error("expected a positive per-call cost")
	}
}
