package direct

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leofalp/scrapego/providers/fetcher"
)

// TestFetch_Basic exercises the happy path: the default User-Agent is sent
// and the payload carries body, content type, and status.
func TestFetch_Basic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != DefaultUserAgent {
			t.Errorf("expected User-Agent %q, got %q", DefaultUserAgent, ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	payload, err := New().Fetch(context.Background(), server.URL, fetcher.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.StatusCode != 200 {
		t.Errorf("expected status 200, got %d", payload.StatusCode)
	}
	if payload.ContentType != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", payload.ContentType)
	}
	if !strings.Contains(payload.Body, "ok") {
		t.Errorf("unexpected body %q", payload.Body)
	}
}

// TestFetch_UserAgentOverride verifies the per-request option wins.
func TestFetch_UserAgentOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "custom-agent/2.0" {
			t.Errorf("expected overridden User-Agent, got %q", ua)
		}
	}))
	defer server.Close()

	if _, err := New().Fetch(context.Background(), server.URL, fetcher.Options{UserAgent: "custom-agent/2.0"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestFetch_StatusClassification verifies non-2xx responses come back as
// classified errors, not payloads.
func TestFetch_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   fetcher.Reason
	}{
		{403, fetcher.ReasonAuth},
		{429, fetcher.ReasonRateLimited},
		{500, fetcher.ReasonStatus},
		{404, fetcher.ReasonStatus},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		_, err := New().Fetch(context.Background(), server.URL, fetcher.Options{})
		server.Close()

		var fe *fetcher.Error
		if !errors.As(err, &fe) {
			t.Fatalf("status %d: expected classified error, got %v", tt.status, err)
		}
		if fe.Reason != tt.want {
			t.Errorf("status %d: expected reason %s, got %s", tt.status, tt.want, fe.Reason)
		}
		if fe.Strategy != fetcher.StrategyDirect {
			t.Errorf("expected direct strategy on error, got %s", fe.Strategy)
		}
	}
}

// TestFetch_ContextTimeout verifies a slow server is cut off with a timeout
// classification.
func TestFetch_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New().Fetch(ctx, server.URL, fetcher.Options{})
	var fe *fetcher.Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected classified error, got %v", err)
	}
	if fe.Reason != fetcher.ReasonTimeout {
		t.Errorf("expected timeout reason, got %s", fe.Reason)
	}
}

// TestFetch_BodySizeCap verifies the response body is capped.
func TestFetch_BodySizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer server.Close()

	payload, err := New().Fetch(context.Background(), server.URL, fetcher.Options{MaxBodySize: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.Body) != 100 {
		t.Errorf("expected body capped at 100 bytes, got %d", len(payload.Body))
	}
}

// TestFetch_FollowsRedirects verifies redirects resolve and FinalURL points
// at the destination.
func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("landed"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	payload, err := New().Fetch(context.Background(), server.URL+"/start", fetcher.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(payload.FinalURL, "/final") {
		t.Errorf("expected final URL after redirect, got %q", payload.FinalURL)
	}
	if payload.Body != "landed" {
		t.Errorf("unexpected body %q", payload.Body)
	}
}

// TestFetch_EmptyURL verifies the guard before any network activity.
func TestFetch_EmptyURL(t *testing.T) {
	_, err := New().Fetch(context.Background(), "  ", fetcher.Options{})
	var fe *fetcher.Error
	if !errors.As(err, &fe) || fe.Reason != fetcher.ReasonParse {
		t.Errorf("expected parse-error for empty URL, got %v", err)
	}
}

// TestMetrics verifies the direct fetch advertises itself as free.
func TestMetrics(t *testing.T) {
	m := New().Metrics()
	if m == nil {
		t.Fatal("expected metrics")
	}
	if m.Amount != 0 {
		t.Errorf("expected zero cost, got %f", m.Amount)
	}
	if New().Strategy() != fetcher.StrategyDirect {
		t.Error("expected direct strategy")
	}
}
