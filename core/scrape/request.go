package scrape

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/leofalp/scrapego/providers/fetcher"
)

// Goal selects what plan construction optimizes for when ordering candidate
// strategies.
type Goal string

const (
	// GoalCost tries cheaper backends before more expensive ones:
	// direct, then managed-api, then proxy-api.
	GoalCost Goal = "cost"

	// GoalLatency tries the managed API first and skips the direct fetch
	// unless it is the cached preference: a direct fetch against a
	// protected site can hang or be silently mis-rendered before failing
	// cleanly.
	GoalLatency Goal = "latency"
)

// ParseGoal parses a goal string (case-insensitive). Unrecognized values
// fall back to [GoalCost].
func ParseGoal(s string) Goal {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "latency", "speed":
		return GoalLatency
	default:
		return GoalCost
	}
}

// Request describes one retrieval. URL is the only required field.
type Request struct {
	// URL must parse as an absolute http(s) URI; the request is rejected
	// before any network activity otherwise.
	URL string

	// ExtractQuery, when set and an extraction adapter is configured,
	// replaces the returned text with a derived answer to this question.
	ExtractQuery string

	// MaxOutputChars bounds the returned text. Zero means unbounded.
	MaxOutputChars int

	// PerAttemptTimeout bounds each backend attempt. Zero applies the
	// engine default.
	PerAttemptTimeout time.Duration

	// ForceRefresh bypasses the memory store's cached preference for
	// ordering. Fallback across strategies still applies.
	ForceRefresh bool

	// MainContentOnly hints the normalizer to discard navigation and
	// boilerplate regions of markup.
	MainContentOnly bool
}

// Result is the outcome of a successful retrieval. It is request-scoped:
// created once per winning attempt, never mutated.
type Result struct {
	// Text is the normalized (and possibly extracted) text, bounded to
	// MaxOutputChars when one was set.
	Text string

	// FullText is the unbounded normalized page text, available for
	// callers that persist the complete content as a resource.
	FullText string

	// Strategy identifies the backend that served the request.
	Strategy fetcher.Strategy

	// Truncated reports whether Text was cut to the requested bound.
	Truncated bool
}

// validateURL rejects anything that is not an absolute http(s) URI.
func validateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid url %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid url %q: missing host", raw)
	}
	return parsed, nil
}

// originPrefix derives the memory-store prefix a success is registered
// under: the URL's origin with a trailing slash, so all pages of the same
// site share one learned preference.
func originPrefix(u *url.URL) string {
	return u.Scheme + "://" + u.Host + "/"
}
