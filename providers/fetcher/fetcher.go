package fetcher

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/leofalp/scrapego/core/cost"
)

// Strategy identifies one retrieval backend's method of fetching a URL.
// The set is fixed and ordered by canonical cost: a direct fetch is free,
// a managed scraping API bills per call, and a residential-proxy API is the
// most expensive option of the three.
type Strategy string

const (
	// StrategyDirect is a plain HTTP fetch from this process.
	StrategyDirect Strategy = "direct"

	// StrategyManaged is a managed scraping API that handles rendering and
	// anti-bot defenses on the vendor's side.
	StrategyManaged Strategy = "managed-api"

	// StrategyProxy is a scraping API routed through residential proxies,
	// used for sites that block datacenter traffic outright.
	StrategyProxy Strategy = "proxy-api"
)

// Strategies lists all known strategy identifiers in canonical cost order,
// cheapest first.
var Strategies = []Strategy{StrategyDirect, StrategyManaged, StrategyProxy}

// Valid reports whether s is one of the known strategy identifiers.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyDirect, StrategyManaged, StrategyProxy:
		return true
	}
	return false
}

// Rank returns the strategy's position in the canonical cost order.
// Unknown strategies rank last.
func (s Strategy) Rank() int {
	for i, known := range Strategies {
		if s == known {
			return i
		}
	}
	return len(Strategies)
}

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	return string(s)
}

// Payload is the raw result of one successful fetch. Ownership transfers to
// the normalizer immediately; no component retains a Payload after
// normalization.
type Payload struct {
	// Body is the response body as text (binary content is carried as-is).
	Body string

	// ContentType is the declared MIME type, possibly with parameters.
	ContentType string

	// StatusCode is the upstream HTTP status code.
	StatusCode int

	// FinalURL is the URL after following redirects, when known.
	FinalURL string
}

// Options carries per-request knobs common to all fetchers. The zero value
// is valid; fetchers apply their own defaults.
type Options struct {
	// UserAgent overrides the fetcher's default User-Agent header.
	UserAgent string

	// MaxBodySize caps the response body in bytes. Zero means the
	// fetcher's default cap.
	MaxBodySize int64
}

// Fetcher is the uniform contract every retrieval backend implements.
// Fetch either returns a 2xx Payload or an error; non-2xx responses are
// reported as a [*Error] with a classified [Reason] so the engine can record
// them without inspecting backend internals.
type Fetcher interface {
	// Strategy returns the identifier this backend serves.
	Strategy() Strategy

	// Fetch retrieves the URL. Implementations must honor ctx cancellation.
	Fetch(ctx context.Context, url string, opts Options) (*Payload, error)

	// Metrics returns the cost and latency profile of one call, used by
	// plan ordering. May return nil when unknown.
	Metrics() *cost.Metrics
}

// Reason classifies why a single fetch attempt failed.
type Reason string

const (
	ReasonNetwork     Reason = "network"
	ReasonAuth        Reason = "authentication"
	ReasonRateLimited Reason = "rate-limited"
	ReasonStatus      Reason = "non-success-status"
	ReasonTimeout     Reason = "timeout"
	ReasonParse       Reason = "parse-error"
)

// Error is a classified fetch failure. Backends return it so the engine can
// aggregate failures across strategies without string matching.
type Error struct {
	Strategy Strategy
	Reason   Reason
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Strategy) + ": " + string(e.Reason) + ": " + e.Err.Error()
	}
	return string(e.Strategy) + ": " + string(e.Reason)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err as a classified fetch failure for the given strategy.
func NewError(strategy Strategy, reason Reason, err error) *Error {
	return &Error{Strategy: strategy, Reason: reason, Err: err}
}

// Classify maps an arbitrary fetch error to a failure [Reason]. Errors
// already carrying a classification keep it; context deadline expiry and
// net timeouts map to timeout; everything else is treated as a network
// failure.
func Classify(err error) Reason {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonNetwork
}

// StatusReason maps a non-2xx HTTP status code to a failure [Reason]:
// 401/403 indicate an authentication problem, 429 a rate limit, anything
// else a plain non-success status.
func StatusReason(code int) Reason {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ReasonAuth
	case http.StatusTooManyRequests:
		return ReasonRateLimited
	default:
		return ReasonStatus
	}
}
