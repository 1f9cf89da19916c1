package scrape

import (
	"fmt"
	"strings"

	"github.com/leofalp/scrapego/providers/fetcher"
)

// AttemptFailure records the outcome of one failed backend attempt. The
// engine accumulates these across a request's plan; they are data, not
// control flow.
type AttemptFailure struct {
	// Strategy identifies the backend that was attempted.
	Strategy fetcher.Strategy

	// Reason classifies the failure.
	Reason fetcher.Reason

	// Err is the underlying cause, kept for logs and aggregation.
	Err error
}

// String renders the failure as "strategy: reason (cause)".
func (f AttemptFailure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", f.Strategy, f.Reason, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Strategy, f.Reason)
}

// ExhaustedError is the terminal failure of a retrieval request: every
// configured candidate strategy was attempted and failed, or none was
// configured at all. Attempts holds the per-strategy failures in the order
// they were attempted, so an operator can distinguish a setup problem
// (everything needs credentials) from a site problem (everything returned
// 500) from a budget problem (everything timed out).
type ExhaustedError struct {
	URL      string
	Attempts []AttemptFailure
}

// Error implements the error interface with a single human-readable message
// listing each attempted strategy and its specific failure reason.
func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("no retrieval strategy is configured for %s", e.URL)
	}

	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("all retrieval strategies failed for %s: %s", e.URL, strings.Join(parts, "; "))
}
