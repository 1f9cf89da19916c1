package scrape

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/leofalp/scrapego/core/normalize"
	"github.com/leofalp/scrapego/internal/utils"
	"github.com/leofalp/scrapego/providers/extractor"
	"github.com/leofalp/scrapego/providers/fetcher"
	"github.com/leofalp/scrapego/providers/memory"
	"github.com/leofalp/scrapego/providers/observability"
)

// DefaultAttemptTimeout bounds a single backend attempt when the request
// does not supply its own budget.
const DefaultAttemptTimeout = 30 * time.Second

// Engine is the strategy selector and orchestrator. It builds an ordered
// candidate plan from the memory store and the optimization goal, drives
// the backend fetchers strictly sequentially until one succeeds, normalizes
// the winning payload, optionally routes it through the extraction adapter,
// and records the winning strategy back into the memory store.
//
// Attempts are sequential by design: paid backends charge per call, so
// racing them would waste money on the common case where the first
// candidate succeeds.
type Engine struct {
	fetchers  map[fetcher.Strategy]fetcher.Fetcher
	memory    memory.Store
	extractor extractor.Extractor
	goal      Goal
	timeout   time.Duration
	obs       observability.Provider
}

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithFetchers registers retrieval backends. Only registered backends are
// considered configured; an unregistered strategy is never placed in a
// candidate plan. Registering a second fetcher for the same strategy
// replaces the first.
func WithFetchers(fetchers ...fetcher.Fetcher) Option {
	return func(e *Engine) {
		for _, f := range fetchers {
			if f != nil {
				e.fetchers[f.Strategy()] = f
			}
		}
	}
}

// WithMemory sets the strategy memory store consulted for cached
// preferences and updated on success.
func WithMemory(store memory.Store) Option {
	return func(e *Engine) {
		e.memory = store
	}
}

// WithExtractor sets the optional extraction adapter.
func WithExtractor(x extractor.Extractor) Option {
	return func(e *Engine) {
		e.extractor = x
	}
}

// WithGoal sets the optimization goal for plan ordering.
func WithGoal(goal Goal) Option {
	return func(e *Engine) {
		e.goal = goal
	}
}

// WithAttemptTimeout sets the default per-attempt timeout applied when a
// request does not carry its own.
func WithAttemptTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithObservability sets the observability provider used for spans,
// metrics, and logs. Without one the engine runs silently.
func WithObservability(obs observability.Provider) Option {
	return func(e *Engine) {
		e.obs = obs
	}
}

// New constructs an Engine. With no options it has no backends and every
// retrieval fails with an empty-plan [ExhaustedError]; callers are expected
// to register at least the direct fetcher.
func New(opts ...Option) *Engine {
	e := &Engine{
		fetchers: make(map[fetcher.Strategy]fetcher.Fetcher),
		goal:     GoalCost,
		timeout:  DefaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configured reports whether the given strategy has a registered backend.
func (e *Engine) Configured(s fetcher.Strategy) bool {
	_, ok := e.fetchers[s]
	return ok
}

// Goal returns the active optimization goal.
func (e *Engine) Goal() Goal {
	return e.goal
}

// Retrieve fetches the requested URL through the first succeeding strategy
// of the request's candidate plan and returns its bounded text form.
//
// Per-attempt failures never abort the plan; only exhaustion of every
// candidate is fatal, returned as an [*ExhaustedError]. On total failure
// the memory store is left unchanged: a prior cached preference is only
// ever overwritten by a new success.
func (e *Engine) Retrieve(ctx context.Context, req Request) (*Result, error) {
	parsed, err := validateURL(req.URL)
	if err != nil {
		return nil, err
	}

	var span observability.Span
	if e.obs != nil {
		ctx, span = e.obs.StartSpan(ctx, "scrape.retrieve",
			observability.String(observability.AttrScrapeURL, req.URL),
			observability.String(observability.AttrScrapeGoal, string(e.goal)),
		)
		defer span.End()
	}

	plan, cached := e.buildPlan(ctx, req.URL, req.ForceRefresh)
	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrScrapePlan, planString(plan)),
			observability.Bool(observability.AttrScrapeCached, cached),
		)
	}

	timeout := req.PerAttemptTimeout
	if timeout <= 0 {
		timeout = e.timeout
	}

	var attempts []AttemptFailure
	for _, strategy := range plan {
		f := e.fetchers[strategy]

		if span != nil {
			span.AddEvent(observability.EventAttemptStart,
				observability.Stringer(observability.AttrScrapeStrategy, strategy),
			)
		}

		timer := utils.NewTimer()
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		payload, fetchErr := f.Fetch(attemptCtx, req.URL, fetcher.Options{})
		cancel()
		timer.Stop()

		if e.obs != nil {
			e.obs.Counter("scrape.attempts").Add(ctx, 1,
				observability.Stringer(observability.AttrScrapeStrategy, strategy))
			e.obs.Histogram("scrape.attempt.duration_ms").Record(ctx,
				float64(timer.GetDuration().Milliseconds()),
				observability.Stringer(observability.AttrScrapeStrategy, strategy))
		}

		if fetchErr != nil {
			failure := AttemptFailure{
				Strategy: strategy,
				Reason:   fetcher.Classify(fetchErr),
				Err:      fetchErr,
			}
			attempts = append(attempts, failure)

			if span != nil {
				span.AddEvent(observability.EventAttemptFailure,
					observability.Stringer(observability.AttrScrapeStrategy, strategy),
					observability.String(observability.AttrScrapeFailureReason, string(failure.Reason)),
					observability.Error(fetchErr),
				)
			}

			// The caller-supplied top-level deadline bounds the whole
			// plan; once it is gone there is no budget left for the
			// remaining candidates.
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if span != nil {
			span.AddEvent(observability.EventAttemptSuccess,
				observability.Stringer(observability.AttrScrapeStrategy, strategy),
				observability.Int(observability.AttrHTTPStatusCode, payload.StatusCode),
			)
		}
		return e.finish(ctx, req, parsed, strategy, payload, span)
	}

	exhausted := &ExhaustedError{URL: req.URL, Attempts: attempts}
	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrScrapeAttempts, len(attempts)))
		span.RecordError(exhausted)
	}
	return nil, exhausted
}

// finish runs the success path for the winning payload: normalization,
// optional extraction, bounding, and the memory upsert.
func (e *Engine) finish(ctx context.Context, req Request, parsed *url.URL, strategy fetcher.Strategy, payload *fetcher.Payload, span observability.Span) (*Result, error) {
	norm := normalize.Normalize(payload, normalize.Options{
		MainContentOnly: req.MainContentOnly,
	})
	text := norm.Text

	if req.ExtractQuery != "" && e.extractor != nil {
		answer, err := e.extractor.Extract(ctx, text, req.ExtractQuery)
		if err != nil {
			// Extraction failure is non-fatal: the page content itself
			// was successfully obtained.
			if span != nil {
				span.AddEvent(observability.EventExtractionSkipped,
					observability.String(observability.AttrExtractError, err.Error()),
				)
			}
			if e.obs != nil {
				e.obs.Warn(ctx, "extraction failed, returning normalized text",
					observability.String(observability.AttrScrapeURL, req.URL),
					observability.Error(err),
				)
			}
		} else {
			text = answer
		}
	}

	bounded, truncated := normalize.Bound(text, req.MaxOutputChars)

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrScrapeContentType, payload.ContentType),
			observability.Int(observability.AttrScrapeContentLength, len(bounded)),
			observability.Bool(observability.AttrScrapeTruncated, truncated),
		)
	}

	// A cancelled request must not leave partial progress in the store.
	if e.memory != nil && ctx.Err() == nil {
		prefix := originPrefix(parsed)
		note := fmt.Sprintf("learned %s via %s", time.Now().Format("2006-01-02"), strategy)
		if err := e.memory.Upsert(ctx, prefix, strategy, note); err != nil {
			if e.obs != nil {
				e.obs.Warn(ctx, "failed to record strategy preference",
					observability.String(observability.AttrMemoryPrefix, prefix),
					observability.Error(err),
				)
			}
		} else if span != nil {
			span.AddEvent(observability.EventMemoryUpsert,
				observability.String(observability.AttrMemoryPrefix, prefix),
				observability.Stringer(observability.AttrMemoryStrategy, strategy),
			)
		}
	}

	return &Result{
		Text:      bounded,
		FullText:  norm.Text,
		Strategy:  strategy,
		Truncated: truncated,
	}, nil
}

func planString(plan []fetcher.Strategy) string {
	s := ""
	for i, p := range plan {
		if i > 0 {
			s += ","
		}
		s += string(p)
	}
	return s
}
