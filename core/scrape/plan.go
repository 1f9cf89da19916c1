package scrape

import (
	"context"
	"sort"

	"github.com/leofalp/scrapego/providers/fetcher"
)

// buildPlan constructs the ordered candidate list for one request. The
// cached preference (if any, and if that backend is configured) comes
// first; the remaining configured strategies follow in goal order; the
// list is deduplicated so the preference is not repeated in its natural
// position. An unconfigured cached preference is treated as a cache miss.
func (e *Engine) buildPlan(ctx context.Context, rawURL string, forceRefresh bool) (plan []fetcher.Strategy, cached bool) {
	var preferred fetcher.Strategy
	if !forceRefresh && e.memory != nil {
		if entry, ok := e.memory.Lookup(ctx, rawURL); ok {
			if _, configured := e.fetchers[entry.Strategy]; configured {
				preferred = entry.Strategy
				cached = true
			}
		}
	}

	base := e.goalOrder(preferred)

	if cached {
		plan = append(plan, preferred)
	}
	for _, s := range base {
		if cached && s == preferred {
			continue
		}
		plan = append(plan, s)
	}
	return plan, cached
}

// goalOrder returns the configured strategies in the order the active goal
// prescribes, before the cached preference is applied.
func (e *Engine) goalOrder(preferred fetcher.Strategy) []fetcher.Strategy {
	configured := make([]fetcher.Strategy, 0, len(e.fetchers))
	for s := range e.fetchers {
		configured = append(configured, s)
	}

	switch e.goal {
	case GoalLatency:
		// Direct fetches against protected sites hang or mis-render
		// before failing cleanly, so the latency goal leaves direct out
		// of the plan entirely unless it is the cached preference.
		ordered := make([]fetcher.Strategy, 0, len(configured))
		for _, s := range configured {
			if s == fetcher.StrategyDirect && s != preferred {
				continue
			}
			ordered = append(ordered, s)
		}
		// With no paid backend configured the filter would empty the plan;
		// a slow direct attempt beats a guaranteed failure.
		if len(ordered) == 0 {
			if _, ok := e.fetchers[fetcher.StrategyDirect]; ok {
				ordered = append(ordered, fetcher.StrategyDirect)
			}
		}
		sort.Slice(ordered, func(i, j int) bool {
			return latencyRank(ordered[i]) < latencyRank(ordered[j])
		})
		return ordered

	default: // GoalCost
		sort.Slice(configured, func(i, j int) bool {
			ci, cj := e.callCost(configured[i]), e.callCost(configured[j])
			if ci != cj {
				return ci < cj
			}
			return configured[i].Rank() < configured[j].Rank()
		})
		return configured
	}
}

// callCost reads the per-call cost from the backend's metrics, falling back
// to the canonical rank when a backend does not report metrics.
func (e *Engine) callCost(s fetcher.Strategy) float64 {
	if f, ok := e.fetchers[s]; ok {
		if m := f.Metrics(); m != nil {
			return m.Amount
		}
	}
	return float64(s.Rank())
}

// latencyRank orders strategies for the latency goal: the managed API is
// the fastest to either succeed or fail cleanly, the proxy API follows,
// and direct (when admitted as a cached preference) keeps its slot ahead of
// both via buildPlan rather than here.
func latencyRank(s fetcher.Strategy) int {
	switch s {
	case fetcher.StrategyManaged:
		return 0
	case fetcher.StrategyProxy:
		return 1
	default:
		return 2
	}
}
