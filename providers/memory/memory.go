package memory

import (
	"context"
	"strings"

	"github.com/leofalp/scrapego/providers/fetcher"
)

// Entry is one learned site preference: requests whose URL starts with
// Prefix should try Strategy first. Note is free text for operators reading
// the backing table; the engine never interprets it.
type Entry struct {
	// Prefix is matched case-sensitively as a leading substring of
	// request URLs.
	Prefix string

	// Strategy is the last strategy known to succeed under this prefix.
	Strategy fetcher.Strategy

	// Note is informational only (e.g. when and how the preference was
	// learned).
	Note string
}

// Store is the strategy memory contract. It is an advisory cache of
// preferences, not ground truth: any entry can be removed without
// correctness loss, only efficiency loss.
//
// Implementations must serialize mutations so concurrent requests cannot
// corrupt the backing table.
type Store interface {
	// Lookup returns the entry whose prefix is the longest leading
	// substring of url, if any. Ties between equal-length prefixes go to
	// the most recently upserted entry. Absence of a match is not an
	// error.
	Lookup(ctx context.Context, url string) (Entry, bool)

	// Upsert records strategy as the preference for prefix, creating the
	// entry or overwriting an existing one in place. At most one entry
	// exists per distinct prefix string.
	Upsert(ctx context.Context, prefix string, strategy fetcher.Strategy, note string) error

	// All returns every stored entry in upsert order, oldest first.
	All(ctx context.Context) ([]Entry, error)
}

// BestMatch scans entries (assumed to be in upsert order, oldest first) and
// returns the longest-prefix match for url. Ties are resolved in favor of
// the later entry. Shared by Store implementations.
func BestMatch(entries []Entry, url string) (Entry, bool) {
	var best Entry
	found := false
	for _, e := range entries {
		if e.Prefix == "" || !strings.HasPrefix(url, e.Prefix) {
			continue
		}
		// >= so a later entry wins ties with an equal-length prefix.
		if !found || len(e.Prefix) >= len(best.Prefix) {
			best = e
			found = true
		}
	}
	return best, found
}
