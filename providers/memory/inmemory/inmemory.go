package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/leofalp/scrapego/providers/fetcher"
	"github.com/leofalp/scrapego/providers/memory"
)

// Store is a simple, concurrency-safe in-memory strategy store. Preferences
// live only for the process lifetime, which makes it the default for
// embedded use and the standard fake in engine tests.
type Store struct {
	mu      sync.RWMutex
	entries []memory.Entry
}

// New returns a new, empty [Store] ready for immediate use.
func New() *Store {
	return &Store{}
}

// Ensure Store implements memory.Store at compile time.
var _ memory.Store = (*Store)(nil)

// Lookup returns the longest-prefix match for url, ties going to the most
// recently upserted entry.
func (s *Store) Lookup(ctx context.Context, url string) (memory.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return memory.BestMatch(s.entries, url)
}

// Upsert records strategy for prefix, overwriting an existing entry for the
// same prefix and moving it to the end as the most recent upsert.
func (s *Store) Upsert(ctx context.Context, prefix string, strategy fetcher.Strategy, note string) error {
	if prefix == "" {
		return fmt.Errorf("prefix cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Prefix != prefix {
			kept = append(kept, e)
		}
	}
	s.entries = append(kept, memory.Entry{Prefix: prefix, Strategy: strategy, Note: note})
	return nil
}

// All returns a copy of every stored entry in upsert order.
func (s *Store) All(ctx context.Context) ([]memory.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]memory.Entry, len(s.entries))
	copy(entries, s.entries)
	return entries, nil
}
