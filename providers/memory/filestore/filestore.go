package filestore

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/leofalp/scrapego/providers/fetcher"
	"github.com/leofalp/scrapego/providers/memory"
)

// header is written at the top of every persisted table so operators
// finding the file know what it is and that rows are safe to edit or
// delete by hand.
const header = `# scrapego strategy memory
# One row per learned site preference: prefix <TAB> strategy <TAB> note
# Rows are an advisory cache; deleting any row only costs re-learning.
`

// Store is a file-backed [memory.Store]. The whole table is read into
// memory on first access and cached; every upsert rewrites the file
// atomically (temp file + rename). A single mutex serializes the
// load-modify-persist cycle, which is sufficient for the low write volume
// of one write per newly-learned site.
type Store struct {
	path string

	mu      sync.Mutex
	loaded  bool
	entries []memory.Entry
}

// New returns a store persisting to the given file path. The file and its
// parent directory are created on first upsert; a missing file reads as an
// empty table.
func New(path string) *Store {
	return &Store{path: path}
}

// Ensure Store implements memory.Store at compile time.
var _ memory.Store = (*Store)(nil)

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the longest-prefix match for url, ties going to the most
// recently upserted entry.
func (s *Store) Lookup(ctx context.Context, url string) (memory.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		// A corrupt or unreadable table degrades to a cache miss.
		return memory.Entry{}, false
	}
	return memory.BestMatch(s.entries, url)
}

// Upsert records strategy for prefix and persists the whole table back
// atomically. An existing entry for the same prefix is overwritten and
// moved to the end so it wins ties as the most recent upsert.
func (s *Store) Upsert(ctx context.Context, prefix string, strategy fetcher.Strategy, note string) error {
	if prefix == "" {
		return fmt.Errorf("prefix cannot be empty")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return err
	}

	entry := memory.Entry{Prefix: prefix, Strategy: strategy, Note: sanitize(note)}

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Prefix != prefix {
			kept = append(kept, e)
		}
	}
	s.entries = append(kept, entry)

	return s.persistLocked()
}

// All returns a copy of every stored entry in upsert order.
func (s *Store) All(ctx context.Context) ([]memory.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	entries := make([]memory.Entry, len(s.entries))
	copy(entries, s.entries)
	return entries, nil
}

// loadLocked reads the table from disk once per process. Callers must hold
// the mutex.
func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to open strategy memory: %w", err)
	}
	defer file.Close()

	var entries []memory.Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 2 {
			// Malformed hand-edited rows are skipped, not fatal.
			continue
		}
		entry := memory.Entry{
			Prefix:   fields[0],
			Strategy: fetcher.Strategy(fields[1]),
		}
		if len(fields) == 3 {
			entry.Note = fields[2]
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read strategy memory: %w", err)
	}

	s.entries = entries
	s.loaded = true
	return nil
}

// persistLocked writes the whole table to a temp file in the same directory
// and renames it over the target, so readers never observe a partial table.
// Callers must hold the mutex.
func (s *Store) persistLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create memory directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".strategies-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp table: %w", err)
	}
	tmpName := tmp.Name()

	var sb strings.Builder
	sb.WriteString(header)
	for _, e := range s.entries {
		sb.WriteString(e.Prefix)
		sb.WriteByte('\t')
		sb.WriteString(string(e.Strategy))
		sb.WriteByte('\t')
		sb.WriteString(e.Note)
		sb.WriteByte('\n')
	}

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write strategy memory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close strategy memory: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace strategy memory: %w", err)
	}
	return nil
}

// sanitize keeps a note single-line and tab-free so it cannot break the
// table format.
func sanitize(note string) string {
	note = strings.ReplaceAll(note, "\t", " ")
	note = strings.ReplaceAll(note, "\n", " ")
	return strings.TrimSpace(note)
}
