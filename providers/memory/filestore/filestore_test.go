package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/leofalp/scrapego/providers/fetcher"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "strategies.tsv"))
}

// TestUpsertAndLookup verifies the basic learn-then-recall cycle.
func TestUpsertAndLookup(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)

	if err := store.Upsert(ctx, "https://example.com/", fetcher.StrategyManaged, "learned 2026-08-23"); err != nil {
		t.Fatal(err)
	}

	entry, ok := store.Lookup(ctx, "https://example.com/some/page")
	if !ok {
		t.Fatal("expected a match")
	}
	if entry.Strategy != fetcher.StrategyManaged {
		t.Errorf("expected managed-api, got %s", entry.Strategy)
	}
	if entry.Note != "learned 2026-08-23" {
		t.Errorf("unexpected note %q", entry.Note)
	}

	if _, ok := store.Lookup(ctx, "https://other.com/"); ok {
		t.Error("expected no match for an unrelated URL")
	}
}

// TestPersistence verifies the table survives a process restart, modeled as
// a second Store over the same file.
func TestPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "strategies.tsv")

	first := New(path)
	if err := first.Upsert(ctx, "https://example.com/", fetcher.StrategyProxy, "note"); err != nil {
		t.Fatal(err)
	}

	second := New(path)
	entry, ok := second.Lookup(ctx, "https://example.com/page")
	if !ok || entry.Strategy != fetcher.StrategyProxy {
		t.Errorf("expected persisted entry, got %+v (ok=%v)", entry, ok)
	}
}

// TestUpsertOverwrites verifies at most one entry exists per prefix.
func TestUpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)

	if err := store.Upsert(ctx, "https://example.com/", fetcher.StrategyDirect, ""); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ctx, "https://example.com/", fetcher.StrategyManaged, ""); err != nil {
		t.Fatal(err)
	}

	entries, err := store.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Strategy != fetcher.StrategyManaged {
		t.Errorf("expected overwrite to managed-api, got %s", entries[0].Strategy)
	}
}

// TestLongestPrefixWins verifies specificity: a deeper prefix beats the
// site-wide one.
func TestLongestPrefixWins(t *testing.T) {
	ctx := context.Background()
	store := tempStore(t)

	if err := store.Upsert(ctx, "https://example.com/", fetcher.StrategyDirect, ""); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ctx, "https://example.com/protected/", fetcher.StrategyProxy, ""); err != nil {
		t.Fatal(err)
	}

	entry, ok := store.Lookup(ctx, "https://example.com/protected/report")
	if !ok || entry.Strategy != fetcher.StrategyProxy {
		t.Errorf("expected deeper prefix to win, got %+v", entry)
	}

	entry, ok = store.Lookup(ctx, "https://example.com/public")
	if !ok || entry.Strategy != fetcher.StrategyDirect {
		t.Errorf("expected site-wide prefix for public page, got %+v", entry)
	}
}

// TestHandEditedTable verifies that an operator-written file loads, with
// comments, blank lines, and malformed rows skipped rather than fatal.
func TestHandEditedTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "strategies.tsv")

	content := "# hand-written table\n" +
		"\n" +
		"https://a.example.com/\tmanaged-api\tsome note\n" +
		"malformed row without tabs\n" +
		"https://b.example.com/\tdirect\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store := New(path)
	entries, err := store.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (malformed row skipped), got %d", len(entries))
	}

	entry, ok := store.Lookup(ctx, "https://b.example.com/x")
	if !ok || entry.Strategy != fetcher.StrategyDirect {
		t.Errorf("expected direct for b.example.com, got %+v", entry)
	}
}

// TestMissingFileReadsEmpty verifies a missing table is an empty table, not
// an error.
func TestMissingFileReadsEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "does", "not", "exist.tsv"))

	if _, ok := store.Lookup(context.Background(), "https://example.com/"); ok {
		t.Error("expected miss on missing file")
	}
	entries, err := store.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty table, got %d entries", len(entries))
	}
}

// TestPersistedFormat verifies the on-disk shape: header comment plus one
// tab-separated row per entry, with no temp files left behind.
func TestPersistedFormat(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "strategies.tsv")
	store := New(path)

	if err := store.Upsert(ctx, "https://example.com/", fetcher.StrategyManaged, "note with\ttab and\nnewline"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	if !strings.HasPrefix(text, "#") {
		t.Errorf("expected header comment, got %q", text)
	}
	if !strings.Contains(text, "https://example.com/\tmanaged-api\t") {
		t.Errorf("expected tab-separated row, got %q", text)
	}
	if strings.Contains(text, "tab and\nnewline") {
		t.Error("expected note sanitized of control characters")
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("expected only the table file in %s, found %d files", dir, len(files))
	}
}

// TestConcurrentUpsertAndLookup hammers the store from many goroutines,
// mixing colliding and distinct prefixes with interleaved lookups, then
// checks the table holds exactly one entry per prefix and reloads cleanly.
func TestConcurrentUpsertAndLookup(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "strategies.tsv")
	store := New(path)

	const workers = 8
	const rounds = 20
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			distinct := fmt.Sprintf("https://site%d.example.com/", w)
			for i := 0; i < rounds; i++ {
				if err := store.Upsert(ctx, "https://shared.example.com/", fetcher.StrategyManaged, ""); err != nil {
					t.Error(err)
				}
				if err := store.Upsert(ctx, distinct, fetcher.StrategyProxy, ""); err != nil {
					t.Error(err)
				}
				store.Lookup(ctx, distinct+"page")
			}
		}(w)
	}
	wg.Wait()

	entries, err := store.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != workers+1 {
		t.Fatalf("expected %d entries (one per prefix), got %d", workers+1, len(entries))
	}

	// A fresh store over the same file must parse every row back.
	reloaded, err := New(path).All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded) != workers+1 {
		t.Errorf("expected %d entries after reload, got %d", workers+1, len(reloaded))
	}
}

// TestUpsertEmptyPrefix verifies the empty-prefix guard.
func TestUpsertEmptyPrefix(t *testing.T) {
	store := tempStore(t)
	if err := store.Upsert(context.Background(), "", fetcher.StrategyDirect, ""); err == nil {
		t.Error("expected error for empty prefix")
	}
}

// TestUpsertCancelledContext verifies a cancelled request does not write.
func TestUpsertCancelledContext(t *testing.T) {
	store := tempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Upsert(ctx, "https://example.com/", fetcher.StrategyDirect, ""); err == nil {
		t.Error("expected error for cancelled context")
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("expected no file written after cancelled upsert")
	}
}
