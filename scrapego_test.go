package scrapego

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leofalp/scrapego/core/scrape"
	"github.com/leofalp/scrapego/providers/fetcher"
	"github.com/leofalp/scrapego/providers/memory/inmemory"
)

// TestNewDefaultEngine verifies environment-driven assembly: direct is
// always registered, paid backends only when their keys are present.
func TestNewDefaultEngine(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "")
	t.Setenv("ZENROWS_API_KEY", "")
	t.Setenv("SCRAPEGO_MEMORY_FILE", filepath.Join(t.TempDir(), "strategies.tsv"))

	engine := NewDefaultEngine()
	if !engine.Configured(fetcher.StrategyDirect) {
		t.Error("expected direct always configured")
	}
	if engine.Configured(fetcher.StrategyManaged) {
		t.Error("expected managed-api unconfigured without a key")
	}
	if engine.Configured(fetcher.StrategyProxy) {
		t.Error("expected proxy-api unconfigured without a key")
	}
}

// TestNewDefaultEngine_KeysEnablePaidBackends verifies key-driven
// registration and goal selection from the environment.
func TestNewDefaultEngine_KeysEnablePaidBackends(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "fc-key")
	t.Setenv("ZENROWS_API_KEY", "zr-key")
	t.Setenv("SCRAPEGO_OPTIMIZE", "latency")
	t.Setenv("SCRAPEGO_MEMORY_FILE", filepath.Join(t.TempDir(), "strategies.tsv"))

	engine := NewDefaultEngine()
	if !engine.Configured(fetcher.StrategyManaged) {
		t.Error("expected managed-api configured with a key")
	}
	if !engine.Configured(fetcher.StrategyProxy) {
		t.Error("expected proxy-api configured with a key")
	}
	if engine.Goal() != scrape.GoalLatency {
		t.Errorf("expected latency goal from env, got %s", engine.Goal())
	}
}

// TestNewDefaultEngine_OptionsOverride verifies caller options win over the
// environment defaults.
func TestNewDefaultEngine_OptionsOverride(t *testing.T) {
	t.Setenv("SCRAPEGO_OPTIMIZE", "latency")
	t.Setenv("SCRAPEGO_MEMORY_FILE", filepath.Join(t.TempDir(), "strategies.tsv"))

	engine := NewDefaultEngine(
		scrape.WithGoal(scrape.GoalCost),
		scrape.WithMemory(inmemory.New()),
	)
	if engine.Goal() != scrape.GoalCost {
		t.Errorf("expected caller option to override env, got %s", engine.Goal())
	}
}

// TestDefaultMemoryPath verifies the env override.
func TestDefaultMemoryPath(t *testing.T) {
	t.Setenv("SCRAPEGO_MEMORY_FILE", "/tmp/custom.tsv")
	if got := DefaultMemoryPath(); got != "/tmp/custom.tsv" {
		t.Errorf("expected env override, got %q", got)
	}
}

// TestDefaultMemoryPath_NoHome verifies the temp-dir fallback when the home
// directory cannot be resolved, rather than a working-directory-relative
// path.
func TestDefaultMemoryPath_NoHome(t *testing.T) {
	t.Setenv("SCRAPEGO_MEMORY_FILE", "")
	t.Setenv("HOME", "")

	got := DefaultMemoryPath()
	if !filepath.IsAbs(got) {
		t.Fatalf("expected absolute path, got %q", got)
	}
	if !strings.HasPrefix(got, os.TempDir()) {
		t.Errorf("expected temp-dir fallback, got %q", got)
	}
}
