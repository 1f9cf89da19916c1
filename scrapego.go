// Package scrapego turns web pages into clean, bounded text for language
// model consumption. It retrieves pages through an adaptive plan of
// strategies, starting with a free direct HTTP fetch and escalating to
// managed scraping and residential-proxy backends when a site blocks simple
// requests, and it remembers which strategy worked for each site so later
// requests start with the known-good backend.
//
// The core engine lives in core/scrape; backends live under
// providers/fetcher. This package offers a batteries-included constructor
// wired from environment variables:
//
//	engine := scrapego.NewDefaultEngine()
//	result, err := engine.Retrieve(ctx, scrape.Request{URL: "https://example.com"})
//
// Set FIRECRAWL_API_KEY and ZENROWS_API_KEY to enable the paid backends,
// OPENAI_API_KEY to enable question extraction, and SCRAPEGO_OPTIMIZE to
// "latency" to prefer fast backends over cheap ones.
package scrapego

import (
	"os"
	"path/filepath"

	"github.com/leofalp/scrapego/core/scrape"
	"github.com/leofalp/scrapego/providers/extractor"
	"github.com/leofalp/scrapego/providers/extractor/openai"
	"github.com/leofalp/scrapego/providers/fetcher"
	"github.com/leofalp/scrapego/providers/fetcher/direct"
	"github.com/leofalp/scrapego/providers/fetcher/firecrawl"
	"github.com/leofalp/scrapego/providers/fetcher/zenrows"
	"github.com/leofalp/scrapego/providers/memory/filestore"
	"github.com/leofalp/scrapego/providers/observability/slogobs"
)

// DefaultMemoryPath returns where the strategy memory file lives:
// $SCRAPEGO_MEMORY_FILE when set, otherwise ~/.scrapego/strategies.tsv.
// When the home directory cannot be resolved the file is kept under the
// system temp directory instead of a path relative to the working directory.
func DefaultMemoryPath() string {
	if env := os.Getenv("SCRAPEGO_MEMORY_FILE"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "scrapego", "strategies.tsv")
	}
	return filepath.Join(home, ".scrapego", "strategies.tsv")
}

// NewDefaultEngine assembles an engine from the environment. The direct
// fetcher is always registered; the Firecrawl and ZenRows backends only when
// their API keys are present, and the OpenAI extractor likewise. Additional
// options are applied last and override the defaults.
func NewDefaultEngine(opts ...scrape.Option) *scrape.Engine {
	fetchers := []fetcher.Fetcher{direct.New()}
	if fc := firecrawl.New(); fc.Configured() {
		fetchers = append(fetchers, fc)
	}
	if zr := zenrows.New(); zr.Configured() {
		fetchers = append(fetchers, zr)
	}

	var llm extractor.Extractor
	if oa := openai.New(); oa.Configured() {
		llm = oa
	}

	defaults := []scrape.Option{
		scrape.WithFetchers(fetchers...),
		scrape.WithMemory(filestore.New(DefaultMemoryPath())),
		scrape.WithExtractor(llm),
		scrape.WithGoal(scrape.ParseGoal(os.Getenv("SCRAPEGO_OPTIMIZE"))),
		scrape.WithObservability(slogobs.New()),
	}

	return scrape.New(append(defaults, opts...)...)
}
