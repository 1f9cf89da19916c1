// Package scrape exposes the retrieval engine as a typed agent tool.
//
// The tool accepts a URL plus optional extraction and output controls, runs
// the engine's adaptive strategy plan, and returns the page text annotated
// with the strategy that produced it. Failures aggregate every attempted
// strategy so the model can reason about why a site was unreachable.
package scrape

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leofalp/scrapego/core/cost"
	"github.com/leofalp/scrapego/core/scrape"
	"github.com/leofalp/scrapego/providers/tool"
)

// ResultHandling selects what happens to the retrieved content.
const (
	// HandlingReturnOnly returns the (bounded) content inline. Default.
	HandlingReturnOnly = "return_only"

	// HandlingSaveResource persists the full, unbounded content to a file
	// and returns the path alongside a bounded inline preview.
	HandlingSaveResource = "save_resource"
)

// defaultPreviewChars bounds the inline preview when content is saved to a
// resource file and the caller gave no explicit bound.
const defaultPreviewChars = 2_000

// Input is the tool's parameter surface as seen by the language model.
type Input struct {
	URL             string `json:"url" jsonschema:"description=Absolute http(s) URL of the page to retrieve,required"`
	Extract         string `json:"extract,omitempty" jsonschema:"description=Optional natural-language question; when set the tool returns an answer derived from the page instead of the full text"`
	MaxChars        int    `json:"max_chars,omitempty" jsonschema:"description=Maximum number of characters to return; 0 means unbounded"`
	TimeoutSeconds  int    `json:"timeout_seconds,omitempty" jsonschema:"description=Per-strategy attempt timeout in seconds; 0 applies the engine default"`
	ForceRescrape   bool   `json:"force_rescrape,omitempty" jsonschema:"description=Ignore the remembered strategy preference for this site and rebuild the plan from scratch"`
	OnlyMainContent bool   `json:"only_main_content,omitempty" jsonschema:"description=Drop navigation and boilerplate regions and keep only the main article content"`
	ResultHandling  string `json:"result_handling,omitempty" jsonschema:"description=What to do with the content: return it inline or save it to a resource file and return the path,enum=return_only|save_resource"`
}

// Output is the tool's result surface.
type Output struct {
	Content      string `json:"content"`
	Strategy     string `json:"strategy"`
	Truncated    bool   `json:"truncated"`
	ResourcePath string `json:"resource_path,omitempty"`
}

type toolOptions struct {
	resourceDir string
}

// ToolOption configures [NewScrapeTool].
type ToolOption func(*toolOptions)

// WithResourceDir sets the directory where save_resource content is written.
// Defaults to the OS temporary directory.
func WithResourceDir(dir string) ToolOption {
	return func(o *toolOptions) {
		o.resourceDir = dir
	}
}

// NewScrapeTool wraps an engine as a registrable [tool.GenericTool] named
// "Scrape". The tool's advertised metrics reflect the direct-fetch common
// case; individual calls may be costlier when the plan escalates to a paid
// backend.
func NewScrapeTool(engine *scrape.Engine, options ...ToolOption) *tool.Tool[Input, Output] {
	opts := &toolOptions{resourceDir: os.TempDir()}
	for _, option := range options {
		option(opts)
	}

	return tool.NewTool("Scrape",
		func(ctx context.Context, input Input) (Output, error) {
			return run(ctx, engine, opts, input)
		},
		tool.WithDescription("Fetches a web page and returns its content as text, "+
			"automatically escalating from a plain HTTP request to scraping services "+
			"when a site blocks simple fetches. Supports answering a question about "+
			"the page instead of returning the full text."),
		tool.WithMetrics(cost.Metrics{
			Amount:                  0.0,
			Currency:                "USD",
			CostDescription:         "free for most sites; up to ~$0.01 per call when protected sites require a scraping backend",
			AverageDurationInMillis: 1_500,
		}),
	)
}

func run(ctx context.Context, engine *scrape.Engine, opts *toolOptions, input Input) (Output, error) {
	req := scrape.Request{
		URL:             input.URL,
		ExtractQuery:    input.Extract,
		MaxOutputChars:  input.MaxChars,
		ForceRefresh:    input.ForceRescrape,
		MainContentOnly: input.OnlyMainContent,
	}
	if input.TimeoutSeconds > 0 {
		req.PerAttemptTimeout = time.Duration(input.TimeoutSeconds) * time.Second
	}

	saveResource := input.ResultHandling == HandlingSaveResource
	if saveResource && input.MaxChars <= 0 {
		// Bound the inline copy: the full content lives in the file.
		req.MaxOutputChars = defaultPreviewChars
	}

	result, err := engine.Retrieve(ctx, req)
	if err != nil {
		return Output{}, fmt.Errorf("Failed to scrape %s: %w", input.URL, err)
	}

	out := Output{
		Content:   result.Text + "\n\nScraped using: " + string(result.Strategy),
		Strategy:  string(result.Strategy),
		Truncated: result.Truncated,
	}

	if saveResource {
		path, saveErr := saveContent(opts.resourceDir, input.URL, result.FullText)
		if saveErr != nil {
			return Output{}, fmt.Errorf("Failed to scrape %s: could not save resource: %w", input.URL, saveErr)
		}
		out.ResourcePath = path
	}

	return out, nil
}

// saveContent writes text to a new file under dir, named from the URL's
// host, and returns its path.
func saveContent(dir, rawURL, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, "scrape-"+sanitizeHost(rawURL)+"-*.md")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return filepath.Abs(f.Name())
}

// sanitizeHost reduces a URL to a filesystem-safe fragment of its host.
func sanitizeHost(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '-'
		}
	}, s)
	if s == "" {
		s = "page"
	}
	return s
}
