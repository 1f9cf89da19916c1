package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/leofalp/scrapego/core/cost"
	"github.com/leofalp/scrapego/internal/utils"
	"github.com/leofalp/scrapego/providers/fetcher"
)

const (
	defaultBaseURL = "https://api.firecrawl.dev"
	envAPIKey      = "FIRECRAWL_API_KEY"
	// maxBodySize caps API response reads to prevent unbounded allocation.
	maxBodySize = 20 * 1024 * 1024
)

// Fetcher retrieves URLs through the Firecrawl managed scraping API, which
// renders pages and handles anti-bot defenses on the vendor's side. Bills
// per scrape, so the engine only reaches for it when the direct strategy is
// expected or known to fail. Requires the FIRECRAWL_API_KEY environment
// variable unless a key is supplied via [WithAPIKey].
type Fetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
	metrics cost.Metrics
}

// Option is a functional option for configuring the Firecrawl fetcher.
type Option func(*Fetcher)

// WithAPIKey sets the API key, overriding the FIRECRAWL_API_KEY environment
// variable.
func WithAPIKey(apiKey string) Option {
	return func(f *Fetcher) {
		f.apiKey = apiKey
	}
}

// WithBaseURL overrides the default API base URL, mainly useful in tests.
func WithBaseURL(baseURL string) Option {
	return func(f *Fetcher) {
		f.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// New returns a Firecrawl-backed fetcher. The API key is read from the
// FIRECRAWL_API_KEY environment variable when not set explicitly; use
// [Fetcher.Configured] to check whether the backend is usable.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		apiKey:  os.Getenv(envAPIKey),
		baseURL: defaultBaseURL,
		client:  &http.Client{},
		metrics: cost.Metrics{
			Amount:                  0.001,
			Currency:                "USD",
			CostDescription:         "per scrape (1 API credit)",
			Accuracy:                0.95,
			AverageDurationInMillis: 2500,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Ensure Fetcher implements fetcher.Fetcher at compile time.
var _ fetcher.Fetcher = (*Fetcher)(nil)

// Configured reports whether an API key is available.
func (f *Fetcher) Configured() bool {
	return f.apiKey != ""
}

// Strategy returns [fetcher.StrategyManaged].
func (f *Fetcher) Strategy() fetcher.Strategy {
	return fetcher.StrategyManaged
}

// Metrics returns the per-call cost profile of a managed scrape.
func (f *Fetcher) Metrics() *cost.Metrics {
	m := f.metrics
	return &m
}

// scrapeRequest is the Firecrawl /v2/scrape request body.
type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

// scrapeResponse is the subset of the Firecrawl /v2/scrape response the
// engine needs.
type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		HTML     string `json:"html"`
		RawHTML  string `json:"rawHtml,omitempty"`
		Metadata struct {
			StatusCode  int    `json:"statusCode"`
			ContentType string `json:"contentType,omitempty"`
			SourceURL   string `json:"sourceURL,omitempty"`
		} `json:"metadata"`
	} `json:"data"`
}

// apiError mirrors Firecrawl's error envelope on non-2xx responses.
type apiError struct {
	Error string `json:"error"`
}

// Fetch scrapes url through the Firecrawl API and returns the rendered HTML
// as a payload carrying the upstream site's status code and content type.
// API-level failures (bad key, quota, vendor error) come back as classified
// [fetcher.Error] values.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts fetcher.Options) (*fetcher.Payload, error) {
	if !f.Configured() {
		return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.ReasonAuth,
			fmt.Errorf("%s environment variable is not set", envAPIKey))
	}

	reqBody := scrapeRequest{
		URL:     url,
		Formats: []string{"html"},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.ReasonParse,
			fmt.Errorf("error marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", f.baseURL+"/v2/scrape", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.ReasonParse,
			fmt.Errorf("error creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.ReasonTimeout, err)
		}
		return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.ReasonNetwork, err)
	}
	defer utils.CloseWithLog(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.ReasonNetwork,
			fmt.Errorf("error reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.StatusReason(resp.StatusCode),
				fmt.Errorf("firecrawl API error (status %d): %s", resp.StatusCode, apiErr.Error))
		}
		return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.StatusReason(resp.StatusCode),
			fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, utils.TruncateString(string(body), 200)))
	}

	var apiResponse scrapeResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.ReasonParse,
			fmt.Errorf("error parsing response: %w", err))
	}
	if !apiResponse.Success {
		return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.ReasonStatus,
			fmt.Errorf("firecrawl scrape failed: %s", apiResponse.Error))
	}

	// The vendor surfaces the upstream site's status; treat its non-2xx
	// the same as a direct fetch would.
	upstreamStatus := apiResponse.Data.Metadata.StatusCode
	if upstreamStatus == 0 {
		upstreamStatus = http.StatusOK
	}
	if upstreamStatus < 200 || upstreamStatus >= 300 {
		return nil, fetcher.NewError(fetcher.StrategyManaged, fetcher.StatusReason(upstreamStatus),
			fmt.Errorf("upstream site returned status %d", upstreamStatus))
	}

	html := apiResponse.Data.HTML
	if html == "" {
		html = apiResponse.Data.RawHTML
	}

	contentType := apiResponse.Data.Metadata.ContentType
	if contentType == "" {
		contentType = "text/html; charset=utf-8"
	}

	finalURL := apiResponse.Data.Metadata.SourceURL
	if finalURL == "" {
		finalURL = url
	}

	return &fetcher.Payload{
		Body:        html,
		ContentType: contentType,
		StatusCode:  upstreamStatus,
		FinalURL:    finalURL,
	}, nil
}
