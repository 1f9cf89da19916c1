package zenrows

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/leofalp/scrapego/core/cost"
	"github.com/leofalp/scrapego/internal/utils"
	"github.com/leofalp/scrapego/providers/fetcher"
)

const (
	defaultBaseURL = "https://api.zenrows.com/v1/"
	envAPIKey      = "ZENROWS_API_KEY"
	// maxBodySize caps response reads to prevent unbounded allocation.
	maxBodySize = 20 * 1024 * 1024
)

// Fetcher retrieves URLs through the ZenRows residential-proxy scraping
// API. It is the most expensive strategy of the three and is reserved for
// sites that block both direct fetches and datacenter-hosted scraping
// services. Requires the ZENROWS_API_KEY environment variable unless a key
// is supplied via [WithAPIKey].
type Fetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
	metrics cost.Metrics
}

// Option is a functional option for configuring the ZenRows fetcher.
type Option func(*Fetcher)

// WithAPIKey sets the API key, overriding the ZENROWS_API_KEY environment
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

// New returns a ZenRows-backed fetcher. The API key is read from the
// ZENROWS_API_KEY environment variable when not set explicitly; use
// [Fetcher.Configured] to check whether the backend is usable.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		apiKey:  os.Getenv(envAPIKey),
		baseURL: defaultBaseURL,
		client:  &http.Client{},
		metrics: cost.Metrics{
			Amount:                  0.01,
			Currency:                "USD",
			CostDescription:         "per request with premium residential proxy",
			Accuracy:                0.97,
			AverageDurationInMillis: 4000,
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

// Strategy returns [fetcher.StrategyProxy].
func (f *Fetcher) Strategy() fetcher.Strategy {
	return fetcher.StrategyProxy
}

// Metrics returns the per-call cost profile of a proxied scrape.
func (f *Fetcher) Metrics() *cost.Metrics {
	m := f.metrics
	return &m
}

// Fetch retrieves target through the ZenRows proxy API. The proxied
// response body passes through unchanged with the upstream content type;
// API-level failures (bad key, quota, blocked request) come back as
// classified [fetcher.Error] values.
func (f *Fetcher) Fetch(ctx context.Context, target string, opts fetcher.Options) (*fetcher.Payload, error) {
	if !f.Configured() {
		return nil, fetcher.NewError(fetcher.StrategyProxy, fetcher.ReasonAuth,
			fmt.Errorf("%s environment variable is not set", envAPIKey))
	}

	params := url.Values{}
	params.Set("apikey", f.apiKey)
	params.Set("url", target)
	params.Set("premium_proxy", "true")

	req, err := http.NewRequestWithContext(ctx, "GET", f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fetcher.NewError(fetcher.StrategyProxy, fetcher.ReasonParse,
			fmt.Errorf("error creating request: %w", err))
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fetcher.NewError(fetcher.StrategyProxy, fetcher.ReasonTimeout, err)
		}
		return nil, fetcher.NewError(fetcher.StrategyProxy, fetcher.ReasonNetwork, err)
	}
	defer utils.CloseWithLog(resp.Body)

	maxBody := opts.MaxBodySize
	if maxBody <= 0 {
		maxBody = maxBodySize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fetcher.NewError(fetcher.StrategyProxy, fetcher.ReasonNetwork,
			fmt.Errorf("error reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fetcher.NewError(fetcher.StrategyProxy, fetcher.StatusReason(resp.StatusCode),
			fmt.Errorf("zenrows API returned status %d: %s", resp.StatusCode, utils.TruncateString(string(body), 200)))
	}

	return &fetcher.Payload{
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		FinalURL:    target,
	}, nil
}
