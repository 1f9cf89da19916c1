package direct

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/leofalp/scrapego/core/cost"
	"github.com/leofalp/scrapego/internal/utils"
	"github.com/leofalp/scrapego/providers/fetcher"
)

const (
	// DefaultUserAgent is the default User-Agent header value.
	DefaultUserAgent = "scrapego/1.0"
	// DefaultMaxBodySize is the maximum response body size (10MB).
	DefaultMaxBodySize = 10 * 1024 * 1024
	// DialTimeout is the maximum time to wait for a TCP connection.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for the TLS handshake.
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is the maximum time to wait for response headers.
	ResponseHeaderTimeout = 10 * time.Second
	// IdleConnTimeout is the maximum time an idle connection can be reused.
	IdleConnTimeout = 90 * time.Second
	// maxRedirects bounds redirect following.
	maxRedirects = 10
)

// Fetcher retrieves URLs with a plain HTTP client from this process. It is
// the cheapest strategy and needs no credentials, so it is always
// configured. Protected sites may block it, hang it, or serve it a
// mis-rendered shell; the engine falls back to paid backends in that case.
type Fetcher struct {
	client    *http.Client
	userAgent string
	metrics   cost.Metrics
}

// Option is a functional option for configuring the direct fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default transport, mainly useful in tests.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent sets the default User-Agent header for all requests.
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		f.userAgent = userAgent
	}
}

// New returns a direct fetcher with the standard transport discipline:
// bounded dial, TLS-handshake, and response-header timeouts so a slow or
// unresponsive server cannot block an attempt beyond its budget, and at
// most ten redirects.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent: DefaultUserAgent,
		metrics: cost.Metrics{
			Amount:                  0.0,
			Currency:                "USD",
			CostDescription:         "local HTTP request",
			Accuracy:                0.85,
			AverageDurationInMillis: 350,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   DialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   TLSHandshakeTimeout,
				ResponseHeaderTimeout: ResponseHeaderTimeout,
				IdleConnTimeout:       IdleConnTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				ForceAttemptHTTP2:     true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (>%d)", maxRedirects)
				}
				return nil
			},
		}
	}
	return f
}

// Ensure Fetcher implements fetcher.Fetcher at compile time.
var _ fetcher.Fetcher = (*Fetcher)(nil)

// Strategy returns [fetcher.StrategyDirect].
func (f *Fetcher) Strategy() fetcher.Strategy {
	return fetcher.StrategyDirect
}

// Metrics returns the cost profile of a direct fetch (free, fast).
func (f *Fetcher) Metrics() *cost.Metrics {
	m := f.metrics
	return &m
}

// Fetch retrieves url and returns the raw payload. Non-2xx responses are
// returned as a classified [fetcher.Error] rather than a payload. The
// response body is capped at [DefaultMaxBodySize] (or opts.MaxBodySize) and
// read in a goroutine so that context cancellation is honored even during
// slow reads.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts fetcher.Options) (*fetcher.Payload, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fetcher.NewError(fetcher.StrategyDirect, fetcher.ReasonParse, fmt.Errorf("URL cannot be empty"))
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fetcher.NewError(fetcher.StrategyDirect, fetcher.ReasonParse, fmt.Errorf("failed to create request: %w", err))
	}

	userAgent := f.userAgent
	if opts.UserAgent != "" {
		userAgent = opts.UserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fetcher.NewError(fetcher.StrategyDirect, fetcher.ReasonTimeout, err)
		}
		return nil, fetcher.NewError(fetcher.StrategyDirect, fetcher.ReasonNetwork, err)
	}
	defer utils.CloseWithLog(resp.Body)

	maxBody := opts.MaxBodySize
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}
	limitedReader := io.LimitReader(resp.Body, maxBody)

	// Read in a goroutine so a stalled body read cannot outlive the
	// attempt's context.
	type readResult struct {
		data []byte
		err  error
	}
	readChan := make(chan readResult, 1)
	go func() {
		data, readErr := io.ReadAll(limitedReader)
		readChan <- readResult{data: data, err: readErr}
	}()

	var body []byte
	select {
	case <-ctx.Done():
		return nil, fetcher.NewError(fetcher.StrategyDirect, fetcher.ReasonTimeout,
			fmt.Errorf("timeout while reading response body: %w", ctx.Err()))
	case result := <-readChan:
		if result.err != nil {
			return nil, fetcher.NewError(fetcher.StrategyDirect, fetcher.ReasonNetwork,
				fmt.Errorf("failed to read response body: %w", result.err))
		}
		body = result.data
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fetcher.NewError(fetcher.StrategyDirect, fetcher.StatusReason(resp.StatusCode),
			fmt.Errorf("unexpected status code: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	return &fetcher.Payload{
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		FinalURL:    resp.Request.URL.String(),
	}, nil
}
