package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/leofalp/scrapego/internal/utils"
	"github.com/leofalp/scrapego/providers/extractor"
	"github.com/leofalp/scrapego/providers/observability"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	envAPIKey      = "OPENAI_API_KEY"
	envModel       = "SCRAPEGO_EXTRACT_MODEL"

	// maxInputChars caps the page text sent to the model so a large page
	// cannot blow the context window or the bill.
	maxInputChars = 48_000
)

const systemPrompt = `You answer questions about a web page using only the page content provided. ` +
	`Reply with the answer alone, concise and directly usable. ` +
	`If the content does not contain the answer, say so briefly.`

// Extractor answers extraction queries via an OpenAI-compatible
// chat-completions endpoint. Requires the OPENAI_API_KEY environment
// variable unless a key is supplied via [WithAPIKey]; the model defaults to
// gpt-4o-mini and can be overridden with SCRAPEGO_EXTRACT_MODEL.
type Extractor struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// Option is a functional option for configuring the extractor.
type Option func(*Extractor)

// WithAPIKey sets the API key, overriding the OPENAI_API_KEY environment
// variable.
func WithAPIKey(apiKey string) Option {
	return func(e *Extractor) {
		e.apiKey = apiKey
	}
}

// WithBaseURL overrides the default API base URL, useful for
// OpenAI-compatible gateways and tests.
func WithBaseURL(baseURL string) Option {
	return func(e *Extractor) {
		e.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithModel sets the model identifier used for extraction.
func WithModel(model string) Option {
	return func(e *Extractor) {
		e.model = model
	}
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) {
		e.client = client
	}
}

// New returns a chat-completions-backed extractor configured from the
// environment and the given options. Use [Extractor.Configured] to check
// whether a key is available before wiring it into the engine.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		apiKey:  os.Getenv(envAPIKey),
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{},
	}
	if m := os.Getenv(envModel); m != "" {
		e.model = m
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ensure Extractor implements extractor.Extractor at compile time.
var _ extractor.Extractor = (*Extractor)(nil)

// Configured reports whether an API key is available.
func (e *Extractor) Configured() bool {
	return e.apiKey != ""
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat-completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends the page text and query to the model and returns its
// answer. The page text is truncated to a model-safe cap before sending.
func (e *Extractor) Extract(ctx context.Context, text string, query string) (string, error) {
	if !e.Configured() {
		return "", fmt.Errorf("%s environment variable is not set", envAPIKey)
	}
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("extraction query cannot be empty")
	}

	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent("extract.request",
			observability.String(observability.AttrExtractModel, e.model),
			observability.String(observability.AttrExtractQuery, query),
		)
	}

	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	reqBody := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Question: %s\n\nPage content:\n%s", query, text)},
		},
	}

	_, resp, err := utils.DoPostSync[chatResponse](ctx, e.client, e.baseURL+"/chat/completions", e.apiKey, reqBody)
	if err != nil {
		return "", fmt.Errorf("extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("extraction response contained no choices")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("extraction response was empty")
	}
	return answer, nil
}
