// Package extractor defines the optional extraction adapter: a secondary
// pass that answers a specific natural-language question about already
// retrieved content instead of returning the whole page. The engine treats
// every extraction failure as non-fatal and falls back to the normalized
// text, since the page itself was successfully obtained.
//
// The openai subpackage provides a chat-completions-backed implementation.
package extractor

import "context"

// Extractor derives a short answer to query from already-normalized page
// text using a language model.
type Extractor interface {
	// Extract returns the derived answer. Errors are advisory: callers
	// are expected to degrade to the un-extracted text.
	Extract(ctx context.Context, text string, query string) (string, error)
}
