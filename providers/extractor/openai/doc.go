// Package openai implements the extraction adapter on top of an
// OpenAI-compatible chat-completions endpoint.
//
// Requires the OPENAI_API_KEY environment variable; the model is
// configurable via SCRAPEGO_EXTRACT_MODEL.
package openai
