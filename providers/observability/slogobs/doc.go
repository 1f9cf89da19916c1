// Package slogobs provides an [observability.Provider] implementation backed
// by the standard library's log/slog. Spans, metrics, and log messages are
// all rendered as structured log records, which keeps the engine observable
// in a single process without any external collector.
//
// The main entry point is [New], configured via functional options or the
// SCRAPEGO_LOG_LEVEL and SCRAPEGO_LOG_FORMAT environment variables.
package slogobs
