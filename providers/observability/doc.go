// Package observability defines the tracing, metrics, and logging interfaces
// used throughout scrapego, together with attribute helpers and semantic
// convention constants. Components obtain the current span from the context
// via [SpanFromContext] and degrade to no-ops when none is present, so
// observability never changes control flow.
//
// The slogobs subpackage provides a ready-to-use implementation backed by
// the standard library's log/slog.
package observability
