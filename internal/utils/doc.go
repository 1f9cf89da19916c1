// Package utils provides shared low-level helpers used throughout the
// scrapego internals: a synchronous JSON-over-HTTP helper for talking to
// scraping and extraction APIs, string truncation and serialisation
// utilities, a pointer helper, and a simple elapsed-time timer.
//
// Key entry points: [DoPostSync] for synchronous JSON round-trips,
// [CloseWithLog] for deferred body cleanup, [TruncateString] for log-safe
// previews, and [Timer] for measuring latency.
package utils
