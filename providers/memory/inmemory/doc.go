// Package inmemory provides a concurrency-safe, slice-backed implementation
// of the [memory.Store] interface for strategy preferences that do not need
// to survive a process restart. The main entry point is [New], which
// returns a ready-to-use [Store].
package inmemory
