// Package filestore provides a [memory.Store] persisted to a small TSV
// file: one row per URL prefix with its preferred strategy and an optional
// note. The file is human-readable and hand-editable; the engine treats it
// as an advisory cache, so any row can be deleted safely.
package filestore
