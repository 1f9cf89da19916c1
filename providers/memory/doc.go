// Package memory defines the strategy memory store: a small persisted
// mapping from URL prefix to the retrieval strategy last known to succeed
// there. The engine consults it to put the likely winner first in a
// request's candidate plan and records every new success back into it.
//
// The filestore subpackage persists entries to a hand-editable TSV file;
// inmemory keeps them in process memory.
package memory
