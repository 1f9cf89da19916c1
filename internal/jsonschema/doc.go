// Package jsonschema derives JSON Schemas from Go types via reflection.
// The tool layer uses it to advertise strongly-typed tool parameters to
// language models without hand-written schema definitions.
package jsonschema
