// Package tool provides the typed tool layer an agent runtime consumes:
// strongly-typed [Tool] values with reflection-derived parameter schemas,
// the provider-agnostic [GenericTool] interface, and a thread-safe
// [Catalog] registry.
//
// The scrape subpackage binds the retrieval engine to this layer.
package tool
