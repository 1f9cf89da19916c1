// Package fetcher defines the uniform contract implemented by every
// retrieval backend: the [Fetcher] interface, the fixed [Strategy]
// identifier set, the raw [Payload] a successful fetch produces, and the
// classified failure taxonomy ([Reason], [Error]) the engine aggregates
// when a request exhausts its candidate strategies.
//
// Concrete backends live in the direct, firecrawl, and zenrows subpackages.
package fetcher
