// Package firecrawl implements the managed-api retrieval strategy using the
// Firecrawl scraping service. The vendor renders the page and defeats
// anti-bot measures server-side, returning clean HTML billed per call.
//
// Requires the FIRECRAWL_API_KEY environment variable.
package firecrawl
