// Package scrape implements the adaptive retrieval engine: given a URL it
// builds an ordered plan over the configured backend strategies, informed
// by the strategy memory store and the active optimization goal, executes
// the plan strictly sequentially with per-attempt timeouts, normalizes the
// winning payload, optionally runs a targeted extraction pass, and learns
// the winning strategy for the site's URL prefix.
//
// The main entry point is [New]; one [Engine] serves any number of
// concurrent [Engine.Retrieve] calls.
package scrape
