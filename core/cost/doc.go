// Package cost defines the cost and performance metadata attached to
// retrieval backends and tools. The scrape engine uses these metrics to
// order candidate strategies under the configured optimization goal.
package cost
