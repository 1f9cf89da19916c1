package observability

// Semantic conventions for observability attributes. These constants define
// standard attribute and event names so different components of the engine
// report consistently.

// --- Scrape request attributes ---

const (
	// AttrScrapeURL is the URL being retrieved.
	AttrScrapeURL = "scrape.url"

	// AttrScrapeStrategy is the strategy identifier of the current attempt.
	AttrScrapeStrategy = "scrape.strategy"

	// AttrScrapeGoal is the active optimization goal (cost or latency).
	AttrScrapeGoal = "scrape.goal"

	// AttrScrapePlan is the ordered candidate list for a request.
	AttrScrapePlan = "scrape.plan"

	// AttrScrapeAttempts is the number of backend attempts made.
	AttrScrapeAttempts = "scrape.attempts"

	// AttrScrapeFailureReason is the classified reason of a failed attempt.
	AttrScrapeFailureReason = "scrape.failure.reason"

	// AttrScrapeCached indicates whether the winning strategy came from the
	// memory store's cached preference.
	AttrScrapeCached = "scrape.cached_preference"

	// AttrScrapeTruncated indicates whether the returned text was cut to
	// the requested bound.
	AttrScrapeTruncated = "scrape.truncated"

	// AttrScrapeContentType is the declared content type of the winning payload.
	AttrScrapeContentType = "scrape.content_type"

	// AttrScrapeContentLength is the size of the normalized text in characters.
	AttrScrapeContentLength = "scrape.content_length"
)

// --- Extraction attributes ---

const (
	// AttrExtractQuery is the natural-language extraction query.
	AttrExtractQuery = "extract.query"

	// AttrExtractModel is the model used by the extraction backend.
	AttrExtractModel = "extract.model"

	// AttrExtractError is the error message of a non-fatal extraction failure.
	AttrExtractError = "extract.error"
)

// --- Memory store attributes ---

const (
	// AttrMemoryPrefix is the URL prefix of a memory entry.
	AttrMemoryPrefix = "memory.prefix"

	// AttrMemoryStrategy is the preferred strategy recorded for a prefix.
	AttrMemoryStrategy = "memory.strategy"

	// AttrMemoryEntries is the total number of entries in the store.
	AttrMemoryEntries = "memory.entries"
)

// --- Tool execution attributes ---

const (
	// AttrToolName is the name of the tool being executed.
	AttrToolName = "tool.name"

	// AttrToolInput is the tool input (serialized).
	AttrToolInput = "tool.input"

	// AttrToolOutput is the tool output (serialized).
	AttrToolOutput = "tool.output"

	// AttrToolDuration is the execution duration.
	AttrToolDuration = "tool.duration"

	// AttrToolError is the error message if tool execution failed.
	AttrToolError = "tool.error"
)

// --- HTTP attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.).
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code.
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL.
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes.
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes.
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- Event names ---

const (
	// EventAttemptStart marks the beginning of one backend attempt.
	EventAttemptStart = "scrape.attempt.start"

	// EventAttemptFailure marks a recorded, non-fatal attempt failure.
	EventAttemptFailure = "scrape.attempt.failure"

	// EventAttemptSuccess marks the winning attempt of a request.
	EventAttemptSuccess = "scrape.attempt.success"

	// EventMemoryUpsert marks a preference write to the memory store.
	EventMemoryUpsert = "memory.upsert"

	// EventExtractionSkipped marks an extraction failure that degraded to
	// returning the normalized text.
	EventExtractionSkipped = "extract.skipped"

	// EventToolExecutionStart marks the beginning of a tool call.
	EventToolExecutionStart = "tool.execution.start"

	// EventToolExecutionEnd marks the end of a tool call.
	EventToolExecutionEnd = "tool.execution.end"
)
