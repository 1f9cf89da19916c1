package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leofalp/scrapego/core/cost"
	"github.com/leofalp/scrapego/core/parse"
	"github.com/leofalp/scrapego/internal/jsonschema"
	"github.com/leofalp/scrapego/providers/observability"
)

// ToolDescription is the metadata used to advertise a tool to an agent:
// name, human-readable description, the JSON schema of its parameters, and
// optional cost metrics.
type ToolDescription struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Metrics     *cost.Metrics
}

// Tool represents a typed, callable tool that can be registered with an
// agent runtime. It binds a name and description to a strongly-typed Go
// function and automatically derives JSON schemas for both input (I) and
// output (O) via reflection. Use [NewTool] to construct a Tool; the
// [GenericTool] interface abstracts over the type parameters for storage
// and dispatch.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Output      *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
	// Metrics contains optional cost and performance metrics for this
	// tool execution.
	Metrics *cost.Metrics
}

// GenericTool is the provider-agnostic interface for all tools.
type GenericTool interface {
	// ToolInfo returns the metadata used to advertise this tool.
	ToolInfo() ToolDescription

	// Call invokes the tool with a JSON-encoded input string and returns
	// a JSON-encoded output string. Returns an error if parsing or
	// execution fails.
	Call(ctx context.Context, inputJSON string) (string, error)

	// GetMetrics returns the cost and performance metrics associated
	// with this tool, or nil if none were configured.
	GetMetrics() *cost.Metrics
}

// funcToolOptions holds optional configuration for a tool created via [NewTool].
type funcToolOptions struct {
	Description string
	Metrics     *cost.Metrics
}

// WithDescription sets a human-readable description for the tool.
// Agent runtimes surface this description to the language model to help it
// decide when and how to invoke the tool.
func WithDescription(description string) func(tool *funcToolOptions) {
	return func(o *funcToolOptions) {
		o.Description = description
	}
}

// WithMetrics sets the metrics (cost, accuracy, speed) for executing this tool.
func WithMetrics(metrics cost.Metrics) func(tool *funcToolOptions) {
	return func(o *funcToolOptions) {
		o.Metrics = &metrics
	}
}

// NewTool constructs a new [Tool] with the given name and handler function.
// JSON schemas for the input type I and output type O are derived
// automatically via reflection.
//
// Example:
//
//	scrapeTool := tool.NewTool("Scrape", scrapeFunc,
//	    tool.WithDescription("Fetches a URL and returns its content as text."),
//	    tool.WithMetrics(cost.Metrics{Amount: 0.001, Currency: "USD"}),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(tool *funcToolOptions)) *Tool[I, O] {
	toolOptions := &funcToolOptions{}
	for _, option := range options {
		option(toolOptions)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: toolOptions.Description,
		Parameters:  jsonschema.GenerateJSONSchema[I](),
		Output:      jsonschema.GenerateJSONSchema[O](),
		Function:    function,
		Metrics:     toolOptions.Metrics,
	}
}

// ToolInfo returns the [ToolDescription] used to advertise this tool.
func (t *Tool[I, O]) ToolInfo() ToolDescription {
	return ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
		Metrics:     t.Metrics,
	}
}

// Call invokes the tool's underlying function with the given JSON-encoded
// input. It deserializes inputJSON into the tool's input type I (tolerating
// almost-JSON via [parse.ParseStringAs]), executes the function, and
// returns the result serialized as JSON. Span events are emitted at the
// start and end of execution when a span is present in ctx.
func (t *Tool[I, O]) Call(ctx context.Context, inputJSON string) (string, error) {
	span := observability.SpanFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, inputJSON),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd)
	}

	start := time.Now()

	parsedInput, err := parse.ParseStringAs[I](inputJSON)
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetAttributes(
				observability.String(observability.AttrToolError, err.Error()),
			)
		}
		return "", err
	}

	output, err := t.Function(ctx, parsedInput)
	duration := time.Since(start)

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetAttributes(
				observability.String(observability.AttrToolError, err.Error()),
				observability.Duration(observability.AttrToolDuration, duration),
			)
		}
		return "", err
	}

	outputBytes, err := json.Marshal(output)
	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		return "", err
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrToolOutput, string(outputBytes)),
			observability.Duration(observability.AttrToolDuration, duration),
		)
	}

	return string(outputBytes), nil
}

// GetMetrics returns the metrics (cost and performance data) for this tool, if any.
func (t *Tool[I, O]) GetMetrics() *cost.Metrics {
	return t.Metrics
}
