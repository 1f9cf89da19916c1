package slogobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leofalp/scrapego/providers/observability"
)

// Observer implements observability.Provider using Go's standard library slog.
// It routes tracing, metrics, and log events through a structured slog.Logger,
// making it suitable for lightweight observability without external services.
type Observer struct {
	logger  *slog.Logger
	metrics *metricsStore
}

// New creates a new slog-based observer with functional options.
// If no options are provided, configuration is taken from the environment
// (SCRAPEGO_LOG_FORMAT and SCRAPEGO_LOG_LEVEL), defaulting to text format
// at INFO level.
//
// Example usage:
//
//	// Use defaults from environment
//	observer := slogobs.New()
//
//	// Explicit configuration
//	observer := slogobs.New(
//	    slogobs.WithJSON(),
//	    slogobs.WithLevel(slog.LevelDebug),
//	)
func New(opts ...Option) *Observer {
	cfg := applyOptions(opts...)

	logger := cfg.logger
	if logger == nil {
		handlerOpts := &slog.HandlerOptions{Level: cfg.level}
		if cfg.json {
			logger = slog.New(slog.NewJSONHandler(cfg.output, handlerOpts))
		} else {
			logger = slog.New(slog.NewTextHandler(cfg.output, handlerOpts))
		}
	}

	return &Observer{
		logger:  logger,
		metrics: newMetricsStore(logger),
	}
}

// Ensure Observer implements observability.Provider.
var _ observability.Provider = (*Observer)(nil)

// --- TRACING ---

// StartSpan begins a new named span and emits a debug log event at its start.
// The returned span logs its elapsed duration on End. The context is returned
// with the span attached so downstream components can enrich it via
// [observability.SpanFromContext].
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	span := &slogSpan{
		name:      name,
		startTime: time.Now(),
		logger:    o.logger,
		attrs:     attrs,
	}

	o.logger.LogAttrs(ctx, slog.LevelDebug, "span started", toSlogAttrs(name, "span.start", attrs)...)

	return observability.ContextWithSpan(ctx, span), span
}

type slogSpan struct {
	name      string
	startTime time.Time
	logger    *slog.Logger
	mu        sync.Mutex
	attrs     []observability.Attribute
	status    observability.StatusCode
	statusMsg string
}

// End completes the span, logging the elapsed time together with all
// accumulated attributes. Spans that recorded an error or were marked
// StatusError end at warn level, all others at debug.
func (s *slogSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := slog.LevelDebug
	if s.status == observability.StatusError {
		level = slog.LevelWarn
	}

	logAttrs := toSlogAttrs(s.name, "span.end", s.attrs)
	logAttrs = append(logAttrs, slog.Duration("duration", time.Since(s.startTime)))
	if s.statusMsg != "" {
		logAttrs = append(logAttrs, slog.String("status", s.statusMsg))
	}
	s.logger.LogAttrs(context.Background(), level, "span ended", logAttrs...)
}

// SetAttributes appends the provided attributes to the span's attribute list.
func (s *slogSpan) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

// SetStatus records the span's terminal status, surfaced when the span ends.
func (s *slogSpan) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
	s.statusMsg = description
}

// RecordError logs the error immediately and marks the span as failed.
func (s *slogSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.status = observability.StatusError
	s.mu.Unlock()

	s.logger.LogAttrs(context.Background(), slog.LevelWarn, "span error",
		slog.String("span", s.name),
		slog.String("error", err.Error()),
	)
}

// AddEvent logs a point-in-time event within the span at debug level.
func (s *slogSpan) AddEvent(name string, attrs ...observability.Attribute) {
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, name, toSlogAttrs(s.name, name, attrs)...)
}

// --- METRICS ---

// metricsStore keeps named counters and histograms. Values are accumulated
// in memory and mirrored to the logger at debug level; this is deliberately
// simple since scrapego runs as a single process.
type metricsStore struct {
	mu         sync.Mutex
	logger     *slog.Logger
	counters   map[string]*slogCounter
	histograms map[string]*slogHistogram
}

func newMetricsStore(logger *slog.Logger) *metricsStore {
	return &metricsStore{
		logger:     logger,
		counters:   make(map[string]*slogCounter),
		histograms: make(map[string]*slogHistogram),
	}
}

// Counter creates or retrieves the named counter.
func (o *Observer) Counter(name string) observability.Counter {
	o.metrics.mu.Lock()
	defer o.metrics.mu.Unlock()
	c, ok := o.metrics.counters[name]
	if !ok {
		c = &slogCounter{name: name, logger: o.metrics.logger}
		o.metrics.counters[name] = c
	}
	return c
}

// Histogram creates or retrieves the named histogram.
func (o *Observer) Histogram(name string) observability.Histogram {
	o.metrics.mu.Lock()
	defer o.metrics.mu.Unlock()
	h, ok := o.metrics.histograms[name]
	if !ok {
		h = &slogHistogram{name: name, logger: o.metrics.logger}
		o.metrics.histograms[name] = h
	}
	return h
}

type slogCounter struct {
	name   string
	logger *slog.Logger
	mu     sync.Mutex
	total  int64
}

func (c *slogCounter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.mu.Lock()
	c.total += value
	total := c.total
	c.mu.Unlock()

	logAttrs := toSlogAttrs(c.name, "metric.counter", attrs)
	logAttrs = append(logAttrs, slog.Int64("value", value), slog.Int64("total", total))
	c.logger.LogAttrs(ctx, slog.LevelDebug, "counter", logAttrs...)
}

type slogHistogram struct {
	name   string
	logger *slog.Logger
	mu     sync.Mutex
	count  int64
	sum    float64
}

func (h *slogHistogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	h.mu.Lock()
	h.count++
	h.sum += value
	h.mu.Unlock()

	logAttrs := toSlogAttrs(h.name, "metric.histogram", attrs)
	logAttrs = append(logAttrs, slog.Float64("value", value))
	h.logger.LogAttrs(ctx, slog.LevelDebug, "histogram", logAttrs...)
}

// --- LOGGING ---

// Debug logs a message at debug level.
func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelDebug, msg, attrs)
}

// Info logs a message at info level.
func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelInfo, msg, attrs)
}

// Warn logs a message at warn level.
func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelWarn, msg, attrs)
}

// Error logs a message at error level.
func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelError, msg, attrs)
}

func (o *Observer) log(ctx context.Context, level slog.Level, msg string, attrs []observability.Attribute) {
	logAttrs := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	o.logger.LogAttrs(ctx, level, msg, logAttrs...)
}

func toSlogAttrs(span, event string, attrs []observability.Attribute) []slog.Attr {
	logAttrs := make([]slog.Attr, 0, len(attrs)+2)
	logAttrs = append(logAttrs,
		slog.String("span", span),
		slog.String("event", event),
	)
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	return logAttrs
}
