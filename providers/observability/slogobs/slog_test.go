package slogobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/scrapego/providers/observability"
)

func debugObserver() (*Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(WithOutput(&buf), WithLevel(slog.LevelDebug)), &buf
}

// TestParseLevel verifies level parsing and its default.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// TestSpanLifecycle verifies span start, events, attributes, and end are all
// routed to the logger, and that the span is reachable from the context.
func TestSpanLifecycle(t *testing.T) {
	obs, buf := debugObserver()

	ctx, span := obs.StartSpan(context.Background(), "scrape.retrieve",
		observability.String("scrape.url", "https://example.com/"),
	)
	if observability.SpanFromContext(ctx) != span {
		t.Error("expected span attached to context")
	}

	span.AddEvent("scrape.attempt.start", observability.String("scrape.strategy", "direct"))
	span.SetAttributes(observability.Bool("scrape.truncated", false))
	span.End()

	out := buf.String()
	for _, fragment := range []string{"span started", "scrape.attempt.start", "span ended", "https://example.com/", "duration"} {
		if !strings.Contains(out, fragment) {
			t.Errorf("expected log output to contain %q, got:\n%s", fragment, out)
		}
	}
}

// TestSpanError verifies RecordError marks the span failed and ends it at
// warn level.
func TestSpanError(t *testing.T) {
	var buf bytes.Buffer
	// Warn-level logger: only the error paths should produce output.
	obs := New(WithOutput(&buf), WithLevel(slog.LevelWarn))

	_, span := obs.StartSpan(context.Background(), "scrape.retrieve")
	span.RecordError(errors.New("all strategies failed"))
	span.End()

	out := buf.String()
	if !strings.Contains(out, "span error") || !strings.Contains(out, "all strategies failed") {
		t.Errorf("expected error logged, got:\n%s", out)
	}
	if !strings.Contains(out, "span ended") {
		t.Errorf("expected failed span to end at warn level, got:\n%s", out)
	}
}

// TestMetrics verifies counters accumulate and instruments are reused by
// name.
func TestMetrics(t *testing.T) {
	obs, buf := debugObserver()
	ctx := context.Background()

	c := obs.Counter("scrape.attempts")
	c.Add(ctx, 1)
	c.Add(ctx, 2)

	if obs.Counter("scrape.attempts") != c {
		t.Error("expected same counter instance by name")
	}
	if !strings.Contains(buf.String(), "total=3") {
		t.Errorf("expected accumulated total, got:\n%s", buf.String())
	}

	h := obs.Histogram("scrape.attempt.duration_ms")
	h.Record(ctx, 12.5)
	if obs.Histogram("scrape.attempt.duration_ms") != h {
		t.Error("expected same histogram instance by name")
	}
}

// TestLogLevels verifies the level filter.
func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	obs := New(WithOutput(&buf), WithLevel(slog.LevelWarn))
	ctx := context.Background()

	obs.Debug(ctx, "debug message")
	obs.Info(ctx, "info message")
	obs.Warn(ctx, "warn message")
	obs.Error(ctx, "error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("expected low levels filtered, got:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("expected warn and error logged, got:\n%s", out)
	}
}

// TestWithJSON verifies the JSON handler option.
func TestWithJSON(t *testing.T) {
	var buf bytes.Buffer
	obs := New(WithOutput(&buf), WithJSON(), WithLevel(slog.LevelInfo))

	obs.Info(context.Background(), "hello", observability.String("k", "v"))
	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
}

// TestSpanFromContext_Missing verifies the nil contract for bare contexts.
func TestSpanFromContext_Missing(t *testing.T) {
	if observability.SpanFromContext(context.Background()) != nil {
		t.Error("expected nil span for bare context")
	}
}
