package slogobs

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Option is a functional option for configuring the Observer.
type Option func(*config)

// config holds the configuration for creating an Observer.
type config struct {
	level  slog.Level
	output io.Writer
	json   bool
	logger *slog.Logger // when set, used directly instead of building a handler
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the output writer for logs.
func WithOutput(output io.Writer) Option {
	return func(c *config) {
		c.output = output
	}
}

// WithJSON switches output to JSON format, suitable for log aggregation.
func WithJSON() Option {
	return func(c *config) {
		c.json = true
	}
}

// WithLogger uses an existing slog.Logger instead of building a handler.
// This option takes precedence over level/output/format options.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func defaultConfig() *config {
	return &config{
		level:  LevelFromEnv(),
		output: os.Stderr,
		json:   formatFromEnv() == "json",
	}
}

func applyOptions(opts ...Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// formatFromEnv reads SCRAPEGO_LOG_FORMAT, falling back to LOG_FORMAT.
// Recognized values are "text" (default) and "json".
func formatFromEnv() string {
	for _, key := range []string{"SCRAPEGO_LOG_FORMAT", "LOG_FORMAT"} {
		if v := strings.TrimSpace(strings.ToLower(os.Getenv(key))); v != "" {
			return v
		}
	}
	return "text"
}
