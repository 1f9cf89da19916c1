package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLevel parses a log level string (case-insensitive) into a slog.Level.
// Unrecognized values return slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv reads the minimum log level from SCRAPEGO_LOG_LEVEL,
// falling back to LOG_LEVEL, defaulting to INFO when neither is set.
func LevelFromEnv() slog.Level {
	for _, key := range []string{"SCRAPEGO_LOG_LEVEL", "LOG_LEVEL"} {
		if v := os.Getenv(key); v != "" {
			return ParseLevel(v)
		}
	}
	return slog.LevelInfo
}
