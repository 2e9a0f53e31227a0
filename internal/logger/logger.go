package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New constructs a logger for service honoring LOG_LEVEL and LOG_FORMAT.
func New(service string) *slog.Logger {
	return NewWriter(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")).With("service", service)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewWriter builds a logger on w. format "json" selects JSON output, anything
// else text.
func NewWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
