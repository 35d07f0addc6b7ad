package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	Format string     // "json" or "text"
	Level  slog.Level // Log level
	Output io.Writer  // Defaults to stderr
}

// NewLogger creates a new slog.Logger. The CLI prints results on stdout,
// so log records go to stderr unless Output says otherwise.
func NewLogger(config LoggerConfig) *slog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: config.Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Key = "timestamp"
			}
			return a
		},
	}

	var handler slog.Handler
	if config.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
