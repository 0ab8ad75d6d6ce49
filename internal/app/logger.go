package app

import (
	"io"
	"log/slog"
)

// Log formats accepted by newLogger.
const (
	FormatConsole = "console"
	FormatText    = "text"
	FormatJSON    = "json"
)

// newLogger creates and configures a new slog.Logger instance. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	switch formatStr {
	case FormatJSON:
		handler = slog.NewJSONHandler(outW, handlerOpts)
	case FormatText:
		handler = slog.NewTextHandler(outW, handlerOpts)
	default:
		handler = NewConsoleHandler(outW, &ConsoleOptions{Level: level})
	}

	return slog.New(handler)
}
