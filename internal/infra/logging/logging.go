package logging

import (
	"log/slog"
	"os"
)

// New builds the process logger and installs it as the slog default.
func New(logFormat, logLevel string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}

	var handler slog.Handler

	switch logFormat {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	case "json":
		fallthrough
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)

	slog.SetDefault(logger)

	return logger
}

func parseLevel(logLevel string) slog.Level {
	switch logLevel {
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
