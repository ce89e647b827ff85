package logging

import (
	"io"
	"log/slog"
	"strings"
)

// BuildLogger returns a logger writing to w at the named level
// (debug, info, warn, error). Unknown levels fall back to info.
func BuildLogger(w io.Writer, level string, json bool) *slog.Logger {
	ops := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}
	if json {
		return slog.New(slog.NewJSONHandler(w, ops))
	}
	return slog.New(slog.NewTextHandler(w, ops))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
