package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

// Default is the process-wide logger. Per-request loggers are derived from it
// with With and carried in the request context.
var Default = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

type contextKey struct{}

// SetLevel accepts slog level names (DEBUG, INFO, WARN, ERROR). Unknown
// names leave the level unchanged.
func SetLevel(name string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		Default.Warn("ignoring unknown log level", "level", name)
		return
	}
	level.Set(l)
}

func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the request logger stored in ctx, or Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default
}
