package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_DefaultsToProcessLogger(t *testing.T) {
	assert.Same(t, Default, FromContext(context.Background()))
}

func TestFromContext_ReturnsRequestLogger(t *testing.T) {
	logger := Default.With(slog.String("requestID", "abc"))
	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestSetLevel(t *testing.T) {
	defer level.Set(slog.LevelInfo)

	SetLevel("debug")
	assert.Equal(t, slog.LevelDebug, level.Level())

	SetLevel("not-a-level")
	assert.Equal(t, slog.LevelDebug, level.Level())
}
