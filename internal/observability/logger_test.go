package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/hazard-zone-service/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_InstallsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json"})

	assert.Same(t, logger, slog.Default())
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewLogger_Levels(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for level, want := range tests {
		t.Run(level, func(t *testing.T) {
			logger := NewLogger(&config.Config{LogLevel: level, LogFormat: "text"})

			assert.True(t, logger.Enabled(context.Background(), want))
			assert.False(t, logger.Enabled(context.Background(), want-1))
		})
	}
}
