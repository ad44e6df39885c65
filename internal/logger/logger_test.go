package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.name, slog.LevelInfo), tt.name)
	}
}

func TestInitSetsDefault(t *testing.T) {
	Init(true, "warn", "")
	require.NotNil(t, Log)
	assert.Same(t, Log, slog.Default())
	assert.False(t, Log.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, Log.Enabled(t.Context(), slog.LevelWarn))
}
