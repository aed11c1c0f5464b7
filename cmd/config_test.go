package cmd

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "enclose", configBaseName)
	assert.Equal(t, "enclose.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output.format", formatConfigKey)
	assert.Equal(t, "output.strict_exit", strictExitConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "hunks.parallel", parallelConfigKey)
	assert.Equal(t, "json", defaultFormat)
	assert.Equal(t, 1, defaultParallel)
	assert.Equal(t, "ENCLOSE", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.in, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "enclose.log")

	configureLogger(logPath, true)
	assert.True(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))

	configureLogger(logPath, false)
	assert.False(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))
}
