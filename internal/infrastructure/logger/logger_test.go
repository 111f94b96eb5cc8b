package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("nil config falls back to defaults", func(t *testing.T) {
		log, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("writes json to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stockroom.log")
		log, err := New(&Config{
			Level:       "info",
			Format:      "json",
			Output:      path,
			Service:     "stockroom",
			Environment: "test",
		})
		require.NoError(t, err)

		log.Info("Stock adjustment recorded")
		require.NoError(t, log.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"Stock adjustment recorded"`)
		assert.Contains(t, string(data), `"service":"stockroom"`)
		assert.Contains(t, string(data), `"env":"test"`)
	})

	t.Run("unwritable file path fails", func(t *testing.T) {
		_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open log file")
	})

	t.Run("tees extra cores", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		log, err := New(&Config{Level: "warn", Format: "json", Output: "stderr"}, core)
		require.NoError(t, err)

		log.Warn("Low stock")
		require.Len(t, recorded.All(), 1)
		assert.Equal(t, "Low stock", recorded.All()[0].Message)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}
