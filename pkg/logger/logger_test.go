package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shop/config"
	"shop/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	original := log
	t.Cleanup(func() { log = original })

	core, logs := observer.New(level)
	Set(zap.New(core))
	return logs
}

func TestNilLoggerSafety(t *testing.T) {
	original := log
	t.Cleanup(func() { log = original })
	log = nil

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")

	assert.NotNil(t, Get())
	assert.NotNil(t, With(zap.String("key", "value")))
	assert.NotNil(t, WithRequestID("req-1"))
	assert.NotNil(t, FromContext(context.Background()))
	assert.NoError(t, Sync())
}

func TestFromContext_CarriesRequestID(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	ctx := persistence.ContextWithRequestID(context.Background(), "req-42")
	FromContext(ctx).Info("order placed", zap.Int64("order_id", 7))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "order placed", entry.Message)
	assert.Equal(t, "req-42", entry.ContextMap()["request_id"])
	assert.Equal(t, int64(7), entry.ContextMap()["order_id"])
}

func TestUpdateLevel(t *testing.T) {
	require.NoError(t, Init(&config.LogConfig{Level: "debug", Output: "stdout"}, "development"))
	t.Cleanup(func() { _ = Sync() })

	assert.True(t, atomLevel.Enabled(zapcore.DebugLevel))
	UpdateLevel("warn")
	assert.False(t, atomLevel.Enabled(zapcore.InfoLevel))
	assert.True(t, atomLevel.Enabled(zapcore.WarnLevel))
	UpdateLevel("debug")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "shop.log")

	require.NoError(t, Init(&config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	}, "production"))

	for i := 0; i < 10; i++ {
		Info("file entry", zap.Int("entry", i))
	}
	require.NoError(t, Sync())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
}
