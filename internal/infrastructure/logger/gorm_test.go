package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observedGormLogger(level zapcore.Level, gormLevel gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return NewGormLogger(zap.New(core), gormLevel, opts...), recorded
}

func stockQuery() (string, int64) {
	return `SELECT * FROM "inventory" WHERE product_id = 1 AND warehouse_id = 2 FOR UPDATE`, 1
}

func TestGormLogger_Options(t *testing.T) {
	gormLog, _ := observedGormLogger(zapcore.InfoLevel, gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
		WithSQL(false),
	)

	assert.Equal(t, 500*time.Millisecond, gormLog.slowThreshold)
	assert.False(t, gormLog.ignoreRecordNotFoundError)
	assert.False(t, gormLog.logSQL)
}

func TestGormLogger_LogModeCopies(t *testing.T) {
	gormLog, _ := observedGormLogger(zapcore.InfoLevel, gormlogger.Info)

	changed, ok := gormLog.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, changed.logLevel)
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
}

func TestGormLogger_LevelGating(t *testing.T) {
	gormLog, recorded := observedGormLogger(zapcore.DebugLevel, gormlogger.Warn)
	ctx := context.Background()

	gormLog.Info(ctx, "migrating %s", "inventory")
	gormLog.Warn(ctx, "deprecated %d", 1)
	gormLog.Error(ctx, "broken")

	logs := recorded.All()
	require.Len(t, logs, 2)
	assert.Equal(t, "deprecated 1", logs[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs[1].Level)
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("errors carry request id", func(t *testing.T) {
		gormLog, recorded := observedGormLogger(zapcore.DebugLevel, gormlogger.Error)
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-7")

		gormLog.Trace(ctx, time.Now(), stockQuery, errors.New("deadlock detected"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL error", logs[0].Message)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-7", fields["request_id"])
		assert.Contains(t, fields["sql"], "FOR UPDATE")
	})

	t.Run("record not found is ignored by default", func(t *testing.T) {
		gormLog, recorded := observedGormLogger(zapcore.DebugLevel, gormlogger.Error)
		gormLog.Trace(context.Background(), time.Now(), stockQuery, gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())
	})

	t.Run("slow queries warn", func(t *testing.T) {
		gormLog, recorded := observedGormLogger(zapcore.DebugLevel, gormlogger.Warn, WithSlowThreshold(10*time.Millisecond))
		gormLog.Trace(context.Background(), time.Now().Add(-time.Second), stockQuery, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "Slow SQL", logs[0].Message)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("statement text can be omitted", func(t *testing.T) {
		gormLog, recorded := observedGormLogger(zapcore.DebugLevel, gormlogger.Info, WithSQL(false))
		gormLog.Trace(context.Background(), time.Now(), stockQuery, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL query", logs[0].Message)
		assert.NotContains(t, logs[0].ContextMap(), "sql")
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gormLog, recorded := observedGormLogger(zapcore.DebugLevel, gormlogger.Silent)
		gormLog.Trace(context.Background(), time.Now(), stockQuery, errors.New("boom"))
		assert.Empty(t, recorded.All())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"silent":  gormlogger.Silent,
		"error":   gormlogger.Error,
		"warn":    gormlogger.Warn,
		"info":    gormlogger.Info,
		"debug":   gormlogger.Info,
		"unknown": gormlogger.Warn,
	}
	for in, want := range tests {
		assert.Equal(t, want, MapGormLogLevel(in), in)
	}
}
