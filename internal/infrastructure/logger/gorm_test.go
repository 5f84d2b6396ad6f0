package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func TestGormLoggerTrace(t *testing.T) {
	ctx := context.Background()

	t.Run("logs queries at debug", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Info)

		gl.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM supplies", 3
		}, nil)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.DebugLevel, entry.Level)
		assert.Equal(t, "SQL Query", entry.Message)
		assert.Equal(t, "SELECT * FROM supplies", entry.ContextMap()["sql"])
		assert.Equal(t, int64(3), entry.ContextMap()["rows"])
	})

	t.Run("logs errors", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)

		gl.Trace(ctx, time.Now(), func() (string, int64) {
			return "INSERT INTO orders", 0
		}, assert.AnError)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
		assert.Equal(t, "SQL Error", logs.All()[0].Message)
	})

	t.Run("ignores record not found by default", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)

		gl.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM orders WHERE id = $1", 0
		}, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("logs record not found when configured", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))

		gl.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT * FROM orders WHERE id = $1", 0
		}, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 1, logs.Len())
	})

	t.Run("warns on slow queries", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

		gl.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) {
			return "SELECT * FROM menu_items", 10
		}, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Silent)

		gl.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT 1", 1
		}, nil)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("includes request id from context", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Info)
		reqCtx := context.WithValue(ctx, RequestIDKey, "req-9")

		gl.Trace(reqCtx, time.Now(), func() (string, int64) {
			return "SELECT 1", 1
		}, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-9", logs.All()[0].ContextMap()["request_id"])
	})
}

func TestGormLoggerLogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Warn)

	changed := gl.LogMode(gormlogger.Silent)

	// Original instance is untouched
	assert.Equal(t, gormlogger.Warn, gl.logLevel)
	assert.Equal(t, gormlogger.Silent, changed.(*GormLogger).logLevel)
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"anything", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.input))
		})
	}
}
