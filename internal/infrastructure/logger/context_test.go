package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAndFromContext(t *testing.T) {
	t.Run("round trips logger through context", func(t *testing.T) {
		log := zap.NewNop()
		ctx := WithContext(context.Background(), log)

		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("returns no-op logger when absent", func(t *testing.T) {
		log := FromContext(context.Background())
		require.NotNil(t, log)

		// Must be safe to use
		log.Info("ignored")
	})
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), base, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Same(t, enriched, FromContext(ctx))

	enriched.Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-123", logs.All()[0].ContextMap()["request_id"])
}

func TestGetRequestID(t *testing.T) {
	t.Run("empty when absent", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
	})

	t.Run("empty when wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		assert.Empty(t, GetRequestID(ctx))
	})
}
