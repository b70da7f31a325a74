package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notehive/pkg/logger"
)

func TestLog(t *testing.T) {
	t.Run("без настройки возвращается резервный логгер", func(t *testing.T) {
		assert.NotNil(t, logger.Log(context.Background()))
	})

	t.Run("глобальный логгер доступен через любой контекст", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "")
		require.NoError(t, err)

		logger.SetGlobalLogger(log)
		assert.Same(t, log, logger.Log(context.Background()))
	})

	t.Run("nil не затирает глобальный логгер", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "")
		require.NoError(t, err)

		logger.SetGlobalLogger(log)
		logger.SetGlobalLogger(nil)
		assert.Same(t, log, logger.Log(context.Background()))
	})

	t.Run("логгер из контекста важнее глобального", func(t *testing.T) {
		globalLog, err := logger.NewLogger(logger.Development, "")
		require.NoError(t, err)
		ctxLog, err := logger.NewLogger(logger.Development, "")
		require.NoError(t, err)

		logger.SetGlobalLogger(globalLog)
		ctx := logger.NewContext(context.Background(), ctxLog)
		assert.Same(t, ctxLog, logger.Log(ctx))
	})
}

func TestRequestIDContext(t *testing.T) {
	t.Run("переданный идентификатор сохраняется", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-42", id)
	})

	t.Run("пустой идентификатор заменяется сгенерированным", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.NotEmpty(t, id)
	})

	t.Run("контекст без идентификатора", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}
