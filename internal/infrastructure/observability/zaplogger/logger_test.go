package zaplogger

import (
	"errors"
	"testing"

	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerCarriesFixedAndChildFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core), observability.F("component", "test"))

	l.With(observability.F("cart_id", "c-1")).Info("cart_opened", observability.F("lines", 2))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "cart_opened", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "test", fields["component"])
	assert.Equal(t, "c-1", fields["cart_id"])
	assert.EqualValues(t, 2, fields["lines"])
}

func TestLoggerEncodesErrorsAsStrings(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Warn("catalog_load_failed", observability.F("error", errors.New("boom")))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, "boom", logs.All()[0].ContextMap()["error"])
}
