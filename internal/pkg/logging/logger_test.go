package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pos.log")

	logger, err := NewLogger(Options{Service: "pos", Env: "test", File: path})
	require.NoError(t, err)

	WithTrace(logger, SystemTraceID, "").Info("boot")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"boot"`)
	assert.Contains(t, string(data), `"service":"pos"`)
	assert.Contains(t, string(data), `"span_id":"unknown"`)
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(Options{Service: "pos", Level: "loud"})
	assert.Error(t, err)
}
