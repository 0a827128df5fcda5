package helpers

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("nil handler falls back to default", func(t *testing.T) {
		t.Parallel()
		handler, logger := SetupLogger(nil, "starlark", "Evaluator")
		require.NotNil(t, handler)
		require.NotNil(t, logger)
	})

	t.Run("custom handler with group", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		custom := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

		handler, logger := SetupLogger(custom, "host", "Invoke")
		assert.Equal(t, custom, handler)

		logger.Info("called", "key", "value")
		assert.Contains(t, buf.String(), "Invoke.key=value")
	})

	t.Run("custom handler without group", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		custom := slog.NewTextHandler(&buf, nil)

		_, logger := SetupLogger(custom, "host", "")
		logger.Info("called", "key", "value")
		assert.Contains(t, buf.String(), " key=value")
	})
}
