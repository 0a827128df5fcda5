package extism

import (
	"testing"

	"github.com/neutralobj/go-neutralobj/engines/extism/compiler"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvaluator(t *testing.T) {
	t.Parallel()

	ldr, err := loader.NewFromBytes([]byte("definitely not a wasm module"))
	require.NoError(t, err)

	t.Run("nil provider", func(t *testing.T) {
		t.Parallel()
		_, err := NewEvaluator(nil, ldr, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider is nil")
	})

	t.Run("invalid module", func(t *testing.T) {
		t.Parallel()
		_, err := NewEvaluator(nil, ldr, data.NewContextProvider(constants.EvalData))
		require.ErrorIs(t, err, compiler.ErrValidationFailed)
	})

	t.Run("empty callback", func(t *testing.T) {
		t.Parallel()
		_, err := FromExtismLoader(nil, ldr, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "callback name cannot be empty")

		_, err = FromExtismLoaderWithData(nil, ldr, nil, "")
		require.Error(t, err)
	})
}

func TestNewCompiler(t *testing.T) {
	t.Parallel()
	c, err := NewCompiler(compiler.WithWASIEnabled(false))
	require.NoError(t, err)
	assert.Equal(t, "extism.Compiler", c.String())
}
