package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider_GetData(t *testing.T) {
	t.Parallel()

	t.Run("nil data creates empty map", func(t *testing.T) {
		t.Parallel()
		provider := NewStaticProvider(nil)

		result, err := provider.GetData(context.Background())
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("returns descriptor input", func(t *testing.T) {
		t.Parallel()
		provider := NewStaticProvider(descriptorInput)

		result, err := provider.GetData(context.Background())
		require.NoError(t, err)
		assert.Equal(t, descriptorInput, result)
	})

	t.Run("result is a copy", func(t *testing.T) {
		t.Parallel()
		provider := NewStaticProvider(map[string]any{"params": nil})
		ctx := context.Background()

		result, err := provider.GetData(ctx)
		require.NoError(t, err)
		result["injected"] = true

		again, err := provider.GetData(ctx)
		require.NoError(t, err)
		assert.NotContains(t, again, "injected")
	})
}

func TestStaticProvider_AddDataToContext(t *testing.T) {
	t.Parallel()
	provider := NewStaticProvider(descriptorInput)
	ctx := context.Background()

	newCtx, err := provider.AddDataToContext(ctx, runtimeInput)
	require.ErrorIs(t, err, ErrStaticProviderNoRuntimeUpdates)
	assert.Equal(t, ctx, newCtx)
}
