package compiler

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/neutralobj/go-neutralobj/engines/native/registry"
	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestCompiler_Compile(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, registry.RegisterFixtures(reg))

	c, err := New(nil, reg)
	require.NoError(t, err)
	assert.Equal(t, "native.Compiler", c.String())

	t.Run("registered name", func(t *testing.T) {
		t.Parallel()
		content, err := c.Compile(newReader(" fixture.main\n"))
		require.NoError(t, err)
		assert.Equal(t, "fixture.main", content.GetSource())
		assert.Equal(t, "fixture.main", content.GetCallback())
		assert.Equal(t, engineTypes.Native, content.GetEngineType())

		exe, ok := content.(*Executable)
		require.True(t, ok)
		out, err := exe.GetFunc()(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Contains(t, out, "data")
		assert.NotNil(t, exe.GetByteCode())
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := c.Compile(newReader("nope"))
		require.ErrorIs(t, err, registry.ErrNotRegistered)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := c.Compile(newReader("  "))
		require.ErrorIs(t, err, ErrContentNil)

		_, err = c.Compile(nil)
		require.ErrorIs(t, err, ErrContentNil)
	})
}

func TestNew_NilRegistry(t *testing.T) {
	t.Parallel()
	_, err := New(nil, nil)
	require.ErrorIs(t, err, ErrRegistryNil)
}
