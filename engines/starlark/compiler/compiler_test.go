package compiler

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	starlarkLib "go.starlark.net/starlark"
)

const schemaObject = `
def main(params = None):
    if params == None:
        params = {}
    schema = __NEUTRAL_SCHEMA__
    return {"data": {"param1": params.get("param1", ""), "has_schema": schema != None}}
`

type errCloser struct {
	io.Reader
}

func (e errCloser) Close() error { return errors.New("close failed") }

func newReader(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func newCompiler(t *testing.T, opts ...FunctionalOption) *Compiler {
	t.Helper()
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
	c, err := New(append([]FunctionalOption{WithLogHandler(handler)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		c, err := New()
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultCallback, c.callback)
		assert.Contains(t, c.globals, constants.SchemaGlobal)
		assert.NotNil(t, c.logger)
		assert.Equal(t, "starlark.Compiler", c.String())
	})

	t.Run("with logger", func(t *testing.T) {
		t.Parallel()
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		c, err := New(WithLogger(logger))
		require.NoError(t, err)
		assert.Equal(t, logger, c.logger)
		assert.Equal(t, logger.Handler(), c.logHandler)
	})

	t.Run("globals are deduplicated", func(t *testing.T) {
		t.Parallel()
		c, err := New(WithGlobals([]string{"request", constants.SchemaGlobal, "request"}))
		require.NoError(t, err)
		assert.Equal(t, []string{constants.SchemaGlobal, "request"}, c.globals)
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()
		_, err := New(WithCallback("  "))
		require.Error(t, err)

		_, err = New(WithLogHandler(nil))
		require.Error(t, err)

		_, err = New(WithLogger(nil))
		require.Error(t, err)
	})
}

func TestCompiler_Compile(t *testing.T) {
	t.Parallel()

	t.Run("schema object", func(t *testing.T) {
		t.Parallel()
		c := newCompiler(t)

		content, err := c.Compile(newReader(schemaObject))
		require.NoError(t, err)
		require.NotNil(t, content)

		assert.Equal(t, schemaObject, content.GetSource())
		assert.Equal(t, engineTypes.Starlark, content.GetEngineType())
		assert.Equal(t, "main", content.GetCallback())

		exe, ok := content.(*Executable)
		require.True(t, ok)
		assert.IsType(t, &starlarkLib.Program{}, exe.GetByteCode())
		assert.Equal(t, exe.ByteCode, exe.GetStarlarkByteCode())
	})

	t.Run("custom callback", func(t *testing.T) {
		t.Parallel()
		c := newCompiler(t, WithCallback("render"))

		content, err := c.Compile(newReader("def render():\n    return {}\n"))
		require.NoError(t, err)
		assert.Equal(t, "render", content.GetCallback())
	})

	t.Run("standard modules are available", func(t *testing.T) {
		t.Parallel()
		c := newCompiler(t)

		_, err := c.Compile(newReader("def main():\n    return {\"data\": {\"j\": json.encode([1]), \"pi\": str(math.pi)}}\n"))
		require.NoError(t, err)
	})

	t.Run("extra globals", func(t *testing.T) {
		t.Parallel()
		src := "def main():\n    return {\"data\": {\"r\": request}}\n"

		_, err := newCompiler(t).Compile(newReader(src))
		require.ErrorIs(t, err, ErrValidationFailed)

		_, err = newCompiler(t, WithGlobals([]string{"request"})).Compile(newReader(src))
		require.NoError(t, err)
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name    string
			reader  io.ReadCloser
			wantErr error
		}{
			{name: "nil reader", reader: nil, wantErr: ErrContentNil},
			{name: "empty script", reader: newReader(""), wantErr: ErrContentNil},
			{name: "syntax error", reader: newReader("def main(:\n"), wantErr: ErrValidationFailed},
			{name: "undefined name", reader: newReader("def main():\n    return nope\n"), wantErr: ErrValidationFailed},
			{name: "no callback", reader: newReader("x = 1\n"), wantErr: ErrCallbackNotDefined},
			{name: "callback is not a def", reader: newReader("main = 1\n"), wantErr: ErrCallbackNotDefined},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				_, err := newCompiler(t).Compile(tt.reader)
				require.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("close error", func(t *testing.T) {
		t.Parallel()
		_, err := newCompiler(t).Compile(errCloser{strings.NewReader(schemaObject)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to close reader")
	})
}
