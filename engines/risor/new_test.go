package risor

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/neutralobj/go-neutralobj/engines/risor/compiler"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testObject = `
func main(params) {
	if params == nil {
		params = {}
	}
	return {"data": {"py_hello": "Hello from Python!", "param1": params.get("param1", "")}}
}
`

func createTestLoader(t *testing.T, src string) *loader.FromString {
	t.Helper()
	stringLoader, err := loader.NewFromString(src)
	require.NoError(t, err)
	return stringLoader
}

func param1(t *testing.T, v any) any {
	t.Helper()
	m, ok := v.(map[string]any)
	require.True(t, ok, "expected map, got %T", v)
	inner, ok := m["data"].(map[string]any)
	require.True(t, ok, "expected data map, got %T", m["data"])
	return inner["param1"]
}

func TestFromRisorLoader(t *testing.T) {
	t.Parallel()
	handler := slog.NewTextHandler(os.Stdout, nil)

	evalInstance, err := FromRisorLoader(handler, createTestLoader(t, testObject))
	require.NoError(t, err)
	assert.Equal(t, "risor.Evaluator", evalInstance.String())

	ctx, err := evalInstance.AddDataToContext(
		t.Context(),
		data.NewInput(map[string]any{"param1": "ctx"}, nil),
	)
	require.NoError(t, err)

	resp, err := evalInstance.Eval(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ctx", param1(t, resp.Interface()))
}

func TestFromRisorLoaderWithData(t *testing.T) {
	t.Parallel()
	static := data.NewInput(map[string]any{"param1": "static"}, nil)

	evalInstance, err := FromRisorLoaderWithData(nil, createTestLoader(t, testObject), static)
	require.NoError(t, err)

	resp, err := evalInstance.Eval(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "static", param1(t, resp.Interface()))
}

func TestNewEvaluator(t *testing.T) {
	t.Parallel()

	t.Run("nil provider", func(t *testing.T) {
		t.Parallel()
		evalInstance, err := NewEvaluator(nil, createTestLoader(t, testObject), nil)
		require.Error(t, err)
		require.Nil(t, evalInstance)
		assert.Contains(t, err.Error(), "provider is nil")
	})

	t.Run("invalid syntax", func(t *testing.T) {
		t.Parallel()
		provider := data.NewContextProvider(constants.EvalData)
		_, err := NewEvaluator(nil, createTestLoader(t, "func main( {"), provider)
		require.ErrorIs(t, err, compiler.ErrValidationFailed)
	})

	t.Run("custom callback", func(t *testing.T) {
		t.Parallel()
		src := "func handle(params) {\n\treturn {\"data\": {\"param1\": params[\"param1\"]}}\n}\n"
		provider := data.NewStaticProvider(data.NewInput(map[string]any{"param1": "cb"}, nil))

		evalInstance, err := NewEvaluator(
			nil,
			createTestLoader(t, src),
			provider,
			compiler.WithCallback("handle"),
		)
		require.NoError(t, err)

		resp, err := evalInstance.Eval(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "cb", param1(t, resp.Interface()))
	})
}

func TestDiskLoaderIntegration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "script.risor")
	require.NoError(t, os.WriteFile(path, []byte(testObject), 0o600))

	diskLoader, err := loader.NewFromDisk(path)
	require.NoError(t, err)

	evalInstance, err := FromRisorLoaderWithData(nil, diskLoader, nil)
	require.NoError(t, err)

	resp, err := evalInstance.Eval(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "", param1(t, resp.Interface()))
}
