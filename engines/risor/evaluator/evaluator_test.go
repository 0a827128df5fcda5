package evaluator

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/neutralobj/go-neutralobj/engines/risor/compiler"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script"
	"github.com/neutralobj/go-neutralobj/platform/script/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const helloObject = `
func main(params) {
	if params == nil {
		params = {}
	}
	return {"data": {"py_hello": "Hello from Python!", "param1": params.get("param1", "")}}
}
`

const schemaObject = `
func main(params) {
	if params == nil {
		params = {}
	}
	test_nts := ""
	if type(__NEUTRAL_SCHEMA__) == "map" {
		d := __NEUTRAL_SCHEMA__.get("data", {})
		if type(d) == "map" {
			test_nts = d.get("__test-nts", "")
		}
	}
	return {"data": {"py_hello": "Hello from Python!", "param1": params.get("param1", ""), "test_nts": test_nts}}
}
`

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GetData(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if d, ok := args.Get(0).(map[string]any); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) AddDataToContext(
	ctx context.Context,
	d ...map[string]any,
) (context.Context, error) {
	args := m.Called(ctx, d)
	return ctx, args.Error(1)
}

func testHandler() slog.Handler {
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
}

func evalBuilder(t *testing.T, src string, provider data.Provider) *Evaluator {
	t.Helper()
	handler := testHandler()

	ldr, err := loader.NewFromString(src)
	require.NoError(t, err)

	c, err := compiler.New(compiler.WithLogHandler(handler))
	require.NoError(t, err)

	exe, err := script.NewExecutableUnit(handler, "", ldr, c, provider)
	require.NoError(t, err)

	return New(handler, exe)
}

func TestEvaluator_Eval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		input  map[string]any
		expect map[string]any
	}{
		{
			name:  "no params",
			src:   helloObject,
			input: nil,
			expect: map[string]any{"data": map[string]any{
				"py_hello": "Hello from Python!", "param1": "",
			}},
		},
		{
			name:  "param1 given",
			src:   helloObject,
			input: data.NewInput(map[string]any{"param1": "abc", "other": 1}, nil),
			expect: map[string]any{"data": map[string]any{
				"py_hello": "Hello from Python!", "param1": "abc",
			}},
		},
		{
			name:  "schema with test-nts",
			src:   schemaObject,
			input: data.NewInput(nil, map[string]any{"data": map[string]any{"__test-nts": "v1"}}),
			expect: map[string]any{"data": map[string]any{
				"py_hello": "Hello from Python!", "param1": "", "test_nts": "v1",
			}},
		},
		{
			name:  "schema data is not a map",
			src:   schemaObject,
			input: data.NewInput(map[string]any{"param1": "p"}, map[string]any{"data": "flat"}),
			expect: map[string]any{"data": map[string]any{
				"py_hello": "Hello from Python!", "param1": "p", "test_nts": "",
			}},
		},
		{
			name:  "schema absent",
			src:   schemaObject,
			input: nil,
			expect: map[string]any{"data": map[string]any{
				"py_hello": "Hello from Python!", "param1": "", "test_nts": "",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			evaluator := evalBuilder(t, tt.src, data.NewStaticProvider(tt.input))

			resp, err := evaluator.Eval(t.Context())
			require.NoError(t, err)
			require.NotNil(t, resp)

			assert.Equal(t, data.MAP, resp.Type())
			assert.Equal(t, tt.expect, resp.Interface())
			assert.NotEmpty(t, resp.GetScriptExeID())
			assert.NotEmpty(t, resp.GetExecTime())
			assert.Contains(t, resp.Inspect(), "Hello from Python!")
		})
	}
}

func TestEvaluator_AddDataToContext(t *testing.T) {
	t.Parallel()

	provider := data.NewCompositeProvider(
		data.NewStaticProvider(data.NewInput(map[string]any{"param1": "static"}, nil)),
		data.NewContextProvider(constants.EvalData),
	)
	evaluator := evalBuilder(t, helloObject, provider)

	ctx, err := evaluator.AddDataToContext(
		t.Context(),
		data.NewInput(map[string]any{"param1": "runtime"}, nil),
	)
	require.NoError(t, err)

	resp, err := evaluator.Eval(ctx)
	require.NoError(t, err)
	got := resp.Interface().(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "runtime", got["param1"])

	_, err = New(testHandler(), nil).AddDataToContext(t.Context())
	require.ErrorIs(t, err, ErrNoDataProvider)
}

func TestEvaluator_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nil exec unit", func(t *testing.T) {
		t.Parallel()
		_, err := New(testHandler(), nil).Eval(t.Context())
		require.ErrorIs(t, err, ErrExecUnitNil)
	})

	t.Run("provider failure", func(t *testing.T) {
		t.Parallel()
		provider := new(mockProvider)
		providerErr := errors.New("provider down")
		provider.On("GetData", mock.Anything).Return(nil, providerErr)

		_, err := evalBuilder(t, helloObject, provider).Eval(t.Context())
		require.ErrorIs(t, err, providerErr)
		provider.AssertExpectations(t)
	})

	t.Run("schema is not a map", func(t *testing.T) {
		t.Parallel()
		provider := data.NewStaticProvider(map[string]any{constants.Schema: []any{1}})

		_, err := evalBuilder(t, helloObject, provider).Eval(t.Context())
		require.ErrorIs(t, err, data.ErrInvalidInput)
	})

	t.Run("unsupported param value", func(t *testing.T) {
		t.Parallel()
		provider := data.NewStaticProvider(data.NewInput(map[string]any{"fn": func() {}}, nil))

		_, err := evalBuilder(t, helloObject, provider).Eval(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to convert params")
	})

	t.Run("runtime error", func(t *testing.T) {
		t.Parallel()
		src := "func main(params) {\n\treturn 1 / 0\n}\n"

		_, err := evalBuilder(t, src, data.NewStaticProvider(nil)).Eval(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exec error")
	})
}
