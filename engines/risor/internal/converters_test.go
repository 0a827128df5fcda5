package internal

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/neutralobj/go-neutralobj/platform/constants"
	risorLib "github.com/risor-io/risor"
	risorObject "github.com/risor-io/risor/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValue(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://example.com/a")
	require.NoError(t, err)

	tests := []struct {
		name   string
		input  any
		expect any
	}{
		{name: "nil", input: nil, expect: nil},
		{name: "string", input: "x", expect: "x"},
		{name: "int", input: 3, expect: int64(3)},
		{name: "int32", input: int32(4), expect: int64(4)},
		{name: "float32", input: float32(0.5), expect: float64(0.5)},
		{name: "json int", input: json.Number("42"), expect: int64(42)},
		{name: "json float", input: json.Number("1.25"), expect: 1.25},
		{name: "url", input: u, expect: "https://example.com/a"},
		{name: "string slice", input: []string{"a", "b"}, expect: []any{"a", "b"}},
		{
			name:   "string map",
			input:  map[string]string{"k": "v"},
			expect: map[string]any{"k": "v"},
		},
		{
			name:   "nested",
			input:  map[string]any{"data": map[string]any{"__test-nts": json.Number("7"), "l": []any{1}}},
			expect: map[string]any{"data": map[string]any{"__test-nts": int64(7), "l": []any{int64(1)}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeValue(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()
		_, err := NormalizeValue(map[string]any{"ch": make(chan int)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `key "ch"`)

		_, err = NormalizeValue(json.Number("nope"))
		require.Error(t, err)
	})
}

func TestConvertToRisorOptions(t *testing.T) {
	t.Parallel()

	opts, err := ConvertToRisorOptions(nil, nil)
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	globals := risorLib.NewConfig(opts...).Globals()
	assert.Equal(t, risorObject.Nil, globals[constants.Params])
	assert.Equal(t, risorObject.Nil, globals[constants.SchemaGlobal])

	// absent values must wrap as Risor objects, not untyped nils
	_, err = risorObject.AsObjects(map[string]any{
		constants.Params:       globals[constants.Params],
		constants.SchemaGlobal: globals[constants.SchemaGlobal],
	})
	require.NoError(t, err)

	opts, err = ConvertToRisorOptions(map[string]any{"param1": "x"}, map[string]any{"data": map[string]any{}})
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	_, err = ConvertToRisorOptions(map[string]any{"bad": struct{}{}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "params")

	_, err = ConvertToRisorOptions(nil, map[string]any{"bad": struct{}{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}
