package object

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("inline descriptor", func(t *testing.T) {
		t.Parallel()
		obj, err := Parse([]byte(` {"file": "#/script.star", "params": {"param1": "x", "n": 3, "big": 1000000, "f": 1.5}} `))
		require.NoError(t, err)
		assert.Equal(t, "#/script.star", obj.File)
		assert.Empty(t, obj.Engine)
		assert.False(t, obj.Schema)
		assert.Equal(t, map[string]any{
			"param1": "x",
			"n":      json.Number("3"),
			"big":    json.Number("1000000"),
			"f":      json.Number("1.5"),
		}, obj.Params)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		for _, raw := range []string{"", "  ", "{", `{"file": 1}`, "[]", `{"file": "a"} {"file": "b"}`} {
			_, err := Parse([]byte(raw))
			require.ErrorIs(t, err, ErrInvalidDescriptor, "input %q", raw)
		}
	})
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	obj, err := ParseYAML([]byte("file: f.star\nschema: true\nparams:\n  param1: y\n  n: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, "f.star", obj.File)
	assert.True(t, obj.Schema)
	assert.Equal(t, map[string]any{"param1": "y", "n": int64(4)}, obj.Params)

	_, err = ParseYAML([]byte(""))
	require.ErrorIs(t, err, ErrInvalidDescriptor)

	_, err = ParseYAML([]byte("file: [unclosed"))
	require.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		obj, err := Load(filepath.Join("testdata", "obj.json"))
		require.NoError(t, err)
		assert.Equal(t, "python", obj.Engine)
		assert.True(t, obj.Schema)
		assert.Equal(t, "from-json", obj.Params["param1"])
		assert.Equal(t, "#/snippet.ntpl", obj.Template)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		obj, err := Load(filepath.Join("testdata", "obj.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "risor", obj.Engine)
		assert.Equal(t, "main", obj.Callback)
		assert.Equal(t, map[string]any{
			"param1": "from-yaml",
			"nested": map[string]any{"count": int64(2), "tags": []any{"a", "b"}},
		}, obj.Params)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorIs(t, err, ErrDescriptorNotFound)
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name   string
		obj    Object
		expect Object
	}{
		{
			name: "defaults and current dir prefix",
			obj:  Object{File: "#/script.star", Template: "#/t.ntpl"},
			expect: Object{
				Engine:   "python",
				Callback: "main",
				File:     filepath.Join(dir, "script.star"),
				Template: filepath.Join(dir, "t.ntpl"),
			},
		},
		{
			name: "relative file",
			obj:  Object{Engine: "risor", File: "objs/script.risor", Callback: "run"},
			expect: Object{
				Engine:   "risor",
				Callback: "run",
				File:     filepath.Join(dir, "objs", "script.risor"),
			},
		},
		{
			name: "absolute file untouched",
			obj:  Object{File: "/srv/objs/script.star", Template: "plain.ntpl"},
			expect: Object{
				Engine:   "python",
				Callback: "main",
				File:     "/srv/objs/script.star",
				Template: "plain.ntpl",
			},
		},
		{
			name: "native name untouched",
			obj:  Object{Engine: "go", File: "fixture.main", Schema: true},
			expect: Object{
				Engine:   "go",
				Callback: "main",
				File:     "fixture.main",
				Schema:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			orig := tt.obj
			got, err := tt.obj.Resolve(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, *got)
			assert.Equal(t, orig, tt.obj, "Resolve must not modify the receiver")
		})
	}

	t.Run("unsupported engine", func(t *testing.T) {
		t.Parallel()
		_, err := (&Object{Engine: "php", File: "x.php"}).Resolve(dir)
		require.ErrorIs(t, err, ErrUnsupportedEngine)
	})

	t.Run("working directory default", func(t *testing.T) {
		t.Parallel()
		wd, err := os.Getwd()
		require.NoError(t, err)
		got, err := (&Object{File: "#/a.star"}).Resolve("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(wd, "a.star"), got.File)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, (&Object{File: "x.star"}).Validate())
	require.ErrorIs(t, (&Object{}).Validate(), ErrFileMissing)
	require.ErrorIs(t, (&Object{File: " "}).Validate(), ErrFileMissing)
	require.ErrorIs(t, (&Object{File: "x", Engine: "lua"}).Validate(), ErrUnsupportedEngine)
}

func TestEngineType(t *testing.T) {
	t.Parallel()
	typ, err := (&Object{Engine: "Python"}).EngineType()
	require.NoError(t, err)
	assert.Equal(t, engineTypes.Starlark, typ)

	typ, err = (&Object{Engine: "wasm"}).EngineType()
	require.NoError(t, err)
	assert.Equal(t, engineTypes.Extism, typ)
}
