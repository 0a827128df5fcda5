// Package object reads neutral object descriptors: which engine runs the object, the file
// holding it, the callback to call, its params and whether it wants the schema.
package object

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"gopkg.in/yaml.v3"
)

// CurrentDirPrefix at the start of File or Template stands for the current directory.
const CurrentDirPrefix = "#"

// DefaultEngine is the engine name used when a descriptor omits one.
const DefaultEngine = "python"

// Object is a neutral object descriptor.
type Object struct {
	Engine   string         `json:"engine,omitempty" yaml:"engine,omitempty"`
	File     string         `json:"file" yaml:"file"`
	Callback string         `json:"callback,omitempty" yaml:"callback,omitempty"`
	Params   map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	Schema   bool           `json:"schema,omitempty" yaml:"schema,omitempty"`
	Template string         `json:"template,omitempty" yaml:"template,omitempty"`
}

// Parse decodes a JSON descriptor, such as an inline one.
func Parse(raw []byte) (*Object, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty descriptor", ErrInvalidDescriptor)
	}

	var obj Object
	if err := decodeJSON(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	return &obj, nil
}

// ParseYAML decodes a YAML descriptor.
func ParseYAML(raw []byte) (*Object, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty descriptor", ErrInvalidDescriptor)
	}

	var obj Object
	if err := yaml.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	obj.Params = normalizeYAML(obj.Params)
	return &obj, nil
}

// Load reads a descriptor file: YAML for .yaml and .yml, JSON otherwise.
func Load(path string) (*Object, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDescriptorNotFound, path)
		}
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(raw)
	default:
		return Parse(raw)
	}
}

// EngineType returns the engine that runs the object.
func (o *Object) EngineType() (engineTypes.Type, error) {
	t, err := engineTypes.Parse(o.Engine)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEngine, o.Engine)
	}
	return t, nil
}

// Resolve returns a copy with defaults applied and paths made absolute against currentDir.
// For native objects File is a function name and is left as is.
func (o *Object) Resolve(currentDir string) (*Object, error) {
	out := *o
	if out.Engine == "" {
		out.Engine = DefaultEngine
	}
	if out.Callback == "" {
		out.Callback = constants.DefaultCallback
	}

	t, err := out.EngineType()
	if err != nil {
		return nil, err
	}

	if currentDir == "" {
		currentDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	if t != engineTypes.Native && out.File != "" {
		out.File = resolvePath(out.File, currentDir)
	}
	if out.Template != "" {
		out.Template = expandCurrentDir(out.Template, currentDir)
	}
	return &out, nil
}

// Validate checks the fields every engine needs.
func (o *Object) Validate() error {
	if strings.TrimSpace(o.File) == "" {
		return ErrFileMissing
	}
	_, err := o.EngineType()
	return err
}

func expandCurrentDir(p, currentDir string) string {
	if rest, ok := strings.CutPrefix(p, CurrentDirPrefix); ok {
		return filepath.Join(currentDir, rest)
	}
	return p
}

func resolvePath(p, currentDir string) string {
	p = expandCurrentDir(p, currentDir)
	if !filepath.IsAbs(p) {
		p = filepath.Join(currentDir, p)
	}
	return filepath.Clean(p)
}

// normalizeYAML converts the map[any]any and []any trees yaml.v3 may produce for nested
// values into the string keyed maps every engine accepts.
func normalizeYAML(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeYAMLValue(v)
	}
	return out
}

func normalizeYAMLValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeYAML(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[fmt.Sprint(k)] = normalizeYAMLValue(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalizeYAMLValue(elem)
		}
		return out
	case int:
		return int64(val)
	default:
		return v
	}
}
