package object

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSchema reads the lookup structure handed to objects that ask for it: YAML for .yaml and
// .yml, JSON otherwise. The document must be a mapping.
func LoadSchema(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	var schema map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &schema)
		schema = normalizeYAML(schema)
	default:
		err = decodeJSON(raw, &schema)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", path, err)
	}
	if schema == nil {
		schema = make(map[string]any)
	}
	return schema, nil
}

// NormalizeSchema rewrites a schema built in Go into the plain JSON shape every engine reads:
// nested maps become map[string]any, slices []any and numbers json.Number. Values JSON cannot
// encode are an error.
func NormalizeSchema(schema map[string]any) (map[string]any, error) {
	if schema == nil {
		return nil, nil
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	var out map[string]any
	if err := decodeJSON(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return out, nil
}
