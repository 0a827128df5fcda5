package internal

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/neutralobj/go-neutralobj/platform/constants"
	risorLib "github.com/risor-io/risor"
	risorObject "github.com/risor-io/risor/object"
)

// ConvertToRisorOptions binds the call input to the two globals every compiled object
// references. Both are always bound, to Risor's nil object when absent.
func ConvertToRisorOptions(params, schema map[string]any) ([]risorLib.Option, error) {
	p, err := normalizeMap(params)
	if err != nil {
		return nil, fmt.Errorf("failed to convert params: %w", err)
	}
	s, err := normalizeMap(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to convert schema: %w", err)
	}

	return []risorLib.Option{
		risorLib.WithGlobal(constants.Params, p),
		risorLib.WithGlobal(constants.SchemaGlobal, s),
	}, nil
}

// normalizeMap returns risorObject.Nil for a nil map: Risor cannot wrap an untyped Go nil
// as a global.
func normalizeMap(m map[string]any) (any, error) {
	if m == nil {
		return risorObject.Nil, nil
	}
	return NormalizeValue(m)
}

// NormalizeValue rewrites v into the value kinds Risor can wrap as objects:
// nil, bool, int64, float64, string, []any and map[string]any.
func NormalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool, int64, float64, string:
		return val, nil
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case float32:
		return float64(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid json number %q: %w", val, err)
		}
		return f, nil
	case *url.URL:
		return val.String(), nil
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			nv, err := NormalizeValue(elem)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			out[i] = nv
		}
		return out, nil
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, s := range val {
			out[k] = s
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			nv, err := NormalizeValue(elem)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = nv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}
