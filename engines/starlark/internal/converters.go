package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"

	starlarkLib "go.starlark.net/starlark"
)

// ConvertToStarlarkValue converts params and schema values into Starlark values.
// Map keys are inserted in sorted order so dict iteration inside a script is stable.
func ConvertToStarlarkValue(v any) (starlarkLib.Value, error) {
	switch val := v.(type) {
	case nil:
		return starlarkLib.None, nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int32:
		return starlarkLib.MakeInt64(int64(val)), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case uint64:
		return starlarkLib.MakeUint64(val), nil
	case float32:
		return starlarkLib.Float(val), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return starlarkLib.MakeInt64(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid json number %q: %w", val, err)
		}
		return starlarkLib.Float(f), nil
	case *url.URL:
		return starlarkLib.String(val.String()), nil
	case []string:
		elements := make([]starlarkLib.Value, len(val))
		for i, s := range val {
			elements[i] = starlarkLib.String(s)
		}
		return starlarkLib.NewList(elements), nil
	case []any:
		elements := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			sv, err := ConvertToStarlarkValue(elem)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element %d: %w", i, err)
			}
			elements[i] = sv
		}
		return starlarkLib.NewList(elements), nil
	case []map[string]any:
		elements := make([]starlarkLib.Value, len(val))
		for i, m := range val {
			dict, err := ConvertToStarlarkDict(m)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element %d: %w", i, err)
			}
			elements[i] = dict
		}
		return starlarkLib.NewList(elements), nil
	case map[string]string:
		dict := starlarkLib.NewDict(len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			if err := dict.SetKey(starlarkLib.String(k), starlarkLib.String(val[k])); err != nil {
				return nil, fmt.Errorf("failed to set key %q: %w", k, err)
			}
		}
		return dict, nil
	case map[string]any:
		dict, err := ConvertToStarlarkDict(val)
		if err != nil {
			return nil, err
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// ConvertToStarlarkDict converts a string keyed map, collecting every failing key.
func ConvertToStarlarkDict(m map[string]any) (*starlarkLib.Dict, error) {
	dict := starlarkLib.NewDict(len(m))
	var errz []error

	for _, k := range slices.Sorted(maps.Keys(m)) {
		sv, err := ConvertToStarlarkValue(m[k])
		if err != nil {
			errz = append(errz, fmt.Errorf("key %q: %w", k, err))
			continue
		}
		if err := dict.SetKey(starlarkLib.String(k), sv); err != nil {
			errz = append(errz, fmt.Errorf("failed to set key %q: %w", k, err))
		}
	}

	if len(errz) > 0 {
		return nil, errors.Join(errz...)
	}
	return dict, nil
}

// ConvertStarlarkValueToInterface converts a callback result back into Go values.
// Dict keys that are not strings are stringified so results stay JSON compatible.
func ConvertStarlarkValueToInterface(v starlarkLib.Value) (any, error) {
	switch val := v.(type) {
	case nil, starlarkLib.NoneType:
		return nil, nil
	case starlarkLib.Bool:
		return bool(val), nil
	case starlarkLib.Int:
		i, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s overflows int64", val.String())
		}
		return i, nil
	case starlarkLib.Float:
		return float64(val), nil
	case starlarkLib.String:
		return string(val), nil
	case *starlarkLib.List:
		return convertIterable(val, val.Len())
	case starlarkLib.Tuple:
		return convertIterable(val, val.Len())
	case *starlarkLib.Set:
		return convertIterable(val, val.Len())
	case *starlarkLib.Dict:
		out := make(map[string]any, val.Len())
		for _, item := range val.Items() {
			k, itemVal := item[0], item[1]
			key := k.String()
			if s, ok := k.(starlarkLib.String); ok {
				key = string(s)
			}
			gv, err := ConvertStarlarkValueToInterface(itemVal)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value for %q: %w", key, err)
			}
			out[key] = gv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported Starlark type %s", v.Type())
	}
}

func convertIterable(it starlarkLib.Iterable, n int) ([]any, error) {
	out := make([]any, 0, n)
	iter := it.Iterate()
	defer iter.Done()

	var elem starlarkLib.Value
	for iter.Next(&elem) {
		gv, err := ConvertStarlarkValueToInterface(elem)
		if err != nil {
			return nil, fmt.Errorf("failed to convert element: %w", err)
		}
		out = append(out, gv)
	}
	return out, nil
}
