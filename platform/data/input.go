package data

import (
	"fmt"

	"github.com/neutralobj/go-neutralobj/platform/constants"
)

// NewInput builds the invocation input map read by every engine.
func NewInput(params, schema map[string]any) map[string]any {
	in := make(map[string]any, 2)
	if params != nil {
		in[constants.Params] = params
	}
	if schema != nil {
		in[constants.Schema] = schema
	}
	return in
}

// SplitInput extracts params and schema from an invocation input map. Missing or nil values
// are returned as nil maps; any other non-map value is an error.
func SplitInput(in map[string]any) (params, schema map[string]any, err error) {
	params, err = mapAt(in, constants.Params)
	if err != nil {
		return nil, nil, err
	}
	schema, err = mapAt(in, constants.Schema)
	if err != nil {
		return nil, nil, err
	}
	return params, schema, nil
}

func mapAt(in map[string]any, key string) (map[string]any, error) {
	v, ok := in[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a map, got %T", ErrInvalidInput, key, v)
	}
	return m, nil
}
