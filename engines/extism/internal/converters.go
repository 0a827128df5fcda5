package internal

import (
	"bytes"
	"encoding/json"

	"github.com/neutralobj/go-neutralobj/platform/constants"
)

// ConvertToExtismFormat encodes the call input as the JSON document passed to the export:
// {"params": {...} | null, "schema": {...} | null}.
func ConvertToExtismFormat(params, schema map[string]any) ([]byte, error) {
	in := map[string]any{
		constants.Params: nil,
		constants.Schema: nil,
	}
	if params != nil {
		in[constants.Params] = params
	}
	if schema != nil {
		in[constants.Schema] = schema
	}
	return json.Marshal(in)
}

// DecodeOutput parses the export's output as JSON. Integral numbers become int64, the rest
// float64. Output that is not JSON is returned as a string.
func DecodeOutput(output []byte) any {
	if len(bytes.TrimSpace(output)) == 0 {
		return nil
	}

	var result any
	d := json.NewDecoder(bytes.NewReader(output))
	d.UseNumber()
	if err := d.Decode(&result); err != nil {
		return string(output)
	}
	return FixJSONNumberTypes(result)
}

// FixJSONNumberTypes replaces json.Number values, recursing into maps and slices.
func FixJSONNumberTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, elem := range val {
			val[k] = FixJSONNumberTypes(elem)
		}
		return val
	case []any:
		for i, elem := range val {
			val[i] = FixJSONNumberTypes(elem)
		}
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		return v
	}
}
