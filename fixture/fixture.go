// Package fixture is the reference neutral object used to check that a host can call an object
// callback, hand it params, and read a structured result back.
//
// Two variants exist. Main only echoes params. MainWithSchema additionally reads a diagnostic
// value out of the schema the host passes in. Neither variant can fail: every missing or
// malformed input resolves to an empty string.
package fixture

import (
	"fmt"

	"github.com/Jeffail/gabs/v2"
)

const (
	// Greeting is the fixed value of the py_hello field.
	Greeting = "Hello from Python!"

	KeyData    = "data"
	KeyHello   = "py_hello"
	KeyParam1  = "param1"
	KeyTestNTS = "test_nts"

	// SchemaTestNTS is the key read from schema["data"] by MainWithSchema.
	SchemaTestNTS = "__test-nts"
)

// Params are the optional inputs of a fixture call. A nil Params is valid.
type Params map[string]any

// Result is the record returned by both variants.
type Result struct {
	Data map[string]string `json:"data"`
}

// Map returns the result in the generic shape a host expects from any neutral object.
func (r Result) Map() map[string]any {
	data := make(map[string]any, len(r.Data))
	for k, v := range r.Data {
		data[k] = v
	}
	return map[string]any{KeyData: data}
}

// Main builds {"data": {"py_hello": ..., "param1": ...}}.
func Main(params Params) Result {
	return Result{
		Data: map[string]string{
			KeyHello:  Greeting,
			KeyParam1: params.lookup(KeyParam1),
		},
	}
}

// MainWithSchema is Main plus "test_nts", taken from schema["data"]["__test-nts"].
// schema may be nil or any shape; anything other than the expected nesting yields "".
func MainWithSchema(params Params, schema map[string]any) Result {
	res := Main(params)
	res.Data[KeyTestNTS] = SchemaValue(schema, KeyData, SchemaTestNTS)
	return res
}

// SchemaValue walks path through nested map[string]any levels and formats the value found.
// A missing level, a level of any other type or a non-scalar value yields "". Hosts hand in
// schemas decoded from JSON or YAML, which only contain map[string]any levels.
func SchemaValue(schema map[string]any, path ...string) string {
	if schema == nil {
		return ""
	}
	return format(gabs.Wrap(schema).Search(path...).Data())
}

func (p Params) lookup(key string) string {
	if p == nil {
		return ""
	}
	return format(p[key])
}

// format renders scalars as text. Containers and nil have no text form here.
func format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(val)
	default:
		return ""
	}
}
