package data

// Types names the kind of value an object callback returned.
type Types string

const (
	BOOL     Types = "bool"
	ERROR    Types = "error"
	FUNCTION Types = "function"
	INT      Types = "int"
	MAP      Types = "map"
	STRING   Types = "string"
	NONE     Types = "none"
	FLOAT    Types = "float"
	LIST     Types = "list"
	TUPLE    Types = "tuple"
	SET      Types = "set"
)

// TypeOf classifies a converted Go value, as produced by the engine converters.
func TypeOf(v any) Types {
	switch v.(type) {
	case nil:
		return NONE
	case bool:
		return BOOL
	case int, int64, int32:
		return INT
	case float64, float32:
		return FLOAT
	case string:
		return STRING
	case map[string]any:
		return MAP
	case []any:
		return LIST
	default:
		return ERROR
	}
}
