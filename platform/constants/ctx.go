// Description: Keys shared by the host, the data providers and every engine.
package constants

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// EvalData is the context key holding per-call data added with PrepareContext
	EvalData ContextKey = "eval_data"

	// Keys of the invocation input map returned by data providers
	Params = "params" // callback argument, nil means "call without arguments"
	Schema = "schema" // external lookup structure, nil when the object did not ask for it

	// SchemaGlobal is the script-visible global bound to the schema (None/nil when absent)
	SchemaGlobal = "__NEUTRAL_SCHEMA__"

	// DefaultCallback is called when an object does not name one
	DefaultCallback = "main"
)
