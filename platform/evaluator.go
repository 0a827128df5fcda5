package platform

import (
	"context"

	"github.com/neutralobj/go-neutralobj/platform/data"
)

// EvalOnly is the interface for calling a compiled object.
type EvalOnly interface {
	// Eval calls the object's callback with the input returned by the ExecutableUnit's
	// DataProvider. Compilation already happened when the evaluator was created, so Eval
	// may be called many times.
	Eval(ctx context.Context) (EvaluatorResponse, error)
}

// Evaluator combines evaluation with context preparation, so per-call data can be added
// with AddDataToContext before Eval.
type Evaluator interface {
	EvalOnly
	data.Setter
}

// EvaluatorResponse is the value returned by an object callback.
type EvaluatorResponse interface {
	// Type of the returned value.
	Type() data.Types

	// Inspect returns a string representation of the value.
	Inspect() string

	// Interface converts the value to a native Go value (maps, slices, scalars).
	Interface() any

	// GetScriptExeID returns the ID of the executable unit that produced the value.
	GetScriptExeID() string

	// GetExecTime returns how long the call took.
	GetExecTime() string
}
