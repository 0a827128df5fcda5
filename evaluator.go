package neutralobj

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/object"
	"github.com/neutralobj/go-neutralobj/platform"
	"github.com/neutralobj/go-neutralobj/platform/data"
)

// Evaluator is a compiled object. Eval may be called concurrently and any number of times.
type Evaluator struct {
	delegate platform.Evaluator
	obj      *object.Object
	logger   *slog.Logger
}

func newEvaluator(handler slog.Handler, delegate platform.Evaluator, obj *object.Object) *Evaluator {
	_, logger := helpers.SetupLogger(handler, "neutralobj", "Evaluator")
	return &Evaluator{
		delegate: delegate,
		obj:      obj,
		logger:   logger.With("file", obj.File, "callback", obj.Callback),
	}
}

// Object returns the resolved descriptor: defaults applied, paths absolute.
func (e *Evaluator) Object() object.Object {
	return *e.obj
}

// PrepareContext returns a context carrying per-call params. They are merged over the
// descriptor params for Eval calls made with that context.
func (e *Evaluator) PrepareContext(ctx context.Context, params map[string]any) (context.Context, error) {
	if e.delegate == nil {
		return ctx, ErrNoEvaluator
	}
	return e.delegate.AddDataToContext(ctx, data.NewInput(params, nil))
}

// Eval calls the object's callback and checks the shape of what it returns.
func (e *Evaluator) Eval(ctx context.Context) (*Result, error) {
	if e.delegate == nil {
		return nil, ErrNoEvaluator
	}
	invocationID := uuid.NewString()
	logger := e.logger.WithGroup("Eval").With("invocationID", invocationID)

	resp, err := e.delegate.Eval(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "object call failed", "error", err)
		return nil, fmt.Errorf("failed to call object %s: %w", e.obj.File, err)
	}

	res, err := newResult(resp, e.obj.Template)
	if err != nil {
		logger.ErrorContext(ctx, "object returned an invalid result", "error", err, "type", resp.Type())
		return nil, err
	}
	res.InvocationID = invocationID

	logger.DebugContext(ctx, "object called", "execTime", res.ExecTime, "data", res.Data)
	return res, nil
}

// Close releases engine resources held by the compiled object, such as a wasm plugin.
func (e *Evaluator) Close(ctx context.Context) error {
	if c, ok := e.delegate.(interface{ Close(context.Context) error }); ok {
		return c.Close(ctx)
	}
	return nil
}
