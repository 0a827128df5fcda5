package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/neutralobj/go-neutralobj/engines/starlark/internal"
	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script"
	starlarkLib "go.starlark.net/starlark"
)

var (
	ErrExecUnitNil      = errors.New("executable unit is nil")
	ErrNoDataProvider   = errors.New("no data provider available")
	ErrCallbackNotFound = errors.New("callback not found after init")
)

// Evaluator calls the callback of a compiled Starlark object
type Evaluator struct {
	// universe is the set of predeclared names, schema global included
	universe starlarkLib.StringDict

	execUnit *script.ExecutableUnit

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Evaluator object
func New(handler slog.Handler, execUnit *script.ExecutableUnit) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "starlark", "Evaluator")

	universe := internal.StarlarkModules()
	universe[constants.SchemaGlobal] = starlarkLib.None

	return &Evaluator{
		universe:   universe,
		execUnit:   execUnit,
		logHandler: handler,
		logger:     logger,
	}
}

func (be *Evaluator) String() string {
	return "starlark.Evaluator"
}

// loadInputData reads the {"params", "schema"} input from the unit's data provider.
func (be *Evaluator) loadInputData(ctx context.Context) (map[string]any, error) {
	logger := be.logger.WithGroup("loadInputData")

	if be.execUnit.GetDataProvider() == nil {
		logger.WarnContext(ctx, "no data provider available, using empty data")
		return make(map[string]any), nil
	}

	inputData, err := be.execUnit.GetDataProvider().GetData(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get input data from provider", "error", err)
		return nil, err
	}

	logger.DebugContext(ctx, "input data loaded from provider", "inputData", inputData)
	return inputData, nil
}

// prepareCall converts the input into the predeclared globals and the callback arguments.
// A nil params map yields no arguments; exec passes None if the callback requires one.
func (be *Evaluator) prepareCall(
	inputData map[string]any,
) (starlarkLib.StringDict, starlarkLib.Tuple, error) {
	params, schema, err := data.SplitInput(inputData)
	if err != nil {
		return nil, nil, err
	}

	globals := make(starlarkLib.StringDict, len(be.universe))
	maps.Copy(globals, be.universe)

	if schema != nil {
		schemaDict, err := internal.ConvertToStarlarkDict(schema)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to convert schema: %w", err)
		}
		globals[constants.SchemaGlobal] = schemaDict
	}

	if params == nil {
		return globals, nil, nil
	}

	paramsDict, err := internal.ConvertToStarlarkDict(params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert params: %w", err)
	}
	return globals, starlarkLib.Tuple{paramsDict}, nil
}

// exec initializes the program, then calls the callback on the same thread.
func (be *Evaluator) exec(
	ctx context.Context,
	prog *starlarkLib.Program,
	callback string,
	globals starlarkLib.StringDict,
	args starlarkLib.Tuple,
) (*execResult, error) {
	logger := be.logger.WithGroup("exec")
	startTime := time.Now()

	thread := &starlarkLib.Thread{
		Name: "eval",
		Print: func(thread *starlarkLib.Thread, msg string) {
			logger.InfoContext(ctx, msg, "starlark-thread", thread.Name)
		},
	}

	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(ctx.Err().Error())
	})
	defer stop()

	finalGlobals, err := prog.Init(thread, globals)
	if err != nil {
		return nil, fmt.Errorf("starlark init error: %w", err)
	}

	fn, ok := finalGlobals[callback].(starlarkLib.Callable)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCallbackNotFound, callback)
	}

	if args == nil && requiresParams(fn) {
		args = starlarkLib.Tuple{starlarkLib.None}
	}

	val, err := starlarkLib.Call(thread, fn, args, nil)
	execTime := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("starlark call error: %w", err)
	}
	val.Freeze()

	return newEvalResult(be.logHandler, val, execTime, ""), nil
}

// requiresParams reports whether fn has a required positional parameter, as in
// "def main(params):". Such callbacks get None when there are no params.
func requiresParams(fn starlarkLib.Callable) bool {
	f, ok := fn.(*starlarkLib.Function)
	if !ok {
		return false
	}
	positional := f.NumParams() - f.NumKwonlyParams()
	if f.HasVarargs() {
		positional--
	}
	if f.HasKwargs() {
		positional--
	}
	return positional > 0 && f.ParamDefault(0) == nil
}

// Eval calls the object's callback with the input from the data provider.
func (be *Evaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	logger := be.logger.WithGroup("Eval")
	if be.execUnit == nil {
		return nil, ErrExecUnitNil
	}

	content := be.execUnit.GetContent()
	if content == nil {
		return nil, fmt.Errorf("content is nil")
	}

	exeID := be.execUnit.GetID()
	if exeID == "" {
		return nil, fmt.Errorf("exeID is empty")
	}
	logger = logger.With("exeID", exeID)

	prog, ok := content.GetByteCode().(*starlarkLib.Program)
	if !ok {
		return nil, fmt.Errorf(
			"invalid bytecode type: expected *starlark.Program, got %T",
			content.GetByteCode(),
		)
	}

	rawInputData, err := be.loadInputData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get input data: %w", err)
	}

	globals, args, err := be.prepareCall(rawInputData)
	if err != nil {
		return nil, fmt.Errorf("failed to convert input data: %w", err)
	}

	result, err := be.exec(ctx, prog, content.GetCallback(), globals, args)
	if err != nil {
		return nil, fmt.Errorf("exec error: %w", err)
	}
	result.scriptExeID = exeID

	logger.DebugContext(ctx, "exec complete", "result", result)
	return result, nil
}

// AddDataToContext stores per-call data through the unit's data provider, for a later Eval.
func (be *Evaluator) AddDataToContext(
	ctx context.Context,
	d ...map[string]any,
) (context.Context, error) {
	if be.execUnit == nil || be.execUnit.GetDataProvider() == nil {
		return ctx, ErrNoDataProvider
	}
	return be.execUnit.GetDataProvider().AddDataToContext(ctx, d...)
}
