package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/neutralobj/go-neutralobj/engines/risor/internal"
	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script"
	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorObject "github.com/risor-io/risor/object"
)

var (
	ErrExecUnitNil    = errors.New("executable unit is nil")
	ErrNoDataProvider = errors.New("no data provider available")
	ErrScriptError    = errors.New("error returned from script")
)

// Evaluator runs compiled Risor objects
type Evaluator struct {
	execUnit *script.ExecutableUnit

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Evaluator object
func New(handler slog.Handler, execUnit *script.ExecutableUnit) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "risor", "Evaluator")

	return &Evaluator{
		execUnit:   execUnit,
		logHandler: handler,
		logger:     logger,
	}
}

func (be *Evaluator) String() string {
	return "risor.Evaluator"
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

// exec runs the bytecode, whose last expression is the callback call.
func (be *Evaluator) exec(
	ctx context.Context,
	bytecode *risorCompiler.Code,
	options ...risorLib.Option,
) (*execResult, error) {
	startTime := time.Now()
	result, err := risorLib.EvalCode(ctx, bytecode, options...)
	execTime := time.Since(startTime)

	if err != nil {
		return nil, fmt.Errorf("risor execution error: %w", err)
	}
	return newEvalResult(be.logHandler, result, execTime, ""), nil
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

	risorByteCode, ok := content.GetByteCode().(*risorCompiler.Code)
	if !ok {
		return nil, fmt.Errorf(
			"unable to type assert bytecode into *risorCompiler.Code for ID: %s",
			exeID,
		)
	}

	rawInputData, err := be.loadInputData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get input data: %w", err)
	}

	params, schema, err := data.SplitInput(rawInputData)
	if err != nil {
		return nil, fmt.Errorf("failed to convert input data: %w", err)
	}

	runtimeData, err := internal.ConvertToRisorOptions(params, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to convert input data: %w", err)
	}

	result, err := be.exec(ctx, risorByteCode, runtimeData...)
	if err != nil {
		return nil, fmt.Errorf("exec error: %w", err)
	}
	result.scriptExeID = exeID
	logger.DebugContext(ctx, "exec complete", "result", result)

	if result.Object.Type() == risorObject.ERROR {
		return result, fmt.Errorf("%w: %s", ErrScriptError, result.Inspect())
	}

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
