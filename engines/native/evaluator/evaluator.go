package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/neutralobj/go-neutralobj/engines/native/compiler"
	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script"
)

var (
	ErrExecUnitNil    = errors.New("executable unit is nil")
	ErrNoDataProvider = errors.New("no data provider available")
)

// Evaluator calls registered Go functions
type Evaluator struct {
	execUnit   *script.ExecutableUnit
	logHandler slog.Handler
	logger     *slog.Logger
}

func New(handler slog.Handler, execUnit *script.ExecutableUnit) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "native", "Evaluator")
	return &Evaluator{
		execUnit:   execUnit,
		logHandler: handler,
		logger:     logger,
	}
}

func (be *Evaluator) String() string {
	return "native.Evaluator"
}

// Eval calls the function with params and schema from the data provider.
func (be *Evaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	if be.execUnit == nil {
		return nil, ErrExecUnitNil
	}
	logger := be.logger.WithGroup("Eval").With("exeID", be.execUnit.GetID())

	exe, ok := be.execUnit.GetContent().(*compiler.Executable)
	if !ok {
		return nil, fmt.Errorf(
			"invalid executable type: expected *compiler.Executable, got %T",
			be.execUnit.GetContent(),
		)
	}

	var input map[string]any
	if provider := be.execUnit.GetDataProvider(); provider != nil {
		var err error
		input, err = provider.GetData(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get input data: %w", err)
		}
	}

	params, schema, err := data.SplitInput(input)
	if err != nil {
		return nil, fmt.Errorf("failed to convert input data: %w", err)
	}

	startTime := time.Now()
	out, err := exe.GetFunc()(ctx, params, schema)
	execTime := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("native call %q failed: %w", exe.GetCallback(), err)
	}

	logger.DebugContext(ctx, "exec complete", "result", out, "execTime", execTime)
	return &execResult{value: out, execTime: execTime, scriptExeID: be.execUnit.GetID()}, nil
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

type execResult struct {
	value       map[string]any
	execTime    time.Duration
	scriptExeID string
}

func (r *execResult) Type() data.Types {
	if r.value == nil {
		return data.NONE
	}
	return data.MAP
}

func (r *execResult) Inspect() string {
	return fmt.Sprintf("%v", r.value)
}

func (r *execResult) Interface() any {
	if r.value == nil {
		return nil
	}
	return r.value
}

func (r *execResult) GetScriptExeID() string {
	return r.scriptExeID
}

func (r *execResult) GetExecTime() string {
	return r.execTime.String()
}
