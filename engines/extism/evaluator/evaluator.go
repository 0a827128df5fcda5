package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	extismSDK "github.com/extism/go-sdk"
	"github.com/neutralobj/go-neutralobj/engines/extism/adapters"
	"github.com/neutralobj/go-neutralobj/engines/extism/compiler"
	"github.com/neutralobj/go-neutralobj/engines/extism/internal"
	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script"
)

var (
	ErrExecUnitNil    = errors.New("executable unit is nil")
	ErrNoDataProvider = errors.New("no data provider available")
	ErrNonZeroExit    = errors.New("function returned non-zero exit code")
)

// Evaluator calls the callback export of a compiled wasm module
type Evaluator struct {
	execUnit   *script.ExecutableUnit
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Evaluator object
func New(handler slog.Handler, execUnit *script.ExecutableUnit) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "extism", "Evaluator")

	return &Evaluator{
		execUnit:   execUnit,
		logHandler: handler,
		logger:     logger,
	}
}

func (be *Evaluator) String() string {
	return "extism.Evaluator"
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

// execHelper calls the export on an instance and decodes its output.
func execHelper(
	ctx context.Context,
	logger *slog.Logger,
	instance adapters.PluginInstance,
	callback string,
	inputJSON []byte,
) (any, time.Duration, error) {
	startTime := time.Now()
	exit, output, err := instance.CallWithContext(ctx, callback, inputJSON)
	execTime := time.Since(startTime)
	if err != nil {
		if ctx.Err() != nil {
			return nil, execTime, fmt.Errorf("execution cancelled: %w", ctx.Err())
		}
		return nil, execTime, fmt.Errorf("execution failed: %w", err)
	}
	if exit != 0 {
		return nil, execTime, fmt.Errorf("%w: %d", ErrNonZeroExit, exit)
	}

	result := internal.DecodeOutput(output)
	logger.DebugContext(ctx, "execution complete", "result", result, "execTime", execTime)
	return result, execTime, nil
}

// exec creates a fresh instance for the call and closes it afterwards.
func (be *Evaluator) exec(
	ctx context.Context,
	plugin adapters.CompiledPlugin,
	callback string,
	instanceConfig extismSDK.PluginInstanceConfig,
	inputJSON []byte,
) (*execResult, error) {
	logger := be.logger.WithGroup("exec")

	instance, err := plugin.Instance(ctx, instanceConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin instance: %w", err)
	}
	defer func() {
		if err := instance.Close(ctx); err != nil {
			logger.Warn("Failed to close Extism plugin instance", "error", err)
		}
	}()

	result, execTime, err := execHelper(ctx, logger, instance, callback, inputJSON)
	if err != nil {
		return nil, fmt.Errorf("extism execution error: %w", err)
	}
	return newEvalResult(be.logHandler, result, execTime, ""), nil
}

// Eval calls the callback export with the JSON encoded input from the data provider.
func (be *Evaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	logger := be.logger.WithGroup("Eval")
	if be.execUnit == nil {
		return nil, ErrExecUnitNil
	}

	if be.execUnit.GetContent() == nil {
		return nil, fmt.Errorf("content is nil")
	}

	exeID := be.execUnit.GetID()
	if exeID == "" {
		return nil, fmt.Errorf("exeID is empty")
	}
	logger = logger.With("exeID", exeID)

	wasmExe, ok := be.execUnit.GetContent().(*compiler.Executable)
	if !ok {
		return nil, fmt.Errorf(
			"invalid executable type: expected *Executable, got %T",
			be.execUnit.GetContent(),
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

	inputJSON, err := internal.ConvertToExtismFormat(params, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input data: %w", err)
	}

	var result *execResult
	err = wasmExe.WithPlugin(func(plugin adapters.CompiledPlugin) error {
		var execErr error
		result, execErr = be.exec(
			ctx,
			plugin,
			wasmExe.GetCallback(),
			adapters.NewPluginInstanceConfig(),
			inputJSON,
		)
		return execErr
	})
	if err != nil {
		return nil, fmt.Errorf("exec error: %w", err)
	}
	result.scriptExeID = exeID
	logger.DebugContext(ctx, "exec completed", "result", result)

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

// Close releases the compiled module held by the executable unit.
func (be *Evaluator) Close(ctx context.Context) error {
	if be.execUnit == nil {
		return nil
	}
	if wasmExe, ok := be.execUnit.GetContent().(*compiler.Executable); ok {
		return wasmExe.Close(ctx)
	}
	return nil
}
