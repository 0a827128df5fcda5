package extism

import (
	"fmt"
	"log/slog"

	"github.com/neutralobj/go-neutralobj/engines/extism/compiler"
	"github.com/neutralobj/go-neutralobj/engines/extism/evaluator"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script"
	"github.com/neutralobj/go-neutralobj/platform/script/loader"
)

// FromExtismLoader creates an Extism evaluator with dynamic data only (ContextProvider).
// The module must export callback.
func FromExtismLoader(
	logHandler slog.Handler,
	ldr loader.Loader,
	callback string,
	opts ...compiler.FunctionalOption,
) (*evaluator.Evaluator, error) {
	return NewEvaluator(
		logHandler,
		ldr,
		data.NewContextProvider(constants.EvalData),
		append(opts, compiler.WithCallback(callback))...,
	)
}

// FromExtismLoaderWithData creates an Extism evaluator with both static and dynamic data.
func FromExtismLoaderWithData(
	logHandler slog.Handler,
	ldr loader.Loader,
	staticData map[string]any,
	callback string,
	opts ...compiler.FunctionalOption,
) (*evaluator.Evaluator, error) {
	provider := data.NewCompositeProvider(
		data.NewStaticProvider(staticData),
		data.NewContextProvider(constants.EvalData),
	)
	return NewEvaluator(logHandler, ldr, provider, append(opts, compiler.WithCallback(callback))...)
}

// NewCompiler creates a new Extism compiler using the functional options pattern.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// NewEvaluator compiles the module from ldr and returns an evaluator ready to be called.
func NewEvaluator(
	logHandler slog.Handler,
	ldr loader.Loader,
	dataProvider data.Provider,
	opts ...compiler.FunctionalOption,
) (*evaluator.Evaluator, error) {
	if dataProvider == nil {
		return nil, fmt.Errorf("provider is nil")
	}

	if logHandler != nil {
		opts = append([]compiler.FunctionalOption{compiler.WithLogHandler(logHandler)}, opts...)
	}
	c, err := NewCompiler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Extism compiler: %w", err)
	}

	execUnit, err := script.NewExecutableUnit(logHandler, "", ldr, c, dataProvider)
	if err != nil {
		return nil, err
	}

	return evaluator.New(logHandler, execUnit), nil
}
