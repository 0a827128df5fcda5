package starlark

import (
	"fmt"
	"log/slog"

	"github.com/neutralobj/go-neutralobj/engines/starlark/compiler"
	"github.com/neutralobj/go-neutralobj/engines/starlark/evaluator"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script"
	"github.com/neutralobj/go-neutralobj/platform/script/loader"
)

// FromStarlarkLoader creates a Starlark evaluator whose input comes only from the context,
// see Evaluator.AddDataToContext.
func FromStarlarkLoader(
	logHandler slog.Handler,
	ldr loader.Loader,
	opts ...compiler.FunctionalOption,
) (*evaluator.Evaluator, error) {
	return NewEvaluator(logHandler, ldr, data.NewContextProvider(constants.EvalData), opts...)
}

// FromStarlarkLoaderWithData creates a Starlark evaluator with fixed input (usually built with
// data.NewInput) that per-call context data is merged over.
func FromStarlarkLoaderWithData(
	logHandler slog.Handler,
	ldr loader.Loader,
	staticData map[string]any,
	opts ...compiler.FunctionalOption,
) (*evaluator.Evaluator, error) {
	provider := data.NewCompositeProvider(
		data.NewStaticProvider(staticData),
		data.NewContextProvider(constants.EvalData),
	)
	return NewEvaluator(logHandler, ldr, provider, opts...)
}

// NewCompiler creates a new Starlark compiler using the functional options pattern.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// NewEvaluator compiles the object from ldr and returns an evaluator ready to be called.
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
		return nil, fmt.Errorf("failed to create Starlark compiler: %w", err)
	}

	execUnit, err := script.NewExecutableUnit(logHandler, "", ldr, c, dataProvider)
	if err != nil {
		return nil, err
	}

	return evaluator.New(logHandler, execUnit), nil
}
