package risor

import (
	"fmt"
	"log/slog"

	"github.com/neutralobj/go-neutralobj/engines/risor/compiler"
	"github.com/neutralobj/go-neutralobj/engines/risor/evaluator"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script"
	"github.com/neutralobj/go-neutralobj/platform/script/loader"
)

// FromRisorLoader creates a Risor evaluator with dynamic data only (ContextProvider).
func FromRisorLoader(
	logHandler slog.Handler,
	ldr loader.Loader,
	opts ...compiler.FunctionalOption,
) (*evaluator.Evaluator, error) {
	return NewEvaluator(logHandler, ldr, data.NewContextProvider(constants.EvalData), opts...)
}

// FromRisorLoaderWithData creates a Risor evaluator with both static and dynamic data.
// Context data added with AddDataToContext is merged over staticData.
func FromRisorLoaderWithData(
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

// NewCompiler creates a new Risor compiler using the functional options pattern.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// NewEvaluator creates a Risor evaluator with bytecode loaded, and ready for execution.
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
		return nil, fmt.Errorf("failed to create Risor compiler: %w", err)
	}

	execUnit, err := script.NewExecutableUnit(logHandler, "", ldr, c, dataProvider)
	if err != nil {
		return nil, err
	}

	return evaluator.New(logHandler, execUnit), nil
}
