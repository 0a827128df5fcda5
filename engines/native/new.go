// Package native runs Go functions registered by name as neutral objects.
package native

import (
	"fmt"
	"log/slog"

	"github.com/neutralobj/go-neutralobj/engines/native/compiler"
	"github.com/neutralobj/go-neutralobj/engines/native/evaluator"
	"github.com/neutralobj/go-neutralobj/engines/native/registry"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script"
	"github.com/neutralobj/go-neutralobj/platform/script/loader"
)

// NewEvaluator resolves the function named by ldr's content in reg.
func NewEvaluator(
	logHandler slog.Handler,
	ldr loader.Loader,
	dataProvider data.Provider,
	reg *registry.Registry,
) (*evaluator.Evaluator, error) {
	if dataProvider == nil {
		return nil, fmt.Errorf("provider is nil")
	}

	c, err := compiler.New(logHandler, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to create native compiler: %w", err)
	}

	execUnit, err := script.NewExecutableUnit(logHandler, "", ldr, c, dataProvider)
	if err != nil {
		return nil, err
	}
	return evaluator.New(logHandler, execUnit), nil
}
