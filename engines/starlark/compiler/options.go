package compiler

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform/constants"
)

// FunctionalOption is a function that configures a Compiler instance
type FunctionalOption func(*Compiler) error

// WithCallback sets the function the evaluator calls, "main" by default.
func WithCallback(name string) FunctionalOption {
	return func(c *Compiler) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("callback name cannot be empty")
		}
		c.callback = name
		return nil
	}
}

// WithGlobals adds names that will be bound at eval time, so scripts referencing them compile.
// The schema global is always declared.
func WithGlobals(globals []string) FunctionalOption {
	return func(c *Compiler) error {
		for _, g := range globals {
			if !slices.Contains(c.globals, g) {
				c.globals = append(c.globals, g)
			}
		}
		return nil
	}
}

// WithLogHandler creates an option to set the log handler for Starlark compiler.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		c.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for Starlark compiler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(c *Compiler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		c.logHandler = nil
		return nil
	}
}

// setupLogger configures the logger and handler based on the current state.
func (c *Compiler) setupLogger() {
	if c.logger != nil {
		c.logHandler = c.logger.Handler()
		return
	}
	c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "starlark", "Compiler")
}

func (c *Compiler) validate() error {
	if c.logHandler == nil && c.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	if c.callback == "" {
		return fmt.Errorf("callback name cannot be empty")
	}
	return nil
}

func (c *Compiler) applyDefaults() {
	if c.logHandler == nil && c.logger == nil {
		c.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
	if c.callback == "" {
		c.callback = constants.DefaultCallback
	}
	if !slices.Contains(c.globals, constants.SchemaGlobal) {
		c.globals = append(c.globals, constants.SchemaGlobal)
	}
}
