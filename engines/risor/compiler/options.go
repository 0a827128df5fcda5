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

// WithCallback sets the function called with the params global, "main" by default.
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

// WithGlobals adds names that will be bound at eval time.
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

// WithLogHandler creates an option to set the log handler for Risor compiler.
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

// WithLogger creates an option to set a specific logger for Risor compiler.
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

func (c *Compiler) setupLogger() {
	if c.logger != nil {
		c.logHandler = c.logger.Handler()
		return
	}
	c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "risor", "Compiler")
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
	for _, g := range []string{constants.Params, constants.SchemaGlobal} {
		if !slices.Contains(c.globals, g) {
			c.globals = append(c.globals, g)
		}
	}
}
