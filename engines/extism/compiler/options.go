package compiler

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	extismSDK "github.com/extism/go-sdk"
	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/tetratelabs/wazero"
)

// FunctionalOption is a function that configures a Compiler instance
type FunctionalOption func(*Compiler) error

// WithCallback sets the exported function called on Eval, "main" by default.
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

// WithLogHandler creates an option to set the log handler for Extism compiler.
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

// WithLogger creates an option to set a specific logger for Extism compiler.
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

// WithWASIEnabled enables or disables WASI support, enabled by default.
func WithWASIEnabled(enabled bool) FunctionalOption {
	return func(c *Compiler) error {
		c.enableWASI = enabled
		return nil
	}
}

// WithRuntimeConfig sets a custom wazero runtime configuration.
func WithRuntimeConfig(config wazero.RuntimeConfig) FunctionalOption {
	return func(c *Compiler) error {
		if config == nil {
			return fmt.Errorf("runtime config cannot be nil")
		}
		c.runtimeConfig = config
		return nil
	}
}

// WithHostFunctions registers host functions the module may import.
func WithHostFunctions(funcs []extismSDK.HostFunction) FunctionalOption {
	return func(c *Compiler) error {
		c.hostFunctions = funcs
		return nil
	}
}

func (c *Compiler) setupLogger() {
	if c.logger != nil {
		c.logHandler = c.logger.Handler()
		return
	}
	c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "extism", "Compiler")
}

func (c *Compiler) validate() error {
	if c.logHandler == nil && c.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	if c.callback == "" {
		return fmt.Errorf("callback name cannot be empty")
	}
	if c.runtimeConfig == nil {
		return fmt.Errorf("runtime config cannot be nil")
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
	c.enableWASI = true
	if c.runtimeConfig == nil {
		c.runtimeConfig = wazero.NewRuntimeConfig()
	}
	if c.hostFunctions == nil {
		c.hostFunctions = []extismSDK.HostFunction{}
	}
}
