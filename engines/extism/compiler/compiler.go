package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	extismSDK "github.com/extism/go-sdk"
	"github.com/neutralobj/go-neutralobj/engines/extism/adapters"
	"github.com/neutralobj/go-neutralobj/platform/script"
	"github.com/tetratelabs/wazero"
)

// Compiler compiles wasm modules with the Extism SDK
type Compiler struct {
	callback      string
	enableWASI    bool
	runtimeConfig wazero.RuntimeConfig
	hostFunctions []extismSDK.HostFunction
	logHandler    slog.Handler
	logger        *slog.Logger

	// compileFn is swapped in tests
	compileFn func(ctx context.Context, wasm []byte) (adapters.CompiledPlugin, error)
}

// New creates a Compiler with WASI enabled and "main" as the callback export.
func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}
	c.applyDefaults()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	c.setupLogger()
	c.compileFn = c.compileSDK
	return c, nil
}

func (c *Compiler) String() string {
	return "extism.Compiler"
}

// Compile reads the module bytes, compiles them, and checks that the callback is exported.
func (c *Compiler) Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error) {
	if scriptReader == nil {
		return nil, ErrContentNil
	}

	scriptBytes, err := io.ReadAll(scriptReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	if err := scriptReader.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}

	return c.compile(context.Background(), scriptBytes)
}

func (c *Compiler) compile(ctx context.Context, scriptBytes []byte) (*Executable, error) {
	logger := c.logger.WithGroup("compile")
	if len(scriptBytes) == 0 {
		logger.Error("Compile called with empty module")
		return nil, ErrContentNil
	}

	plugin, err := c.compileFn(ctx, scriptBytes)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := c.checkCallback(ctx, plugin); err != nil {
		if closeErr := plugin.Close(ctx); closeErr != nil {
			logger.Warn("Failed to close plugin", "error", closeErr)
		}
		return nil, err
	}

	exe := NewExecutable(scriptBytes, plugin, c.callback)
	if exe == nil {
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Validation completed", "callback", c.callback)
	return exe, nil
}

// checkCallback instantiates the module once to look for the callback export.
func (c *Compiler) checkCallback(ctx context.Context, plugin adapters.CompiledPlugin) error {
	instance, err := plugin.Instance(ctx, adapters.NewPluginInstanceConfig())
	if err != nil {
		return fmt.Errorf("%w: failed to create instance: %w", ErrValidationFailed, err)
	}
	defer func() {
		if err := instance.Close(ctx); err != nil {
			c.logger.Warn("Failed to close plugin instance", "error", err)
		}
	}()

	if !instance.FunctionExists(c.callback) {
		return fmt.Errorf("%w: %q", ErrCallbackNotDefined, c.callback)
	}
	return nil
}

func (c *Compiler) compileSDK(ctx context.Context, wasm []byte) (adapters.CompiledPlugin, error) {
	manifest := extismSDK.Manifest{
		Wasm: []extismSDK.Wasm{
			extismSDK.WasmData{Data: wasm},
		},
	}

	config := extismSDK.PluginConfig{
		EnableWasi:    c.enableWASI,
		RuntimeConfig: c.runtimeConfig,
	}

	plugin, err := extismSDK.NewCompiledPlugin(ctx, manifest, config, c.hostFunctions)
	if err != nil {
		return nil, err
	}
	return adapters.NewCompiledPluginAdapter(plugin), nil
}
