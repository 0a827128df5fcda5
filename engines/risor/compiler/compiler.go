package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/neutralobj/go-neutralobj/platform/script"
	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"
)

// Compiler turns a Risor object into bytecode that calls the callback with the params global.
type Compiler struct {
	callback   string
	globals    []string
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Compiler. Without options the callback is "main" and the params and schema
// globals are declared.
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
	return c, nil
}

func (c *Compiler) String() string {
	return "risor.Compiler"
}

// Compile reads the object and compiles it followed by a call to the callback. A missing
// callback surfaces as an undefined variable error.
func (c *Compiler) Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error) {
	if scriptReader == nil {
		return nil, ErrContentNil
	}

	scriptBodyBytes, err := io.ReadAll(scriptReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	if err := scriptReader.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}

	return c.compile(scriptBodyBytes)
}

func (c *Compiler) compile(scriptBodyBytes []byte) (*Executable, error) {
	logger := c.logger.WithGroup("compile")
	if len(scriptBodyBytes) == 0 {
		logger.Error("Compile called with empty script")
		return nil, ErrContentNil
	}

	source := string(scriptBodyBytes) + c.callTrailer()
	logger.Debug("Starting validation", "callback", c.callback, "globals", c.globals)

	ast, err := risorParser.Parse(context.Background(), source)
	if err != nil {
		errMsg := err.Error()
		var friendlyErr risorErrors.FriendlyError
		if errors.As(err, &friendlyErr) {
			errMsg = friendlyErr.FriendlyErrorMessage()
		}
		logger.Warn("Parse failed", "error", errMsg)
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errMsg)
	}

	globalNames := append(risorLib.NewConfig().GlobalNames(), c.globals...)
	bc, err := risorCompiler.Compile(ast, risorCompiler.WithGlobalNames(globalNames))
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if bc == nil {
		logger.Error("Compilation returned nil bytecode")
		return nil, ErrBytecodeNil
	}

	if bc.InstructionCount() == 0 {
		logger.Warn("Compilation returned empty bytecode")
		return nil, ErrNoInstructions
	}

	exe := newExecutable(scriptBodyBytes, bc, c.callback)
	if exe == nil {
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Validation completed")
	return exe, nil
}

// callTrailer is appended to the source so the program's value is the callback's result.
func (c *Compiler) callTrailer() string {
	return fmt.Sprintf("\n%s(%s)\n", c.callback, constants.Params)
}
