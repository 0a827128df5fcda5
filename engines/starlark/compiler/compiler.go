package compiler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/neutralobj/go-neutralobj/engines/starlark/internal"
	"github.com/neutralobj/go-neutralobj/platform/script"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Compiler turns a Starlark ("python") object into a program whose callback can be called.
type Compiler struct {
	callback   string
	globals    []string
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Compiler. Without options the callback is "main" and only the schema
// global is predeclared.
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
	return "starlark.Compiler"
}

// Compile reads, parses and compiles the object, and checks that the callback is a
// top-level function definition.
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

	logger.Debug("Starting validation", "callback", c.callback, "globals", c.globals)

	opts := &syntax.FileOptions{
		// predeclared globals are rebound on every call
		GlobalReassign: true,
	}

	f, err := opts.Parse("", scriptBodyBytes, 0)
	if err != nil {
		logger.Warn("Parse failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if !definesFunction(f, c.callback) {
		logger.Warn("Callback not found", "callback", c.callback)
		return nil, fmt.Errorf("%w: %q", ErrCallbackNotDefined, c.callback)
	}

	predeclared := c.predeclared()
	program, err := starlarkLib.FileProgram(f, predeclared.Has)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if program == nil {
		logger.Error("Compilation returned nil program")
		return nil, ErrBytecodeNil
	}

	exe := newExecutable(scriptBodyBytes, program, c.callback)
	if exe == nil {
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Validation completed")
	return exe, nil
}

// predeclared returns the standard modules plus a None placeholder for each eval-time global.
func (c *Compiler) predeclared() starlarkLib.StringDict {
	predeclared := internal.StarlarkModules()
	for _, name := range c.globals {
		if predeclared.Has(name) {
			continue
		}
		predeclared[name] = starlarkLib.None
	}
	return predeclared
}

// definesFunction reports whether the file has a top-level "def name(...)".
func definesFunction(f *syntax.File, name string) bool {
	for _, stmt := range f.Stmts {
		def, ok := stmt.(*syntax.DefStmt)
		if ok && def.Name.Name == name {
			return true
		}
	}
	return false
}
