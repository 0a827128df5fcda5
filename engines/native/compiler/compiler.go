// Package compiler resolves native objects: the "source" is the name of a registered function.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/neutralobj/go-neutralobj/engines/native/registry"
	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform/script"
)

var (
	ErrContentNil  = errors.New("native function name is empty")
	ErrRegistryNil = errors.New("native registry is nil")
)

type Compiler struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// New returns a compiler resolving names against reg.
func New(handler slog.Handler, reg *registry.Registry) (*Compiler, error) {
	if reg == nil {
		return nil, ErrRegistryNil
	}
	_, logger := helpers.SetupLogger(handler, "native", "Compiler")
	return &Compiler{registry: reg, logger: logger}, nil
}

func (c *Compiler) String() string {
	return "native.Compiler"
}

// Compile reads a function name and resolves it in the registry.
func (c *Compiler) Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error) {
	if scriptReader == nil {
		return nil, ErrContentNil
	}

	raw, err := io.ReadAll(scriptReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read function name: %w", err)
	}
	if err := scriptReader.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}

	name := strings.TrimSpace(string(raw))
	if name == "" {
		return nil, ErrContentNil
	}

	fn, err := c.registry.Lookup(name)
	if err != nil {
		c.logger.Warn("Function not registered", "name", name, "known", c.registry.Names())
		return nil, err
	}

	c.logger.Debug("Resolved native function", "name", name)
	return &Executable{name: name, fn: fn}, nil
}

// Executable is a resolved native function
type Executable struct {
	name string
	fn   registry.Func
}

func (e *Executable) GetSource() string {
	return e.name
}

func (e *Executable) GetByteCode() any {
	return e.fn
}

// GetFunc returns the registered function
func (e *Executable) GetFunc() registry.Func {
	return e.fn
}

func (e *Executable) GetEngineType() engineTypes.Type {
	return engineTypes.Native
}

func (e *Executable) GetCallback() string {
	return e.name
}
