// Package neutralobj calls neutral script objects: it reads an object descriptor, compiles the
// object's file with the engine the descriptor names, calls the callback with the descriptor's
// params and hands back the "data" mapping the callback returns.
//
// Compile once, call many times:
//
//	host, _ := neutralobj.NewHost(neutralobj.WithSchema(schema))
//	ev, _ := host.Load(ctx, &object.Object{File: "#/script.star", Schema: true})
//	defer ev.Close(ctx)
//	res, _ := ev.Eval(ctx)
package neutralobj

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/neutralobj/go-neutralobj/engines/extism"
	extismCompiler "github.com/neutralobj/go-neutralobj/engines/extism/compiler"
	"github.com/neutralobj/go-neutralobj/engines/native"
	"github.com/neutralobj/go-neutralobj/engines/native/registry"
	"github.com/neutralobj/go-neutralobj/engines/risor"
	risorCompiler "github.com/neutralobj/go-neutralobj/engines/risor/compiler"
	"github.com/neutralobj/go-neutralobj/engines/starlark"
	starlarkCompiler "github.com/neutralobj/go-neutralobj/engines/starlark/compiler"
	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
	"github.com/neutralobj/go-neutralobj/object"
	"github.com/neutralobj/go-neutralobj/platform"
	"github.com/neutralobj/go-neutralobj/platform/constants"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script/loader"
)

// Host compiles and calls neutral objects. It is safe for concurrent use.
type Host struct {
	currentDir string
	schema     map[string]any
	registry   *registry.Registry

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewHost creates a Host configured by opts.
func NewHost(opts ...Option) (*Host, error) {
	h := &Host{}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, fmt.Errorf("error applying host option: %w", err)
		}
	}
	if err := h.applyDefaults(); err != nil {
		return nil, err
	}
	h.setupLogger()
	return h, nil
}

func (h *Host) String() string {
	return "neutralobj.Host"
}

// Registry returns the registry native objects are looked up in.
func (h *Host) Registry() *registry.Registry {
	return h.registry
}

// Load compiles the object and returns an Evaluator that can be called many times.
// Relative and "#" paths resolve against the host's current dir.
func (h *Host) Load(ctx context.Context, obj *object.Object) (*Evaluator, error) {
	return h.load(ctx, obj, h.currentDir)
}

// Invoke loads the object, calls it once and releases it.
func (h *Host) Invoke(ctx context.Context, obj *object.Object) (*Result, error) {
	return h.invoke(ctx, obj, h.currentDir)
}

// InvokeFile reads a descriptor file and invokes it. Without WithCurrentDir, paths inside the
// descriptor resolve against the descriptor's own directory.
func (h *Host) InvokeFile(ctx context.Context, path string) (*Result, error) {
	base, err := h.baseDir()
	if err != nil {
		return nil, err
	}
	if rest, ok := strings.CutPrefix(path, object.CurrentDirPrefix); ok {
		path = filepath.Join(base, rest)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}

	obj, err := object.Load(path)
	if err != nil {
		return nil, err
	}

	dir := h.currentDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	return h.invoke(ctx, obj, dir)
}

// InvokeInline parses a JSON descriptor and invokes it.
func (h *Host) InvokeInline(ctx context.Context, raw []byte) (*Result, error) {
	obj, err := object.Parse(raw)
	if err != nil {
		return nil, err
	}
	return h.invoke(ctx, obj, h.currentDir)
}

func (h *Host) invoke(ctx context.Context, obj *object.Object, dir string) (*Result, error) {
	ev, err := h.load(ctx, obj, dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ev.Close(ctx); err != nil {
			h.logger.WarnContext(ctx, "failed to release object", "file", ev.obj.File, "error", err)
		}
	}()
	return ev.Eval(ctx)
}

func (h *Host) baseDir() (string, error) {
	if h.currentDir != "" {
		return h.currentDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

func (h *Host) load(ctx context.Context, obj *object.Object, dir string) (*Evaluator, error) {
	logger := h.logger.WithGroup("load")
	if obj == nil {
		return nil, ErrObjectNil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, err := obj.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	engine, err := resolved.EngineType()
	if err != nil {
		return nil, err
	}
	logger = logger.With("engine", engine, "file", resolved.File, "callback", resolved.Callback)

	ldr, err := h.loaderFor(engine, resolved.File)
	if err != nil {
		return nil, err
	}

	staticData := data.NewInput(resolved.Params, h.schemaFor(resolved))
	logger.DebugContext(ctx, "static input prepared", "input", staticData)
	provider := data.NewCompositeProvider(
		data.NewStaticProvider(staticData),
		data.NewContextProvider(constants.EvalData),
	)

	var ev platform.Evaluator
	switch engine {
	case engineTypes.Starlark:
		ev, err = starlark.NewEvaluator(h.logHandler, ldr, provider,
			starlarkCompiler.WithCallback(resolved.Callback))
	case engineTypes.Risor:
		ev, err = risor.NewEvaluator(h.logHandler, ldr, provider,
			risorCompiler.WithCallback(resolved.Callback))
	case engineTypes.Extism:
		ev, err = extism.NewEvaluator(h.logHandler, ldr, provider,
			extismCompiler.WithCallback(resolved.Callback))
	case engineTypes.Native:
		ev, err = native.NewEvaluator(h.logHandler, ldr, provider, h.registry)
	default:
		return nil, fmt.Errorf("%w: %s", object.ErrUnsupportedEngine, engine)
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to compile object", "error", err)
		return nil, fmt.Errorf("failed to load object %s: %w", resolved.File, err)
	}

	logger.DebugContext(ctx, "object loaded")
	return newEvaluator(h.logHandler, ev, resolved), nil
}

// loaderFor reads the object file from disk, or the function name for native objects.
func (h *Host) loaderFor(engine engineTypes.Type, file string) (loader.Loader, error) {
	if engine == engineTypes.Native {
		return loader.NewFromString(file)
	}

	info, err := os.Stat(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectFileNotFound, file)
		}
		return nil, fmt.Errorf("failed to stat object file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrObjectFileNotFound, file)
	}
	return loader.NewFromDisk(file)
}

// schemaFor returns the host schema when the object asks for it.
func (h *Host) schemaFor(obj *object.Object) map[string]any {
	if !obj.Schema {
		return nil
	}
	if h.schema == nil {
		h.logger.Warn("object asks for the schema but the host has none", "file", obj.File)
		return nil
	}
	return h.schema
}
