package neutralobj

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/neutralobj/go-neutralobj/engines/native/registry"
	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/object"
)

// Option configures a Host.
type Option func(*Host) error

// WithLogHandler sets the handler used by the host and every engine it creates.
func WithLogHandler(handler slog.Handler) Option {
	return func(h *Host) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		h.logHandler = handler
		h.logger = nil
		return nil
	}
}

// WithLogger sets the logger; its handler is also handed to the engines.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		h.logger = logger
		h.logHandler = logger.Handler()
		return nil
	}
}

// WithCurrentDir sets the directory that "#" and relative object paths resolve against.
func WithCurrentDir(dir string) Option {
	return func(h *Host) error {
		if dir == "" {
			return fmt.Errorf("current dir cannot be empty")
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("invalid current dir: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("invalid current dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("current dir %s is not a directory", abs)
		}
		h.currentDir = abs
		return nil
	}
}

// WithSchema sets the schema handed to objects that ask for it. It is normalized to plain
// JSON values first, so typed Go maps and slices read the same way in every engine.
func WithSchema(schema map[string]any) Option {
	return func(h *Host) error {
		normalized, err := object.NormalizeSchema(schema)
		if err != nil {
			return fmt.Errorf("invalid schema: %w", err)
		}
		h.schema = normalized
		return nil
	}
}

// WithNativeRegistry replaces the registry used by native objects.
func WithNativeRegistry(reg *registry.Registry) Option {
	return func(h *Host) error {
		if reg == nil {
			return fmt.Errorf("native registry cannot be nil")
		}
		h.registry = reg
		return nil
	}
}

func (h *Host) applyDefaults() error {
	if h.registry == nil {
		h.registry = registry.New()
		if err := registry.RegisterFixtures(h.registry); err != nil {
			return fmt.Errorf("failed to register fixtures: %w", err)
		}
	}
	return nil
}

func (h *Host) setupLogger() {
	if h.logger != nil {
		h.logHandler = h.logger.Handler()
		h.logger = h.logger.WithGroup("Host")
		return
	}
	h.logHandler, h.logger = helpers.SetupLogger(h.logHandler, "neutralobj", "Host")
}
