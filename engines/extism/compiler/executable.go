package compiler

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/neutralobj/go-neutralobj/engines/extism/adapters"
	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
)

// Executable is a compiled wasm module together with the name of its callback export
type Executable struct {
	scriptBytes []byte
	ByteCode    adapters.CompiledPlugin
	callback    string
	closed      atomic.Bool
	rwMutex     sync.RWMutex
}

// NewExecutable returns nil when any argument is empty.
func NewExecutable(
	scriptBytes []byte,
	byteCode adapters.CompiledPlugin,
	callback string,
) *Executable {
	if len(scriptBytes) == 0 || byteCode == nil || callback == "" {
		return nil
	}
	return &Executable{
		scriptBytes: scriptBytes,
		ByteCode:    byteCode,
		callback:    callback,
	}
}

// GetSource returns the raw module bytes as a string
func (e *Executable) GetSource() string {
	return string(e.scriptBytes)
}

func (e *Executable) GetByteCode() any {
	e.rwMutex.RLock()
	defer e.rwMutex.RUnlock()
	return e.ByteCode
}

// GetExtismByteCode returns the compiled plugin, or nil once closed
func (e *Executable) GetExtismByteCode() adapters.CompiledPlugin {
	e.rwMutex.RLock()
	defer e.rwMutex.RUnlock()
	if e.closed.Load() {
		return nil
	}
	return e.ByteCode
}

// WithPlugin runs fn with the compiled plugin. Close waits until fn returns, so the plugin
// stays usable for the whole call. Returns ErrExecutableClosed once closed.
func (e *Executable) WithPlugin(fn func(adapters.CompiledPlugin) error) error {
	e.rwMutex.RLock()
	defer e.rwMutex.RUnlock()
	if e.closed.Load() {
		return ErrExecutableClosed
	}
	return fn(e.ByteCode)
}

func (e *Executable) GetEngineType() engineTypes.Type {
	return engineTypes.Extism
}

func (e *Executable) GetCallback() string {
	return e.callback
}

// IsClosed reports whether Close has been called
func (e *Executable) IsClosed() bool {
	return e.closed.Load()
}

// Close releases the compiled module. Only the first call has an effect.
func (e *Executable) Close(ctx context.Context) error {
	e.rwMutex.Lock()
	defer e.rwMutex.Unlock()

	if e.closed.CompareAndSwap(false, true) {
		return e.ByteCode.Close(ctx)
	}
	return nil
}
