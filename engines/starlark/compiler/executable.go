package compiler

import (
	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
	starlarkLib "go.starlark.net/starlark"
)

// Executable is a compiled Starlark object.
type Executable struct {
	scriptBodyBytes []byte
	ByteCode        *starlarkLib.Program
	callback        string
}

func newExecutable(scriptBodyBytes []byte, byteCode *starlarkLib.Program, callback string) *Executable {
	if len(scriptBodyBytes) == 0 || byteCode == nil {
		return nil
	}

	return &Executable{
		scriptBodyBytes: scriptBodyBytes,
		ByteCode:        byteCode,
		callback:        callback,
	}
}

func (e *Executable) GetSource() string {
	return string(e.scriptBodyBytes)
}

func (e *Executable) GetByteCode() any {
	return e.ByteCode
}

func (e *Executable) GetStarlarkByteCode() *starlarkLib.Program {
	return e.ByteCode
}

func (e *Executable) GetEngineType() engineTypes.Type {
	return engineTypes.Starlark
}

func (e *Executable) GetCallback() string {
	return e.callback
}
