package compiler

import (
	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
	risorCompiler "github.com/risor-io/risor/compiler"
)

// Executable is a compiled Risor object. The bytecode ends with the callback call, the
// source is kept as written.
type Executable struct {
	scriptBodyBytes []byte
	ByteCode        *risorCompiler.Code
	callback        string
}

func newExecutable(scriptBodyBytes []byte, byteCode *risorCompiler.Code, callback string) *Executable {
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

func (e *Executable) GetRisorByteCode() *risorCompiler.Code {
	return e.ByteCode
}

func (e *Executable) GetEngineType() engineTypes.Type {
	return engineTypes.Risor
}

func (e *Executable) GetCallback() string {
	return e.callback
}
