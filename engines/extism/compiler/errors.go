package compiler

import "errors"

var (
	ErrContentNil         = errors.New("wasm content is nil")
	ErrExecCreationFailed = errors.New("unable to create wasm executable")
	ErrValidationFailed   = errors.New("wasm module validation error")
	ErrCallbackNotDefined = errors.New("wasm module does not export the callback")
	ErrExecutableClosed   = errors.New("executable is closed")
)
