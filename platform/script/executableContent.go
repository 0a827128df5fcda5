package script

import (
	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
)

// ExecutableContent is a compiled neutral object, ready to be called.
type ExecutableContent interface {
	// GetSource returns the original script content. Binary modules return their raw bytes.
	GetSource() string

	// GetByteCode returns the engine specific compiled form. Each evaluator asserts it into
	// the type it needs and fails at runtime on a mismatch.
	GetByteCode() any

	// GetEngineType returns the engine this content was compiled for.
	GetEngineType() engineTypes.Type

	// GetCallback returns the name of the function called on Eval.
	GetCallback() string
}
