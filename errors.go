package neutralobj

import "errors"

var (
	ErrInvalidResult      = errors.New("object returned an invalid result")
	ErrObjectFileNotFound = errors.New("object file not found")
	ErrObjectNil          = errors.New("object descriptor is nil")
	ErrNoEvaluator        = errors.New("evaluator has no engine")
)
