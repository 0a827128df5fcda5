package object

import "errors"

var (
	ErrFileMissing        = errors.New("object descriptor has no file")
	ErrInvalidDescriptor  = errors.New("invalid object descriptor")
	ErrUnsupportedEngine  = errors.New("unsupported object engine")
	ErrDescriptorNotFound = errors.New("object descriptor not found")
)
