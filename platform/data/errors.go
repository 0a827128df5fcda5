package data

import "errors"

var (
	// ErrStaticProviderNoRuntimeUpdates is returned by StaticProvider.AddDataToContext.
	ErrStaticProviderNoRuntimeUpdates = errors.New("static provider does not accept runtime data")

	ErrEmptyContextKey = errors.New("context key is empty")
	ErrInvalidInput    = errors.New("invalid invocation input")
)
