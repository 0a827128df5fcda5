package data

import (
	"context"
	"maps"
)

// StaticProvider returns the same input on every call. The host uses it for the params and
// schema taken from an object descriptor.
type StaticProvider struct {
	data map[string]any
}

// NewStaticProvider creates a StaticProvider, nil is treated as an empty map.
func NewStaticProvider(data map[string]any) *StaticProvider {
	if data == nil {
		data = make(map[string]any)
	}
	return &StaticProvider{data: data}
}

// GetData returns a clone of the static data so callers cannot modify the provider.
func (p *StaticProvider) GetData(ctx context.Context) (map[string]any, error) {
	return maps.Clone(p.data), nil
}

// AddDataToContext always fails, static data is fixed when the provider is created.
func (p *StaticProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	return ctx, ErrStaticProviderNoRuntimeUpdates
}
