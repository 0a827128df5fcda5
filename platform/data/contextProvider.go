package data

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/neutralobj/go-neutralobj/platform/constants"
)

// ContextProvider retrieves and stores data in the context using a specified key.
type ContextProvider struct {
	contextKey constants.ContextKey
}

// NewContextProvider creates a new ContextProvider with the given context key.
func NewContextProvider(contextKey constants.ContextKey) *ContextProvider {
	return &ContextProvider{contextKey: contextKey}
}

// GetData extracts data from the context using the configured context key.
// A context without data yields an empty map.
func (p *ContextProvider) GetData(ctx context.Context) (map[string]any, error) {
	if p.contextKey == "" {
		return nil, ErrEmptyContextKey
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return make(map[string]any), nil
	}

	d, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected map[string]any, got %T", ErrInvalidInput, value)
	}
	return d, nil
}

// AddDataToContext merges the provided maps into any data already in the context.
// Nested maps are merged recursively and later values override earlier ones.
// Empty keys are rejected, but the remaining data is still stored.
func (p *ContextProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, ErrEmptyContextKey
	}

	var errz []error
	toStore := make(map[string]any)

	if existing, ok := ctx.Value(p.contextKey).(map[string]any); ok {
		toStore = deepMerge(toStore, existing)
	}

	for _, dataMap := range data {
		for key, value := range dataMap {
			if key == "" {
				errz = append(errz, fmt.Errorf("%w: empty keys are not allowed", ErrInvalidInput))
				continue
			}
			toStore = deepMerge(toStore, map[string]any{key: cloneValue(value)})
		}
	}

	return context.WithValue(ctx, p.contextKey, toStore), errors.Join(errz...)
}

// cloneValue copies nested maps so later changes by the caller don't leak into the context.
func cloneValue(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := maps.Clone(m)
	for k, val := range out {
		out[k] = cloneValue(val)
	}
	return out
}
