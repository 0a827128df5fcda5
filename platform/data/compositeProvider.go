package data

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// CompositeProvider combines multiple providers, with later providers
// overriding values from earlier ones in the chain.
type CompositeProvider struct {
	providers []Provider
}

// NewCompositeProvider creates a provider that queries given providers in order.
func NewCompositeProvider(providers ...Provider) *CompositeProvider {
	return &CompositeProvider{providers: providers}
}

// GetData deep merges the data of every provider. Returns on the first provider failure.
func (p *CompositeProvider) GetData(ctx context.Context) (map[string]any, error) {
	result := make(map[string]any)

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}

		d, err := provider.GetData(ctx)
		if err != nil {
			return nil, fmt.Errorf("error from provider %d: %w", i, err)
		}
		result = deepMerge(result, d)
	}

	return result, nil
}

// AddDataToContext offers the data to every provider. Static providers are skipped; the call
// fails only when no provider accepted the data.
func (p *CompositeProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	finalCtx := ctx
	var errs []error
	accepted := 0

	for i, provider := range p.providers {
		if provider == nil {
			continue
		}

		nextCtx, err := provider.AddDataToContext(finalCtx, data...)
		if err != nil {
			errs = append(errs, fmt.Errorf("error from provider %d: %w", i, err))
			if errors.Is(err, ErrStaticProviderNoRuntimeUpdates) {
				continue
			}
			// partial writes from a ContextProvider still carry usable data
			if nextCtx != nil {
				finalCtx = nextCtx
			}
			continue
		}

		finalCtx = nextCtx
		accepted++
	}

	if accepted == 0 && len(errs) > 0 {
		return ctx, errors.Join(errs...)
	}
	return finalCtx, nil
}

// deepMerge returns src overlaid with dst. Nested maps merge, everything else is replaced.
func deepMerge(src, dst map[string]any) map[string]any {
	result := maps.Clone(src)
	if result == nil {
		result = make(map[string]any, len(dst))
	}

	for k, dstVal := range dst {
		srcMap, srcIsMap := result[k].(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)

		if srcIsMap && dstIsMap {
			result[k] = deepMerge(srcMap, dstMap)
			continue
		}
		result[k] = dstVal
	}

	return result
}
