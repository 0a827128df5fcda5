package data

import (
	"context"
)

// Getter defines the interface for retrieving data from a context.
type Getter interface {
	GetData(ctx context.Context) (map[string]any, error)
}

// Setter prepares data for an object call by enriching a context.
type Setter interface {
	// AddDataToContext stores data in the context so a later GetData returns it.
	//
	// Example:
	//  ctx, err := provider.AddDataToContext(ctx, map[string]any{"params": {"param1": "x"}})
	//  if err != nil {
	//      return err
	//  }
	//  result, err := evaluator.Eval(ctx)
	AddDataToContext(ctx context.Context, data ...map[string]any) (context.Context, error)
}

// Provider defines the interface for accessing the input of an object call.
type Provider interface {
	Getter
	Setter
}
