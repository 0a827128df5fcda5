package data

import (
	"context"

	"github.com/stretchr/testify/mock"
)

var (
	descriptorInput = map[string]any{
		"params": map[string]any{"param1": "from-descriptor", "param2": "kept"},
		"schema": map[string]any{"data": map[string]any{"__test-nts": "nts"}},
	}

	runtimeInput = map[string]any{
		"params": map[string]any{"param1": "from-runtime"},
	}
)

// MockProvider is a testify mock implementation of Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetData(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(map[string]any)
	return d, args.Error(1)
}

func (m *MockProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	args := m.Called(ctx, data)
	newCtx, _ := args.Get(0).(context.Context)
	return newCtx, args.Error(1)
}
