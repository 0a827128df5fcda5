package mocks

import (
	"testing"

	"github.com/neutralobj/go-neutralobj/engines/extism/adapters"
	"github.com/neutralobj/go-neutralobj/platform"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/stretchr/testify/assert"
)

func TestInterfaces(t *testing.T) {
	t.Parallel()
	var _ platform.Evaluator = (*Evaluator)(nil)
	var _ platform.EvaluatorResponse = (*EvaluatorResponse)(nil)
	var _ adapters.CompiledPlugin = (*CompiledPlugin)(nil)
	var _ adapters.PluginInstance = (*PluginInstance)(nil)
}

func TestEvaluatorResponse_Type(t *testing.T) {
	t.Parallel()

	resp := new(EvaluatorResponse)
	resp.On("Type").Return(data.STRING).Once()
	resp.On("Type").Return(map[string]any{}).Once()

	assert.Equal(t, data.STRING, resp.Type())
	assert.Equal(t, data.MAP, resp.Type())
	resp.AssertExpectations(t)
}
