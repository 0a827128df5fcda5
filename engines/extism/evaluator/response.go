package evaluator

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform/data"
)

// execResult holds the decoded output of the callback export
type execResult struct {
	value       any
	execTime    time.Duration
	scriptExeID string
	logger      *slog.Logger
}

func newEvalResult(
	handler slog.Handler,
	value any,
	execTime time.Duration,
	scriptExeID string,
) *execResult {
	_, logger := helpers.SetupLogger(handler, "extism", "execResult")
	return &execResult{
		value:       value,
		execTime:    execTime,
		scriptExeID: scriptExeID,
		logger:      logger,
	}
}

func (r *execResult) String() string {
	return fmt.Sprintf(
		"execResult{Type: %s, Value: %v, ExecTime: %s, ScriptExeID: %s}",
		r.Type(), r.value, r.GetExecTime(), r.GetScriptExeID(),
	)
}

func (r *execResult) Type() data.Types {
	t := data.TypeOf(r.value)
	if t == data.ERROR {
		r.logger.Error("Unknown type", "type", fmt.Sprintf("%T", r.value))
	}
	return t
}

func (r *execResult) GetScriptExeID() string {
	return r.scriptExeID
}

func (r *execResult) GetExecTime() string {
	return r.execTime.String()
}

// Inspect renders maps and lists as JSON.
func (r *execResult) Inspect() string {
	switch r.Type() {
	case data.MAP, data.LIST:
		jsonBytes, err := json.Marshal(r.value)
		if err == nil {
			return string(jsonBytes)
		}
		r.logger.Error("Failed to marshal result to JSON", "error", err)
	}
	return fmt.Sprintf("%v", r.value)
}

func (r *execResult) Interface() any {
	return r.value
}
