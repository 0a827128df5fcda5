package evaluator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform/data"
	risorObject "github.com/risor-io/risor/object"
)

// execResult wraps the Risor object produced by the callback call
type execResult struct {
	risorObject.Object
	execTime    time.Duration
	scriptExeID string
	logger      *slog.Logger
}

func newEvalResult(
	handler slog.Handler,
	obj risorObject.Object,
	execTime time.Duration,
	versionID string,
) *execResult {
	_, logger := helpers.SetupLogger(handler, "risor", "execResult")
	if obj == nil {
		obj = risorObject.Nil
	}

	return &execResult{
		Object:      obj,
		execTime:    execTime,
		scriptExeID: versionID,
		logger:      logger,
	}
}

func (r *execResult) String() string {
	return fmt.Sprintf(
		"execResult{Type: %s, Value: %v, ExecTime: %s, ScriptExeID: %s}",
		r.Type(), r.Object, r.GetExecTime(), r.GetScriptExeID())
}

func (r *execResult) Type() data.Types {
	switch r.Object.Type() {
	case risorObject.NIL:
		return data.NONE
	case risorObject.BOOL:
		return data.BOOL
	case risorObject.INT:
		return data.INT
	case risorObject.FLOAT:
		return data.FLOAT
	case risorObject.STRING:
		return data.STRING
	case risorObject.LIST:
		return data.LIST
	case risorObject.MAP:
		return data.MAP
	case risorObject.SET:
		return data.SET
	case risorObject.FUNCTION, risorObject.BUILTIN:
		return data.FUNCTION
	case risorObject.ERROR:
		return data.ERROR
	default:
		r.logger.Error("Unknown type", "type", r.Object.Type())
		return data.ERROR
	}
}

func (r *execResult) GetScriptExeID() string {
	return r.scriptExeID
}

func (r *execResult) GetExecTime() string {
	return r.execTime.String()
}

func (r *execResult) Inspect() string {
	return r.Object.Inspect()
}

func (r *execResult) Interface() any {
	return r.Object.Interface()
}
