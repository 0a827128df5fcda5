package neutralobj

import (
	"fmt"

	"github.com/Jeffail/gabs/v2"
	"github.com/neutralobj/go-neutralobj/fixture"
	"github.com/neutralobj/go-neutralobj/platform"
)

// Result is the outcome of one object call.
type Result struct {
	// ID identifies the compiled object version (a checksum of its source).
	ID string `json:"id"`
	// InvocationID is unique per call.
	InvocationID string `json:"invocation_id"`
	// Data is the "data" mapping returned by the callback, empty when it returned none.
	Data map[string]any `json:"data"`
	// Template is the descriptor's template path, carried through unrendered.
	Template string `json:"template,omitempty"`
	ExecTime string `json:"exec_time"`
}

func newResult(resp platform.EvaluatorResponse, template string) (*Result, error) {
	out, ok := resp.Interface().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a mapping, got %s", ErrInvalidResult, resp.Type())
	}

	res := &Result{
		ID:       resp.GetScriptExeID(),
		Data:     make(map[string]any),
		Template: template,
		ExecTime: resp.GetExecTime(),
	}
	if raw, found := out[fixture.KeyData]; found && raw != nil {
		d, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be a mapping, got %T", ErrInvalidResult, fixture.KeyData, raw)
		}
		res.Data = d
	}
	return res, nil
}

// Lookup walks path through Data and reports whether a value was found.
func (r *Result) Lookup(path ...string) (any, bool) {
	c := gabs.Wrap(r.Data)
	if !c.Exists(path...) {
		return nil, false
	}
	return c.Search(path...).Data(), true
}

// Text returns the value at path when it is a string, "" otherwise.
func (r *Result) Text(path ...string) string {
	v, _ := r.Lookup(path...)
	s, _ := v.(string)
	return s
}
