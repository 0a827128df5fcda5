package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger returns the handler and a logger scoped to a component.
// When handler is nil a text handler on stdout, grouped under component, is used instead.
//
// Parameters:
//   - handler: the slog.Handler supplied by the caller, may be nil
//   - component: name of the engine or subsystem (e.g. "starlark", "host")
//   - groupName: optional group inside the component (e.g. "Evaluator")
func SetupLogger(
	handler slog.Handler,
	component string,
	groupName string,
) (slog.Handler, *slog.Logger) {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, nil).WithGroup(component)
		slog.New(handler).Warn("Handler is nil, using the default logger configuration.")
	}

	if groupName == "" {
		return handler, slog.New(handler)
	}
	return handler, slog.New(handler.WithGroup(groupName))
}
