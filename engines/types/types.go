package types

import (
	"errors"
	"fmt"
	"strings"
)

// Type identifies the engine that runs a neutral object.
type Type string

const (
	Starlark Type = "starlark"
	Risor    Type = "risor"
	Extism   Type = "extism"
	Native   Type = "native"
)

// Default is the engine used when a descriptor leaves "engine" empty. Objects written for the
// "python" engine run on Starlark, which shares Python's syntax.
const Default = Starlark

var ErrUnsupportedEngine = errors.New("unsupported engine")

var aliases = map[string]Type{
	"starlark": Starlark,
	"star":     Starlark,
	"python":   Starlark,
	"py":       Starlark,
	"risor":    Risor,
	"extism":   Extism,
	"wasm":     Extism,
	"native":   Native,
	"go":       Native,
}

// Parse resolves an engine name or alias, case-insensitively. An empty name is Default.
func Parse(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default, nil
	}
	t, ok := aliases[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEngine, name)
	}
	return t, nil
}

func (t Type) String() string {
	return string(t)
}
