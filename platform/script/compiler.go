package script

import "io"

// Compiler validates and compiles an object's source. The reader is consumed and closed.
//
// Example usage:
//
//	comp, _ := starlark.NewCompiler(compiler.WithCallback("main"))
//	content, err := comp.Compile(reader)
//	if err != nil {
//	    // syntax error, unknown global, missing callback...
//	}
type Compiler interface {
	Compile(scriptReader io.ReadCloser) (ExecutableContent, error)
}
