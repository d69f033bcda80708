package interp

import (
	"fmt"
	"io"

	"github.com/go-pyrite/pyrite/internal/object"
	"github.com/go-pyrite/pyrite/internal/parser"
)

// Run parses and evaluates source against a fresh Interpreter, returning
// the top-level result. output receives anything `print` writes.
func Run(source string, output io.Writer) (object.Value, error) {
	it := New(output)
	return it.RunSource(source)
}

// RunAsync runs source and, if the top-level result is a coroutine, awaits
// it before returning. Generators and coroutines are collected eagerly, so
// there is no real suspension to model at the Go level; this gives
// top-level `await` somewhere to resolve to the same way `await` does
// inside the evaluator.
func RunAsync(source string, output io.Writer) (object.Value, error) {
	it := New(output)
	v, err := it.RunSource(source)
	if err != nil {
		return nil, err
	}
	if co, ok := v.(*object.Coroutine); ok {
		return co.Await()
	}
	return v, nil
}

// RunSource parses source into a module and runs it in it's global scope,
// surfacing parse errors as a SyntaxError PyError so callers only ever see
// one error shape.
func (it *Interpreter) RunSource(source string) (object.Value, error) {
	mod, errs := parser.Parse(source)
	if len(errs) > 0 {
		first := errs[0]
		return nil, Raise("SyntaxError", "%s: %s", first.Pos, first.Message)
	}
	return it.Run(mod)
}

// CreateInterpreter builds an Interpreter with the built-in namespace
// installed, then overlays globals on top (so a caller can shadow a
// builtin name).
func CreateInterpreter(output io.Writer, globals map[string]object.Value) *Interpreter {
	it := New(output)
	for name, v := range globals {
		it.Global.Define(name, v)
	}
	return it
}

// GlobalGet reads a name from the interpreter's global scope.
func (it *Interpreter) GlobalGet(name string) (object.Value, error) {
	return it.Global.Get(name)
}

// GlobalSet defines or overwrites a name in the interpreter's global scope.
func (it *Interpreter) GlobalSet(name string, value object.Value) error {
	it.Global.Define(name, value)
	return nil
}

// EvalSourceString runs source through RunSource and returns the Inspect
// rendering of the resulting value; any error is returned unchanged.
func (it *Interpreter) EvalSourceString(source string) (string, error) {
	v, err := it.RunSource(source)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", v.Inspect()), nil
}
