package interp

import (
	"fmt"
	"strings"

	"github.com/go-pyrite/pyrite/internal/object"
)

func installIOBuiltins(it *Interpreter) {
	def(it, "print", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		sep := " "
		if v, ok := kwargs["sep"]; ok {
			if s, ok := v.(*object.Str); ok {
				sep = s.Value
			}
		}
		end := "\n"
		if v, ok := kwargs["end"]; ok {
			if s, ok := v.(*object.Str); ok {
				end = s.Value
			}
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = it.str(a)
		}
		fmt.Fprint(it.Output, strings.Join(parts, sep)+end)
		return object.None, nil
	})
	def(it, "input", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		return nil, Raise("NotImplementedError", "input() requires an embedder-supplied stdin source")
	})
}

func installExceptionClasses(it *Interpreter) {
	for name, cls := range object.ExceptionClasses {
		it.Global.Define(name, cls)
	}
}
