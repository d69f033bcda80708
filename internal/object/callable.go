package object

import (
	"fmt"

	"github.com/go-pyrite/pyrite/internal/ast"
)

// Function is a user-defined function or method (before binding to a
// receiver) — a first-class callable value, since Pyrite functions are
// themselves values.
type Function struct {
	Name        string
	Params      []ast.Param
	Body        []ast.Stmt
	Closure     *Environment
	IsAsync     bool
	IsGenerator bool
	Defaults    map[string]Value // evaluated once at def time
	Attrs       map[string]Value // arbitrary function attributes (func.x = y)
}

func (f *Function) Type() string    { return "function" }
func (f *Function) Inspect() string { return fmt.Sprintf("<function %s>", f.Name) }

// BoundMethod pairs a Function (or any callable) with a receiver and the
// class that defines it — the triple the attribute-lookup algorithm
// produces so super() chains resolve correctly.
type BoundMethod struct {
	Func     Value // *Function or *Builtin
	Receiver Value
	Defining *Class
}

func (m *BoundMethod) Type() string { return "bound-method" }
func (m *BoundMethod) Inspect() string {
	name := "?"
	if fn, ok := m.Func.(*Function); ok {
		name = fn.Name
	}
	return fmt.Sprintf("<bound method %s>", name)
}

// BuiltinFunc is the Go implementation signature for a built-in callable.
type BuiltinFunc func(args []Value, kwargs map[string]Value) (Value, error)

// Builtin wraps a host-implemented callable (len, print, sorted, ...).
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (b *Builtin) Type() string    { return "builtin_function_or_method" }
func (b *Builtin) Inspect() string { return fmt.Sprintf("<built-in function %s>", b.Name) }

// Property is a descriptor with getter/setter/deleter functions.
type Property struct {
	Fget Value
	Fset Value
	Fdel Value
}

func (p *Property) Type() string    { return "property" }
func (p *Property) Inspect() string { return "<property object>" }

// ClassMethod wraps a function so attribute lookup binds it to the class
// rather than the instance.
type ClassMethod struct {
	Func Value
}

func (c *ClassMethod) Type() string    { return "classmethod" }
func (c *ClassMethod) Inspect() string { return "<classmethod object>" }

// StaticMethod wraps a function so attribute lookup returns it unbound.
type StaticMethod struct {
	Func Value
}

func (s *StaticMethod) Type() string    { return "staticmethod" }
func (s *StaticMethod) Inspect() string { return "<staticmethod object>" }
