package object

import "fmt"

// ExceptionClasses is the process-wide constant exception hierarchy table,
// keyed by name, built once by BuildExceptionHierarchy. Every class's Dict
// carries "args" handling via Instance.Attrs["args"], set at construction
// time by internal/interp.
var ExceptionClasses = BuildExceptionHierarchy()

// hierarchy maps each built-in exception class to its direct children.
var hierarchy = map[string][]string{
	"BaseException": {"Exception"},
	"Exception": {
		"LookupError", "ArithmeticError", "AssertionError", "AttributeError",
		"NameError", "RuntimeError", "SyntaxError", "TypeError", "ValueError",
		"StopIteration", "StopAsyncIteration", "GeneratorExit", "ImportError",
	},
	"LookupError":    {"IndexError", "KeyError"},
	"ArithmeticError": {"ZeroDivisionError", "OverflowError", "FloatingPointError"},
	"NameError":      {"UnboundLocalError"},
	"RuntimeError":   {"RecursionError", "NotImplementedError"},
}

// BuildExceptionHierarchy constructs the full exception class table as
// Class values linked by MRO (each exception class's MRO is its ancestor
// chain, single-inheritance, plus the implicit root).
func BuildExceptionHierarchy() map[string]*Class {
	classes := make(map[string]*Class)
	base := &Class{Name: "BaseException", Dict: make(map[string]Value)}
	base.MRO = []*Class{base}
	classes["BaseException"] = base

	var build func(name string, parent *Class)
	build = func(name string, parent *Class) {
		if _, ok := classes[name]; ok {
			return
		}
		c := &Class{Name: name, Bases: []*Class{parent}, Dict: make(map[string]Value)}
		c.MRO = append([]*Class{c}, parent.MRO...)
		classes[name] = c
		for _, child := range hierarchy[name] {
			build(child, c)
		}
	}
	for _, child := range hierarchy["BaseException"] {
		build(child, base)
	}
	return classes
}

// IsExceptionSubclass walks actual's parent chain (its MRO) looking for
// expected.
func IsExceptionSubclass(actual, expected *Class) bool {
	return actual.IsSubclassOf(expected)
}

// NewException builds an instance of the named exception class with the
// given positional constructor arguments stored on "args" (ExceptionMessage
// derives str(e) from them).
func NewException(className string, args ...Value) (*Instance, error) {
	cls, ok := ExceptionClasses[className]
	if !ok {
		return nil, fmt.Errorf("unknown exception class %q", className)
	}
	return NewExceptionOf(cls, args...), nil
}

// NewExceptionOf builds an instance of a specific (possibly user-subclassed)
// exception class.
func NewExceptionOf(cls *Class, args ...Value) *Instance {
	inst := NewInstance(cls)
	inst.Attrs["args"] = &Tuple{Elems: args}
	return inst
}

// ExceptionMessage renders str(e) for a caught exception instance: the sole
// positional constructor argument if exactly one was given, else the
// args tuple's Inspect form, matching CPython's BaseException.__str__.
func ExceptionMessage(inst *Instance) string {
	args, ok := inst.Attrs["args"].(*Tuple)
	if !ok || len(args.Elems) == 0 {
		return ""
	}
	if len(args.Elems) == 1 {
		if s, ok := args.Elems[0].(*Str); ok {
			return s.Value
		}
		return args.Elems[0].Inspect()
	}
	return args.Inspect()
}
