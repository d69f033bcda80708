package interp

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/go-pyrite/pyrite/internal/object"
)

// installBuiltins populates the global scope with the built-in namespace:
// type constructors, introspection, iteration/producers, math/aggregate,
// conversion, OOP helpers, I/O, and the exception classes.
func installBuiltins(it *Interpreter) {
	installTypeConstructors(it)
	installIntrospection(it)
	installIterationBuiltins(it)
	installMathBuiltins(it)
	installConversionBuiltins(it)
	installOOPBuiltins(it)
	installIOBuiltins(it)
	installExceptionClasses(it)

	it.Global.Define("True", object.True)
	it.Global.Define("False", object.False)
	it.Global.Define("None", object.None)
	it.Global.Define("NotImplemented", object.NotImplemented)
}

func def(it *Interpreter, name string, fn object.BuiltinFunc) {
	it.Global.Define(name, &object.Builtin{Name: name, Fn: fn})
}

// hostTypeClasses holds the singleton *object.Class for every host-native
// primitive type (int, str, list, ...), so type(x)/isinstance(x, int) can
// compare against the SAME class value the global name "int" is bound to.
var hostTypeClasses = map[string]*object.Class{}

// defType registers name both as a callable *object.Class (via HostCtor, so
// int(x)/str(x)/... construct host-native values rather than *Instance) and
// as the canonical class hostTypeClasses[name] returned by type()/classOf.
func defType(it *Interpreter, name string, ctor object.BuiltinFunc) {
	cls := &object.Class{Name: name, Dict: map[string]object.Value{}, HostCtor: ctor}
	cls.MRO = []*object.Class{cls}
	hostTypeClasses[name] = cls
	it.Global.Define(name, cls)
}

func installTypeConstructors(it *Interpreter) {
	defType(it, "int", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) == 0 {
			return object.NewInt(0), nil
		}
		return toInt(args[0])
	})
	defType(it, "float", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) == 0 {
			return &object.Float{Value: 0}, nil
		}
		return toFloat(args[0])
	})
	defType(it, "bool", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) == 0 {
			return object.False, nil
		}
		return object.BoolOf(it.truthy(args[0])), nil
	})
	defType(it, "str", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) == 0 {
			return &object.Str{Value: ""}, nil
		}
		return &object.Str{Value: it.str(args[0])}, nil
	})
	defType(it, "bytes", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) == 0 {
			return &object.Bytes{Value: nil}, nil
		}
		switch x := args[0].(type) {
		case *object.Str:
			return &object.Bytes{Value: []byte(x.Value)}, nil
		case *object.List:
			out := make([]byte, len(x.Elems))
			for i, e := range x.Elems {
				n, ok := e.(*object.Int)
				if !ok {
					return nil, Raise("TypeError", "bytes() argument must be an iterable of integers")
				}
				out[i] = byte(n.Value.Int64())
			}
			return &object.Bytes{Value: out}, nil
		}
		return nil, Raise("TypeError", "cannot convert '%s' object to bytes", object.TypeName(args[0]))
	})
	defType(it, "list", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) == 0 {
			return &object.List{}, nil
		}
		elems, err := it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
		return &object.List{Elems: elems}, nil
	})
	defType(it, "tuple", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) == 0 {
			return &object.Tuple{}, nil
		}
		elems, err := it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
		return &object.Tuple{Elems: elems}, nil
	})
	defType(it, "dict", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		d := object.NewDict()
		if len(args) > 0 {
			if src, ok := args[0].(*object.Dict); ok {
				for _, kv := range src.Items() {
					d.Set(kv[0], kv[1])
				}
			}
		}
		for k, v := range kwargs {
			d.Set(&object.Str{Value: k}, v)
		}
		return d, nil
	})
	defType(it, "set", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		s := object.NewSet()
		if len(args) > 0 {
			elems, err := it.iterableToSlice(args[0])
			if err != nil {
				return nil, err
			}
			for _, e := range elems {
				s.Add(e)
			}
		}
		return s, nil
	})
	defType(it, "frozenset", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) == 0 {
			return object.NewFrozenSetFrom(nil), nil
		}
		elems, err := it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
		return object.NewFrozenSetFrom(elems), nil
	})
}

func toInt(v object.Value) (object.Value, error) {
	switch x := v.(type) {
	case *object.Int:
		return x, nil
	case *object.Bool:
		return &object.Int{Value: x.AsInt()}, nil
	case *object.Float:
		bi, _ := big.NewFloat(x.Value).Int(nil)
		return &object.Int{Value: bi}, nil
	case *object.Str:
		n, ok := object.NewIntFromString(trimSpace(x.Value))
		if !ok {
			return nil, Raise("ValueError", "invalid literal for int() with base 10: %q", x.Value)
		}
		return n, nil
	}
	return nil, Raise("TypeError", "int() argument must be a string or a number, not '%s'", object.TypeName(v))
}

func toFloat(v object.Value) (object.Value, error) {
	switch x := v.(type) {
	case *object.Float:
		return x, nil
	case *object.Int:
		f, _ := new(big.Float).SetInt(x.Value).Float64()
		return &object.Float{Value: f}, nil
	case *object.Bool:
		if x.Value {
			return &object.Float{Value: 1}, nil
		}
		return &object.Float{Value: 0}, nil
	case *object.Str:
		f, ok := parseFloat(trimSpace(x.Value))
		if !ok {
			return nil, Raise("ValueError", "could not convert string to float: %q", x.Value)
		}
		return &object.Float{Value: f}, nil
	}
	return nil, Raise("TypeError", "float() argument must be a string or a number, not '%s'", object.TypeName(v))
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
