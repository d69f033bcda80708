package interp

import (
	"fmt"
	"hash/fnv"
	"reflect"

	"github.com/go-pyrite/pyrite/internal/object"
)

func installIntrospection(it *Interpreter) {
	def(it, "type", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "type() takes 1 argument")
		}
		return classOf(args[0]), nil
	})
	def(it, "isinstance", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, Raise("TypeError", "isinstance() takes 2 arguments")
		}
		classes, err := classTuple(args[1])
		if err != nil {
			return nil, err
		}
		actual := classOf(args[0])
		for _, cls := range classes {
			if actual.IsSubclassOf(cls) {
				return object.True, nil
			}
		}
		return object.False, nil
	})
	def(it, "issubclass", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, Raise("TypeError", "issubclass() takes 2 arguments")
		}
		cls, ok := args[0].(*object.Class)
		if !ok {
			return nil, Raise("TypeError", "issubclass() arg 1 must be a class")
		}
		classes, err := classTuple(args[1])
		if err != nil {
			return nil, err
		}
		for _, c := range classes {
			if cls.IsSubclassOf(c) {
				return object.True, nil
			}
		}
		return object.False, nil
	})
	def(it, "hasattr", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, Raise("TypeError", "hasattr() takes 2 arguments")
		}
		name, ok := args[1].(*object.Str)
		if !ok {
			return nil, Raise("TypeError", "hasattr(): attribute name must be string")
		}
		_, err := it.getAttr(args[0], name.Value)
		return object.BoolOf(err == nil), nil
	})
	def(it, "getattr", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, Raise("TypeError", "getattr() takes 2 or 3 arguments")
		}
		name, ok := args[1].(*object.Str)
		if !ok {
			return nil, Raise("TypeError", "getattr(): attribute name must be string")
		}
		v, err := it.getAttr(args[0], name.Value)
		if err != nil {
			if len(args) == 3 {
				return args[2], nil
			}
			return nil, err
		}
		return v, nil
	})
	def(it, "setattr", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 3 {
			return nil, Raise("TypeError", "setattr() takes 3 arguments")
		}
		name, ok := args[1].(*object.Str)
		if !ok {
			return nil, Raise("TypeError", "setattr(): attribute name must be string")
		}
		if err := it.setAttr(args[0], name.Value, args[2]); err != nil {
			return nil, err
		}
		return object.None, nil
	})
	def(it, "delattr", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, Raise("TypeError", "delattr() takes 2 arguments")
		}
		name, ok := args[1].(*object.Str)
		if !ok {
			return nil, Raise("TypeError", "delattr(): attribute name must be string")
		}
		if err := it.deleteAttr(args[0], name.Value); err != nil {
			return nil, err
		}
		return object.None, nil
	})
	def(it, "dir", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "dir() takes 1 argument")
		}
		names := map[string]bool{}
		switch x := args[0].(type) {
		case *object.Instance:
			for k := range x.Attrs {
				names[k] = true
			}
			for _, c := range x.Class.MRO {
				for k := range c.Dict {
					names[k] = true
				}
			}
		case *object.Class:
			for _, c := range x.MRO {
				for k := range c.Dict {
					names[k] = true
				}
			}
		}
		out := make([]object.Value, 0, len(names))
		for n := range names {
			out = append(out, &object.Str{Value: n})
		}
		sortSlice(out, nil)
		return &object.List{Elems: out}, nil
	})
	def(it, "id", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "id() takes 1 argument")
		}
		return object.NewInt(identityOf(args[0])), nil
	})
	def(it, "hash", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "hash() takes 1 argument")
		}
		if !object.Hashable(args[0]) {
			return nil, Raise("TypeError", "unhashable type: '%s'", object.TypeName(args[0]))
		}
		return object.NewInt(hashKey(object.KeyOf(args[0]))), nil
	})
	def(it, "callable", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "callable() takes 1 argument")
		}
		switch v := args[0].(type) {
		case *object.Function, *object.Builtin, *object.BoundMethod, *object.Class, *object.ClassMethod, *object.StaticMethod:
			return object.True, nil
		case *object.Instance:
			_, _, ok := v.Class.Lookup("__call__")
			return object.BoolOf(ok), nil
		}
		return object.False, nil
	})
}

// identityOf returns a stable integer for id(); pointer-backed values hash
// their address, value-backed ones (rare, since every Value here is a
// pointer type) fall back to the %p format anyway.
func identityOf(v object.Value) int64 {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		return int64(rv.Pointer())
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%p", v)
	return int64(h.Sum64())
}

func hashKey(k object.HashKey) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%v", k)
	return int64(h.Sum64())
}

func classOf(v object.Value) *object.Class {
	if inst, ok := v.(*object.Instance); ok {
		return inst.Class
	}
	name := object.TypeName(v)
	if cls, ok := hostTypeClasses[name]; ok {
		return cls
	}
	if cls, ok := object.ExceptionClasses[name]; ok {
		return cls
	}
	return otherHostClass(name)
}

// otherHostClasses memoizes synthetic classes for host types that have no
// constructor builtin (function, builtin_function_or_method, NoneType,
// type, range, slice, ...), so repeated type()/isinstance() calls on the
// same kind of value compare equal.
var otherHostClasses = map[string]*object.Class{}

func otherHostClass(name string) *object.Class {
	if cls, ok := otherHostClasses[name]; ok {
		return cls
	}
	cls := &object.Class{Name: name, Dict: map[string]object.Value{}}
	cls.MRO = []*object.Class{cls}
	otherHostClasses[name] = cls
	return cls
}

func classTuple(v object.Value) ([]*object.Class, error) {
	switch x := v.(type) {
	case *object.Class:
		return []*object.Class{x}, nil
	case *object.Tuple:
		out := make([]*object.Class, 0, len(x.Elems))
		for _, e := range x.Elems {
			cls, ok := e.(*object.Class)
			if !ok {
				return nil, Raise("TypeError", "isinstance() arg 2 must be a type or tuple of types")
			}
			out = append(out, cls)
		}
		return out, nil
	}
	return nil, Raise("TypeError", "isinstance() arg 2 must be a type or tuple of types")
}
