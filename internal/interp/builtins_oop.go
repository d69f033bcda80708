package interp

import (
	"github.com/go-pyrite/pyrite/internal/object"
)

func installOOPBuiltins(it *Interpreter) {
	def(it, "super", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		switch len(args) {
		case 0:
			if it.currentClass == nil || it.currentSelf == nil {
				return nil, Raise("RuntimeError", "super(): no current frame")
			}
			inst, ok := it.currentSelf.(*object.Instance)
			if !ok {
				return nil, Raise("RuntimeError", "super(): self is not an instance")
			}
			return &object.SuperProxy{Pivot: it.currentClass, Instance: inst}, nil
		case 2:
			cls, ok := args[0].(*object.Class)
			if !ok {
				return nil, Raise("TypeError", "super() argument 1 must be a type")
			}
			inst, ok := args[1].(*object.Instance)
			if !ok {
				return nil, Raise("TypeError", "super() argument 2 must be an instance")
			}
			return &object.SuperProxy{Pivot: cls, Instance: inst}, nil
		}
		return nil, Raise("TypeError", "super() takes 0 or 2 arguments")
	})
	def(it, "property", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		p := &object.Property{}
		if len(args) > 0 {
			p.Fget = args[0]
		}
		if len(args) > 1 {
			p.Fset = args[1]
		}
		if len(args) > 2 {
			p.Fdel = args[2]
		}
		if v, ok := kwargs["fget"]; ok {
			p.Fget = v
		}
		if v, ok := kwargs["fset"]; ok {
			p.Fset = v
		}
		if v, ok := kwargs["fdel"]; ok {
			p.Fdel = v
		}
		return p, nil
	})
	def(it, "classmethod", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "classmethod() takes 1 argument")
		}
		return &object.ClassMethod{Func: args[0]}, nil
	})
	def(it, "staticmethod", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "staticmethod() takes 1 argument")
		}
		return &object.StaticMethod{Func: args[0]}, nil
	})
	def(it, "len", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "len() takes 1 argument")
		}
		n, err := it.lenOf(args[0])
		if err != nil {
			return nil, err
		}
		return object.NewInt(n), nil
	})
}

func (it *Interpreter) lenOf(v object.Value) (int64, error) {
	switch x := v.(type) {
	case *object.List:
		return int64(len(x.Elems)), nil
	case *object.Tuple:
		return int64(len(x.Elems)), nil
	case *object.Str:
		return int64(len([]rune(x.Value))), nil
	case *object.Bytes:
		return int64(len(x.Value)), nil
	case *object.Dict:
		return int64(x.Len()), nil
	case *object.Set:
		return int64(len(x.Elems)), nil
	case *object.FrozenSet:
		return int64(len(x.Elems)), nil
	case *object.Range:
		return x.Len(), nil
	case *object.Instance:
		fn, cls, ok := x.Class.Lookup("__len__")
		if !ok {
			return 0, Raise("TypeError", "object of type '%s' has no len()", x.Class.Name)
		}
		res, err := it.callBound(fn, x, cls, nil, nil)
		if err != nil {
			return 0, err
		}
		n, ok := res.(*object.Int)
		if !ok {
			return 0, Raise("TypeError", "__len__ should return an int")
		}
		return n.Value.Int64(), nil
	}
	return 0, Raise("TypeError", "object of type '%s' has no len()", object.TypeName(v))
}
