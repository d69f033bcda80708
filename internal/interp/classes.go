package interp

import (
	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
)

// execClassDef evaluates the bases, runs the class body in a fresh scope to
// populate its namespace, builds the Class (computing its C3 MRO), applies
// decorators, and binds the result in the enclosing scope.
func (it *Interpreter) execClassDef(n *ast.ClassDef) error {
	bases := make([]*object.Class, 0, len(n.Bases))
	for _, b := range n.Bases {
		v, err := it.evalExpr(b)
		if err != nil {
			return err
		}
		cls, ok := v.(*object.Class)
		if !ok {
			return Raise("TypeError", "bases must be classes")
		}
		bases = append(bases, cls)
	}

	bodyScope := object.NewEnclosedEnvironment(it.env, object.ScopeClass, nil)
	savedEnv := it.env
	it.env = bodyScope
	err := it.execBlock(n.Body)
	it.env = savedEnv
	if err != nil {
		return err
	}
	if it.signal != signalNone {
		it.signal = signalNone
	}

	cls, err := object.NewClass(n.Name, bases)
	if err != nil {
		return Raise("TypeError", "%s", err.Error())
	}
	for _, name := range bodyScope.AllNames() {
		v, _ := bodyScope.Get(name)
		cls.Dict[name] = bindMethodOwner(v)
	}

	decs := make([]object.Value, len(n.Decorators))
	for i, d := range n.Decorators {
		dec, err := it.evalExpr(d)
		if err != nil {
			return err
		}
		decs[i] = dec
	}
	var value object.Value = cls
	for i := len(decs) - 1; i >= 0; i-- {
		var err error
		value, err = it.callCallable(decs[i], []object.Value{value}, nil)
		if err != nil {
			return err
		}
	}
	return it.env.Set(n.Name, value)
}

// bindMethodOwner rebinds a Function's Closure to nothing special; class
// bodies don't need their own closure captured per member since Pyrite
// resolves `self`/class attributes through the instance/MRO lookup rather
// than lexical capture of the class namespace.
func bindMethodOwner(v object.Value) object.Value { return v }

// instantiate implements `ClassName(...)`: allocate, run __init__ if
// defined, and honour a __new__ override when present.
func (it *Interpreter) instantiate(cls *object.Class, args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
	if cls.IsAbstract {
		return nil, Raise("TypeError", "Can't instantiate abstract class %s", cls.Name)
	}
	if fn, defCls, ok := cls.Lookup("__new__"); ok {
		if f, ok := fn.(*object.Function); ok {
			newArgs := append([]object.Value{cls}, args...)
			res, err := it.callFunction(f, nil, defCls, newArgs, kwargs)
			if err != nil {
				return nil, err
			}
			if inst, ok := res.(*object.Instance); ok && inst.Class.IsSubclassOf(cls) {
				if _, _, hasInit := cls.Lookup("__init__"); hasInit {
					if _, err := it.callInit(inst, cls, args, kwargs); err != nil {
						return nil, err
					}
				}
				return inst, nil
			}
			return res, nil
		}
	}
	inst := object.NewInstance(cls)
	if _, _, ok := cls.Lookup("__init__"); ok {
		if _, err := it.callInit(inst, cls, args, kwargs); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (it *Interpreter) callInit(inst *object.Instance, cls *object.Class, args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
	fn, defCls, _ := cls.Lookup("__init__")
	return it.callBound(fn, inst, defCls, args, kwargs)
}
