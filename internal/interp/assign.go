package interp

import (
	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/interrors"
	"github.com/go-pyrite/pyrite/internal/object"
)

func (it *Interpreter) execAssign(n *ast.Assign) error {
	v, err := it.evalExpr(n.Value)
	if err != nil {
		return err
	}
	for _, target := range n.Targets {
		if err := it.assignTo(target, v); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execAnnAssign(n *ast.AnnAssign) error {
	if n.Value == nil {
		return nil // bare annotation, no binding
	}
	v, err := it.evalExpr(n.Value)
	if err != nil {
		return err
	}
	return it.assignTo(n.Target, v)
}

func (it *Interpreter) execAugAssign(n *ast.AugAssign) error {
	current, err := it.evalReadTarget(n.Target)
	if err != nil {
		return err
	}
	rhs, err := it.evalExpr(n.Value)
	if err != nil {
		return err
	}

	var result object.Value
	if inst, ok := current.(*object.Instance); ok {
		if name := inPlaceDunder(n.Op); name != "" {
			if fn, cls, ok := inst.Class.Lookup(name); ok {
				res, err := it.callBound(fn, inst, cls, []object.Value{rhs}, nil)
				if err != nil {
					return err
				}
				if res != object.NotImplemented {
					result = res
				}
			}
		}
	}
	if result == nil {
		result, err = it.applyBinary(n.Op, current, rhs)
		if err != nil {
			return err
		}
	}
	return it.assignTo(n.Target, result)
}

// evalReadTarget reads the current value of an augmented-assignment target
// without re-evaluating side-effecting sub-expressions twice where
// avoidable (identifier case only; subscript/attribute accept the minor
// double-evaluation of re-reading the target expression once more to
// write it back).
func (it *Interpreter) evalReadTarget(target ast.Expr) (object.Value, error) {
	return it.evalExpr(target)
}

// assignTo implements every assignment-target shape: identifier,
// starred-unpacking tuple/list target, subscript (__setitem__), and
// attribute (__setattr__, honouring a property setter).
func (it *Interpreter) assignTo(target ast.Expr, value object.Value) error {
	switch t := target.(type) {
	case *ast.Ident:
		return it.env.Set(t.Name, value)
	case *ast.TupleLit:
		return it.assignUnpack(t.Elts, value)
	case *ast.ListLit:
		return it.assignUnpack(t.Elts, value)
	case *ast.Subscript:
		recv, err := it.evalExpr(t.Value)
		if err != nil {
			return err
		}
		idx, err := it.evalExpr(t.Index)
		if err != nil {
			return err
		}
		return it.setItem(recv, idx, value)
	case *ast.Attribute:
		recv, err := it.evalExpr(t.Value)
		if err != nil {
			return err
		}
		return it.setAttr(recv, t.Attr, value)
	case *ast.Starred:
		return it.assignTo(t.Value, value)
	}
	return Raise("SyntaxError", "cannot assign to this expression")
}

// assignUnpack implements starred unpacking: at most one `*t` among
// targets, the starred position receives a list of the middle slice.
func (it *Interpreter) assignUnpack(targets []ast.Expr, value object.Value) error {
	values, err := it.iterableToSlice(value)
	if err != nil {
		return err
	}

	starIdx := -1
	for i, t := range targets {
		if _, ok := t.(*ast.Starred); ok {
			if starIdx != -1 {
				return Raise("SyntaxError", "multiple starred expressions in assignment")
			}
			starIdx = i
		}
	}

	if starIdx == -1 {
		if len(values) != len(targets) {
			return Raise("ValueError", "too many values to unpack (expected %d)", len(targets))
		}
		for i, t := range targets {
			if err := it.assignTo(t, values[i]); err != nil {
				return err
			}
		}
		return nil
	}

	before := starIdx
	after := len(targets) - starIdx - 1
	if len(values) < before+after {
		return Raise("ValueError", "not enough values to unpack (expected at least %d, got %d)", before+after, len(values))
	}
	for i := 0; i < before; i++ {
		if err := it.assignTo(targets[i], values[i]); err != nil {
			return err
		}
	}
	middle := values[before : len(values)-after]
	if err := it.assignTo(targets[starIdx], &object.List{Elems: append([]object.Value{}, middle...)}); err != nil {
		return err
	}
	for i := 0; i < after; i++ {
		if err := it.assignTo(targets[starIdx+1+i], values[len(values)-after+i]); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) setItem(recv, idx, value object.Value) error {
	if inst, ok := recv.(*object.Instance); ok {
		if fn, cls, ok := inst.Class.Lookup("__setitem__"); ok {
			_, err := it.callBound(fn, inst, cls, []object.Value{idx, value}, nil)
			return err
		}
		return Raise("TypeError", "'%s' object does not support item assignment", inst.Class.Name)
	}
	switch c := recv.(type) {
	case *object.List:
		i, ok := idx.(*object.Int)
		if !ok {
			return Raise("TypeError", "list indices must be integers")
		}
		pos, err := normalizeIndex(i.Value.Int64(), len(c.Elems))
		if err != nil {
			return err
		}
		c.Elems[pos] = value
		return nil
	case *object.Dict:
		if !object.Hashable(idx) {
			return Raise("TypeError", "unhashable type: '%s'", object.TypeName(idx))
		}
		c.Set(idx, value)
		return nil
	}
	return Raise("TypeError", "'%s' object does not support item assignment", object.TypeName(recv))
}

func (it *Interpreter) deleteItem(recv, idx object.Value) error {
	if inst, ok := recv.(*object.Instance); ok {
		if fn, cls, ok := inst.Class.Lookup("__delitem__"); ok {
			_, err := it.callBound(fn, inst, cls, []object.Value{idx}, nil)
			return err
		}
	}
	switch c := recv.(type) {
	case *object.List:
		i, ok := idx.(*object.Int)
		if !ok {
			return Raise("TypeError", "list indices must be integers")
		}
		pos, err := normalizeIndex(i.Value.Int64(), len(c.Elems))
		if err != nil {
			return err
		}
		c.Elems = append(c.Elems[:pos], c.Elems[pos+1:]...)
		return nil
	case *object.Dict:
		if !c.Delete(idx) {
			return Raise("KeyError", "%s", it.repr(idx))
		}
		return nil
	case *object.Set:
		if !c.Remove(idx) {
			return Raise("KeyError", "%s", it.repr(idx))
		}
		return nil
	}
	return Raise("TypeError", "'%s' object doesn't support item deletion", object.TypeName(recv))
}

func normalizeIndex(i int64, length int) (int, error) {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		return 0, Raise("IndexError", "index out of range")
	}
	return int(i), nil
}

// getAttr implements the attribute-lookup algorithm: descriptor, then
// instance dict, then class MRO, then __getattr__ as a last resort.
func (it *Interpreter) getAttr(recv object.Value, name string) (object.Value, error) {
	if cls, ok := recv.(*object.Class); ok {
		return it.getClassAttr(cls, name)
	}
	if sp, ok := recv.(*object.SuperProxy); ok {
		return it.getSuperAttr(sp, name)
	}
	inst, ok := recv.(*object.Instance)
	if !ok {
		return it.getHostAttr(recv, name)
	}

	if v, _, found := inst.Class.Lookup(name); found {
		if prop, ok := v.(*object.Property); ok && prop.Fset != nil {
			return it.callProperty(prop, inst)
		}
	}

	if v, ok := inst.GetAttr(name); ok {
		return v, nil
	}

	if v, defCls, found := inst.Class.Lookup(name); found {
		return it.bindClassMember(v, inst, defCls)
	}

	if fn, cls, ok := inst.Class.Lookup("__getattr__"); ok {
		return it.callBound(fn, inst, cls, []object.Value{&object.Str{Value: name}}, nil)
	}

	return nil, it.attributeErrorWithSuggestion(inst, name)
}

func (it *Interpreter) attributeErrorWithSuggestion(inst *object.Instance, name string) error {
	candidates := make([]string, 0, len(inst.Attrs))
	for k := range inst.Attrs {
		candidates = append(candidates, k)
	}
	for _, c := range inst.Class.MRO {
		for k := range c.Dict {
			candidates = append(candidates, k)
		}
	}
	suggestion := interrors.Suggest(name, candidates)
	msg := "'" + inst.Class.Name + "' object has no attribute '" + name + "'"
	if suggestion != "" {
		msg += " (" + suggestion + ")"
	}
	return Raise("AttributeError", "%s", msg)
}

func (it *Interpreter) bindClassMember(v object.Value, inst *object.Instance, defCls *object.Class) (object.Value, error) {
	switch m := v.(type) {
	case *object.Property:
		return it.callProperty(m, inst)
	case *object.ClassMethod:
		return &object.BoundMethod{Func: m.Func, Receiver: inst.Class, Defining: defCls}, nil
	case *object.StaticMethod:
		return m.Func, nil
	case *object.Function:
		return &object.BoundMethod{Func: m, Receiver: inst, Defining: defCls}, nil
	case *object.Builtin:
		return &object.BoundMethod{Func: m, Receiver: inst, Defining: defCls}, nil
	default:
		return v, nil
	}
}

func (it *Interpreter) callProperty(prop *object.Property, inst *object.Instance) (object.Value, error) {
	if prop.Fget == nil {
		return nil, Raise("AttributeError", "unreadable attribute")
	}
	return it.callCallable(prop.Fget, []object.Value{inst}, nil)
}

func (it *Interpreter) getClassAttr(cls *object.Class, name string) (object.Value, error) {
	if v, defCls, found := cls.Lookup(name); found {
		switch m := v.(type) {
		case *object.ClassMethod:
			return &object.BoundMethod{Func: m.Func, Receiver: cls, Defining: defCls}, nil
		case *object.StaticMethod:
			return m.Func, nil
		default:
			return v, nil
		}
	}
	return nil, Raise("AttributeError", "type object '%s' has no attribute '%s'", cls.Name, name)
}

func (it *Interpreter) getSuperAttr(sp *object.SuperProxy, name string) (object.Value, error) {
	start := sp.StartIndex()
	mro := sp.Instance.Class.MRO
	for i := start; i < len(mro); i++ {
		if v, ok := mro[i].Dict[name]; ok {
			return it.bindClassMember(v, sp.Instance, mro[i])
		}
	}
	return nil, Raise("AttributeError", "'super' object has no attribute '%s'", name)
}

func (it *Interpreter) setAttr(recv object.Value, name string, value object.Value) error {
	if cls, ok := recv.(*object.Class); ok {
		cls.Dict[name] = value
		return nil
	}
	inst, ok := recv.(*object.Instance)
	if !ok {
		return Raise("AttributeError", "'%s' object attributes are not assignable", object.TypeName(recv))
	}
	if v, _, found := inst.Class.Lookup(name); found {
		if prop, ok := v.(*object.Property); ok {
			if prop.Fset == nil {
				return Raise("AttributeError", "can't set attribute '%s'", name)
			}
			_, err := it.callCallable(prop.Fset, []object.Value{inst, value}, nil)
			return err
		}
	}
	inst.SetAttr(name, value)
	return nil
}

func (it *Interpreter) deleteAttr(recv object.Value, name string) error {
	if cls, ok := recv.(*object.Class); ok {
		if _, ok := cls.Dict[name]; !ok {
			return Raise("AttributeError", "type object '%s' has no attribute '%s'", cls.Name, name)
		}
		delete(cls.Dict, name)
		return nil
	}
	inst, ok := recv.(*object.Instance)
	if !ok {
		return Raise("AttributeError", "'%s' object attributes are not deletable", object.TypeName(recv))
	}
	if v, _, found := inst.Class.Lookup(name); found {
		if prop, ok := v.(*object.Property); ok {
			if prop.Fdel == nil {
				return Raise("AttributeError", "can't delete attribute '%s'", name)
			}
			_, err := it.callCallable(prop.Fdel, []object.Value{inst}, nil)
			return err
		}
	}
	if _, ok := inst.Attrs[name]; !ok {
		return Raise("AttributeError", "'%s' object has no attribute '%s'", inst.Class.Name, name)
	}
	delete(inst.Attrs, name)
	return nil
}
