package interp

import (
	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
)

// execMatch implements `match SUBJECT: case PATTERN [if GUARD]: BODY`. Each
// case is tried in order; a matching pattern binds its captures into the
// current scope before the guard (if any) is evaluated, mirroring
// CPython's match statement.
func (it *Interpreter) execMatch(n *ast.Match) error {
	subject, err := it.evalExpr(n.Subject)
	if err != nil {
		return err
	}
	for _, c := range n.Cases {
		matched, err := it.matchPattern(c.Pattern, subject)
		if err != nil {
			return err
		}
		if !matched {
			continue
		}
		if c.Guard != nil {
			gv, err := it.evalExpr(c.Guard)
			if err != nil {
				return err
			}
			if !it.truthy(gv) {
				continue
			}
		}
		return it.execBlock(c.Body)
	}
	return nil
}

// matchPattern reports whether pat matches subject, binding any captures
// into the current scope as a side effect (bindings from a pattern that
// ultimately fails to match are left in place, matching CPython's binding
// rule of "bind as you go").
func (it *Interpreter) matchPattern(pat ast.Pattern, subject object.Value) (bool, error) {
	switch p := pat.(type) {
	case *ast.CapturePattern:
		if p.Name != "_" {
			it.env.Set(p.Name, subject)
		}
		return true, nil
	case *ast.LiteralPattern:
		v, err := it.evalExpr(p.Value)
		if err != nil {
			return false, err
		}
		return valuesEqual(v, subject), nil
	case *ast.SequencePattern:
		return it.matchSequence(p, subject)
	case *ast.MappingPattern:
		return it.matchMapping(p, subject)
	case *ast.ClassPattern:
		return it.matchClass(p, subject)
	case *ast.OrPattern:
		for _, opt := range p.Options {
			matched, err := it.matchPattern(opt, subject)
			if err != nil {
				return false, err
			}
			if matched {
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func (it *Interpreter) matchSequence(p *ast.SequencePattern, subject object.Value) (bool, error) {
	elems, ok := sequenceElems(subject)
	if !ok {
		return false, nil
	}
	starIdx := findStarPattern(p.Elts)
	if starIdx == -1 {
		if len(elems) != len(p.Elts) {
			return false, nil
		}
		for i, sub := range p.Elts {
			matched, err := it.matchPattern(sub, elems[i])
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
		}
		return true, nil
	}
	before := starIdx
	after := len(p.Elts) - starIdx - 1
	if len(elems) < before+after {
		return false, nil
	}
	for i := 0; i < before; i++ {
		matched, err := it.matchPattern(p.Elts[i], elems[i])
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	for i := 0; i < after; i++ {
		matched, err := it.matchPattern(p.Elts[starIdx+1+i], elems[len(elems)-after+i])
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	middle := elems[before : len(elems)-after]
	if star, ok := p.Elts[starIdx].(*ast.CapturePattern); ok && star.Name != "*_" {
		it.env.Set(star.Name[1:], &object.List{Elems: append([]object.Value{}, middle...)})
	}
	return true, nil
}

// findStarPattern returns the index of the first `*name` element (parsed as
// a CapturePattern whose Name keeps the leading '*'), or -1 when there is
// none, in which case the sequence is matched by exact arity.
func findStarPattern(elts []ast.Pattern) int {
	for i, e := range elts {
		if cp, ok := e.(*ast.CapturePattern); ok && len(cp.Name) > 0 && cp.Name[0] == '*' {
			return i
		}
	}
	return -1
}

func sequenceElems(v object.Value) ([]object.Value, bool) {
	switch x := v.(type) {
	case *object.List:
		return x.Elems, true
	case *object.Tuple:
		return x.Elems, true
	}
	return nil, false
}

func (it *Interpreter) matchMapping(p *ast.MappingPattern, subject object.Value) (bool, error) {
	d, ok := subject.(*object.Dict)
	if !ok {
		return false, nil
	}
	matchedKeys := make(map[object.HashKey]bool, len(p.Keys))
	for i, keyExpr := range p.Keys {
		k, err := it.evalExpr(keyExpr)
		if err != nil {
			return false, err
		}
		v, ok := d.Get(k)
		if !ok {
			return false, nil
		}
		matched, err := it.matchPattern(p.Values[i], v)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
		matchedKeys[object.KeyOf(k)] = true
	}
	if p.Rest != "" {
		rest := object.NewDict()
		for _, kv := range d.Items() {
			if !matchedKeys[object.KeyOf(kv[0])] {
				rest.Set(kv[0], kv[1])
			}
		}
		it.env.Set(p.Rest, rest)
	}
	return true, nil
}

func (it *Interpreter) matchClass(p *ast.ClassPattern, subject object.Value) (bool, error) {
	clsVal, err := it.evalExpr(p.Class)
	if err != nil {
		return false, err
	}
	cls, ok := clsVal.(*object.Class)
	if !ok {
		return false, nil
	}
	inst, ok := subject.(*object.Instance)
	if !ok || !inst.Class.IsSubclassOf(cls) {
		return false, nil
	}
	if len(p.Positional) > 0 {
		fields, _, ok := inst.Class.Lookup("__match_args__")
		if !ok {
			return false, nil
		}
		namesTuple, ok := fields.(*object.Tuple)
		if !ok || len(namesTuple.Elems) < len(p.Positional) {
			return false, nil
		}
		for i, sub := range p.Positional {
			nameStr, ok := namesTuple.Elems[i].(*object.Str)
			if !ok {
				return false, nil
			}
			v, err := it.getAttr(inst, nameStr.Value)
			if err != nil {
				return false, nil
			}
			matched, err := it.matchPattern(sub, v)
			if err != nil {
				return false, err
			}
			if !matched {
				return false, nil
			}
		}
	}
	for name, sub := range p.Keyword {
		v, err := it.getAttr(inst, name)
		if err != nil {
			return false, nil
		}
		matched, err := it.matchPattern(sub, v)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}
