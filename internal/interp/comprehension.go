package interp

import (
	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
)

// runComprehension gives the comprehension its own fresh scope, but
// evaluates the outermost `for` clause's iterable expression in the
// enclosing scope (before the fresh scope is entered), matching CPython.
// emit is invoked once per innermost iteration that survives every `if`
// guard.
func (it *Interpreter) runComprehension(clauses []ast.CompClause, emit func() error) error {
	if len(clauses) == 0 {
		return emit()
	}
	outerIterVal, err := it.evalExpr(clauses[0].Iter)
	if err != nil {
		return err
	}

	compScope := object.NewEnclosedEnvironment(it.env, object.ScopeLocal, nil)
	savedEnv := it.env
	it.env = compScope
	defer func() { it.env = savedEnv }()

	return it.runClause(clauses, 0, outerIterVal, emit)
}

func (it *Interpreter) runClause(clauses []ast.CompClause, idx int, iterVal object.Value, emit func() error) error {
	clause := clauses[idx]
	var err error
	if idx > 0 {
		iterVal, err = it.evalExpr(clause.Iter)
		if err != nil {
			return err
		}
	}
	iter, err := it.toIterator(iterVal)
	if err != nil {
		return err
	}
	for {
		val, ok, err := it.advance(iter)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := it.assignTo(clause.Target, val); err != nil {
			return err
		}
		keep := true
		for _, cond := range clause.Ifs {
			cv, err := it.evalExpr(cond)
			if err != nil {
				return err
			}
			if !it.truthy(cv) {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		if idx+1 < len(clauses) {
			if err := it.runClause(clauses, idx+1, nil, emit); err != nil {
				return err
			}
		} else {
			if err := emit(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (it *Interpreter) evalListComp(n *ast.ListComp) (object.Value, error) {
	var out []object.Value
	err := it.runComprehension(n.Clauses, func() error {
		v, err := it.evalExpr(n.Elt)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &object.List{Elems: out}, nil
}

func (it *Interpreter) evalSetComp(n *ast.SetComp) (object.Value, error) {
	out := object.NewSet()
	err := it.runComprehension(n.Clauses, func() error {
		v, err := it.evalExpr(n.Elt)
		if err != nil {
			return err
		}
		out.Add(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (it *Interpreter) evalDictComp(n *ast.DictComp) (object.Value, error) {
	out := object.NewDict()
	err := it.runComprehension(n.Clauses, func() error {
		k, err := it.evalExpr(n.Key)
		if err != nil {
			return err
		}
		if !object.Hashable(k) {
			return Raise("TypeError", "unhashable type: '%s'", object.TypeName(k))
		}
		v, err := it.evalExpr(n.Value)
		if err != nil {
			return err
		}
		out.Set(k, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// evalGeneratorExp is collected eagerly into a Generator, the same
// eager-buffer strategy used for `def`-bodied generators.
func (it *Interpreter) evalGeneratorExp(n *ast.GeneratorExp) (object.Value, error) {
	return &object.Generator{
		Name: "<genexpr>",
		Run: func() ([]object.Value, error) {
			var out []object.Value
			err := it.runComprehension(n.Clauses, func() error {
				v, err := it.evalExpr(n.Elt)
				if err != nil {
					return err
				}
				out = append(out, v)
				return nil
			})
			return out, err
		},
	}, nil
}
