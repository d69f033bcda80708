package interp

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
	"github.com/go-pyrite/pyrite/internal/token"
)

// evalExpr dispatches one expression node.
func (it *Interpreter) evalExpr(expr ast.Expr) (object.Value, error) {
	switch n := expr.(type) {
	case *ast.NumberLit:
		return it.evalNumberLit(n)
	case *ast.StringLit:
		return &object.Str{Value: n.Value}, nil
	case *ast.BytesLit:
		return &object.Bytes{Value: n.Value}, nil
	case *ast.FStringLit:
		return it.evalFString(n)
	case *ast.BoolLit:
		return object.BoolOf(n.Value), nil
	case *ast.NoneLit:
		return object.None, nil
	case *ast.Ident:
		v, err := it.env.Get(n.Name)
		if err != nil {
			return nil, it.nameErrorWithSuggestion(n.Name, err)
		}
		return v, nil
	case *ast.BinaryOp:
		return it.evalBinaryOp(n)
	case *ast.UnaryOp:
		return it.evalUnaryOp(n)
	case *ast.CompareChain:
		return it.evalCompareChain(n)
	case *ast.BoolOp:
		return it.evalBoolOp(n)
	case *ast.NotOp:
		v, err := it.evalExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		return object.BoolOf(!it.truthy(v)), nil
	case *ast.IfExpr:
		test, err := it.evalExpr(n.Test)
		if err != nil {
			return nil, err
		}
		if it.truthy(test) {
			return it.evalExpr(n.Body)
		}
		return it.evalExpr(n.Orelse)
	case *ast.ListLit:
		elems, err := it.evalExprListExpanding(n.Elts)
		if err != nil {
			return nil, err
		}
		return &object.List{Elems: elems}, nil
	case *ast.TupleLit:
		elems, err := it.evalExprListExpanding(n.Elts)
		if err != nil {
			return nil, err
		}
		return &object.Tuple{Elems: elems}, nil
	case *ast.SetLit:
		elems, err := it.evalExprListExpanding(n.Elts)
		if err != nil {
			return nil, err
		}
		s := object.NewSet()
		for _, e := range elems {
			s.Add(e)
		}
		return s, nil
	case *ast.DictLit:
		return it.evalDictLit(n)
	case *ast.Call:
		return it.evalCall(n)
	case *ast.Attribute:
		recv, err := it.evalExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return it.getAttr(recv, n.Attr)
	case *ast.Subscript:
		return it.evalSubscript(n)
	case *ast.Lambda:
		return &object.Function{
			Name:     "<lambda>",
			Params:   n.Params,
			Body:     []ast.Stmt{&ast.Return{Value: n.Body}},
			Closure:  it.env,
			Defaults: it.evalParamDefaults(n.Params),
		}, nil
	case *ast.ListComp:
		return it.evalListComp(n)
	case *ast.SetComp:
		return it.evalSetComp(n)
	case *ast.DictComp:
		return it.evalDictComp(n)
	case *ast.GeneratorExp:
		return it.evalGeneratorExp(n)
	case *ast.Await:
		return it.evalAwait(n)
	case *ast.Yield:
		return it.evalYield(n)
	case *ast.YieldFrom:
		return it.evalYieldFrom(n)
	case *ast.Starred:
		return it.evalExpr(n.Value)
	case *ast.NamedExpr:
		v, err := it.evalExpr(n.Value)
		if err != nil {
			return nil, err
		}
		it.env.Set(n.Target.Name, v)
		return v, nil
	default:
		return nil, fmt.Errorf("interp: unhandled expression %T", expr)
	}
}

func (it *Interpreter) evalNumberLit(n *ast.NumberLit) (object.Value, error) {
	if n.IsImag {
		return &object.Complex{Imag: n.Float}, nil
	}
	if n.IsInt {
		v, ok := object.NewIntFromString(n.IntText)
		if !ok {
			return nil, Raise("SyntaxError", "invalid integer literal %q", n.IntText)
		}
		return v, nil
	}
	return &object.Float{Value: n.Float}, nil
}

// evalExprListExpanding evaluates a list of expressions, splicing in the
// elements of any *ast.Starred entry (list/set/tuple literal unpacking).
func (it *Interpreter) evalExprListExpanding(exprs []ast.Expr) ([]object.Value, error) {
	var out []object.Value
	for _, e := range exprs {
		if st, ok := e.(*ast.Starred); ok {
			v, err := it.evalExpr(st.Value)
			if err != nil {
				return nil, err
			}
			elems, err := it.iterableToSlice(v)
			if err != nil {
				return nil, err
			}
			out = append(out, elems...)
			continue
		}
		v, err := it.evalExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (it *Interpreter) evalDictLit(n *ast.DictLit) (object.Value, error) {
	d := object.NewDict()
	for _, entry := range n.Entries {
		if entry.Key == nil {
			spread, err := it.evalExpr(entry.Value)
			if err != nil {
				return nil, err
			}
			sd, ok := spread.(*object.Dict)
			if !ok {
				return nil, Raise("TypeError", "argument of type '%s' is not a mapping", object.TypeName(spread))
			}
			for _, kv := range sd.Items() {
				d.Set(kv[0], kv[1])
			}
			continue
		}
		k, err := it.evalExpr(entry.Key)
		if err != nil {
			return nil, err
		}
		v, err := it.evalExpr(entry.Value)
		if err != nil {
			return nil, err
		}
		if !object.Hashable(k) {
			return nil, Raise("TypeError", "unhashable type: '%s'", object.TypeName(k))
		}
		d.Set(k, v)
	}
	return d, nil
}

func (it *Interpreter) evalParamDefaults(params []ast.Param) map[string]object.Value {
	defaults := make(map[string]object.Value)
	for _, p := range params {
		if p.Default == nil {
			continue
		}
		v, err := it.evalExpr(p.Default)
		if err == nil {
			defaults[p.Name] = v
		}
	}
	return defaults
}

func (it *Interpreter) evalFString(n *ast.FStringLit) (object.Value, error) {
	var sb strings.Builder
	for _, part := range n.Parts {
		if part.Expr == nil {
			sb.WriteString(part.Literal)
			continue
		}
		v, err := it.evalExpr(part.Expr)
		if err != nil {
			return nil, err
		}
		rendered, err := it.formatFStringValue(v, part.Conversion, part.FormatText)
		if err != nil {
			return nil, err
		}
		sb.WriteString(rendered)
	}
	return &object.Str{Value: sb.String()}, nil
}

func (it *Interpreter) formatFStringValue(v object.Value, conv byte, spec string) (string, error) {
	switch conv {
	case 'r':
		v = &object.Str{Value: it.repr(v)}
	case 's':
		v = &object.Str{Value: it.str(v)}
	case 'a':
		v = &object.Str{Value: it.repr(v)}
	}
	if spec == "" {
		return it.str(v), nil
	}
	return formatSpec(v, spec)
}

func (it *Interpreter) evalUnaryOp(n *ast.UnaryOp) (object.Value, error) {
	v, err := it.evalExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	return it.applyUnary(n.Op, v)
}

func (it *Interpreter) applyUnary(op token.Kind, v object.Value) (object.Value, error) {
	if inst, ok := v.(*object.Instance); ok {
		name := unaryDunder(op)
		if fn, cls, ok := inst.Class.Lookup(name); ok {
			return it.callBound(fn, inst, cls, nil, nil)
		}
	}
	switch op {
	case token.MINUS:
		switch x := v.(type) {
		case *object.Int:
			return &object.Int{Value: new(big.Int).Neg(x.Value)}, nil
		case *object.Float:
			return &object.Float{Value: -x.Value}, nil
		case *object.Bool:
			return &object.Int{Value: new(big.Int).Neg(x.AsInt())}, nil
		}
	case token.PLUS:
		switch x := v.(type) {
		case *object.Int:
			return x, nil
		case *object.Float:
			return x, nil
		case *object.Bool:
			return &object.Int{Value: x.AsInt()}, nil
		}
	case token.TILDE:
		switch x := v.(type) {
		case *object.Int:
			return &object.Int{Value: new(big.Int).Not(x.Value)}, nil
		case *object.Bool:
			return &object.Int{Value: new(big.Int).Not(x.AsInt())}, nil
		}
	}
	return nil, Raise("TypeError", "bad operand type for unary %s: '%s'", op, object.TypeName(v))
}

func unaryDunder(op token.Kind) string {
	switch op {
	case token.MINUS:
		return "__neg__"
	case token.PLUS:
		return "__pos__"
	case token.TILDE:
		return "__invert__"
	}
	return ""
}

func (it *Interpreter) evalBoolOp(n *ast.BoolOp) (object.Value, error) {
	var last object.Value = object.None
	for i, operand := range n.Operands {
		v, err := it.evalExpr(operand)
		if err != nil {
			return nil, err
		}
		last = v
		truthy := it.truthy(v)
		if n.Op == token.AND && !truthy {
			return v, nil
		}
		if n.Op == token.OR && truthy {
			return v, nil
		}
		_ = i
	}
	return last, nil
}
