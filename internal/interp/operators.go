package interp

import (
	"fmt"
	"math"
	"math/big"

	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/interrors"
	"github.com/go-pyrite/pyrite/internal/object"
	"github.com/go-pyrite/pyrite/internal/token"
)

// truthy checks __bool__ first, then __len__, then falls back to the host
// default (object.Truthy covers every primitive).
func (it *Interpreter) truthy(v object.Value) bool {
	inst, ok := v.(*object.Instance)
	if !ok {
		return object.Truthy(v)
	}
	if fn, cls, ok := inst.Class.Lookup("__bool__"); ok {
		res, err := it.callBound(fn, inst, cls, nil, nil)
		if err == nil {
			return it.truthy(res)
		}
	}
	if fn, cls, ok := inst.Class.Lookup("__len__"); ok {
		res, err := it.callBound(fn, inst, cls, nil, nil)
		if err == nil {
			if n, ok := res.(*object.Int); ok {
				return n.Value.Sign() != 0
			}
		}
	}
	return true
}

func (it *Interpreter) nameErrorWithSuggestion(name string, cause error) error {
	base := scopeToPyError(cause)
	pe, ok := base.(*PyError)
	if !ok {
		return base
	}
	suggestion := interrors.Suggest(name, it.env.VisibleNames())
	if suggestion != "" {
		msg := object.ExceptionMessage(pe.Instance) + " (" + suggestion + ")"
		inst, _ := object.NewException(pe.Instance.Class.Name, &object.Str{Value: msg})
		return &PyError{Instance: inst}
	}
	return pe
}

// evalBinaryOp implements a five-step operator dispatch: forward dunder on
// lhs, host forward, reflected dunder on rhs, host reflected, else
// TypeError.
func (it *Interpreter) evalBinaryOp(n *ast.BinaryOp) (object.Value, error) {
	lhs, err := it.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := it.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	return it.applyBinary(n.Op, lhs, rhs)
}

func (it *Interpreter) applyBinary(op token.Kind, lhs, rhs object.Value) (object.Value, error) {
	fwd, rev := binaryDunders(op)

	if inst, ok := lhs.(*object.Instance); ok && fwd != "" {
		if fn, cls, ok := inst.Class.Lookup(fwd); ok {
			res, err := it.callBound(fn, inst, cls, []object.Value{rhs}, nil)
			if err != nil {
				return nil, err
			}
			if res != object.NotImplemented {
				return res, nil
			}
		}
	}

	if res, ok, err := hostBinary(op, lhs, rhs); ok {
		return res, err
	}

	if inst, ok := rhs.(*object.Instance); ok && rev != "" {
		if fn, cls, ok := inst.Class.Lookup(rev); ok {
			res, err := it.callBound(fn, inst, cls, []object.Value{lhs}, nil)
			if err != nil {
				return nil, err
			}
			if res != object.NotImplemented {
				return res, nil
			}
		}
	}

	if op == token.STAR {
		switch rhs.(type) {
		case *object.Str, *object.List, *object.Tuple:
			if res, ok, err := hostBinary(op, rhs, lhs); ok {
				return res, err
			}
		}
	}

	return nil, Raise("TypeError", "unsupported operand type(s) for %s: '%s' and '%s'", op, object.TypeName(lhs), object.TypeName(rhs))
}

func binaryDunders(op token.Kind) (fwd, rev string) {
	switch op {
	case token.PLUS:
		return "__add__", "__radd__"
	case token.MINUS:
		return "__sub__", "__rsub__"
	case token.STAR:
		return "__mul__", "__rmul__"
	case token.SLASH:
		return "__truediv__", "__rtruediv__"
	case token.DOUBLESLASH:
		return "__floordiv__", "__rfloordiv__"
	case token.PERCENT:
		return "__mod__", "__rmod__"
	case token.DOUBLESTAR:
		return "__pow__", "__rpow__"
	case token.AMP:
		return "__and__", "__rand__"
	case token.PIPE:
		return "__or__", "__ror__"
	case token.CARET:
		return "__xor__", "__rxor__"
	case token.LSHIFT:
		return "__lshift__", "__rlshift__"
	case token.RSHIFT:
		return "__rshift__", "__rrshift__"
	}
	return "", ""
}

// inPlaceDunder maps an augmented-assignment operator to its in-place dunder.
func inPlaceDunder(op token.Kind) string {
	switch op {
	case token.PLUS:
		return "__iadd__"
	case token.MINUS:
		return "__isub__"
	case token.STAR:
		return "__imul__"
	case token.SLASH:
		return "__itruediv__"
	case token.DOUBLESLASH:
		return "__ifloordiv__"
	case token.PERCENT:
		return "__imod__"
	case token.DOUBLESTAR:
		return "__ipow__"
	case token.AMP:
		return "__iand__"
	case token.PIPE:
		return "__ior__"
	case token.CARET:
		return "__ixor__"
	case token.LSHIFT:
		return "__ilshift__"
	case token.RSHIFT:
		return "__irshift__"
	}
	return ""
}

// hostBinary handles every non-instance operand combination; ok=false means
// "not applicable, try the next dispatch step".
func hostBinary(op token.Kind, lhs, rhs object.Value) (object.Value, bool, error) {
	lf, lIsFloat, lok := asNumeric(lhs)
	rf, rIsFloat, rok := asNumeric(rhs)
	if lok && rok {
		if str, ok := lhs.(*object.Str); ok {
			return hostStrOp(op, str, rhs)
		}
		useFloat := lIsFloat || rIsFloat
		if !useFloat {
			if v, ok, err := hostIntOp(op, lhs, rhs); ok {
				return v, true, err
			}
		}
		return hostFloatOp(op, lf, rf)
	}
	if str, ok := lhs.(*object.Str); ok {
		return hostStrOp(op, str, rhs)
	}
	if lst, ok := lhs.(*object.List); ok {
		return hostListOp(op, lst, rhs)
	}
	if tup, ok := lhs.(*object.Tuple); ok {
		return hostTupleOp(op, tup, rhs)
	}
	if set, ok := lhs.(*object.Set); ok {
		return hostSetOp(op, set, rhs)
	}
	if fset, ok := lhs.(*object.FrozenSet); ok {
		return hostFrozenSetOp(op, fset, rhs)
	}
	return nil, false, nil
}

func asNumeric(v object.Value) (f float64, isFloat bool, ok bool) {
	switch x := v.(type) {
	case *object.Int:
		fv, _ := new(big.Float).SetInt(x.Value).Float64()
		return fv, false, true
	case *object.Float:
		return x.Value, true, true
	case *object.Bool:
		return float64(boolToInt(x.Value)), false, true
	}
	return 0, false, false
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func toBigInt(v object.Value) *big.Int {
	switch x := v.(type) {
	case *object.Int:
		return x.Value
	case *object.Bool:
		return x.AsInt()
	}
	return big.NewInt(0)
}

func hostIntOp(op token.Kind, lhs, rhs object.Value) (object.Value, bool, error) {
	a, b := toBigInt(lhs), toBigInt(rhs)
	switch op {
	case token.PLUS:
		return &object.Int{Value: new(big.Int).Add(a, b)}, true, nil
	case token.MINUS:
		return &object.Int{Value: new(big.Int).Sub(a, b)}, true, nil
	case token.STAR:
		return &object.Int{Value: new(big.Int).Mul(a, b)}, true, nil
	case token.DOUBLESLASH:
		if b.Sign() == 0 {
			return nil, true, Raise("ZeroDivisionError", "integer division or modulo by zero")
		}
		q, m := new(big.Int), new(big.Int)
		q.DivMod(a, b, m)
		return &object.Int{Value: q}, true, nil
	case token.PERCENT:
		if b.Sign() == 0 {
			return nil, true, Raise("ZeroDivisionError", "integer division or modulo by zero")
		}
		m := new(big.Int).Mod(a, b)
		return &object.Int{Value: m}, true, nil
	case token.DOUBLESTAR:
		if b.Sign() < 0 {
			return nil, false, nil // negative int exponent -> float path
		}
		return &object.Int{Value: new(big.Int).Exp(a, b, nil)}, true, nil
	case token.AMP:
		return &object.Int{Value: new(big.Int).And(a, b)}, true, nil
	case token.PIPE:
		return &object.Int{Value: new(big.Int).Or(a, b)}, true, nil
	case token.CARET:
		return &object.Int{Value: new(big.Int).Xor(a, b)}, true, nil
	case token.LSHIFT:
		if b.Sign() < 0 {
			return nil, true, Raise("ValueError", "negative shift count")
		}
		return &object.Int{Value: new(big.Int).Lsh(a, uint(b.Int64()))}, true, nil
	case token.RSHIFT:
		if b.Sign() < 0 {
			return nil, true, Raise("ValueError", "negative shift count")
		}
		return &object.Int{Value: new(big.Int).Rsh(a, uint(b.Int64()))}, true, nil
	case token.SLASH:
		return nil, false, nil // always float, handled by hostFloatOp
	}
	return nil, false, nil
}

func hostFloatOp(op token.Kind, a, b float64) (object.Value, bool, error) {
	switch op {
	case token.PLUS:
		return &object.Float{Value: a + b}, true, nil
	case token.MINUS:
		return &object.Float{Value: a - b}, true, nil
	case token.STAR:
		return &object.Float{Value: a * b}, true, nil
	case token.SLASH:
		if b == 0 {
			return nil, true, Raise("ZeroDivisionError", "float division by zero")
		}
		return &object.Float{Value: a / b}, true, nil
	case token.DOUBLESLASH:
		if b == 0 {
			return nil, true, Raise("ZeroDivisionError", "float floor division by zero")
		}
		return &object.Float{Value: math.Floor(a / b)}, true, nil
	case token.PERCENT:
		if b == 0 {
			return nil, true, Raise("ZeroDivisionError", "float modulo")
		}
		return &object.Float{Value: math.Mod(math.Mod(a, b)+b, b)}, true, nil
	case token.DOUBLESTAR:
		return &object.Float{Value: math.Pow(a, b)}, true, nil
	}
	return nil, false, nil
}

func hostStrOp(op token.Kind, s *object.Str, rhs object.Value) (object.Value, bool, error) {
	switch op {
	case token.PLUS:
		if other, ok := rhs.(*object.Str); ok {
			return &object.Str{Value: s.Value + other.Value}, true, nil
		}
	case token.STAR:
		if n, ok := rhs.(*object.Int); ok {
			return &object.Str{Value: repeatString(s.Value, n.Value.Int64())}, true, nil
		}
	}
	return nil, false, nil
}

func repeatString(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func hostListOp(op token.Kind, l *object.List, rhs object.Value) (object.Value, bool, error) {
	switch op {
	case token.PLUS:
		if other, ok := rhs.(*object.List); ok {
			out := make([]object.Value, 0, len(l.Elems)+len(other.Elems))
			out = append(out, l.Elems...)
			out = append(out, other.Elems...)
			return &object.List{Elems: out}, true, nil
		}
	case token.STAR:
		if n, ok := rhs.(*object.Int); ok {
			return &object.List{Elems: repeatSlice(l.Elems, n.Value.Int64())}, true, nil
		}
	}
	return nil, false, nil
}

func hostTupleOp(op token.Kind, t *object.Tuple, rhs object.Value) (object.Value, bool, error) {
	switch op {
	case token.PLUS:
		if other, ok := rhs.(*object.Tuple); ok {
			out := make([]object.Value, 0, len(t.Elems)+len(other.Elems))
			out = append(out, t.Elems...)
			out = append(out, other.Elems...)
			return &object.Tuple{Elems: out}, true, nil
		}
	case token.STAR:
		if n, ok := rhs.(*object.Int); ok {
			return &object.Tuple{Elems: repeatSlice(t.Elems, n.Value.Int64())}, true, nil
		}
	}
	return nil, false, nil
}

func repeatSlice(elems []object.Value, n int64) []object.Value {
	if n <= 0 {
		return nil
	}
	out := make([]object.Value, 0, len(elems)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, elems...)
	}
	return out
}

func hostSetOp(op token.Kind, s *object.Set, rhs object.Value) (object.Value, bool, error) {
	other, ok := asSetElems(rhs)
	if !ok {
		return nil, false, nil
	}
	switch op {
	case token.PIPE:
		out := object.NewSet()
		for _, v := range s.Elems {
			out.Add(v)
		}
		for _, v := range other {
			out.Add(v)
		}
		return out, true, nil
	case token.AMP:
		out := object.NewSet()
		for k, v := range s.Elems {
			if containsKey(other, k) {
				out.Add(v)
			}
		}
		return out, true, nil
	case token.MINUS:
		out := object.NewSet()
		for k, v := range s.Elems {
			if !containsKey(other, k) {
				out.Add(v)
			}
		}
		return out, true, nil
	case token.CARET:
		out := object.NewSet()
		for k, v := range s.Elems {
			if !containsKey(other, k) {
				out.Add(v)
			}
		}
		for k, v := range other {
			if !containsKey(toKeyMap(s.Elems), k) {
				out.Add(v)
			}
		}
		return out, true, nil
	}
	return nil, false, nil
}

func hostFrozenSetOp(op token.Kind, s *object.FrozenSet, rhs object.Value) (object.Value, bool, error) {
	other, ok := asSetElems(rhs)
	if !ok {
		return nil, false, nil
	}
	merged := map[object.HashKey]object.Value{}
	switch op {
	case token.PIPE:
		for k, v := range s.Elems {
			merged[k] = v
		}
		for k, v := range other {
			merged[k] = v
		}
		return &object.FrozenSet{Elems: merged}, true, nil
	case token.AMP:
		for k, v := range s.Elems {
			if containsKey(other, k) {
				merged[k] = v
			}
		}
		return &object.FrozenSet{Elems: merged}, true, nil
	case token.MINUS:
		for k, v := range s.Elems {
			if !containsKey(other, k) {
				merged[k] = v
			}
		}
		return &object.FrozenSet{Elems: merged}, true, nil
	}
	return nil, false, nil
}

func asSetElems(v object.Value) (map[object.HashKey]object.Value, bool) {
	switch x := v.(type) {
	case *object.Set:
		return x.Elems, true
	case *object.FrozenSet:
		return x.Elems, true
	}
	return nil, false
}

func toKeyMap(m map[object.HashKey]object.Value) map[object.HashKey]object.Value { return m }

func containsKey(m map[object.HashKey]object.Value, k object.HashKey) bool {
	_, ok := m[k]
	return ok
}

// evalCompareChain implements a left-to-right short-circuiting comparison
// chain (a < b < c is a < b and b < c, evaluating b once).
func (it *Interpreter) evalCompareChain(n *ast.CompareChain) (object.Value, error) {
	left, err := it.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	for _, step := range n.Ops {
		right, err := it.evalExpr(step.Right)
		if err != nil {
			return nil, err
		}
		res, err := it.applyCompare(step, left, right)
		if err != nil {
			return nil, err
		}
		if !it.truthy(res) {
			return object.False, nil
		}
		left = right
	}
	return object.True, nil
}

func (it *Interpreter) applyCompare(step ast.CompareOp, lhs, rhs object.Value) (object.Value, error) {
	switch step.Op {
	case token.IS:
		result := sameIdentity(lhs, rhs)
		if step.IsNot {
			result = !result
		}
		return object.BoolOf(result), nil
	case token.IN:
		ok, err := it.contains(rhs, lhs)
		if err != nil {
			return nil, err
		}
		if step.NotIn {
			ok = !ok
		}
		return object.BoolOf(ok), nil
	}
	return it.richCompare(step.Op, lhs, rhs)
}

func sameIdentity(a, b object.Value) bool {
	switch a.(type) {
	case *object.NoneType:
		_, ok := b.(*object.NoneType)
		return ok
	case *object.Bool, *object.Int:
		return valuesEqual(a, b)
	}
	return a == b
}

// contains implements the `in` operator: __contains__ on the right operand
// (MRO-searched), else a host-native membership scan.
func (it *Interpreter) contains(container, item object.Value) (bool, error) {
	if inst, ok := container.(*object.Instance); ok {
		if fn, cls, ok := inst.Class.Lookup("__contains__"); ok {
			res, err := it.callBound(fn, inst, cls, []object.Value{item}, nil)
			if err != nil {
				return false, err
			}
			return it.truthy(res), nil
		}
	}
	switch c := container.(type) {
	case *object.List:
		for _, e := range c.Elems {
			if valuesEqual(e, item) {
				return true, nil
			}
		}
		return false, nil
	case *object.Tuple:
		for _, e := range c.Elems {
			if valuesEqual(e, item) {
				return true, nil
			}
		}
		return false, nil
	case *object.Str:
		sub, ok := item.(*object.Str)
		if !ok {
			return false, Raise("TypeError", "'in <string>' requires string as left operand")
		}
		return stringsContains(c.Value, sub.Value), nil
	case *object.Dict:
		if !object.Hashable(item) {
			return false, nil
		}
		_, ok := c.Get(item)
		return ok, nil
	case *object.Set:
		return c.Contains(item), nil
	case *object.FrozenSet:
		_, ok := c.Elems[object.KeyOf(item)]
		return ok, nil
	case *object.Range:
		n, ok := item.(*object.Int)
		if !ok {
			return false, nil
		}
		return rangeContains(c, n.Value), nil
	}
	return false, Raise("TypeError", "argument of type '%s' is not iterable", object.TypeName(container))
}

func stringsContains(s, sub string) bool {
	return len(sub) == 0 || (len(s) >= len(sub) && indexOf(s, sub) >= 0)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func rangeContains(r *object.Range, n *big.Int) bool {
	for i := int64(0); i < r.Len(); i++ {
		if r.At(i).Value.Cmp(n) == 0 {
			return true
		}
	}
	return false
}

// richCompare handles <, <=, >, >=, ==, != via dunder dispatch then host
// fallback.
func (it *Interpreter) richCompare(op token.Kind, lhs, rhs object.Value) (object.Value, error) {
	fwd := compareDunder(op)
	if inst, ok := lhs.(*object.Instance); ok {
		if fn, cls, ok := inst.Class.Lookup(fwd); ok {
			res, err := it.callBound(fn, inst, cls, []object.Value{rhs}, nil)
			if err != nil {
				return nil, err
			}
			if res != object.NotImplemented {
				return res, nil
			}
		}
	}
	if op == token.EQ || op == token.NE {
		eq := valuesEqual(lhs, rhs)
		if op == token.NE {
			eq = !eq
		}
		return object.BoolOf(eq), nil
	}
	cmp, ok := hostOrder(lhs, rhs)
	if !ok {
		return nil, Raise("TypeError", "'%s' not supported between instances of '%s' and '%s'", op, object.TypeName(lhs), object.TypeName(rhs))
	}
	switch op {
	case token.LT:
		return object.BoolOf(cmp < 0), nil
	case token.LE:
		return object.BoolOf(cmp <= 0), nil
	case token.GT:
		return object.BoolOf(cmp > 0), nil
	case token.GE:
		return object.BoolOf(cmp >= 0), nil
	}
	return nil, fmt.Errorf("interp: unreachable compare op %s", op)
}

func compareDunder(op token.Kind) string {
	switch op {
	case token.LT:
		return "__lt__"
	case token.LE:
		return "__le__"
	case token.GT:
		return "__gt__"
	case token.GE:
		return "__ge__"
	case token.EQ:
		return "__eq__"
	case token.NE:
		return "__ne__"
	}
	return ""
}

// hostOrder returns (cmp, ok) comparing two host-native orderable values.
func hostOrder(lhs, rhs object.Value) (int, bool) {
	lf, _, lok := asNumeric(lhs)
	rf, _, rok := asNumeric(rhs)
	if lok && rok {
		switch {
		case lf < rf:
			return -1, true
		case lf > rf:
			return 1, true
		default:
			return 0, true
		}
	}
	ls, lok := lhs.(*object.Str)
	rs, rok := rhs.(*object.Str)
	if lok && rok {
		switch {
		case ls.Value < rs.Value:
			return -1, true
		case ls.Value > rs.Value:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

// valuesEqual is host structural equality, used for == default and
// container membership when no __eq__ is defined.
func valuesEqual(a, b object.Value) bool {
	if af, aIsFloat, aok := asNumeric(a); aok {
		if bf, _, bok := asNumeric(b); bok {
			_ = aIsFloat
			return af == bf
		}
		return false
	}
	switch x := a.(type) {
	case *object.Str:
		y, ok := b.(*object.Str)
		return ok && x.Value == y.Value
	case *object.Bytes:
		y, ok := b.(*object.Bytes)
		return ok && string(x.Value) == string(y.Value)
	case *object.NoneType:
		_, ok := b.(*object.NoneType)
		return ok
	case *object.List:
		y, ok := b.(*object.List)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !valuesEqual(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *object.Tuple:
		y, ok := b.(*object.Tuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !valuesEqual(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *object.Dict:
		y, ok := b.(*object.Dict)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, kv := range x.Items() {
			yv, ok := y.Get(kv[0])
			if !ok || !valuesEqual(kv[1], yv) {
				return false
			}
		}
		return true
	case *object.Set:
		y, ok := b.(*object.Set)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for k := range x.Elems {
			if !containsKey(y.Elems, k) {
				return false
			}
		}
		return true
	}
	return a == b
}
