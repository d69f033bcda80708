package interp

import (
	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
)

// toIterator produces an object.Iterator-compatible stepper for any
// iterable value: every host container gets a snapshot iterator; a user
// instance exposing __iter__/__next__ is wrapped in a UserIterProxy.
func (it *Interpreter) toIterator(v object.Value) (object.Value, error) {
	switch x := v.(type) {
	case *object.List:
		return &object.ListIterator{Elems: x.Elems}, nil
	case *object.Tuple:
		return &object.TupleIterator{Elems: x.Elems}, nil
	case *object.Str:
		return &object.StringIterator{Runes: []rune(x.Value)}, nil
	case *object.Range:
		return &object.RangeIterator{R: x}, nil
	case *object.Set:
		elems := make([]object.Value, 0, len(x.Elems))
		for _, e := range x.Elems {
			elems = append(elems, e)
		}
		return &object.SetIterator{Elems: elems}, nil
	case *object.FrozenSet:
		elems := make([]object.Value, 0, len(x.Elems))
		for _, e := range x.Elems {
			elems = append(elems, e)
		}
		return &object.SetIterator{Elems: elems}, nil
	case *object.Dict:
		return &object.ListIterator{Elems: x.Keys()}, nil
	case *object.DictKeysView:
		return &object.ListIterator{Elems: x.Keys}, nil
	case *object.DictValuesView:
		return &object.ListIterator{Elems: x.Values}, nil
	case *object.DictItemsView:
		return &object.ListIterator{Elems: x.Items}, nil
	case object.Iterator:
		return x, nil
	case *object.Instance:
		return it.userIterator(x)
	}
	return nil, Raise("TypeError", "'%s' object is not iterable", object.TypeName(v))
}

// userIterator drives a Python-level __iter__/__next__ protocol through a
// UserIterProxy, so object's generic Iterator consumers (built-ins, for-
// loops) don't need evaluator access themselves.
func (it *Interpreter) userIterator(inst *object.Instance) (object.Value, error) {
	iterFn, iterCls, hasIter := inst.Class.Lookup("__iter__")
	if !hasIter {
		return nil, Raise("TypeError", "'%s' object is not iterable", inst.Class.Name)
	}
	iterObj, err := it.callBound(iterFn, inst, iterCls, nil, nil)
	if err != nil {
		return nil, err
	}
	iterInst, ok := iterObj.(*object.Instance)
	if !ok {
		return iterObj, nil
	}
	nextFn, nextCls, hasNext := iterInst.Class.Lookup("__next__")
	if !hasNext {
		return nil, Raise("TypeError", "iter() returned non-iterator of type '%s'", iterInst.Class.Name)
	}
	return &object.UserIterProxy{
		Instance: iterInst,
		Advance: func() (object.Value, bool, error) {
			v, err := it.callBound(nextFn, iterInst, nextCls, nil, nil)
			if err != nil {
				if pe, ok := err.(*PyError); ok && pe.Instance.Class.IsSubclassOf(object.ExceptionClasses["StopIteration"]) {
					return nil, false, nil
				}
				return nil, false, err
			}
			return v, true, nil
		},
	}, nil
}

// iterableToSlice eagerly drains any iterable into a slice, used by
// unpacking, list()/tuple()/set() construction, list.extend, and str.join.
func (it *Interpreter) iterableToSlice(v object.Value) ([]object.Value, error) {
	iter, err := it.toIterator(v)
	if err != nil {
		return nil, err
	}
	var out []object.Value
	for {
		val, ok, err := it.advance(iter)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, val)
	}
	return out, nil
}

// advance steps any iterator-shaped value once, unifying the error-carrying
// UserIterProxy/Generator path with the plain object.Iterator path.
func (it *Interpreter) advance(iter object.Value) (object.Value, bool, error) {
	switch x := iter.(type) {
	case *object.UserIterProxy:
		return x.Advance()
	case *object.Generator:
		return x.Next()
	case *object.AsyncGenerator:
		return x.Next()
	case object.Iterator:
		v, ok := x.Next()
		return v, ok, nil
	}
	return nil, false, Raise("TypeError", "'%s' object is not an iterator", object.TypeName(iter))
}

// execFor implements `for TARGET in ITER: BODY [else: ORELSE]`, including
// the for-else semantics (ORELSE only runs if no break fired).
func (it *Interpreter) execFor(n *ast.For) error {
	iterVal, err := it.evalExpr(n.Iter)
	if err != nil {
		return err
	}
	iter, err := it.toIterator(iterVal)
	if err != nil {
		return err
	}
	ranBreak := false
	for {
		val, ok, err := it.advance(iter)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := it.assignTo(n.Target, val); err != nil {
			return err
		}
		if err := it.execBlock(n.Body); err != nil {
			return err
		}
		if it.signal == signalBreak {
			it.signal = signalNone
			ranBreak = true
			break
		}
		if it.signal == signalReturn {
			return nil
		}
		if it.signal == signalContinue {
			it.signal = signalNone
		}
	}
	if !ranBreak {
		return it.execBlock(n.Orelse)
	}
	return nil
}

// evalSubscript implements indexing and slicing: __getitem__ dispatch on
// an Instance, else host negative-index wraparound / Python slice
// semantics for List/Tuple/Str/Bytes, plus Dict/Set lookup.
func (it *Interpreter) evalSubscript(n *ast.Subscript) (object.Value, error) {
	recv, err := it.evalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	if sl, ok := n.Index.(*ast.Slice); ok {
		return it.evalSlice(recv, sl)
	}
	idx, err := it.evalExpr(n.Index)
	if err != nil {
		return nil, err
	}
	return it.getItem(recv, idx)
}

func (it *Interpreter) getItem(recv, idx object.Value) (object.Value, error) {
	if inst, ok := recv.(*object.Instance); ok {
		if fn, cls, ok := inst.Class.Lookup("__getitem__"); ok {
			return it.callBound(fn, inst, cls, []object.Value{idx}, nil)
		}
		return nil, Raise("TypeError", "'%s' object is not subscriptable", inst.Class.Name)
	}
	switch c := recv.(type) {
	case *object.List:
		i, ok := idx.(*object.Int)
		if !ok {
			return nil, Raise("TypeError", "list indices must be integers")
		}
		pos, err := normalizeIndex(i.Value.Int64(), len(c.Elems))
		if err != nil {
			return nil, err
		}
		return c.Elems[pos], nil
	case *object.Tuple:
		i, ok := idx.(*object.Int)
		if !ok {
			return nil, Raise("TypeError", "tuple indices must be integers")
		}
		pos, err := normalizeIndex(i.Value.Int64(), len(c.Elems))
		if err != nil {
			return nil, err
		}
		return c.Elems[pos], nil
	case *object.Str:
		i, ok := idx.(*object.Int)
		if !ok {
			return nil, Raise("TypeError", "string indices must be integers")
		}
		runes := []rune(c.Value)
		pos, err := normalizeIndex(i.Value.Int64(), len(runes))
		if err != nil {
			return nil, err
		}
		return &object.Str{Value: string(runes[pos])}, nil
	case *object.Dict:
		if v, ok := c.Get(idx); ok {
			return v, nil
		}
		return nil, Raise("KeyError", "%s", it.repr(idx))
	case *object.Range:
		i, ok := idx.(*object.Int)
		if !ok {
			return nil, Raise("TypeError", "range indices must be integers")
		}
		pos := i.Value.Int64()
		if pos < 0 {
			pos += c.Len()
		}
		if pos < 0 || pos >= c.Len() {
			return nil, Raise("IndexError", "range object index out of range")
		}
		return c.At(pos), nil
	}
	return nil, Raise("TypeError", "'%s' object is not subscriptable", object.TypeName(recv))
}

func (it *Interpreter) evalSlice(recv object.Value, sl *ast.Slice) (object.Value, error) {
	length, err := it.sequenceLen(recv)
	if err != nil {
		return nil, err
	}
	start, stop, step, err := it.resolveSlice(sl, length)
	if err != nil {
		return nil, err
	}
	indices := sliceIndices(start, stop, step)
	switch c := recv.(type) {
	case *object.List:
		out := make([]object.Value, len(indices))
		for i, pos := range indices {
			out[i] = c.Elems[pos]
		}
		return &object.List{Elems: out}, nil
	case *object.Tuple:
		out := make([]object.Value, len(indices))
		for i, pos := range indices {
			out[i] = c.Elems[pos]
		}
		return &object.Tuple{Elems: out}, nil
	case *object.Str:
		runes := []rune(c.Value)
		out := make([]rune, len(indices))
		for i, pos := range indices {
			out[i] = runes[pos]
		}
		return &object.Str{Value: string(out)}, nil
	}
	return nil, Raise("TypeError", "'%s' object is not subscriptable", object.TypeName(recv))
}

func (it *Interpreter) sequenceLen(v object.Value) (int, error) {
	switch x := v.(type) {
	case *object.List:
		return len(x.Elems), nil
	case *object.Tuple:
		return len(x.Elems), nil
	case *object.Str:
		return len([]rune(x.Value)), nil
	}
	return 0, Raise("TypeError", "'%s' object is not subscriptable", object.TypeName(v))
}

// resolveSlice evaluates lower/upper/step expressions and applies Python's
// clamping rules for a sequence of length n.
func (it *Interpreter) resolveSlice(sl *ast.Slice, n int) (start, stop, step int, err error) {
	step = 1
	if sl.Step != nil {
		v, err := it.evalExpr(sl.Step)
		if err != nil {
			return 0, 0, 0, err
		}
		iv, ok := v.(*object.Int)
		if !ok {
			return 0, 0, 0, Raise("TypeError", "slice indices must be integers")
		}
		step = int(iv.Value.Int64())
		if step == 0 {
			return 0, 0, 0, Raise("ValueError", "slice step cannot be zero")
		}
	}

	defaultStart, defaultStop := 0, n
	if step < 0 {
		defaultStart, defaultStop = n-1, -1
	}

	start = defaultStart
	if sl.Lower != nil {
		v, err := it.evalExpr(sl.Lower)
		if err != nil {
			return 0, 0, 0, err
		}
		if iv, ok := v.(*object.Int); ok {
			start = clampSliceIndex(int(iv.Value.Int64()), n, step < 0)
		}
	}
	stop = defaultStop
	if sl.Upper != nil {
		v, err := it.evalExpr(sl.Upper)
		if err != nil {
			return 0, 0, 0, err
		}
		if iv, ok := v.(*object.Int); ok {
			stop = clampSliceIndex(int(iv.Value.Int64()), n, step < 0)
		}
	}
	return start, stop, step, nil
}

func clampSliceIndex(i, n int, reversed bool) int {
	if i < 0 {
		i += n
	}
	if reversed {
		if i < -1 {
			i = -1
		}
		if i > n-1 {
			i = n - 1
		}
		return i
	}
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i
}

func sliceIndices(start, stop, step int) []int {
	var out []int
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out
}

// makeGenerator builds an eager-collection object.Generator: Run executes
// the full body once, recording every yielded value via a dedicated
// collecting scope.
func (it *Interpreter) makeGenerator(fn *object.Function, recv object.Value, definingClass *object.Class, args []object.Value, kwargs map[string]object.Value) *object.Generator {
	return &object.Generator{
		Name: fn.Name,
		Run: func() ([]object.Value, error) {
			return it.collectYields(fn, recv, definingClass, args, kwargs)
		},
	}
}

func (it *Interpreter) makeCoroutine(fn *object.Function, recv object.Value, definingClass *object.Class, args []object.Value, kwargs map[string]object.Value) *object.Coroutine {
	return &object.Coroutine{
		Name: fn.Name,
		Run: func() (object.Value, error) {
			return it.runFunctionBody(fn, recv, definingClass, args, kwargs)
		},
	}
}

// collectYields runs fn's body to completion with it.yieldSink pointing at
// a buffer, so every `yield`/`yield from` appends to it instead of
// suspending, in place of real coroutine suspension.
func (it *Interpreter) collectYields(fn *object.Function, recv object.Value, definingClass *object.Class, args []object.Value, kwargs map[string]object.Value) ([]object.Value, error) {
	scope, err := it.bindParams(fn, recv, args, kwargs)
	if err != nil {
		return nil, err
	}
	if err := it.pushFrame(fn.Name, fn.IsAsync); err != nil {
		return nil, err
	}
	defer it.popFrame()

	savedEnv, savedClass, savedYields := it.env, it.currentClass, it.yieldSink
	it.env = scope
	if definingClass != nil {
		it.currentClass = definingClass
	}
	var collected []object.Value
	it.yieldSink = &collected
	defer func() { it.env, it.currentClass, it.yieldSink = savedEnv, savedClass, savedYields }()

	err = it.execBlock(fn.Body)
	it.signal = signalNone
	it.returnValue = nil
	if err != nil {
		return collected, err
	}
	return collected, nil
}

// evalYield appends the yielded value to the active generator's collection
// buffer per the eager-collection strategy; outside a generator body this
// is a RuntimeError (the parser accepts `yield` in any expression
// position, so this check is what rejects a yield outside a generator).
func (it *Interpreter) evalYield(n *ast.Yield) (object.Value, error) {
	if it.yieldSink == nil {
		return nil, Raise("RuntimeError", "yield evaluated outside a generator")
	}
	var v object.Value = object.None
	if n.Value != nil {
		val, err := it.evalExpr(n.Value)
		if err != nil {
			return nil, err
		}
		v = val
	}
	*it.yieldSink = append(*it.yieldSink, v)
	return object.None, nil
}

func (it *Interpreter) evalYieldFrom(n *ast.YieldFrom) (object.Value, error) {
	if it.yieldSink == nil {
		return nil, Raise("RuntimeError", "yield evaluated outside a generator")
	}
	v, err := it.evalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	elems, err := it.iterableToSlice(v)
	if err != nil {
		return nil, err
	}
	*it.yieldSink = append(*it.yieldSink, elems...)
	return object.None, nil
}

func (it *Interpreter) evalAwait(n *ast.Await) (object.Value, error) {
	v, err := it.evalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	if co, ok := v.(*object.Coroutine); ok {
		return co.Await()
	}
	return v, nil
}
