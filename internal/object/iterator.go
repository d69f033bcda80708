package object

import "fmt"

// Iterator is implemented by every host-native iterator value; internal/
// interp's next()/StopIteration plumbing consults it directly for these
// variants before falling back to __next__ method dispatch on a user
// instance.
type Iterator interface {
	Value
	Next() (Value, bool) // ok=false means exhausted
}

// ListIterator walks a List snapshot.
type ListIterator struct {
	Elems []Value
	Pos   int
}

func (it *ListIterator) Type() string    { return "list_iterator" }
func (it *ListIterator) Inspect() string { return "<list_iterator object>" }
func (it *ListIterator) Next() (Value, bool) {
	if it.Pos >= len(it.Elems) {
		return nil, false
	}
	v := it.Elems[it.Pos]
	it.Pos++
	return v, true
}

// TupleIterator walks a Tuple.
type TupleIterator struct {
	Elems []Value
	Pos   int
}

func (it *TupleIterator) Type() string    { return "tuple_iterator" }
func (it *TupleIterator) Inspect() string { return "<tuple_iterator object>" }
func (it *TupleIterator) Next() (Value, bool) {
	if it.Pos >= len(it.Elems) {
		return nil, false
	}
	v := it.Elems[it.Pos]
	it.Pos++
	return v, true
}

// StringIterator walks a Str by rune.
type StringIterator struct {
	Runes []rune
	Pos   int
}

func (it *StringIterator) Type() string    { return "str_iterator" }
func (it *StringIterator) Inspect() string { return "<str_iterator object>" }
func (it *StringIterator) Next() (Value, bool) {
	if it.Pos >= len(it.Runes) {
		return nil, false
	}
	v := &Str{Value: string(it.Runes[it.Pos])}
	it.Pos++
	return v, true
}

// RangeIterator walks a Range.
type RangeIterator struct {
	R   *Range
	Pos int64
}

func (it *RangeIterator) Type() string    { return "range_iterator" }
func (it *RangeIterator) Inspect() string { return "<range_iterator object>" }
func (it *RangeIterator) Next() (Value, bool) {
	if it.Pos >= it.R.Len() {
		return nil, false
	}
	v := it.R.At(it.Pos)
	it.Pos++
	return v, true
}

// SetIterator walks a Set/FrozenSet snapshot (order is the Go map's
// iteration order, captured once at iterator construction for stability
// across Next calls).
type SetIterator struct {
	Elems []Value
	Pos   int
}

func (it *SetIterator) Type() string    { return "set_iterator" }
func (it *SetIterator) Inspect() string { return "<set_iterator object>" }
func (it *SetIterator) Next() (Value, bool) {
	if it.Pos >= len(it.Elems) {
		return nil, false
	}
	v := it.Elems[it.Pos]
	it.Pos++
	return v, true
}

// DictKeysView, DictValuesView, DictItemsView back dict.keys()/.values()/
// .items(); they snapshot at creation time (Pyrite does not track live
// mutation-during-iteration errors).
type DictKeysView struct{ Keys []Value }

func (v *DictKeysView) Type() string    { return "dict_keys" }
func (v *DictKeysView) Inspect() string { return "dict_keys(" + joinInspect(v.Keys) + ")" }

type DictValuesView struct{ Values []Value }

func (v *DictValuesView) Type() string    { return "dict_values" }
func (v *DictValuesView) Inspect() string { return "dict_values(" + joinInspect(v.Values) + ")" }

type DictItemsView struct{ Items []Value } // each Items[i] is a *Tuple pair

func (v *DictItemsView) Type() string    { return "dict_items" }
func (v *DictItemsView) Inspect() string { return "dict_items(" + joinInspect(v.Items) + ")" }

// Enumerate pairs an underlying iterator with a running index.
type Enumerate struct {
	Inner Iterator
	Next0 int64
}

func (e *Enumerate) Type() string    { return "enumerate" }
func (e *Enumerate) Inspect() string { return "<enumerate object>" }
func (e *Enumerate) Next() (Value, bool) {
	v, ok := e.Inner.Next()
	if !ok {
		return nil, false
	}
	idx := NewInt(e.Next0)
	e.Next0++
	return &Tuple{Elems: []Value{idx, v}}, true
}

// Zip walks N iterators in lockstep, stopping at the shortest.
type Zip struct {
	Inners []Iterator
}

func (z *Zip) Type() string    { return "zip" }
func (z *Zip) Inspect() string { return "<zip object>" }
func (z *Zip) Next() (Value, bool) {
	out := make([]Value, len(z.Inners))
	for i, it := range z.Inners {
		v, ok := it.Next()
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return &Tuple{Elems: out}, true
}

// MapIterator applies a callback (invoked by internal/interp, which holds
// the evaluator) lazily over an inner iterator. Call is a closure bound at
// construction time since object cannot itself invoke a Function/Builtin.
type MapIterator struct {
	Inner Iterator
	Call  func(args []Value) (Value, error)
}

func (m *MapIterator) Type() string    { return "map" }
func (m *MapIterator) Inspect() string { return "<map object>" }
func (m *MapIterator) Next() (Value, bool) {
	v, ok := m.Inner.Next()
	if !ok {
		return nil, false
	}
	result, err := m.Call([]Value{v})
	if err != nil {
		return nil, false
	}
	return result, true
}

// FilterIterator lazily filters an inner iterator through a predicate.
type FilterIterator struct {
	Inner Iterator
	Pred  func(v Value) (bool, error)
}

func (f *FilterIterator) Type() string    { return "filter" }
func (f *FilterIterator) Inspect() string { return "<filter object>" }
func (f *FilterIterator) Next() (Value, bool) {
	for {
		v, ok := f.Inner.Next()
		if !ok {
			return nil, false
		}
		keep, err := f.Pred(v)
		if err != nil {
			return nil, false
		}
		if keep {
			return v, true
		}
	}
}

// UserIterProxy wraps a user-defined instance exposing __iter__/__next__ so
// host code (built-ins like list()/sorted()) can drive it uniformly; the
// Advance callback is supplied by internal/interp since invoking __next__
// requires the evaluator.
type UserIterProxy struct {
	Instance *Instance
	Advance  func() (Value, bool, error) // value, ok, error (non-StopIteration failure)
}

func (u *UserIterProxy) Type() string    { return u.Instance.Class.Name }
func (u *UserIterProxy) Inspect() string { return u.Instance.Inspect() }
func (u *UserIterProxy) Next() (Value, bool) {
	v, ok, err := u.Advance()
	if err != nil {
		return nil, false
	}
	return v, ok
}

// Generator is an eager-buffer generator object: the body runs to
// completion on first Next(), recording every yielded value, then replays
// them one at a time.
type Generator struct {
	Name      string
	buffered  bool
	buffer    []Value
	pos       int
	finalErr  error // a non-StopIteration exception raised during the body
	Run       func() ([]Value, error)
}

func (g *Generator) Type() string    { return "generator" }
func (g *Generator) Inspect() string { return fmt.Sprintf("<generator object %s>", g.Name) }

// Next drives the eager-collection strategy: the first call runs the whole
// body (via Run) and buffers every yielded value; subsequent calls replay
// the buffer. ok=false with err=nil means ordinary StopIteration; ok=false
// with err!=nil means the body itself raised during collection.
func (g *Generator) Next() (v Value, ok bool, err error) {
	if !g.buffered {
		g.buffer, g.finalErr = g.Run()
		g.buffered = true
	}
	if g.pos < len(g.buffer) {
		v = g.buffer[g.pos]
		g.pos++
		return v, true, nil
	}
	return nil, false, g.finalErr
}

// Coroutine is a callable marked async (without yield): awaiting it runs the
// body under async mode and yields the function's return value.
type Coroutine struct {
	Name string
	Run  func() (Value, error)
	ran  bool
	result Value
	err    error
}

func (c *Coroutine) Type() string    { return "coroutine" }
func (c *Coroutine) Inspect() string { return fmt.Sprintf("<coroutine object %s>", c.Name) }

// Await runs the coroutine body exactly once, caching the outcome so a
// second await observes the same result (matching CPython's
// "cannot reuse already awaited coroutine" being out of scope here — Pyrite
// simply memoizes instead of erroring, a deliberate simplification).
func (c *Coroutine) Await() (Value, error) {
	if !c.ran {
		c.result, c.err = c.Run()
		c.ran = true
	}
	return c.result, c.err
}

// AsyncGenerator is isAsync && isGenerator: collected eagerly like Generator
// but replayed through __anext__/async for.
type AsyncGenerator struct {
	Name     string
	buffered bool
	buffer   []Value
	pos      int
	finalErr error
	Run      func() ([]Value, error)
}

func (a *AsyncGenerator) Type() string    { return "async_generator" }
func (a *AsyncGenerator) Inspect() string { return fmt.Sprintf("<async_generator object %s>", a.Name) }

func (a *AsyncGenerator) Next() (Value, bool, error) {
	if !a.buffered {
		a.buffer, a.finalErr = a.Run()
		a.buffered = true
	}
	if a.pos < len(a.buffer) {
		v := a.buffer[a.pos]
		a.pos++
		return v, true, nil
	}
	return nil, false, a.finalErr
}
