package object

import (
	"fmt"
	"math/big"
	"strings"
)

// List is an ordered mutable sequence.
type List struct {
	Elems []Value
}

func (l *List) Type() string { return "list" }
func (l *List) Inspect() string {
	return "[" + joinInspect(l.Elems) + "]"
}

// Tuple is an ordered immutable sequence.
type Tuple struct {
	Elems []Value
}

func (t *Tuple) Type() string { return "tuple" }
func (t *Tuple) Inspect() string {
	if len(t.Elems) == 1 {
		return "(" + t.Elems[0].Inspect() + ",)"
	}
	return "(" + joinInspect(t.Elems) + ")"
}

func joinInspect(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Inspect()
	}
	return strings.Join(parts, ", ")
}

// dictEntry preserves insertion order alongside the stored value.
type dictEntry struct {
	key   Value
	value Value
}

// Dict is an insertion-ordered mapping with equality-based keys.
type Dict struct {
	entries map[HashKey]*dictEntry
	order   []HashKey
}

// NewDict constructs an empty Dict.
func NewDict() *Dict {
	return &Dict{entries: make(map[HashKey]*dictEntry)}
}

func (d *Dict) Type() string { return "dict" }
func (d *Dict) Inspect() string {
	parts := make([]string, 0, len(d.order))
	for _, k := range d.order {
		e := d.entries[k]
		parts = append(parts, fmt.Sprintf("%s: %s", e.key.Inspect(), e.value.Inspect()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.order) }

// Get returns the value for key and whether it was present.
func (d *Dict) Get(key Value) (Value, bool) {
	e, ok := d.entries[KeyOf(key)]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set inserts or updates key, preserving original insertion order on update.
func (d *Dict) Set(key, value Value) {
	hk := KeyOf(key)
	if e, ok := d.entries[hk]; ok {
		e.value = value
		return
	}
	d.entries[hk] = &dictEntry{key: key, value: value}
	d.order = append(d.order, hk)
}

// Delete removes key if present, reporting whether it was found.
func (d *Dict) Delete(key Value) bool {
	hk := KeyOf(key)
	if _, ok := d.entries[hk]; !ok {
		return false
	}
	delete(d.entries, hk)
	for i, k := range d.order {
		if k == hk {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns keys in insertion order.
func (d *Dict) Keys() []Value {
	out := make([]Value, len(d.order))
	for i, k := range d.order {
		out[i] = d.entries[k].key
	}
	return out
}

// Values returns values in insertion order.
func (d *Dict) Values() []Value {
	out := make([]Value, len(d.order))
	for i, k := range d.order {
		out[i] = d.entries[k].value
	}
	return out
}

// Items returns key/value pairs in insertion order.
func (d *Dict) Items() [][2]Value {
	out := make([][2]Value, len(d.order))
	for i, k := range d.order {
		e := d.entries[k]
		out[i] = [2]Value{e.key, e.value}
	}
	return out
}

// Set is a mutable hash set.
type Set struct {
	Elems map[HashKey]Value
}

// NewSet builds an empty Set.
func NewSet() *Set { return &Set{Elems: make(map[HashKey]Value)} }

func (s *Set) Type() string { return "set" }
func (s *Set) Inspect() string {
	if len(s.Elems) == 0 {
		return "set()"
	}
	parts := make([]string, 0, len(s.Elems))
	for _, v := range s.Elems {
		parts = append(parts, v.Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Add inserts v, returning whether it was newly added.
func (s *Set) Add(v Value) bool {
	k := KeyOf(v)
	if _, ok := s.Elems[k]; ok {
		return false
	}
	s.Elems[k] = v
	return true
}

// Contains reports whether v is a member.
func (s *Set) Contains(v Value) bool {
	_, ok := s.Elems[KeyOf(v)]
	return ok
}

// Remove deletes v, reporting whether it was present.
func (s *Set) Remove(v Value) bool {
	k := KeyOf(v)
	if _, ok := s.Elems[k]; !ok {
		return false
	}
	delete(s.Elems, k)
	return true
}

// FrozenSet is an immutable hash set.
type FrozenSet struct {
	Elems map[HashKey]Value
}

func (s *FrozenSet) Type() string { return "frozenset" }
func (s *FrozenSet) Inspect() string {
	parts := make([]string, 0, len(s.Elems))
	for _, v := range s.Elems {
		parts = append(parts, v.Inspect())
	}
	return "frozenset({" + strings.Join(parts, ", ") + "})"
}

// NewFrozenSetFrom builds a FrozenSet from a slice of values.
func NewFrozenSetFrom(vs []Value) *FrozenSet {
	elems := make(map[HashKey]Value, len(vs))
	for _, v := range vs {
		elems[KeyOf(v)] = v
	}
	return &FrozenSet{Elems: elems}
}

// Range is the lazy arithmetic sequence produced by range().
type Range struct {
	Start, Stop, Step *big.Int
}

func (r *Range) Type() string { return "range" }
func (r *Range) Inspect() string {
	if r.Step.Cmp(big.NewInt(1)) == 0 {
		return fmt.Sprintf("range(%s, %s)", r.Start, r.Stop)
	}
	return fmt.Sprintf("range(%s, %s, %s)", r.Start, r.Stop, r.Step)
}

// Len computes the number of elements in the range.
func (r *Range) Len() int64 {
	if r.Step.Sign() == 0 {
		return 0
	}
	diff := new(big.Int).Sub(r.Stop, r.Start)
	if r.Step.Sign() > 0 {
		if diff.Sign() <= 0 {
			return 0
		}
	} else {
		if diff.Sign() >= 0 {
			return 0
		}
		diff.Neg(diff)
	}
	step := new(big.Int).Abs(r.Step)
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(diff, step, m)
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Int64()
}

// At returns the i-th element of the range.
func (r *Range) At(i int64) *Int {
	off := new(big.Int).Mul(big.NewInt(i), r.Step)
	return &Int{Value: new(big.Int).Add(r.Start, off)}
}

// SliceObj is an explicit slice(start, stop, step) value, also used as a
// subscript index.
type SliceObj struct {
	Start, Stop, Step Value // each is Value (Int or None)
}

func (s *SliceObj) Type() string    { return "slice" }
func (s *SliceObj) Inspect() string { return "slice(...)" }
