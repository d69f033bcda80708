// Package object defines Pyrite's runtime value model: the Value interface
// and its primitive/container/callable/class variants, plus the lexical
// Scope chain and the class/MRO machinery.
//
// Each Value variant is a distinct concrete Go type with its own Type()
// name; dict/set keys use a boxed comparable wrapper instead of a separate
// hashing layer, since Go's native map equality already covers it (see
// DESIGN.md).
package object

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Value is the interface implemented by every runtime value variant.
type Value interface {
	Type() string
	Inspect() string // repr()-style rendering
}

// Truthy reports a value's boolean context: __bool__ first, then __len__,
// then type-specific defaults. Instance dispatch is handled by
// internal/interp (which has access to the evaluator); this function covers
// every host-native value.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case *Bool:
		return x.Value
	case *Int:
		return x.Value.Sign() != 0
	case *Float:
		return x.Value != 0
	case *Complex:
		return x.Real != 0 || x.Imag != 0
	case *Str:
		return len(x.Value) != 0
	case *Bytes:
		return len(x.Value) != 0
	case *NoneType:
		return false
	case *List:
		return len(x.Elems) != 0
	case *Tuple:
		return len(x.Elems) != 0
	case *Dict:
		return x.Len() != 0
	case *Set:
		return len(x.Elems) != 0
	case *FrozenSet:
		return len(x.Elems) != 0
	case *Range:
		return x.Len() != 0
	default:
		return true
	}
}

// ---------------------------------------------------------------------
// Singletons
// ---------------------------------------------------------------------

// NoneType is the type of the None singleton.
type NoneType struct{}

func (n *NoneType) Type() string    { return "NoneType" }
func (n *NoneType) Inspect() string { return "None" }

// None is the sole instance of NoneType.
var None = &NoneType{}

// NotImplementedType is the type of the NotImplemented singleton.
type NotImplementedType struct{}

func (n *NotImplementedType) Type() string    { return "NotImplementedType" }
func (n *NotImplementedType) Inspect() string { return "NotImplemented" }

// NotImplemented is the sole instance of NotImplementedType, returned by a
// dunder method that cannot handle the other operand.
var NotImplemented = &NotImplementedType{}

// Bool wraps a boolean. True and False below are the only instances; bool is
// a subtype of int for arithmetic and truthiness purposes.
type Bool struct {
	Value bool
}

func (b *Bool) Type() string { return "bool" }
func (b *Bool) Inspect() string {
	if b.Value {
		return "True"
	}
	return "False"
}

// AsInt returns bool's integer value (0 or 1), since bool ⊂ int.
func (b *Bool) AsInt() *big.Int {
	if b.Value {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

// True and False are the two Bool singletons.
var (
	True  = &Bool{Value: true}
	False = &Bool{Value: false}
)

// BoolOf returns the Bool singleton for a Go bool.
func BoolOf(b bool) *Bool {
	if b {
		return True
	}
	return False
}

// ---------------------------------------------------------------------
// Numbers
// ---------------------------------------------------------------------

// Int is an arbitrary-precision integer.
type Int struct {
	Value *big.Int
}

func (i *Int) Type() string    { return "int" }
func (i *Int) Inspect() string { return i.Value.String() }

// NewInt builds an Int from an int64.
func NewInt(n int64) *Int { return &Int{Value: big.NewInt(n)} }

// NewIntFromString parses a decimal (optionally 0x/0o/0b-prefixed) literal.
func NewIntFromString(s string) (*Int, bool) {
	n := new(big.Int)
	base := 10
	ls := strings.ToLower(s)
	switch {
	case strings.HasPrefix(ls, "0x"):
		base, s = 16, s[2:]
	case strings.HasPrefix(ls, "0o"):
		base, s = 8, s[2:]
	case strings.HasPrefix(ls, "0b"):
		base, s = 2, s[2:]
	}
	_, ok := n.SetString(s, base)
	if !ok {
		return nil, false
	}
	return &Int{Value: n}, true
}

// Float is an IEEE double.
type Float struct {
	Value float64
}

func (f *Float) Type() string    { return "float" }
func (f *Float) Inspect() string {
	if math.IsInf(f.Value, 1) {
		return "inf"
	}
	if math.IsInf(f.Value, -1) {
		return "-inf"
	}
	if math.IsNaN(f.Value) {
		return "nan"
	}
	return formatFloat(f.Value)
}

func formatFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Complex is an imaginary/complex number (real + imag*j).
type Complex struct {
	Real float64
	Imag float64
}

func (c *Complex) Type() string { return "complex" }
func (c *Complex) Inspect() string {
	if c.Real == 0 {
		return fmt.Sprintf("%sj", formatFloat(c.Imag))
	}
	sign := "+"
	if c.Imag < 0 {
		sign = "-"
	}
	return fmt.Sprintf("(%s%s%sj)", formatFloat(c.Real), sign, formatFloat(math.Abs(c.Imag)))
}

// ---------------------------------------------------------------------
// Strings and bytes
// ---------------------------------------------------------------------

// Str is an immutable text string.
type Str struct {
	Value string
}

func (s *Str) Type() string    { return "str" }
func (s *Str) Inspect() string { return fmt.Sprintf("%q", s.Value) }

// Bytes is an immutable byte string.
type Bytes struct {
	Value []byte
}

func (b *Bytes) Type() string    { return "bytes" }
func (b *Bytes) Inspect() string { return fmt.Sprintf("b%q", string(b.Value)) }

// ---------------------------------------------------------------------
// Hashing support for dict/set keys
// ---------------------------------------------------------------------

// HashKey is a boxed, comparable representation of a Value suitable for use
// as a Go map key. Unhashable values (list, dict, set, or an instance whose
// class defines __eq__ without __hash__) have no HashKey; callers detect
// this via Hashable.
type HashKey struct {
	kind string
	str  string
	num  float64
	ptr  any
}

// Hashable reports whether v can be used as a dict/set key on its own (the
// class-level __eq__/__hash__ override case is handled by internal/interp,
// which has visibility into user class definitions).
func Hashable(v Value) bool {
	switch v.(type) {
	case *List, *Dict, *Set:
		return false
	default:
		return true
	}
}

// KeyOf computes the HashKey for a hashable host-native value. Instances are
// keyed by pointer identity unless the interpreter layer overrides this via
// a custom-equality wrapper.
func KeyOf(v Value) HashKey {
	switch x := v.(type) {
	case *Bool:
		return HashKey{kind: "int", num: boolFloat(x.Value)}
	case *Int:
		f, acc := new(big.Float).SetInt(x.Value).Float64()
		if acc == big.Exact {
			return HashKey{kind: "int", num: f}
		}
		return HashKey{kind: "int", num: f, str: x.Value.String()}
	case *Float:
		return HashKey{kind: "int", num: x.Value}
	case *Str:
		return HashKey{kind: "str", str: x.Value}
	case *Bytes:
		return HashKey{kind: "bytes", str: string(x.Value)}
	case *NoneType:
		return HashKey{kind: "none"}
	case *Tuple:
		parts := make([]string, len(x.Elems))
		for i, e := range x.Elems {
			parts[i] = fmt.Sprintf("%v", KeyOf(e))
		}
		return HashKey{kind: "tuple", str: strings.Join(parts, ",")}
	case *FrozenSet:
		keys := make([]string, 0, len(x.Elems))
		for k := range x.Elems {
			keys = append(keys, fmt.Sprintf("%v", k))
		}
		return HashKey{kind: "frozenset", str: strings.Join(keys, ",")}
	default:
		return HashKey{kind: "ptr", ptr: v}
	}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// TypeName returns v's Pyrite type name, the one surface every Value
// exposes.
func TypeName(v Value) string { return v.Type() }
