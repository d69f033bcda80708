package object

import (
	"fmt"
)

// Class is a user-defined class: its own namespace plus a C3-linearised
// method resolution order over its bases. Multiple inheritance means a
// class can't just walk a single parent chain for method/property/operator
// lookup, so MRO is computed once at class-definition time as a flat,
// linearised slice; LookupMRO/Lookup below walk that slice in order.
type Class struct {
	Name    string
	Bases   []*Class
	MRO     []*Class // includes the class itself at index 0
	Dict    map[string]Value // methods, class vars, nested classes, descriptors
	Meta    *Class            // metaclass; nil means the implicit root metaclass
	IsAbstract bool

	// HostCtor, when set, marks Class as one of the built-in primitive
	// types (int, str, list, ...): calling the class invokes HostCtor
	// directly instead of the user-class instantiate path, since these
	// values are host-native (*Int, *Str, ...) rather than *Instance.
	HostCtor func(args []Value, kwargs map[string]Value) (Value, error)
}

func (c *Class) Type() string    { return "type" }
func (c *Class) Inspect() string { return fmt.Sprintf("<class '%s'>", c.Name) }

// NewClass builds a Class and computes its MRO via C3 linearisation. Returns
// an error if no consistent MRO exists.
func NewClass(name string, bases []*Class) (*Class, error) {
	c := &Class{Name: name, Bases: bases, Dict: make(map[string]Value)}
	mro, err := c3Merge(c, bases)
	if err != nil {
		return nil, err
	}
	c.MRO = mro
	return c, nil
}

// c3Merge computes [C] ++ merge(MRO(B1), ..., MRO(Bn), [B1,...,Bn]).
func c3Merge(self *Class, bases []*Class) ([]*Class, error) {
	if len(bases) == 0 {
		return []*Class{self}, nil
	}
	lists := make([][]*Class, 0, len(bases)+1)
	for _, b := range bases {
		lists = append(lists, append([]*Class{}, b.MRO...))
	}
	lists = append(lists, append([]*Class{}, bases...))

	var merged []*Class
	for {
		lists = removeEmpty(lists)
		if len(lists) == 0 {
			break
		}
		var head *Class
		for _, l := range lists {
			cand := l[0]
			if !appearsInTail(cand, lists) {
				head = cand
				break
			}
		}
		if head == nil {
			return nil, fmt.Errorf("Cannot create a consistent method resolution order (MRO)")
		}
		merged = append(merged, head)
		for i, l := range lists {
			lists[i] = removeHeadIfEqual(l, head)
		}
	}
	return append([]*Class{self}, merged...), nil
}

func removeEmpty(lists [][]*Class) [][]*Class {
	out := lists[:0]
	for _, l := range lists {
		if len(l) > 0 {
			out = append(out, l)
		}
	}
	return out
}

func appearsInTail(c *Class, lists [][]*Class) bool {
	for _, l := range lists {
		for _, x := range l[1:] {
			if x == c {
				return true
			}
		}
	}
	return false
}

func removeHeadIfEqual(l []*Class, head *Class) []*Class {
	if len(l) > 0 && l[0] == head {
		return l[1:]
	}
	return l
}

// LookupMRO finds name on any MRO member starting at startIdx, returning the
// value and the class that defines it.
func (c *Class) LookupMRO(name string, startIdx int) (Value, *Class, bool) {
	for i := startIdx; i < len(c.MRO); i++ {
		if v, ok := c.MRO[i].Dict[name]; ok {
			return v, c.MRO[i], true
		}
	}
	return nil, nil, false
}

// Lookup finds name starting from the beginning of the MRO.
func (c *Class) Lookup(name string) (Value, *Class, bool) {
	return c.LookupMRO(name, 0)
}

// IsSubclassOf reports whether c is target or inherits from it (appears
// anywhere in its MRO). IsExceptionSubclass (exception.go) is the same check
// specialized to exception classes.
func (c *Class) IsSubclassOf(target *Class) bool {
	for _, m := range c.MRO {
		if m == target {
			return true
		}
	}
	return false
}

// Instance is a user-object instance: a class pointer plus an own attribute
// map.
type Instance struct {
	Class *Class
	Attrs map[string]Value
}

// NewInstance creates a bare instance of cls with an empty attribute map.
func NewInstance(cls *Class) *Instance {
	return &Instance{Class: cls, Attrs: make(map[string]Value)}
}

func (o *Instance) Type() string    { return o.Class.Name }
func (o *Instance) Inspect() string { return fmt.Sprintf("<%s object>", o.Class.Name) }

// GetAttr reads from the instance's own attribute map only; full MRO-aware
// lookup (including descriptors and __getattr__) lives in internal/interp,
// which has access to the evaluator needed to invoke property getters.
func (o *Instance) GetAttr(name string) (Value, bool) {
	v, ok := o.Attrs[name]
	return v, ok
}

// SetAttr writes directly to the instance's own attribute map.
func (o *Instance) SetAttr(name string, v Value) {
	o.Attrs[name] = v
}

// SuperProxy is the object returned by a zero-argument super() call: the
// class from which the search continues (the class *after* the pivot in the
// instance's MRO) plus the bound instance.
type SuperProxy struct {
	Pivot    *Class // the class whose method the current frame is executing
	Instance *Instance
}

func (s *SuperProxy) Type() string    { return "super" }
func (s *SuperProxy) Inspect() string { return fmt.Sprintf("<super: <class '%s'>, <%s object>>", s.Pivot.Name, s.Instance.Class.Name) }

// StartIndex returns the MRO index to begin searching from: the position
// right after Pivot in Instance.Class's MRO.
func (s *SuperProxy) StartIndex() int {
	mro := s.Instance.Class.MRO
	for i, c := range mro {
		if c == s.Pivot {
			return i + 1
		}
	}
	return len(mro)
}
