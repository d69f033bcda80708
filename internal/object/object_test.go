package object

import "testing"

func TestDictSetdefaultLikeUsage(t *testing.T) {
	d := NewDict()
	key := &Str{Value: "a"}
	if _, ok := d.Get(key); ok {
		t.Fatal("expected missing key")
	}
	list := &List{}
	d.Set(key, list)
	list.Elems = append(list.Elems, NewInt(1))
	got, ok := d.Get(&Str{Value: "a"})
	if !ok {
		t.Fatal("expected key present")
	}
	gotList := got.(*List)
	if len(gotList.Elems) != 1 {
		t.Fatalf("expected 1 elem, got %d", len(gotList.Elems))
	}
}

func TestDictInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set(&Str{Value: "b"}, NewInt(2))
	d.Set(&Str{Value: "a"}, NewInt(1))
	keys := d.Keys()
	if len(keys) != 2 || keys[0].(*Str).Value != "b" || keys[1].(*Str).Value != "a" {
		t.Fatalf("unexpected order: %v", keys)
	}
}

func TestSetMembership(t *testing.T) {
	s := NewSet()
	s.Add(NewInt(1))
	s.Add(NewInt(1))
	if len(s.Elems) != 1 {
		t.Fatalf("expected 1 elem after duplicate add, got %d", len(s.Elems))
	}
	if !s.Contains(NewInt(1)) {
		t.Fatal("expected membership")
	}
}

func TestC3LinearizationDiamond(t *testing.T) {
	o, err := NewClass("O", nil)
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewClass("A", []*Class{o})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewClass("B", []*Class{o})
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewClass("C", []*Class{a, b})
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(c.MRO))
	for i, m := range c.MRO {
		names[i] = m.Name
	}
	want := []string{"C", "A", "B", "O"}
	if len(names) != len(want) {
		t.Fatalf("got %v want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v want %v", names, want)
		}
	}
}

func TestC3LinearizationInconsistent(t *testing.T) {
	x, _ := NewClass("X", nil)
	y, _ := NewClass("Y", nil)
	xy, _ := NewClass("XY", []*Class{x, y})
	yx, _ := NewClass("YX", []*Class{y, x})
	_, err := NewClass("Z", []*Class{xy, yx})
	if err == nil {
		t.Fatal("expected inconsistent MRO error")
	}
}

func TestScopeGlobalDeclaration(t *testing.T) {
	root := NewGlobalEnvironment()
	root.Set("x", NewInt(10))

	fn := NewEnclosedEnvironment(root, ScopeLocal, map[string]bool{})
	fn.DeclareGlobal("x")
	if err := fn.Set("x", NewInt(20)); err != nil {
		t.Fatal(err)
	}
	v, err := root.Get("x")
	if err != nil {
		t.Fatal(err)
	}
	if v.(*Int).Value.Int64() != 20 {
		t.Fatalf("expected root x updated to 20, got %v", v)
	}
}

func TestScopeUnboundLocalError(t *testing.T) {
	root := NewGlobalEnvironment()
	root.Set("x", NewInt(10))

	fn := NewEnclosedEnvironment(root, ScopeLocal, map[string]bool{"x": true})
	_, err := fn.Get("x")
	if err == nil {
		t.Fatal("expected UnboundLocalError")
	}
	se, ok := err.(*ScopeError)
	if !ok || se.Kind != "UnboundLocalError" {
		t.Fatalf("expected UnboundLocalError, got %v", err)
	}
}

func TestScopeNonlocalMissingBinding(t *testing.T) {
	root := NewGlobalEnvironment()
	fn := NewEnclosedEnvironment(root, ScopeLocal, map[string]bool{})
	err := fn.DeclareNonlocal("y")
	if err != nil {
		t.Fatal(err)
	}
	_, getErr := fn.Get("y")
	if getErr == nil {
		t.Fatal("expected error for missing nonlocal binding")
	}
}

func TestScopeNonlocalAtRootIsSyntaxError(t *testing.T) {
	root := NewGlobalEnvironment()
	if err := root.DeclareNonlocal("x"); err == nil {
		t.Fatal("expected SyntaxError declaring nonlocal at root")
	}
}

func TestExceptionSubclassMatch(t *testing.T) {
	lookupErr := ExceptionClasses["LookupError"]
	indexErr := ExceptionClasses["IndexError"]
	if !IsExceptionSubclass(indexErr, lookupErr) {
		t.Fatal("expected IndexError to be a LookupError subclass")
	}
	valueErr := ExceptionClasses["ValueError"]
	if IsExceptionSubclass(indexErr, valueErr) {
		t.Fatal("did not expect IndexError to be a ValueError subclass")
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{NewInt(0), false},
		{NewInt(1), true},
		{&Str{Value: ""}, false},
		{&Str{Value: "x"}, true},
		{&List{}, false},
		{&List{Elems: []Value{None}}, true},
		{None, false},
		{True, true},
		{False, false},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v.Inspect(), got, c.want)
		}
	}
}
