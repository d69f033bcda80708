package ast

import (
	"testing"

	"github.com/go-pyrite/pyrite/internal/token"
)

func TestBasicStringers(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	id := &Ident{baseNode: NewBase(pos), Name: "x"}
	num := &NumberLit{baseNode: NewBase(pos), IsInt: true, IntText: "42"}
	bin := &BinaryOp{baseNode: NewBase(pos), Op: token.PLUS, Left: id, Right: num}

	if id.String() != "x" {
		t.Errorf("ident string = %q", id.String())
	}
	if num.String() != "42" {
		t.Errorf("number string = %q", num.String())
	}
	want := "(x + 42)"
	if bin.String() != want {
		t.Errorf("binop string = %q, want %q", bin.String(), want)
	}
	if bin.Pos() != pos {
		t.Errorf("pos = %v, want %v", bin.Pos(), pos)
	}
}

func TestAssignString(t *testing.T) {
	pos := token.Position{Line: 2, Column: 3}
	a := &Assign{
		baseNode: NewBase(pos),
		Targets:  []Expr{&Ident{baseNode: NewBase(pos), Name: "a"}, &Ident{baseNode: NewBase(pos), Name: "b"}},
		Value:    &NumberLit{baseNode: NewBase(pos), IsInt: true, IntText: "1"},
	}
	if a.String() != "a = b = 1" {
		t.Errorf("got %q", a.String())
	}
}
