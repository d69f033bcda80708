package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-pyrite/pyrite/internal/object"
)

func TestRunReturnsTopLevelValue(t *testing.T) {
	var out bytes.Buffer
	v, err := Run("1 + 2", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := v.(*object.Int)
	if !ok {
		t.Fatalf("expected *object.Int, got %T", v)
	}
	if i.Value.Int64() != 3 {
		t.Fatalf("expected 3, got %s", i.Value.String())
	}
}

func TestRunPrintsToOutput(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(`print("hello", "world")`, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "hello world\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRunSyntaxErrorSurfacesAsPyError(t *testing.T) {
	var out bytes.Buffer
	_, err := Run("def (:", &out)
	if err == nil {
		t.Fatal("expected an error for malformed source")
	}
	pe, ok := err.(*PyError)
	if !ok {
		t.Fatalf("expected *PyError, got %T", err)
	}
	if pe.Instance.Class.Name != "SyntaxError" {
		t.Fatalf("expected SyntaxError, got %s", pe.Instance.Class.Name)
	}
}

func TestRunAsyncAwaitsTopLevelCoroutine(t *testing.T) {
	var out bytes.Buffer
	source := `
async def make():
    return 42

await make()
`
	v, err := RunAsync(source, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := v.(*object.Int)
	if !ok {
		t.Fatalf("expected *object.Int, got %T", v)
	}
	if i.Value.Int64() != 42 {
		t.Fatalf("expected 42, got %s", i.Value.String())
	}
}

func TestCreateInterpreterSeedsGlobals(t *testing.T) {
	var out bytes.Buffer
	it := CreateInterpreter(&out, map[string]object.Value{
		"seeded": object.NewInt(7),
	})
	v, err := it.RunSource("seeded * 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := v.(*object.Int)
	if !ok || i.Value.Int64() != 14 {
		t.Fatalf("expected 14, got %v", v)
	}
}

func TestGlobalGetSet(t *testing.T) {
	var out bytes.Buffer
	it := New(&out)
	if err := it.GlobalSet("x", object.NewInt(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := it.GlobalGet("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(*object.Int); !ok || i.Value.Int64() != 10 {
		t.Fatalf("expected 10, got %v", v)
	}
}

// TestListComprehensionEvenDoubling checks a filtered list comprehension.
func TestListComprehensionEvenDoubling(t *testing.T) {
	var out bytes.Buffer
	v, err := Run("[x*2 for x in range(5) if x%2==0]", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lst, ok := v.(*object.List)
	if !ok {
		t.Fatalf("expected *object.List, got %T", v)
	}
	if len(lst.Elems) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(lst.Elems))
	}
	want := []int64{0, 4, 8}
	for i, w := range want {
		n, ok := lst.Elems[i].(*object.Int)
		if !ok || n.Value.Int64() != w {
			t.Fatalf("element %d: expected %d, got %v", i, w, lst.Elems[i])
		}
	}
}

// TestSuperMROChaining checks that B.greet chains to A.greet via super().
func TestSuperMROChaining(t *testing.T) {
	var out bytes.Buffer
	source := `
class A:
    def greet(self):
        return "A"

class B(A):
    def greet(self):
        return super().greet() + "B"

print(B().greet())
`
	_, err := Run(source, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "AB" {
		t.Fatalf("expected AB, got %q", got)
	}
}

// TestGeneratorEagerCollection checks that list(g()) collects all yielded
// values eagerly, since generators are not lazily suspended.
func TestGeneratorEagerCollection(t *testing.T) {
	var out bytes.Buffer
	source := `
def g():
    yield 1
    yield 2
    yield 3

print(list(g()))
`
	_, err := Run(source, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "[1, 2, 3]" {
		t.Fatalf("expected [1, 2, 3], got %q", got)
	}
}

// TestUnboundLocalError checks that assigning to a name anywhere in a
// function body makes every reference to that name local, so reading it
// before the assignment raises UnboundLocalError rather than falling back
// to an enclosing/global binding.
func TestUnboundLocalError(t *testing.T) {
	var out bytes.Buffer
	source := `
x = 1

def f():
    print(x)
    x = 2

f()
`
	_, err := Run(source, &out)
	if err == nil {
		t.Fatal("expected an UnboundLocalError")
	}
	pe, ok := err.(*PyError)
	if !ok {
		t.Fatalf("expected *PyError, got %T", err)
	}
	if pe.Instance.Class.Name != "UnboundLocalError" {
		t.Fatalf("expected UnboundLocalError, got %s", pe.Instance.Class.Name)
	}
}

// TestExceptionSubclassMatching checks that an except clause naming a base
// exception class catches an instance of a more specific subclass.
func TestExceptionSubclassMatching(t *testing.T) {
	var out bytes.Buffer
	source := `
try:
    raise KeyError("missing")
except LookupError as e:
    print("caught", e)
`
	_, err := Run(source, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "caught missing" {
		t.Fatalf("unexpected output: %q", got)
	}
}

// TestDictSetdefault checks dict.setdefault's insert-if-absent semantics.
func TestDictSetdefault(t *testing.T) {
	var out bytes.Buffer
	source := `
d = {"a": 1}
d.setdefault("a", 99)
d.setdefault("b", 2)
print(d["a"], d["b"])
`
	_, err := Run(source, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "1 2" {
		t.Fatalf("unexpected output: %q", got)
	}
}
