package parser

import (
	"testing"

	"github.com/go-pyrite/pyrite/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, errs := Parse(src)
	if len(errs) > 0 {
		t.Fatalf("Parse(%q) errors: %v", src, errs)
	}
	return mod
}

func TestParseSimpleAssign(t *testing.T) {
	mod := mustParse(t, "x = 1\n")
	if len(mod.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Body))
	}
	a, ok := mod.Body[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", mod.Body[0])
	}
	if len(a.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(a.Targets))
	}
}

func TestParseChainedAssign(t *testing.T) {
	mod := mustParse(t, "a = b = 1\n")
	a := mod.Body[0].(*ast.Assign)
	if len(a.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(a.Targets))
	}
}

func TestParseAugAssign(t *testing.T) {
	mod := mustParse(t, "x += 1\n")
	aa, ok := mod.Body[0].(*ast.AugAssign)
	if !ok {
		t.Fatalf("expected *ast.AugAssign, got %T", mod.Body[0])
	}
	_ = aa
}

func TestParseIfElifElse(t *testing.T) {
	src := "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n"
	mod := mustParse(t, src)
	top, ok := mod.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", mod.Body[0])
	}
	nested, ok := top.Orelse[0].(*ast.If)
	if !ok {
		t.Fatalf("expected desugared elif to be nested *ast.If, got %T", top.Orelse[0])
	}
	if len(nested.Orelse) != 1 {
		t.Fatalf("expected else body on nested if, got %d stmts", len(nested.Orelse))
	}
}

func TestParseFunctionDefWithDefaults(t *testing.T) {
	src := "def f(a, b=1, *args, c, d=2, **kwargs):\n    return a\n"
	mod := mustParse(t, src)
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected *ast.FunctionDef, got %T", mod.Body[0])
	}
	if len(fn.Params) != 6 {
		t.Fatalf("expected 6 params, got %d: %+v", len(fn.Params), fn.Params)
	}
	if fn.Params[2].Kind != ast.ParamVarArgs {
		t.Errorf("expected *args at index 2, got %+v", fn.Params[2])
	}
	if fn.Params[3].Kind != ast.ParamKeywordOnly {
		t.Errorf("expected keyword-only at index 3, got %+v", fn.Params[3])
	}
	if fn.Params[5].Kind != ast.ParamKwArgs {
		t.Errorf("expected **kwargs at index 5, got %+v", fn.Params[5])
	}
}

func TestParseClassWithBases(t *testing.T) {
	src := "class C(A, B):\n    def m(self):\n        pass\n"
	mod := mustParse(t, src)
	cd, ok := mod.Body[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("expected *ast.ClassDef, got %T", mod.Body[0])
	}
	if len(cd.Bases) != 2 {
		t.Fatalf("expected 2 bases, got %d", len(cd.Bases))
	}
}

func TestParseListComprehension(t *testing.T) {
	mod := mustParse(t, "y = [x for x in xs if x > 0]\n")
	a := mod.Body[0].(*ast.Assign)
	lc, ok := a.Value.(*ast.ListComp)
	if !ok {
		t.Fatalf("expected *ast.ListComp, got %T", a.Value)
	}
	if len(lc.Clauses) != 1 || len(lc.Clauses[0].Ifs) != 1 {
		t.Fatalf("unexpected clauses: %+v", lc.Clauses)
	}
}

func TestParseDictLiteral(t *testing.T) {
	mod := mustParse(t, "d = {'a': 1, 'b': 2}\n")
	a := mod.Body[0].(*ast.Assign)
	d, ok := a.Value.(*ast.DictLit)
	if !ok {
		t.Fatalf("expected *ast.DictLit, got %T", a.Value)
	}
	if len(d.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(d.Entries))
	}
}

func TestParseTryExceptElseFinally(t *testing.T) {
	src := "try:\n    x = 1\nexcept ValueError as e:\n    x = 2\nelse:\n    x = 3\nfinally:\n    x = 4\n"
	mod := mustParse(t, src)
	tr, ok := mod.Body[0].(*ast.Try)
	if !ok {
		t.Fatalf("expected *ast.Try, got %T", mod.Body[0])
	}
	if len(tr.Handlers) != 1 || tr.Handlers[0].Name != "e" {
		t.Fatalf("unexpected handler: %+v", tr.Handlers)
	}
	if len(tr.Orelse) != 1 || len(tr.Finally) != 1 {
		t.Fatalf("expected else/finally bodies, got %+v / %+v", tr.Orelse, tr.Finally)
	}
}

func TestParseWithStatement(t *testing.T) {
	mod := mustParse(t, "with open('f') as fh:\n    pass\n")
	w, ok := mod.Body[0].(*ast.With)
	if !ok {
		t.Fatalf("expected *ast.With, got %T", mod.Body[0])
	}
	if len(w.Items) != 1 || w.Items[0].Target == nil {
		t.Fatalf("unexpected with items: %+v", w.Items)
	}
}

func TestParseDecorator(t *testing.T) {
	src := "@staticmethod\ndef f():\n    pass\n"
	mod := mustParse(t, src)
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("expected *ast.FunctionDef, got %T", mod.Body[0])
	}
	if len(fn.Decorators) != 1 {
		t.Fatalf("expected 1 decorator, got %d", len(fn.Decorators))
	}
}

func TestParseComparisonChain(t *testing.T) {
	mod := mustParse(t, "y = 1 < x < 10\n")
	a := mod.Body[0].(*ast.Assign)
	cc, ok := a.Value.(*ast.CompareChain)
	if !ok {
		t.Fatalf("expected *ast.CompareChain, got %T", a.Value)
	}
	if len(cc.Ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(cc.Ops))
	}
}

func TestParseGeneratorSoleArg(t *testing.T) {
	mod := mustParse(t, "sum(x for x in xs)\n")
	call := mod.Body[0].(*ast.ExprStmt).Value.(*ast.Call)
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(call.Args))
	}
	if _, ok := call.Args[0].Value.(*ast.GeneratorExp); !ok {
		t.Fatalf("expected GeneratorExp arg, got %T", call.Args[0].Value)
	}
}

func TestParseSemicolonSeparatedStatements(t *testing.T) {
	mod := mustParse(t, "x = 1; y = 2\n")
	if len(mod.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(mod.Body))
	}
}

func TestParseFString(t *testing.T) {
	mod := mustParse(t, `s = f"hi {name}"`+"\n")
	a := mod.Body[0].(*ast.Assign)
	fs, ok := a.Value.(*ast.FStringLit)
	if !ok {
		t.Fatalf("expected *ast.FStringLit, got %T", a.Value)
	}
	if len(fs.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(fs.Parts))
	}
}

func TestParseWalrus(t *testing.T) {
	mod := mustParse(t, "if (n := 10) > 5:\n    pass\n")
	ifs := mod.Body[0].(*ast.If)
	cc := ifs.Test.(*ast.CompareChain)
	if _, ok := cc.Left.(*ast.NamedExpr); !ok {
		t.Fatalf("expected NamedExpr, got %T", cc.Left)
	}
}

func TestParseStarredUnpacking(t *testing.T) {
	mod := mustParse(t, "a, *b, c = [1, 2, 3, 4]\n")
	assign := mod.Body[0].(*ast.Assign)
	tup, ok := assign.Targets[0].(*ast.TupleLit)
	if !ok {
		t.Fatalf("expected TupleLit target, got %T", assign.Targets[0])
	}
	if _, ok := tup.Elts[1].(*ast.Starred); !ok {
		t.Fatalf("expected Starred middle element, got %T", tup.Elts[1])
	}
}
