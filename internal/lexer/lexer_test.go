package lexer

import (
	"testing"

	"github.com/go-pyrite/pyrite/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, src string, want []token.Kind) {
	t.Helper()
	l := New(src)
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", src, err)
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize(%q)[%d] = %s, want %s (full: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestSimpleAssignment(t *testing.T) {
	assertKinds(t, "x = 1\n", []token.Kind{token.IDENT, token.ASSIGN, token.INT, token.NEWLINE, token.EOF})
}

func TestIndentDedent(t *testing.T) {
	src := "if x:\n    y = 1\n    z = 2\nw = 3\n"
	assertKinds(t, src, []token.Kind{
		token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.DEDENT,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.EOF,
	})
}

func TestNestedIndentMultiDedent(t *testing.T) {
	src := "if a:\n    if b:\n        x = 1\ny = 2\n"
	assertKinds(t, src, []token.Kind{
		token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.DEDENT, token.DEDENT,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.EOF,
	})
}

func TestBlankAndCommentLinesIgnored(t *testing.T) {
	src := "x = 1\n\n# a comment\n\ny = 2\n"
	assertKinds(t, src, []token.Kind{
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.EOF,
	})
}

func TestBracketSuppressesNewline(t *testing.T) {
	src := "x = [1,\n2,\n3]\n"
	assertKinds(t, src, []token.Kind{
		token.IDENT, token.ASSIGN, token.LBRACKET, token.INT, token.COMMA,
		token.INT, token.COMMA, token.INT, token.RBRACKET, token.NEWLINE, token.EOF,
	})
}

func TestBackslashContinuation(t *testing.T) {
	src := "x = 1 + \\\n    2\n"
	assertKinds(t, src, []token.Kind{
		token.IDENT, token.ASSIGN, token.INT, token.PLUS, token.INT, token.NEWLINE, token.EOF,
	})
}

func TestOperators(t *testing.T) {
	src := "a **= 2 // 3 <= 4 != 5 := 6\n"
	assertKinds(t, src, []token.Kind{
		token.IDENT, token.DSTAREQ, token.INT, token.DOUBLESLASH, token.INT,
		token.LE, token.INT, token.NE, token.INT, token.WALRUS, token.INT, token.NEWLINE, token.EOF,
	})
}

func TestNumericLiterals(t *testing.T) {
	l := New("1_000 0x1F 0o17 0b101 3.14 1e10 2j\n")
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{token.INT, token.INT, token.INT, token.INT, token.FLOAT, token.FLOAT, token.IMAG, token.NEWLINE, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if toks[0].IntVal != "1000" {
		t.Errorf("underscore not stripped: %q", toks[0].IntVal)
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`s = "hello\nworld"` + "\n")
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[2].Kind != token.STRING || toks[2].StrVal != "hello\nworld" {
		t.Fatalf("got %+v", toks[2])
	}
}

func TestRawString(t *testing.T) {
	l := New(`s = r"a\nb"` + "\n")
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[2].Kind != token.STRING || toks[2].StrVal != `a\nb` {
		t.Fatalf("got %+v", toks[2])
	}
}

func TestTripleQuoted(t *testing.T) {
	l := New("s = '''line1\nline2'''\n")
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[2].Kind != token.STRING || toks[2].StrVal != "line1\nline2" {
		t.Fatalf("got %+v", toks[2])
	}
}

func TestFString(t *testing.T) {
	l := New(`f"hello {name!r:>10}"` + "\n")
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.FSTRING {
		t.Fatalf("got %+v", toks[0])
	}
	parts := toks[0].FParts
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d: %+v", len(parts), parts)
	}
	if parts[0].Literal != "hello " {
		t.Errorf("literal part = %q", parts[0].Literal)
	}
	if !parts[1].IsExpr || parts[1].Expr != "name" || parts[1].Conversion != 'r' || parts[1].FormatSpec != ">10" {
		t.Errorf("expr part = %+v", parts[1])
	}
}

func TestBytesLiteral(t *testing.T) {
	l := New(`b"abc"` + "\n")
	toks, _ := l.Tokenize()
	if toks[0].Kind != token.BYTES || toks[0].StrVal != "abc" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestUnindentMismatchError(t *testing.T) {
	src := "if a:\n    x = 1\n  y = 2\n"
	l := New(src)
	_, err := l.Tokenize()
	if err == nil {
		t.Fatal("expected error for mismatched dedent")
	}
}

func TestKeywordsNotIdent(t *testing.T) {
	assertKinds(t, "if True and not False:\n    pass\n", []token.Kind{
		token.IF, token.TRUE, token.AND, token.NOT, token.FALSE, token.COLON, token.NEWLINE,
		token.INDENT, token.PASS, token.NEWLINE, token.DEDENT, token.EOF,
	})
}

func TestTabIndent(t *testing.T) {
	src := "if a:\n\tx = 1\n"
	assertKinds(t, src, []token.Kind{
		token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT, token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.DEDENT, token.EOF,
	})
}
