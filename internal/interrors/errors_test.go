package interrors

import (
	"strings"
	"testing"

	"github.com/go-pyrite/pyrite/internal/token"
)

func TestFormatCaretPosition(t *testing.T) {
	src := "x = 1\ny = x +\n"
	e := NewCompilerError(token.Position{Line: 2, Column: 8}, "SyntaxError: invalid syntax", src, "")
	out := e.Format(false)
	lines := strings.Split(out, "\n")
	var gutter, caret string
	for i, l := range lines {
		if strings.Contains(l, "y = x +") {
			gutter = l
		}
		if strings.TrimSpace(l) == "^" {
			caret = lines[i]
		}
	}
	if gutter == "" {
		t.Fatalf("expected source line in output, got %q", out)
	}
	if caret == "" {
		t.Fatalf("expected caret line in output, got %q", out)
	}
}

func TestFormatNoSourceOmitsCaret(t *testing.T) {
	e := NewCompilerError(token.Position{Line: 1, Column: 1}, "NameError: name 'x' is not defined", "", "")
	out := e.Format(false)
	if strings.Contains(out, "^") {
		t.Fatalf("did not expect caret without source: %q", out)
	}
}

func TestFormatWithFile(t *testing.T) {
	e := NewCompilerError(token.Position{Line: 3, Column: 1}, "boom", "a\nb\nc\n", "foo.py")
	out := e.Format(false)
	if !strings.HasPrefix(out, "Error in foo.py:3:1") {
		t.Fatalf("expected file-qualified header, got %q", out)
	}
}

func TestSuggestClosestMatch(t *testing.T) {
	got := Suggest("lenght", []string{"length", "width", "height"})
	if !strings.Contains(got, "length") {
		t.Fatalf("expected suggestion to mention 'length', got %q", got)
	}
}

func TestSuggestNoClosematch(t *testing.T) {
	got := Suggest("zzzzzzzzzz", []string{"length", "width"})
	if got != "" {
		t.Fatalf("expected no suggestion, got %q", got)
	}
}

func TestFormatErrorsMultiple(t *testing.T) {
	e1 := NewCompilerError(token.Position{Line: 1, Column: 1}, "first", "a\n", "")
	e2 := NewCompilerError(token.Position{Line: 1, Column: 1}, "second", "a\n", "")
	out := FormatErrors([]*CompilerError{e1, e2}, false)
	if !strings.Contains(out, "Error 1 of 2") || !strings.Contains(out, "Error 2 of 2") {
		t.Fatalf("expected numbered headers, got %q", out)
	}
}

func TestFormatWithContext(t *testing.T) {
	src := "a\nb\nc\nd\ne\n"
	e := NewCompilerError(token.Position{Line: 3, Column: 1}, "boom", src, "")
	out := e.FormatWithContext(1, false)
	if !strings.Contains(out, "-> ") {
		t.Fatalf("expected marked failing line, got %q", out)
	}
	if !strings.Contains(out, "b") || !strings.Contains(out, "d") {
		t.Fatalf("expected context lines b and d, got %q", out)
	}
}
