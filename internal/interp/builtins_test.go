package interp

import (
	"bytes"
	"strings"
	"testing"
)

func runOK(t *testing.T, source string) string {
	t.Helper()
	var out bytes.Buffer
	if _, err := Run(source, &out); err != nil {
		t.Fatalf("unexpected error running %q: %v", source, err)
	}
	return strings.TrimSpace(out.String())
}

func TestTypeConstructorsAreRealClasses(t *testing.T) {
	tests := []struct {
		name, source, want string
	}{
		{"int-of-str", `print(int("42"))`, "42"},
		{"float-of-int", `print(float(3))`, "3.0"},
		{"str-of-int", `print(str(7) + "!")`, "7!"},
		{"bool-of-list", `print(bool([1]))`, "True"},
		{"list-of-range", `print(list(range(3)))`, "[0, 1, 2]"},
		{"type-of-int", `print(type(1) is int)`, "True"},
		{"isinstance-int", `print(isinstance(1, int))`, "True"},
		{"isinstance-bool-not-str", `print(isinstance(True, str))`, "False"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runOK(t, tt.source); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsinstanceAcceptsTupleOfClasses(t *testing.T) {
	if got := runOK(t, `print(isinstance(1, (str, int)))`); got != "True" {
		t.Errorf("got %q", got)
	}
}

func TestMinMaxWithKeyAndDefault(t *testing.T) {
	tests := []struct {
		name, source, want string
	}{
		{"max-by-key", `print(max(["a", "bbb", "cc"], key=len))`, "bbb"},
		{"min-plain", `print(min(3, 1, 2))`, "1"},
		{"max-empty-default", `print(max([], default=0))`, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runOK(t, tt.source); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundBankersRounding(t *testing.T) {
	tests := []struct {
		name, source, want string
	}{
		{"round-half-to-even-low", `print(round(0.5))`, "0"},
		{"round-half-to-even-high", `print(round(1.5))`, "2"},
		{"round-half-to-even-2.5", `print(round(2.5))`, "2"},
		{"round-ndigits", `print(round(3.14159, 2))`, "3.14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runOK(t, tt.source); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortedWithKeyAndReverse(t *testing.T) {
	tests := []struct {
		name, source, want string
	}{
		{"sorted-by-len", `print(sorted(["ccc", "a", "bb"], key=len))`, "['a', 'bb', 'ccc']"},
		{"sorted-reverse", `print(sorted([3, 1, 2], reverse=True))`, "[3, 2, 1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runOK(t, tt.source); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuperZeroArgPropertyAndLen(t *testing.T) {
	source := `
class Base:
    def __init__(self, items):
        self._items = items

    @property
    def count(self):
        return len(self._items)

class Sized(Base):
    def __init__(self, items):
        super().__init__(items)

s = Sized([1, 2, 3, 4])
print(s.count)
`
	if got := runOK(t, source); got != "4" {
		t.Errorf("got %q", got)
	}
}

func TestClassmethodStaticmethod(t *testing.T) {
	source := `
class Counter:
    total = 0

    @classmethod
    def bump(cls):
        cls.total += 1
        return cls.total

    @staticmethod
    def describe():
        return "a counter"

print(Counter.bump())
print(Counter.bump())
print(Counter.describe())
`
	var out bytes.Buffer
	if _, err := Run(source, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := strings.TrimSpace(out.String())
	want := "1\n2\na counter"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDivmodAndPow(t *testing.T) {
	tests := []struct {
		name, source, want string
	}{
		{"divmod", `print(divmod(7, 2))`, "(3, 1)"},
		{"pow-two-arg", `print(pow(2, 10))`, "1024"},
		{"pow-modular", `print(pow(2, 10, 1000))`, "24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runOK(t, tt.source); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChrOrdRepr(t *testing.T) {
	tests := []struct {
		name, source, want string
	}{
		{"chr", `print(chr(65))`, "A"},
		{"ord", `print(ord("A"))`, "65"},
		{"repr-str", `print(repr("hi"))`, "'hi'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runOK(t, tt.source); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
