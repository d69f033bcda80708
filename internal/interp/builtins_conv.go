package interp

import (
	"unicode/utf8"

	"github.com/go-pyrite/pyrite/internal/object"
)

func installConversionBuiltins(it *Interpreter) {
	def(it, "chr", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "chr() takes 1 argument")
		}
		n, ok := args[0].(*object.Int)
		if !ok {
			return nil, Raise("TypeError", "an integer is required")
		}
		r := rune(n.Value.Int64())
		if r < 0 || r > utf8.MaxRune {
			return nil, Raise("ValueError", "chr() arg not in range(0x110000)")
		}
		return &object.Str{Value: string(r)}, nil
	})
	def(it, "ord", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "ord() takes 1 argument")
		}
		s, ok := args[0].(*object.Str)
		if !ok {
			return nil, Raise("TypeError", "ord() expected string")
		}
		runes := []rune(s.Value)
		if len(runes) != 1 {
			return nil, Raise("TypeError", "ord() expected a character, but string of length %d found", len(runes))
		}
		return object.NewInt(int64(runes[0])), nil
	})
	def(it, "repr", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "repr() takes 1 argument")
		}
		return &object.Str{Value: it.repr(args[0])}, nil
	})
}
