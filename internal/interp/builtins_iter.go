package interp

import (
	"math/big"
	"sort"

	"github.com/go-pyrite/pyrite/internal/object"
)

// sortParallel sorts out in place using keyed[i] as the sort key for
// out[i] (the sorted(..., key=...) case), keeping the two slices in sync.
func sortParallel(out []object.Value, keyed []object.Value, kwargs map[string]object.Value) error {
	reverse := false
	if r, ok := kwargs["reverse"]; ok {
		reverse = object.Truthy(r)
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	var sortErr error
	sort.SliceStable(idx, func(a, b int) bool {
		cmp, ok := hostOrder(keyed[idx[a]], keyed[idx[b]])
		if !ok {
			sortErr = Raise("TypeError", "'<' not supported between instances of '%s' and '%s'", object.TypeName(keyed[idx[a]]), object.TypeName(keyed[idx[b]]))
			return false
		}
		if reverse {
			return cmp > 0
		}
		return cmp < 0
	})
	sortedOut := make([]object.Value, len(out))
	for i, j := range idx {
		sortedOut[i] = out[j]
	}
	copy(out, sortedOut)
	return sortErr
}

func installIterationBuiltins(it *Interpreter) {
	def(it, "range", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		ints := make([]*big.Int, len(args))
		for i, a := range args {
			n, ok := a.(*object.Int)
			if !ok {
				return nil, Raise("TypeError", "'%s' object cannot be interpreted as an integer", object.TypeName(a))
			}
			ints[i] = n.Value
		}
		switch len(ints) {
		case 1:
			return &object.Range{Start: big.NewInt(0), Stop: ints[0], Step: big.NewInt(1)}, nil
		case 2:
			return &object.Range{Start: ints[0], Stop: ints[1], Step: big.NewInt(1)}, nil
		case 3:
			if ints[2].Sign() == 0 {
				return nil, Raise("ValueError", "range() arg 3 must not be zero")
			}
			return &object.Range{Start: ints[0], Stop: ints[1], Step: ints[2]}, nil
		}
		return nil, Raise("TypeError", "range expected 1 to 3 arguments, got %d", len(args))
	})
	def(it, "iter", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "iter() takes 1 argument")
		}
		return it.toIterator(args[0])
	})
	def(it, "next", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, Raise("TypeError", "next() takes 1 or 2 arguments")
		}
		v, ok, err := it.advance(args[0])
		if err != nil {
			return nil, err
		}
		if !ok {
			if len(args) == 2 {
				return args[1], nil
			}
			return nil, Raise("StopIteration", "")
		}
		return v, nil
	})
	def(it, "enumerate", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, Raise("TypeError", "enumerate() takes 1 or 2 arguments")
		}
		start := int64(0)
		if len(args) == 2 {
			n, ok := args[1].(*object.Int)
			if !ok {
				return nil, Raise("TypeError", "enumerate() start must be an integer")
			}
			start = n.Value.Int64()
		}
		elems, err := it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
		out := make([]object.Value, len(elems))
		for i, e := range elems {
			out[i] = &object.Tuple{Elems: []object.Value{object.NewInt(start + int64(i)), e}}
		}
		return &object.List{Elems: out}, nil
	})
	def(it, "zip", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		seqs := make([][]object.Value, len(args))
		minLen := -1
		for i, a := range args {
			elems, err := it.iterableToSlice(a)
			if err != nil {
				return nil, err
			}
			seqs[i] = elems
			if minLen == -1 || len(elems) < minLen {
				minLen = len(elems)
			}
		}
		if minLen == -1 {
			minLen = 0
		}
		out := make([]object.Value, minLen)
		for i := 0; i < minLen; i++ {
			row := make([]object.Value, len(seqs))
			for j, seq := range seqs {
				row[j] = seq[i]
			}
			out[i] = &object.Tuple{Elems: row}
		}
		return &object.List{Elems: out}, nil
	})
	def(it, "map", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) < 2 {
			return nil, Raise("TypeError", "map() takes at least 2 arguments")
		}
		fn := args[0]
		seqs := make([][]object.Value, len(args)-1)
		minLen := -1
		for i, a := range args[1:] {
			elems, err := it.iterableToSlice(a)
			if err != nil {
				return nil, err
			}
			seqs[i] = elems
			if minLen == -1 || len(elems) < minLen {
				minLen = len(elems)
			}
		}
		if minLen == -1 {
			minLen = 0
		}
		out := make([]object.Value, minLen)
		for i := 0; i < minLen; i++ {
			callArgs := make([]object.Value, len(seqs))
			for j, seq := range seqs {
				callArgs[j] = seq[i]
			}
			v, err := it.callCallable(fn, callArgs, nil)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &object.List{Elems: out}, nil
	})
	def(it, "filter", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, Raise("TypeError", "filter() takes 2 arguments")
		}
		elems, err := it.iterableToSlice(args[1])
		if err != nil {
			return nil, err
		}
		var out []object.Value
		for _, e := range elems {
			keep := it.truthy(e)
			if args[0] != object.None {
				v, err := it.callCallable(args[0], []object.Value{e}, nil)
				if err != nil {
					return nil, err
				}
				keep = it.truthy(v)
			}
			if keep {
				out = append(out, e)
			}
		}
		return &object.List{Elems: out}, nil
	})
	def(it, "reversed", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "reversed() takes 1 argument")
		}
		elems, err := it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
		out := make([]object.Value, len(elems))
		for i, e := range elems {
			out[len(elems)-1-i] = e
		}
		return &object.List{Elems: out}, nil
	})
	def(it, "sorted", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "sorted() takes 1 argument")
		}
		elems, err := it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
		out := append([]object.Value{}, elems...)
		if key, ok := kwargs["key"]; ok && key != nil {
			keyed := make([]object.Value, len(out))
			for i, e := range out {
				kv, err := it.callCallable(key, []object.Value{e}, nil)
				if err != nil {
					return nil, err
				}
				keyed[i] = kv
			}
			if err := sortParallel(out, keyed, kwargs); err != nil {
				return nil, err
			}
		} else if err := sortSlice(out, kwargs); err != nil {
			return nil, err
		}
		return &object.List{Elems: out}, nil
	})
}
