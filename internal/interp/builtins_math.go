package interp

import (
	"math"
	"math/big"

	"github.com/go-pyrite/pyrite/internal/object"
	"github.com/go-pyrite/pyrite/internal/token"
)

func installMathBuiltins(it *Interpreter) {
	def(it, "abs", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "abs() takes 1 argument")
		}
		switch x := args[0].(type) {
		case *object.Int:
			return &object.Int{Value: new(big.Int).Abs(x.Value)}, nil
		case *object.Float:
			return &object.Float{Value: math.Abs(x.Value)}, nil
		case *object.Bool:
			return &object.Int{Value: x.AsInt()}, nil
		}
		return nil, Raise("TypeError", "bad operand type for abs(): '%s'", object.TypeName(args[0]))
	})
	def(it, "min", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		return it.extremum(args, kwargs, token.LT)
	})
	def(it, "max", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		return it.extremum(args, kwargs, token.GT)
	})
	def(it, "sum", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, Raise("TypeError", "sum() takes 1 or 2 arguments")
		}
		elems, err := it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
		var acc object.Value = object.NewInt(0)
		if len(args) == 2 {
			acc = args[1]
		}
		for _, e := range elems {
			acc, err = it.applyBinary(token.PLUS, acc, e)
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})
	def(it, "all", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "all() takes 1 argument")
		}
		elems, err := it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
		for _, e := range elems {
			if !it.truthy(e) {
				return object.False, nil
			}
		}
		return object.True, nil
	})
	def(it, "any", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 1 {
			return nil, Raise("TypeError", "any() takes 1 argument")
		}
		elems, err := it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
		for _, e := range elems {
			if it.truthy(e) {
				return object.True, nil
			}
		}
		return object.False, nil
	})
	def(it, "round", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, Raise("TypeError", "round() takes 1 or 2 arguments")
		}
		f, _, ok := asNumeric(args[0])
		if !ok {
			return nil, Raise("TypeError", "type '%s' doesn't define __round__ method", object.TypeName(args[0]))
		}
		ndigits := int64(0)
		hasNdigits := len(args) == 2
		if hasNdigits {
			n, ok := args[1].(*object.Int)
			if !ok {
				return nil, Raise("TypeError", "round() second argument must be an integer")
			}
			ndigits = n.Value.Int64()
		}
		// Ties-to-even per round-half-to-even banker's rounding.
		scale := math.Pow(10, float64(ndigits))
		rounded := math.RoundToEven(f*scale) / scale
		if !hasNdigits {
			bi, _ := big.NewFloat(rounded).Int(nil)
			return &object.Int{Value: bi}, nil
		}
		if _, isFloat, _ := asNumeric(args[0]); !isFloat {
			bi, _ := big.NewFloat(rounded).Int(nil)
			return &object.Int{Value: bi}, nil
		}
		return &object.Float{Value: rounded}, nil
	})
	def(it, "pow", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return nil, Raise("TypeError", "pow() takes 2 or 3 arguments")
		}
		if len(args) == 3 {
			base, ok1 := args[0].(*object.Int)
			exp, ok2 := args[1].(*object.Int)
			mod, ok3 := args[2].(*object.Int)
			if !ok1 || !ok2 || !ok3 {
				return nil, Raise("TypeError", "pow() 3-argument form requires integers")
			}
			return &object.Int{Value: new(big.Int).Exp(base.Value, exp.Value, mod.Value)}, nil
		}
		return it.applyBinary(token.DOUBLESTAR, args[0], args[1])
	})
	def(it, "divmod", func(args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
		if len(args) != 2 {
			return nil, Raise("TypeError", "divmod() takes 2 arguments")
		}
		q, err := it.applyBinary(token.DOUBLESLASH, args[0], args[1])
		if err != nil {
			return nil, err
		}
		r, err := it.applyBinary(token.PERCENT, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return &object.Tuple{Elems: []object.Value{q, r}}, nil
	})
}

func (it *Interpreter) extremum(args []object.Value, kwargs map[string]object.Value, op token.Kind) (object.Value, error) {
	var elems []object.Value
	var err error
	if len(args) == 1 {
		elems, err = it.iterableToSlice(args[0])
		if err != nil {
			return nil, err
		}
	} else if len(args) > 1 {
		elems = args
	} else {
		return nil, Raise("TypeError", "min()/max() expected at least 1 argument, got 0")
	}
	if len(elems) == 0 {
		if d, ok := kwargs["default"]; ok {
			return d, nil
		}
		return nil, Raise("ValueError", "min()/max() arg is an empty sequence")
	}
	keyFn, hasKey := kwargs["key"]
	best := elems[0]
	bestKey := elems[0]
	if hasKey && keyFn != nil {
		bestKey, err = it.callCallable(keyFn, []object.Value{best}, nil)
		if err != nil {
			return nil, err
		}
	}
	for _, e := range elems[1:] {
		cand := e
		if hasKey && keyFn != nil {
			cand, err = it.callCallable(keyFn, []object.Value{e}, nil)
			if err != nil {
				return nil, err
			}
		}
		res, err := it.richCompare(op, cand, bestKey)
		if err != nil {
			return nil, err
		}
		if it.truthy(res) {
			best, bestKey = e, cand
		}
	}
	return best, nil
}
