package interp

import (
	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
)

// execWith implements the context manager protocol: multiple items enter
// left to right, exit right to left, and an async with uses
// __aenter__/__aexit__ instead of __enter__/__exit__.
func (it *Interpreter) execWith(n *ast.With) error {
	entered := make([]*object.Instance, 0, len(n.Items))
	bodyErr := func() error {
		for _, item := range n.Items {
			ctxVal, err := it.evalExpr(item.Ctx)
			if err != nil {
				return err
			}
			inst, ok := ctxVal.(*object.Instance)
			if !ok {
				return Raise("TypeError", "'%s' object does not support the context manager protocol", object.TypeName(ctxVal))
			}
			enterName, exitName := "__enter__", "__exit__"
			if n.IsAsync {
				enterName, exitName = "__aenter__", "__aexit__"
			}
			fn, cls, ok := inst.Class.Lookup(enterName)
			if !ok {
				return Raise("TypeError", "'%s' object does not support the context manager protocol", inst.Class.Name)
			}
			if _, _, hasExit := inst.Class.Lookup(exitName); !hasExit {
				return Raise("TypeError", "'%s' object does not support the context manager protocol", inst.Class.Name)
			}
			res, err := it.callBound(fn, inst, cls, nil, nil)
			if err != nil {
				return err
			}
			if n.IsAsync {
				if co, ok := res.(*object.Coroutine); ok {
					res, err = co.Await()
					if err != nil {
						return err
					}
				}
			}
			entered = append(entered, inst)
			if item.Target != nil {
				if err := it.assignTo(item.Target, res); err != nil {
					return err
				}
			}
		}
		return it.execBlock(n.Body)
	}()

	var excInst *object.Instance
	if pe, ok := bodyErr.(*PyError); ok {
		excInst = pe.Instance
	}

	for i := len(entered) - 1; i >= 0; i-- {
		inst := entered[i]
		exitName := "__exit__"
		if n.IsAsync {
			exitName = "__aexit__"
		}
		fn, cls, ok := inst.Class.Lookup(exitName)
		if !ok {
			continue
		}
		var args []object.Value
		if excInst != nil {
			args = []object.Value{excInst.Class, excInst, object.None}
		} else {
			args = []object.Value{object.None, object.None, object.None}
		}
		res, err := it.callBound(fn, inst, cls, args, nil)
		if err != nil {
			return err
		}
		if n.IsAsync {
			if co, ok := res.(*object.Coroutine); ok {
				res, err = co.Await()
				if err != nil {
					return err
				}
			}
		}
		if excInst != nil && it.truthy(res) {
			bodyErr = nil
			excInst = nil
		}
	}
	return bodyErr
}
