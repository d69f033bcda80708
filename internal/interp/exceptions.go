package interp

import (
	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
)

// execRaise implements `raise`, `raise exc`, `raise exc from cause`, and
// bare re-raise inside an except block.
func (it *Interpreter) execRaise(n *ast.Raise) error {
	if n.Exc == nil {
		if len(it.activeExceptions) == 0 {
			return Raise("RuntimeError", "No active exception to re-raise")
		}
		return &PyError{Instance: it.activeExceptions[len(it.activeExceptions)-1]}
	}
	v, err := it.evalExpr(n.Exc)
	if err != nil {
		return err
	}
	inst, err := it.toExceptionInstance(v)
	if err != nil {
		return err
	}
	if n.Cause != nil {
		cause, err := it.evalExpr(n.Cause)
		if err != nil {
			return err
		}
		if causeInst, ok := cause.(*object.Instance); ok {
			inst.Attrs["__cause__"] = causeInst
		}
	}
	return &PyError{Instance: inst}
}

// toExceptionInstance accepts either an already-constructed exception
// instance or an exception class (called with no arguments, mirroring
// `raise ValueError`).
func (it *Interpreter) toExceptionInstance(v object.Value) (*object.Instance, error) {
	switch x := v.(type) {
	case *object.Instance:
		if !x.Class.IsSubclassOf(object.ExceptionClasses["BaseException"]) {
			return nil, Raise("TypeError", "exceptions must derive from BaseException")
		}
		return x, nil
	case *object.Class:
		res, err := it.instantiate(x, nil, nil)
		if err != nil {
			return nil, err
		}
		inst, ok := res.(*object.Instance)
		if !ok || !inst.Class.IsSubclassOf(object.ExceptionClasses["BaseException"]) {
			return nil, Raise("TypeError", "exceptions must derive from BaseException")
		}
		return inst, nil
	}
	return nil, Raise("TypeError", "exceptions must derive from BaseException")
}

// execTry implements the try/except/else/finally contract: handlers are
// tried in order against the MRO of the raised exception's
// class, `as name` binds the instance in the current scope (it stays bound
// after the handler body),
// else runs only if no exception propagated out of the body, and finally
// always runs, re-raising whatever exception (original or from a handler)
// was in flight if the finally block itself completes normally.
func (it *Interpreter) execTry(n *ast.Try) error {
	bodyErr := it.execBlock(n.Body)

	if bodyErr == nil {
		if it.signal == signalNone {
			if err := it.execBlock(n.Orelse); err != nil {
				bodyErr = err
			}
		}
	} else if pe, ok := bodyErr.(*PyError); ok {
		handled, handlerErr := it.runHandlers(n.Handlers, pe)
		if handled {
			bodyErr = handlerErr
		}
	}

	if len(n.Finally) > 0 {
		savedSignal, savedReturn := it.signal, it.returnValue
		it.signal, it.returnValue = signalNone, nil
		if err := it.execBlock(n.Finally); err != nil {
			return err
		}
		if it.signal == signalNone {
			it.signal, it.returnValue = savedSignal, savedReturn
		}
	}
	return bodyErr
}

// runHandlers matches pe's instance against each handler's type list in
// order; returns handled=true once a matching (or bare) handler is found,
// along with whatever error the handler body produced (nil on a clean
// handled exception).
func (it *Interpreter) runHandlers(handlers []*ast.ExceptHandler, pe *PyError) (handled bool, err error) {
	for _, h := range handlers {
		matches, err := it.exceptionMatches(h, pe.Instance)
		if err != nil {
			return true, err
		}
		if !matches {
			continue
		}
		it.activeExceptions = append(it.activeExceptions, pe.Instance)
		if h.Name != "" {
			it.env.Set(h.Name, pe.Instance)
		}
		bodyErr := it.execBlock(h.Body)
		it.activeExceptions = it.activeExceptions[:len(it.activeExceptions)-1]
		return true, bodyErr
	}
	return false, pe
}

func (it *Interpreter) exceptionMatches(h *ast.ExceptHandler, inst *object.Instance) (bool, error) {
	if len(h.Types) == 0 {
		return true, nil
	}
	for _, t := range h.Types {
		v, err := it.evalExpr(t)
		if err != nil {
			return false, err
		}
		if cls, ok := v.(*object.Class); ok && inst.Class.IsSubclassOf(cls) {
			return true, nil
		}
	}
	return false, nil
}
