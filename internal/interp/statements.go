package interp

import (
	"fmt"
	"strings"

	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
	"golang.org/x/mod/module"
)

// execStmt dispatches one statement, returning a Go error for any raised
// exception. Loop/function control flow (break/continue/return) is carried
// on it.signal rather than returned directly, since it must propagate
// through nested blocks without unwinding the Go call stack.
func (it *Interpreter) execStmt(stmt ast.Stmt) error {
	switch n := stmt.(type) {
	case *ast.ExprStmt:
		_, err := it.evalExpr(n.Value)
		return err
	case *ast.Assign:
		return it.execAssign(n)
	case *ast.AugAssign:
		return it.execAugAssign(n)
	case *ast.AnnAssign:
		return it.execAnnAssign(n)
	case *ast.Delete:
		return it.execDelete(n)
	case *ast.Pass:
		return nil
	case *ast.Break:
		it.signal = signalBreak
		return nil
	case *ast.Continue:
		it.signal = signalContinue
		return nil
	case *ast.Return:
		var v object.Value = object.None
		if n.Value != nil {
			val, err := it.evalExpr(n.Value)
			if err != nil {
				return err
			}
			v = val
		}
		it.returnValue = v
		it.signal = signalReturn
		return nil
	case *ast.Raise:
		return it.execRaise(n)
	case *ast.Global:
		for _, name := range n.Names {
			if err := it.env.DeclareGlobal(name); err != nil {
				return scopeToPyError(err)
			}
		}
		return nil
	case *ast.Nonlocal:
		for _, name := range n.Names {
			if err := it.env.DeclareNonlocal(name); err != nil {
				return scopeToPyError(err)
			}
		}
		return nil
	case *ast.Import:
		return it.execImport(n)
	case *ast.ImportFrom:
		return it.execImportFrom(n)
	case *ast.If:
		return it.execIf(n)
	case *ast.While:
		return it.execWhile(n)
	case *ast.For:
		return it.execFor(n)
	case *ast.Try:
		return it.execTry(n)
	case *ast.With:
		return it.execWith(n)
	case *ast.Match:
		return it.execMatch(n)
	case *ast.FunctionDef:
		return it.execFunctionDef(n)
	case *ast.ClassDef:
		return it.execClassDef(n)
	case *ast.Assert:
		return it.execAssert(n)
	default:
		return fmt.Errorf("interp: unhandled statement %T", stmt)
	}
}

func scopeToPyError(err error) error {
	se, ok := err.(*object.ScopeError)
	if !ok {
		return err
	}
	return Raise(se.Kind, "%s", se.Message)
}

func (it *Interpreter) execIf(n *ast.If) error {
	test, err := it.evalExpr(n.Test)
	if err != nil {
		return err
	}
	if it.truthy(test) {
		return it.execBlock(n.Body)
	}
	return it.execBlock(n.Orelse)
}

func (it *Interpreter) execWhile(n *ast.While) error {
	ranBreak := false
	for {
		test, err := it.evalExpr(n.Test)
		if err != nil {
			return err
		}
		if !it.truthy(test) {
			break
		}
		if err := it.execBlock(n.Body); err != nil {
			return err
		}
		if it.signal == signalBreak {
			it.signal = signalNone
			ranBreak = true
			break
		}
		if it.signal == signalReturn {
			return nil
		}
		if it.signal == signalContinue {
			it.signal = signalNone
		}
	}
	if !ranBreak {
		return it.execBlock(n.Orelse)
	}
	return nil
}

func (it *Interpreter) execAssert(n *ast.Assert) error {
	test, err := it.evalExpr(n.Test)
	if err != nil {
		return err
	}
	if it.truthy(test) {
		return nil
	}
	if n.Msg != nil {
		msg, err := it.evalExpr(n.Msg)
		if err != nil {
			return err
		}
		return Raise("AssertionError", "%s", it.str(msg))
	}
	return Raise("AssertionError", "")
}

func (it *Interpreter) execDelete(n *ast.Delete) error {
	for _, target := range n.Targets {
		switch t := target.(type) {
		case *ast.Ident:
			// Environment has no Delete, so this only validates the name
			// currently resolves; it doesn't change what later reads see.
			if !it.env.Has(t.Name) {
				return Raise("NameError", "name '%s' is not defined", t.Name)
			}
		case *ast.Subscript:
			val, err := it.evalExpr(t.Value)
			if err != nil {
				return err
			}
			idx, err := it.evalExpr(t.Index)
			if err != nil {
				return err
			}
			if err := it.deleteItem(val, idx); err != nil {
				return err
			}
		case *ast.Attribute:
			val, err := it.evalExpr(t.Value)
			if err != nil {
				return err
			}
			if err := it.deleteAttr(val, t.Attr); err != nil {
				return err
			}
		default:
			return fmt.Errorf("interp: unsupported del target %T", target)
		}
	}
	return nil
}

// execImport binds each imported name to None: no module loader runs, but
// the dotted path itself must still look like a real module path, since a
// malformed one is a program bug a user would want caught at import time
// rather than silently accepted.
func (it *Interpreter) execImport(n *ast.Import) error {
	for _, alias := range n.Names {
		if err := checkModulePath(alias.Path); err != nil {
			return Raise("ImportError", "%s", err.Error())
		}
		name := alias.Path
		if alias.Alias != "" {
			name = alias.Alias
		}
		it.env.Set(name, object.None)
	}
	return nil
}

func (it *Interpreter) execImportFrom(n *ast.ImportFrom) error {
	if err := checkModulePath(n.Module); err != nil {
		return Raise("ImportError", "%s", err.Error())
	}
	for _, alias := range n.Names {
		name := alias.Path
		if alias.Alias != "" {
			name = alias.Alias
		}
		it.env.Set(name, object.None)
	}
	return nil
}

// checkModulePath validates every segment of a dotted import path against
// golang.org/x/mod's import-path grammar, adapted from dotted Python module
// names to slash-separated Go-style segments.
func checkModulePath(dotted string) error {
	if dotted == "" {
		return fmt.Errorf("empty module path")
	}
	slashed := strings.ReplaceAll(dotted, ".", "/")
	return module.CheckImportPath("example.com/" + slashed)
}
