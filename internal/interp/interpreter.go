// Package interp is the tree-walking evaluator: it executes an *ast.Module
// against an *object.Environment and produces object.Value results.
//
// A single Interpreter struct owns the current environment plus
// control-flow signal fields that every statement executor checks after
// each sub-evaluation, rather than using Go panic/recover for user-level
// control flow. The signal is an enum carrying an optional payload
// (signalReturn carries the return value; a raised exception travels as a
// Go error instead of a signal), since `return` carries a value that the
// signal machinery alone can't transport.
package interp

import (
	"fmt"
	"io"

	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
)

// signalKind distinguishes the non-exception control-flow signals from
// ordinary completion.
type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
	signalContinue
)

// PyError wraps a raised Pyrite exception instance so it can travel through
// Go's error-return plumbing without losing its payload.
type PyError struct {
	Instance *object.Instance
}

func (e *PyError) Error() string {
	msg := object.ExceptionMessage(e.Instance)
	if msg == "" {
		return e.Instance.Class.Name
	}
	return fmt.Sprintf("%s: %s", e.Instance.Class.Name, msg)
}

// Raise builds a PyError for a named builtin exception class.
func Raise(className, format string, args ...any) *PyError {
	inst, err := object.NewException(className, &object.Str{Value: fmt.Sprintf(format, args...)})
	if err != nil {
		panic(err) // only reachable if className is not a registered builtin exception
	}
	return &PyError{Instance: inst}
}

// frame tracks one active function call for stack-trace / recursion-depth
// purposes.
type frame struct {
	funcName string
	inAsync  bool
}

// Interpreter executes Pyrite AST nodes against a root object.Environment.
type Interpreter struct {
	Global *object.Environment
	Output io.Writer

	env   *object.Environment
	stack []frame

	// control-flow signal state, checked by every statement-sequence
	// executor after each sub-statement
	signal      signalKind
	returnValue object.Value

	// currently executing class and receiver, for the zero-arg super() pivot
	currentClass *object.Class
	currentSelf  object.Value

	maxCallDepth int

	// activeExceptions is the stack of exceptions currently being handled,
	// consulted by a bare `raise` to re-raise the innermost one.
	activeExceptions []*object.Instance

	// yieldSink is non-nil while collectYields is running a generator body;
	// every `yield`/`yield from` appends to it instead of suspending, since
	// generators are collected eagerly rather than truly interleaved.
	yieldSink *[]object.Value
}

// New creates an Interpreter with a fresh global scope and the built-in
// namespace installed.
func New(output io.Writer) *Interpreter {
	global := object.NewGlobalEnvironment()
	it := &Interpreter{
		Global:       global,
		Output:       output,
		env:          global,
		maxCallDepth: 1000,
	}
	installBuiltins(it)
	return it
}

// Run executes a parsed module's top-level statements in the global scope,
// returning the value of the last expression statement (or None).
func (it *Interpreter) Run(mod *ast.Module) (object.Value, error) {
	var last object.Value = object.None
	for _, stmt := range mod.Body {
		v, err := it.execTopLevel(stmt)
		if err != nil {
			return nil, err
		}
		if v != nil {
			last = v
		}
	}
	return last, nil
}

// execTopLevel executes one module-level statement, rejecting stray
// control-flow signals (return/break/continue outside a function or loop).
func (it *Interpreter) execTopLevel(stmt ast.Stmt) (object.Value, error) {
	var result object.Value
	if es, ok := stmt.(*ast.ExprStmt); ok {
		v, err := it.evalExpr(es.Value)
		if err != nil {
			return nil, err
		}
		result = v
	} else if err := it.execStmt(stmt); err != nil {
		return nil, err
	}
	switch it.signal {
	case signalReturn:
		it.signal = signalNone
		return nil, Raise("SyntaxError", "'return' outside function")
	case signalBreak, signalContinue:
		it.signal = signalNone
		return nil, Raise("SyntaxError", "'break'/'continue' outside loop")
	}
	return result, nil
}

// execBlock runs stmts in order, stopping early if a signal is raised or an
// error occurs.
func (it *Interpreter) execBlock(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := it.execStmt(s); err != nil {
			return err
		}
		if it.signal != signalNone {
			return nil
		}
	}
	return nil
}

func (it *Interpreter) pushFrame(name string, async bool) error {
	if len(it.stack) >= it.maxCallDepth {
		return Raise("RecursionError", "maximum recursion depth exceeded")
	}
	it.stack = append(it.stack, frame{funcName: name, inAsync: async})
	return nil
}

func (it *Interpreter) popFrame() {
	it.stack = it.stack[:len(it.stack)-1]
}

func (it *Interpreter) inAsyncContext() bool {
	return len(it.stack) > 0 && it.stack[len(it.stack)-1].inAsync
}

// CallStack returns the currently executing function names, outermost
// first, for diagnostics.
func (it *Interpreter) CallStack() []string {
	names := make([]string, len(it.stack))
	for i, f := range it.stack {
		names[i] = f.funcName
	}
	return names
}
