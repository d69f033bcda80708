package interp

import (
	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/object"
)

// execFunctionDef builds a Function value from the definition and binds it
// in the enclosing scope, applying decorators innermost-first as ordinary
// calls.
func (it *Interpreter) execFunctionDef(n *ast.FunctionDef) error {
	fn := &object.Function{
		Name:        n.Name,
		Params:      n.Params,
		Body:        n.Body,
		Closure:     it.env,
		IsAsync:     n.IsAsync,
		IsGenerator: n.IsGenerator,
		Defaults:    it.evalParamDefaults(n.Params),
	}
	decs := make([]object.Value, len(n.Decorators))
	for i, d := range n.Decorators {
		dec, err := it.evalExpr(d)
		if err != nil {
			return err
		}
		decs[i] = dec
	}
	var value object.Value = fn
	for i := len(decs) - 1; i >= 0; i-- {
		var err error
		value, err = it.callCallable(decs[i], []object.Value{value}, nil)
		if err != nil {
			return err
		}
	}
	return it.env.Set(n.Name, value)
}

// evalCall evaluates a call expression: resolve the callee, evaluate
// arguments (expanding *args/**kwargs spreads), then dispatch.
func (it *Interpreter) evalCall(n *ast.Call) (object.Value, error) {
	callee, err := it.evalExpr(n.Func)
	if err != nil {
		return nil, err
	}
	args, kwargs, err := it.evalArgs(n.Args)
	if err != nil {
		return nil, err
	}
	return it.callCallable(callee, args, kwargs)
}

func (it *Interpreter) evalArgs(argNodes []ast.Arg) ([]object.Value, map[string]object.Value, error) {
	var args []object.Value
	var kwargs map[string]object.Value
	for _, a := range argNodes {
		switch {
		case a.DoubleStarred:
			v, err := it.evalExpr(a.Value)
			if err != nil {
				return nil, nil, err
			}
			d, ok := v.(*object.Dict)
			if !ok {
				return nil, nil, Raise("TypeError", "argument after ** must be a mapping")
			}
			if kwargs == nil {
				kwargs = make(map[string]object.Value)
			}
			for _, kv := range d.Items() {
				s, ok := kv[0].(*object.Str)
				if !ok {
					return nil, nil, Raise("TypeError", "keywords must be strings")
				}
				kwargs[s.Value] = kv[1]
			}
		case a.Starred:
			v, err := it.evalExpr(a.Value)
			if err != nil {
				return nil, nil, err
			}
			elems, err := it.iterableToSlice(v)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, elems...)
		case a.Name != "":
			v, err := it.evalExpr(a.Value)
			if err != nil {
				return nil, nil, err
			}
			if kwargs == nil {
				kwargs = make(map[string]object.Value)
			}
			kwargs[a.Name] = v
		default:
			v, err := it.evalExpr(a.Value)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, v)
		}
	}
	return args, kwargs, nil
}

// callCallable dispatches a resolved callable value: Function, Builtin,
// BoundMethod, Class (construction), or a __call__-implementing Instance.
func (it *Interpreter) callCallable(callee object.Value, args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
	switch c := callee.(type) {
	case *object.Function:
		return it.callFunction(c, nil, nil, args, kwargs)
	case *object.Builtin:
		return c.Fn(args, kwargs)
	case *object.BoundMethod:
		return it.callBoundMethod(c, args, kwargs)
	case *object.Class:
		if c.HostCtor != nil {
			return c.HostCtor(args, kwargs)
		}
		return it.instantiate(c, args, kwargs)
	case *object.Instance:
		if fn, cls, ok := c.Class.Lookup("__call__"); ok {
			return it.callBound(fn, c, cls, args, kwargs)
		}
		return nil, Raise("TypeError", "'%s' object is not callable", c.Class.Name)
	}
	return nil, Raise("TypeError", "'%s' object is not callable", object.TypeName(callee))
}

func (it *Interpreter) callBoundMethod(m *object.BoundMethod, args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
	return it.callBound(m.Func, m.Receiver, m.Defining, args, kwargs)
}

// callBound invokes fn (a *object.Function or *object.Builtin) with recv
// bound as the leading implicit argument for a Function, matching the
// instance/classmethod/staticmethod binding rules already resolved by the
// caller (getAttr/bindClassMember).
func (it *Interpreter) callBound(fn object.Value, recv object.Value, defining *object.Class, args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
	switch f := fn.(type) {
	case *object.Function:
		return it.callFunction(f, recv, defining, args, kwargs)
	case *object.Builtin:
		full := append([]object.Value{recv}, args...)
		return f.Fn(full, kwargs)
	}
	return nil, Raise("TypeError", "'%s' object is not callable", object.TypeName(fn))
}

// callFunction is the single call-site for user-defined functions: bind
// parameters into a fresh scope, run the body, and translate the control-
// flow signal into a return value or generator/coroutine wrapper.
func (it *Interpreter) callFunction(fn *object.Function, recv object.Value, definingClass *object.Class, args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
	if fn.IsGenerator {
		return it.makeGenerator(fn, recv, definingClass, args, kwargs), nil
	}
	if fn.IsAsync {
		return it.makeCoroutine(fn, recv, definingClass, args, kwargs), nil
	}
	return it.runFunctionBody(fn, recv, definingClass, args, kwargs)
}

func (it *Interpreter) runFunctionBody(fn *object.Function, recv object.Value, definingClass *object.Class, args []object.Value, kwargs map[string]object.Value) (object.Value, error) {
	scope, err := it.bindParams(fn, recv, args, kwargs)
	if err != nil {
		return nil, err
	}
	if err := it.pushFrame(fn.Name, fn.IsAsync); err != nil {
		return nil, err
	}
	defer it.popFrame()

	savedEnv, savedClass, savedSelf := it.env, it.currentClass, it.currentSelf
	it.env = scope
	if definingClass != nil {
		it.currentClass = definingClass
	}
	if recv != nil {
		it.currentSelf = recv
	}
	defer func() { it.env, it.currentClass, it.currentSelf = savedEnv, savedClass, savedSelf }()

	if err := it.execBlock(fn.Body); err != nil {
		return nil, err
	}
	result := it.returnValue
	if it.signal == signalReturn {
		it.signal = signalNone
		it.returnValue = nil
		return result, nil
	}
	it.signal = signalNone
	return object.None, nil
}

// bindParams implements positional-or-keyword, *args, keyword-only,
// **kwargs, and default-value parameter binding, with a bound `self`/`cls`
// when recv is non-nil. The function's locals are pre-declared up front
// from its parameters plus every name the body assigns to, so a read of a
// name that's assigned later in the same body raises UnboundLocalError
// instead of silently falling through to an enclosing scope.
func (it *Interpreter) bindParams(fn *object.Function, recv object.Value, args []object.Value, kwargs map[string]object.Value) (*object.Environment, error) {
	locals := collectLocals(fn.Body)
	for _, p := range fn.Params {
		locals[p.Name] = true
	}
	scope := object.NewEnclosedEnvironment(fn.Closure, object.ScopeLocal, locals)

	pos := args
	if recv != nil {
		scope.Define(firstParamName(fn.Params), recv)
		if len(fn.Params) > 0 {
			fn = shiftParams(fn)
		}
	}

	used := make(map[string]bool, len(kwargs))
	argIdx := 0
	for _, p := range fn.Params {
		switch p.Kind {
		case object.ParamVarArgs:
			rest := append([]object.Value{}, pos[argIdx:]...)
			scope.Define(p.Name, &object.Tuple{Elems: rest})
			argIdx = len(pos)
		case object.ParamKwArgs:
			d := object.NewDict()
			for k, v := range kwargs {
				if !used[k] {
					d.Set(&object.Str{Value: k}, v)
					used[k] = true
				}
			}
			scope.Define(p.Name, d)
		case object.ParamKeywordOnly:
			if v, ok := kwargs[p.Name]; ok {
				scope.Define(p.Name, v)
				used[p.Name] = true
			} else if p.Default != nil {
				scope.Define(p.Name, fn.Defaults[p.Name])
			} else {
				return nil, Raise("TypeError", "%s() missing required keyword-only argument: '%s'", fn.Name, p.Name)
			}
		default: // positional-or-keyword
			if argIdx < len(pos) {
				scope.Define(p.Name, pos[argIdx])
				argIdx++
			} else if v, ok := kwargs[p.Name]; ok {
				scope.Define(p.Name, v)
				used[p.Name] = true
			} else if p.Default != nil {
				scope.Define(p.Name, fn.Defaults[p.Name])
			} else {
				return nil, Raise("TypeError", "%s() missing required positional argument: '%s'", fn.Name, p.Name)
			}
		}
	}
	if argIdx < len(pos) && !hasVarArgs(fn.Params) {
		return nil, Raise("TypeError", "%s() takes %d positional arguments but %d were given", fn.Name, argIdx, len(pos))
	}
	for k := range kwargs {
		if !used[k] && !paramNamed(fn.Params, k) {
			return nil, Raise("TypeError", "%s() got an unexpected keyword argument '%s'", fn.Name, k)
		}
	}
	return scope, nil
}

func firstParamName(params []ast.Param) string {
	if len(params) == 0 {
		return "self"
	}
	return params[0].Name
}

// shiftParams returns a shallow copy of fn with its first parameter (self/
// cls, already bound by bindParams) removed from the slice walked for the
// remaining positional/keyword assignment.
func shiftParams(fn *object.Function) *object.Function {
	cp := *fn
	if len(fn.Params) > 0 {
		cp.Params = fn.Params[1:]
	}
	return &cp
}

func hasVarArgs(params []ast.Param) bool {
	for _, p := range params {
		if p.Kind == object.ParamVarArgs {
			return true
		}
	}
	return false
}

func paramNamed(params []ast.Param, name string) bool {
	for _, p := range params {
		if p.Name == name && (p.Kind == object.ParamPositionalOrKeyword || p.Kind == object.ParamKeywordOnly) {
			return true
		}
	}
	return false
}

// collectLocals does a structural scan of a function body for every name
// bound anywhere within it, without descending into nested function/class
// bodies (a nested def or class binds its own name in the enclosing scope
// but has its own separate set of locals). The result is the full local
// variable set for the body per Python's scoping rule: a name assigned
// anywhere in a function is local to the whole function, even on lines
// that run before the assignment.
func collectLocals(body []ast.Stmt) map[string]bool {
	locals := make(map[string]bool)
	collectLocalsInto(body, locals)
	return locals
}

func collectLocalsInto(body []ast.Stmt, locals map[string]bool) {
	for _, s := range body {
		collectStmtLocals(s, locals)
	}
}

func collectStmtLocals(s ast.Stmt, locals map[string]bool) {
	switch n := s.(type) {
	case *ast.Assign:
		collectExprLocals(n.Value, locals)
		for _, t := range n.Targets {
			collectTargetNames(t, locals)
		}
	case *ast.AugAssign:
		collectExprLocals(n.Value, locals)
		collectTargetNames(n.Target, locals)
	case *ast.AnnAssign:
		if n.Value != nil {
			collectExprLocals(n.Value, locals)
			collectTargetNames(n.Target, locals)
		}
	case *ast.Global:
	case *ast.Nonlocal:
	case *ast.Import:
		for _, alias := range n.Names {
			locals[importBindingName(alias)] = true
		}
	case *ast.ImportFrom:
		for _, alias := range n.Names {
			locals[importBindingName(alias)] = true
		}
	case *ast.FunctionDef:
		locals[n.Name] = true
	case *ast.ClassDef:
		locals[n.Name] = true
	case *ast.If:
		collectExprLocals(n.Test, locals)
		collectLocalsInto(n.Body, locals)
		collectLocalsInto(n.Orelse, locals)
	case *ast.While:
		collectExprLocals(n.Test, locals)
		collectLocalsInto(n.Body, locals)
		collectLocalsInto(n.Orelse, locals)
	case *ast.For:
		collectExprLocals(n.Iter, locals)
		collectTargetNames(n.Target, locals)
		collectLocalsInto(n.Body, locals)
		collectLocalsInto(n.Orelse, locals)
	case *ast.Try:
		collectLocalsInto(n.Body, locals)
		collectLocalsInto(n.Orelse, locals)
		collectLocalsInto(n.Finally, locals)
		for _, h := range n.Handlers {
			if h.Name != "" {
				locals[h.Name] = true
			}
			collectLocalsInto(h.Body, locals)
		}
	case *ast.With:
		for _, item := range n.Items {
			collectExprLocals(item.Ctx, locals)
			if item.Target != nil {
				collectTargetNames(item.Target, locals)
			}
		}
		collectLocalsInto(n.Body, locals)
	case *ast.Match:
		collectExprLocals(n.Subject, locals)
		for _, c := range n.Cases {
			collectPatternNames(c.Pattern, locals)
			collectLocalsInto(c.Body, locals)
		}
	case *ast.ExprStmt:
		collectExprLocals(n.Value, locals)
	case *ast.Return:
		if n.Value != nil {
			collectExprLocals(n.Value, locals)
		}
	case *ast.Assert:
		collectExprLocals(n.Test, locals)
		if n.Msg != nil {
			collectExprLocals(n.Msg, locals)
		}
	}
}

// collectExprLocals finds walrus-operator targets, which bind in the
// nearest enclosing function scope rather than any inner comprehension
// scope. Operators, conditional expressions, calls, await, and tuple/list
// literals are descended into looking for nested NamedExprs; other
// expression kinds are not searched.
func collectExprLocals(e ast.Expr, locals map[string]bool) {
	switch n := e.(type) {
	case nil:
	case *ast.NamedExpr:
		locals[n.Target.Name] = true
		collectExprLocals(n.Value, locals)
	case *ast.BinaryOp:
		collectExprLocals(n.Left, locals)
		collectExprLocals(n.Right, locals)
	case *ast.UnaryOp:
		collectExprLocals(n.Operand, locals)
	case *ast.NotOp:
		collectExprLocals(n.Operand, locals)
	case *ast.BoolOp:
		for _, o := range n.Operands {
			collectExprLocals(o, locals)
		}
	case *ast.IfExpr:
		collectExprLocals(n.Test, locals)
		collectExprLocals(n.Body, locals)
		collectExprLocals(n.Orelse, locals)
	case *ast.Call:
		collectExprLocals(n.Func, locals)
		for _, a := range n.Args {
			collectExprLocals(a.Value, locals)
		}
	case *ast.Await:
		collectExprLocals(n.Value, locals)
	case *ast.TupleLit:
		for _, el := range n.Elts {
			collectExprLocals(el, locals)
		}
	case *ast.ListLit:
		for _, el := range n.Elts {
			collectExprLocals(el, locals)
		}
	}
}

// collectTargetNames walks an assignment/for/with target, binding plain
// identifiers and recursing through tuple/list unpacking and starred
// sub-targets. Attribute and subscript targets (obj.x = ..., d[k] = ...)
// mutate an existing value rather than binding a new name, so they don't
// contribute to the local set.
func collectTargetNames(e ast.Expr, locals map[string]bool) {
	switch n := e.(type) {
	case *ast.Ident:
		locals[n.Name] = true
	case *ast.TupleLit:
		for _, el := range n.Elts {
			collectTargetNames(el, locals)
		}
	case *ast.ListLit:
		for _, el := range n.Elts {
			collectTargetNames(el, locals)
		}
	case *ast.Starred:
		collectTargetNames(n.Value, locals)
	}
}

// collectPatternNames binds the capture names of a match-case pattern the
// same way a tuple-unpacking target does.
func collectPatternNames(p ast.Pattern, locals map[string]bool) {
	switch n := p.(type) {
	case *ast.CapturePattern:
		if n.Name != "_" {
			locals[n.Name] = true
		}
	case *ast.SequencePattern:
		for _, el := range n.Elts {
			collectPatternNames(el, locals)
		}
	case *ast.MappingPattern:
		for _, v := range n.Values {
			collectPatternNames(v, locals)
		}
		if n.Rest != "" {
			locals[n.Rest] = true
		}
	case *ast.ClassPattern:
		for _, el := range n.Positional {
			collectPatternNames(el, locals)
		}
		for _, v := range n.Keyword {
			collectPatternNames(v, locals)
		}
	case *ast.OrPattern:
		for _, o := range n.Options {
			collectPatternNames(o, locals)
		}
	}
}

func importBindingName(alias ast.ImportAlias) string {
	if alias.Alias != "" {
		return alias.Alias
	}
	return alias.Path
}
