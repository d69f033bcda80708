// Package parser implements a Pratt/recursive-descent parser that turns a
// token stream from internal/lexer into an internal/ast.Module.
//
// Dispatch follows the Pratt-parser shape: parsePrefix and parseInfix switch
// on the token kind, and the precedences table decides how far an infix
// chain binds.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pyrite/pyrite/internal/ast"
	"github.com/go-pyrite/pyrite/internal/lexer"
	"github.com/go-pyrite/pyrite/internal/token"
)

// precedence levels, lowest to highest.
const (
	_ int = iota
	precLowest
	precNamedExpr // :=
	precTernary   // x if y else z
	precOr
	precAnd
	precNot
	precCompare // < > <= >= == != in / not in / is / is not
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
	precUnary  // - + ~
	precPower  // ** (right-assoc)
	precAwait
	precPostfix // call, subscript, attribute
)

var precedences = map[token.Kind]int{
	token.OR:          precOr,
	token.AND:         precAnd,
	token.LT:          precCompare,
	token.GT:          precCompare,
	token.LE:          precCompare,
	token.GE:          precCompare,
	token.EQ:          precCompare,
	token.NE:          precCompare,
	token.IN:          precCompare,
	token.IS:          precCompare,
	token.PIPE:        precBitOr,
	token.CARET:       precBitXor,
	token.AMP:         precBitAnd,
	token.LSHIFT:      precShift,
	token.RSHIFT:      precShift,
	token.PLUS:        precAdditive,
	token.MINUS:       precAdditive,
	token.STAR:        precMultiplicative,
	token.SLASH:       precMultiplicative,
	token.DOUBLESLASH: precMultiplicative,
	token.PERCENT:     precMultiplicative,
	token.AT:          precMultiplicative,
	token.DOUBLESTAR:  precPower,
	token.LPAREN:      precPostfix,
	token.LBRACKET:    precPostfix,
	token.DOT:         precPostfix,
}

var augAssignOps = map[token.Kind]bool{
	token.PLUSEQ: true, token.MINUSEQ: true, token.STAREQ: true, token.SLASHEQ: true,
	token.DSLASHEQ: true, token.PERCENTEQ: true, token.DSTAREQ: true, token.AMPEQ: true,
	token.PIPEEQ: true, token.CARETEQ: true, token.LSHIFTEQ: true, token.RSHIFTEQ: true,
}

// Error reports a parse failure with source position.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Message) }

// Option configures a Parser at construction time.
type Option func(*Parser)

// Parser turns a token stream into an ast.Module.
type Parser struct {
	toks   []token.Token
	pos    int
	errors []Error
}

// New builds a Parser over the full token stream produced by lexing input.
func New(input string, opts ...Option) (*Parser, error) {
	l := lexer.New(input)
	toks, err := l.Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewFromTokens builds a Parser directly over a pre-lexed token stream.
func NewFromTokens(toks []token.Token, opts ...Option) *Parser {
	p := &Parser{toks: toks}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Errors returns all parse errors accumulated during Parse.
func (p *Parser) Errors() []Error { return p.errors }

func (p *Parser) addError(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) peek() token.Token { return p.peekAt(1) }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.addError(p.cur().Pos, "expected %s, got %s", k, p.cur().Kind)
	return p.advance()
}

// skipNewlines consumes any run of blank NEWLINE tokens (used between
// statements and after block-opening colons when callers tolerate them).
func (p *Parser) skipNewlines() {
	for p.at(token.NEWLINE) {
		p.advance()
	}
}

// Parse runs the parser to completion, returning the Module AST. Errors are
// also accessible via Errors() after return.
func Parse(input string) (*ast.Module, []Error) {
	p, err := New(input)
	if err != nil {
		if le, ok := err.(*lexer.Error); ok {
			return nil, []Error{{Pos: le.Pos, Message: le.Message}}
		}
		return nil, []Error{{Message: err.Error()}}
	}
	mod := p.ParseModule()
	return mod, p.errors
}

// ParseModule parses the whole token stream as a module body.
func (p *Parser) ParseModule() *ast.Module {
	pos := p.cur().Pos
	mod := &ast.Module{}
	mod.Position = pos
	p.skipNewlines()
	for !p.at(token.EOF) {
		mod.Body = append(mod.Body, p.parseStatement()...)
		p.skipNewlines()
	}
	return mod
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

// parseStatement parses one statement-line. It returns a slice because a
// simple-statement line may hold several `;`-separated statements.
func (p *Parser) parseStatement() []ast.Stmt {
	switch p.cur().Kind {
	case token.AT:
		return []ast.Stmt{p.parseDecorated()}
	case token.IF:
		return []ast.Stmt{p.parseIf()}
	case token.WHILE:
		return []ast.Stmt{p.parseWhile()}
	case token.FOR:
		return []ast.Stmt{p.parseFor(false)}
	case token.TRY:
		return []ast.Stmt{p.parseTry()}
	case token.WITH:
		return []ast.Stmt{p.parseWith(false)}
	case token.DEF:
		return []ast.Stmt{p.parseFunctionDef(false, nil)}
	case token.CLASS:
		return []ast.Stmt{p.parseClassDef(nil)}
	case token.ASYNC:
		return []ast.Stmt{p.parseAsync()}
	case token.MATCH:
		if p.looksLikeMatch() {
			return []ast.Stmt{p.parseMatch()}
		}
	}
	return p.parseSimpleStatementLine()
}

// looksLikeMatch disambiguates the soft keyword `match` used as an
// identifier from a match-statement: treat it as a statement only when
// followed eventually by a colon+NEWLINE+INDENT shape, approximated here by
// requiring the line not look like an assignment/call expression statement.
func (p *Parser) looksLikeMatch() bool {
	// `match` followed directly by `=`, `.`, `(` at statement start used as
	// a plain call/assignment still parses fine as an expression statement,
	// so only claim the match-statement grammar when a `:` terminates the
	// line before a NEWLINE (the subject never itself contains a top-level
	// unparenthesised colon).
	save := p.pos
	depth := 0
	p.advance() // consume 'match'
	for {
		k := p.cur().Kind
		if k == token.NEWLINE || k == token.EOF {
			p.pos = save
			return false
		}
		if k == token.LPAREN || k == token.LBRACKET || k == token.LBRACE {
			depth++
		}
		if k == token.RPAREN || k == token.RBRACKET || k == token.RBRACE {
			depth--
		}
		if k == token.COLON && depth == 0 {
			p.pos = save
			return true
		}
		if k == token.ASSIGN && depth == 0 {
			p.pos = save
			return false
		}
		p.advance()
	}
}

func (p *Parser) parseAsync() ast.Stmt {
	p.advance() // consume 'async'
	switch p.cur().Kind {
	case token.DEF:
		return p.parseFunctionDef(true, nil)
	case token.FOR:
		return p.parseFor(true)
	case token.WITH:
		return p.parseWith(true)
	default:
		p.addError(p.cur().Pos, "expected def, for, or with after async")
		return nil
	}
}

func (p *Parser) parseDecorated() ast.Stmt {
	var decorators []ast.Expr
	for p.at(token.AT) {
		p.advance()
		decorators = append(decorators, p.parseExpr(precLowest))
		p.expectStatementEnd()
		p.skipNewlines()
	}
	switch p.cur().Kind {
	case token.DEF:
		return p.parseFunctionDef(false, decorators)
	case token.CLASS:
		return p.parseClassDef(decorators)
	case token.ASYNC:
		p.advance()
		if p.at(token.DEF) {
			fd := p.parseFunctionDef(true, decorators)
			return fd
		}
		p.addError(p.cur().Pos, "expected def after async in decorated definition")
		return nil
	default:
		p.addError(p.cur().Pos, "expected function or class definition after decorator")
		return nil
	}
}

func (p *Parser) expectStatementEnd() {
	if p.at(token.SEMICOLON) {
		p.advance()
		return
	}
	if p.at(token.NEWLINE) {
		p.advance()
		return
	}
	if p.at(token.EOF) || p.at(token.DEDENT) {
		return
	}
	p.addError(p.cur().Pos, "expected newline or ';' at end of statement, got %s", p.cur().Kind)
}

// parseSuite parses `: NEWLINE INDENT stmt* DEDENT` or the single-line form
// `: simple_stmt (; simple_stmt)* NEWLINE`.
func (p *Parser) parseSuite() []ast.Stmt {
	p.expect(token.COLON)
	if p.at(token.NEWLINE) {
		p.advance()
		p.expect(token.INDENT)
		var body []ast.Stmt
		p.skipNewlines()
		for !p.at(token.DEDENT) && !p.at(token.EOF) {
			body = append(body, p.parseStatement()...)
			p.skipNewlines()
		}
		p.accept(token.DEDENT)
		return body
	}
	var body []ast.Stmt
	for {
		s := p.parseSimpleStatement()
		if s != nil {
			body = append(body, s)
		}
		if p.at(token.SEMICOLON) {
			p.advance()
			if p.at(token.NEWLINE) || p.at(token.EOF) {
				break
			}
			continue
		}
		break
	}
	if p.at(token.NEWLINE) {
		p.advance()
	}
	return body
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.cur().Pos
	p.advance() // if
	test := p.parseExpr(precLowest)
	body := p.parseSuite()
	var orelse []ast.Stmt
	if p.at(token.ELIF) {
		elifPos := p.cur().Pos
		elifStmt := p.parseElifAsIf(elifPos)
		orelse = []ast.Stmt{elifStmt}
	} else if p.at(token.ELSE) {
		p.advance()
		orelse = p.parseSuite()
	}
	return &ast.If{baseNode: ast.NewBase(pos), Test: test, Body: body, Orelse: orelse}
}

// parseElifAsIf desugars `elif` into a nested If.
func (p *Parser) parseElifAsIf(pos token.Position) ast.Stmt {
	p.advance() // elif
	test := p.parseExpr(precLowest)
	body := p.parseSuite()
	var orelse []ast.Stmt
	if p.at(token.ELIF) {
		orelse = []ast.Stmt{p.parseElifAsIf(p.cur().Pos)}
	} else if p.at(token.ELSE) {
		p.advance()
		orelse = p.parseSuite()
	}
	return &ast.If{baseNode: ast.NewBase(pos), Test: test, Body: body, Orelse: orelse}
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.cur().Pos
	p.advance()
	test := p.parseExpr(precLowest)
	body := p.parseSuite()
	var orelse []ast.Stmt
	if p.at(token.ELSE) {
		p.advance()
		orelse = p.parseSuite()
	}
	return &ast.While{baseNode: ast.NewBase(pos), Test: test, Body: body, Orelse: orelse}
}

func (p *Parser) parseFor(isAsync bool) ast.Stmt {
	pos := p.cur().Pos
	p.advance() // for
	target := p.parseTargetList()
	p.expect(token.IN)
	iter := p.parseExprList()
	body := p.parseSuite()
	var orelse []ast.Stmt
	if p.at(token.ELSE) {
		p.advance()
		orelse = p.parseSuite()
	}
	return &ast.For{baseNode: ast.NewBase(pos), Target: target, Iter: iter, Body: body, Orelse: orelse, IsAsync: isAsync}
}

func (p *Parser) parseTry() ast.Stmt {
	pos := p.cur().Pos
	p.advance() // try
	body := p.parseSuite()
	var handlers []*ast.ExceptHandler
	for p.at(token.EXCEPT) {
		hpos := p.cur().Pos
		p.advance()
		h := &ast.ExceptHandler{baseNode: ast.NewBase(hpos)}
		if !p.at(token.COLON) {
			first := p.parseExpr(precBitOr + 1)
			h.Types = []ast.Expr{first}
			if tup, ok := first.(*ast.TupleLit); ok {
				h.Types = tup.Elts
			}
			if p.at(token.AS) {
				p.advance()
				name := p.expect(token.IDENT)
				h.Name = name.Lexeme
			}
		}
		h.Body = p.parseSuite()
		handlers = append(handlers, h)
	}
	var orelse, finally []ast.Stmt
	if p.at(token.ELSE) {
		p.advance()
		orelse = p.parseSuite()
	}
	if p.at(token.FINALLY) {
		p.advance()
		finally = p.parseSuite()
	}
	return &ast.Try{baseNode: ast.NewBase(pos), Body: body, Handlers: handlers, Orelse: orelse, Finally: finally}
}

func (p *Parser) parseWith(isAsync bool) ast.Stmt {
	pos := p.cur().Pos
	p.advance() // with
	var items []ast.WithItem
	for {
		ctx := p.parseExpr(precTernary)
		item := ast.WithItem{Ctx: ctx}
		if p.at(token.AS) {
			p.advance()
			item.Target = p.parseTarget()
		}
		items = append(items, item)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	body := p.parseSuite()
	return &ast.With{baseNode: ast.NewBase(pos), Items: items, Body: body, IsAsync: isAsync}
}

func (p *Parser) parseMatch() ast.Stmt {
	pos := p.cur().Pos
	p.advance() // match
	subject := p.parseExprList()
	p.expect(token.COLON)
	p.expect(token.NEWLINE)
	p.expect(token.INDENT)
	var cases []ast.MatchCase
	p.skipNewlines()
	for p.at(token.CASE) {
		p.advance()
		pat := p.parsePattern()
		var guard ast.Expr
		if p.at(token.IF) {
			p.advance()
			guard = p.parseExpr(precLowest)
		}
		body := p.parseSuite()
		cases = append(cases, ast.MatchCase{Pattern: pat, Guard: guard, Body: body})
		p.skipNewlines()
	}
	p.accept(token.DEDENT)
	return &ast.Match{baseNode: ast.NewBase(pos), Subject: subject, Cases: cases}
}

func (p *Parser) parsePattern() ast.Pattern {
	pat := p.parseOrPattern()
	return pat
}

func (p *Parser) parseOrPattern() ast.Pattern {
	pos := p.cur().Pos
	first := p.parseClosedPattern()
	if !p.at(token.PIPE) {
		return first
	}
	options := []ast.Pattern{first}
	for p.at(token.PIPE) {
		p.advance()
		options = append(options, p.parseClosedPattern())
	}
	return &ast.OrPattern{baseNode: ast.NewBase(pos), Options: options}
}

func (p *Parser) parseClosedPattern() ast.Pattern {
	pos := p.cur().Pos
	switch p.cur().Kind {
	case token.IDENT:
		if p.peek().Kind == token.LPAREN {
			name := p.advance()
			p.advance() // (
			cp := &ast.ClassPattern{baseNode: ast.NewBase(pos), Class: &ast.Ident{baseNode: ast.NewBase(pos), Name: name.Lexeme}, Keyword: map[string]ast.Pattern{}}
			for !p.at(token.RPAREN) {
				if p.at(token.IDENT) && p.peek().Kind == token.ASSIGN {
					kw := p.advance()
					p.advance()
					cp.Keyword[kw.Lexeme] = p.parsePattern()
				} else {
					cp.Positional = append(cp.Positional, p.parsePattern())
				}
				if p.at(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RPAREN)
			return cp
		}
		name := p.advance()
		return &ast.CapturePattern{baseNode: ast.NewBase(pos), Name: name.Lexeme}
	case token.LBRACKET:
		p.advance()
		var elts []ast.Pattern
		for !p.at(token.RBRACKET) {
			elts = append(elts, p.parsePattern())
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBRACKET)
		return &ast.SequencePattern{baseNode: ast.NewBase(pos), Elts: elts}
	case token.LBRACE:
		p.advance()
		mp := &ast.MappingPattern{baseNode: ast.NewBase(pos)}
		for !p.at(token.RBRACE) {
			if p.at(token.DOUBLESTAR) {
				p.advance()
				name := p.expect(token.IDENT)
				mp.Rest = name.Lexeme
			} else {
				key := p.parseExpr(precBitOr)
				p.expect(token.COLON)
				val := p.parsePattern()
				mp.Keys = append(mp.Keys, key)
				mp.Values = append(mp.Values, val)
			}
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBRACE)
		return mp
	case token.STAR:
		p.advance()
		name := p.expect(token.IDENT)
		return &ast.CapturePattern{baseNode: ast.NewBase(pos), Name: "*" + name.Lexeme}
	default:
		val := p.parseExpr(precBitOr)
		return &ast.LiteralPattern{baseNode: ast.NewBase(pos), Value: val}
	}
}

func (p *Parser) parseParams() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	seenStar := false
	for !p.at(token.RPAREN) {
		if p.at(token.STAR) {
			p.advance()
			if p.at(token.IDENT) {
				name := p.advance()
				params = append(params, ast.Param{Name: name.Lexeme, Kind: ast.ParamVarArgs})
			}
			seenStar = true
		} else if p.at(token.DOUBLESTAR) {
			p.advance()
			name := p.expect(token.IDENT)
			params = append(params, ast.Param{Name: name.Lexeme, Kind: ast.ParamKwArgs})
		} else {
			name := p.expect(token.IDENT)
			param := ast.Param{Name: name.Lexeme}
			if seenStar {
				param.Kind = ast.ParamKeywordOnly
			}
			if p.at(token.COLON) {
				p.advance()
				param.Annotation = p.parseExpr(precTernary)
			}
			if p.at(token.ASSIGN) {
				p.advance()
				param.Default = p.parseExpr(precTernary)
			}
			params = append(params, param)
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseFunctionDef(isAsync bool, decorators []ast.Expr) ast.Stmt {
	pos := p.cur().Pos
	p.advance() // def
	name := p.expect(token.IDENT)
	params := p.parseParams()
	var returns ast.Expr
	if p.at(token.ARROW) {
		p.advance()
		returns = p.parseExpr(precTernary)
	}
	body := p.parseSuite()
	return &ast.FunctionDef{
		baseNode: ast.NewBase(pos), Name: name.Lexeme, Params: params, Body: body,
		Decorators: decorators, Returns: returns, IsAsync: isAsync,
		IsGenerator: containsYield(body),
	}
}

// containsYield does a structural scan of stmts for yield/yield-from,
// without descending into nested function/class bodies.
func containsYield(body []ast.Stmt) bool {
	for _, s := range body {
		if stmtContainsYield(s) {
			return true
		}
	}
	return false
}

func stmtContainsYield(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return exprContainsYield(n.Value)
	case *ast.Assign:
		return exprContainsYield(n.Value)
	case *ast.AugAssign:
		return exprContainsYield(n.Value)
	case *ast.AnnAssign:
		return n.Value != nil && exprContainsYield(n.Value)
	case *ast.Return:
		return n.Value != nil && exprContainsYield(n.Value)
	case *ast.If:
		return containsYield(n.Body) || containsYield(n.Orelse)
	case *ast.While:
		return exprContainsYield(n.Test) || containsYield(n.Body) || containsYield(n.Orelse)
	case *ast.For:
		return exprContainsYield(n.Iter) || containsYield(n.Body) || containsYield(n.Orelse)
	case *ast.Try:
		if containsYield(n.Body) || containsYield(n.Orelse) || containsYield(n.Finally) {
			return true
		}
		for _, h := range n.Handlers {
			if containsYield(h.Body) {
				return true
			}
		}
		return false
	case *ast.With:
		return containsYield(n.Body)
	case *ast.Match:
		for _, c := range n.Cases {
			if containsYield(c.Body) {
				return true
			}
		}
		return false
	}
	return false
}

func exprContainsYield(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Yield, *ast.YieldFrom:
		return true
	case *ast.BinaryOp:
		return exprContainsYield(n.Left) || exprContainsYield(n.Right)
	case *ast.UnaryOp:
		return exprContainsYield(n.Operand)
	case *ast.NotOp:
		return exprContainsYield(n.Operand)
	case *ast.BoolOp:
		for _, o := range n.Operands {
			if exprContainsYield(o) {
				return true
			}
		}
	case *ast.IfExpr:
		return exprContainsYield(n.Test) || exprContainsYield(n.Body) || exprContainsYield(n.Orelse)
	case *ast.Call:
		if exprContainsYield(n.Func) {
			return true
		}
		for _, a := range n.Args {
			if exprContainsYield(a.Value) {
				return true
			}
		}
	case *ast.Await:
		return exprContainsYield(n.Value)
	case *ast.TupleLit:
		for _, el := range n.Elts {
			if exprContainsYield(el) {
				return true
			}
		}
	}
	return false
}

func (p *Parser) parseClassDef(decorators []ast.Expr) ast.Stmt {
	pos := p.cur().Pos
	p.advance() // class
	name := p.expect(token.IDENT)
	var bases []ast.Expr
	var keywords []ast.Arg
	if p.at(token.LPAREN) {
		p.advance()
		for !p.at(token.RPAREN) {
			if p.at(token.IDENT) && p.peek().Kind == token.ASSIGN {
				kw := p.advance()
				p.advance()
				keywords = append(keywords, ast.Arg{Name: kw.Lexeme, Value: p.parseExpr(precTernary)})
			} else {
				bases = append(bases, p.parseExpr(precTernary))
			}
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	}
	body := p.parseSuite()
	return &ast.ClassDef{baseNode: ast.NewBase(pos), Name: name.Lexeme, Bases: bases, Keywords: keywords, Body: body, Decorators: decorators}
}

// parseSimpleStatementLine parses one or more `;`-separated simple
// statements terminated by NEWLINE.
func (p *Parser) parseSimpleStatementLine() []ast.Stmt {
	stmts := []ast.Stmt{p.parseSimpleStatement()}
	for p.at(token.SEMICOLON) {
		p.advance()
		if p.at(token.NEWLINE) || p.at(token.EOF) {
			break
		}
		stmts = append(stmts, p.parseSimpleStatement())
	}
	p.expectStatementEnd()
	return stmts
}

func (p *Parser) parseSimpleStatement() ast.Stmt {
	pos := p.cur().Pos
	switch p.cur().Kind {
	case token.PASS:
		p.advance()
		return &ast.Pass{baseNode: ast.NewBase(pos)}
	case token.BREAK:
		p.advance()
		return &ast.Break{baseNode: ast.NewBase(pos)}
	case token.CONTINUE:
		p.advance()
		return &ast.Continue{baseNode: ast.NewBase(pos)}
	case token.RETURN:
		p.advance()
		var val ast.Expr
		if !p.atStatementEnd() {
			val = p.parseExprList()
		}
		return &ast.Return{baseNode: ast.NewBase(pos), Value: val}
	case token.RAISE:
		p.advance()
		var exc, cause ast.Expr
		if !p.atStatementEnd() {
			exc = p.parseExpr(precLowest)
			if p.at(token.FROM) {
				p.advance()
				cause = p.parseExpr(precLowest)
			}
		}
		return &ast.Raise{baseNode: ast.NewBase(pos), Exc: exc, Cause: cause}
	case token.GLOBAL:
		p.advance()
		names := p.parseNameList()
		return &ast.Global{baseNode: ast.NewBase(pos), Names: names}
	case token.NONLOCAL:
		p.advance()
		names := p.parseNameList()
		return &ast.Nonlocal{baseNode: ast.NewBase(pos), Names: names}
	case token.IMPORT:
		return p.parseImport(pos)
	case token.FROM:
		return p.parseImportFrom(pos)
	case token.DEL:
		p.advance()
		var targets []ast.Expr
		targets = append(targets, p.parseTarget())
		for p.at(token.COMMA) {
			p.advance()
			if p.atStatementEnd() {
				break
			}
			targets = append(targets, p.parseTarget())
		}
		return &ast.Delete{baseNode: ast.NewBase(pos), Targets: targets}
	case token.ASSERT:
		p.advance()
		test := p.parseExpr(precTernary)
		var msg ast.Expr
		if p.at(token.COMMA) {
			p.advance()
			msg = p.parseExpr(precTernary)
		}
		return &ast.Assert{baseNode: ast.NewBase(pos), Test: test, Msg: msg}
	default:
		return p.parseExprOrAssignment()
	}
}

func (p *Parser) atStatementEnd() bool {
	return p.at(token.NEWLINE) || p.at(token.SEMICOLON) || p.at(token.EOF) || p.at(token.DEDENT)
}

func (p *Parser) parseNameList() []string {
	var names []string
	n := p.expect(token.IDENT)
	names = append(names, n.Lexeme)
	for p.at(token.COMMA) {
		p.advance()
		n := p.expect(token.IDENT)
		names = append(names, n.Lexeme)
	}
	return names
}

func (p *Parser) parseDottedName() string {
	var sb strings.Builder
	n := p.expect(token.IDENT)
	sb.WriteString(n.Lexeme)
	for p.at(token.DOT) {
		p.advance()
		n := p.expect(token.IDENT)
		sb.WriteString(".")
		sb.WriteString(n.Lexeme)
	}
	return sb.String()
}

func (p *Parser) parseImport(pos token.Position) ast.Stmt {
	p.advance() // import
	var names []ast.ImportAlias
	for {
		path := p.parseDottedName()
		alias := ast.ImportAlias{Path: path}
		if p.at(token.AS) {
			p.advance()
			n := p.expect(token.IDENT)
			alias.Alias = n.Lexeme
		}
		names = append(names, alias)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return &ast.Import{baseNode: ast.NewBase(pos), Names: names}
}

func (p *Parser) parseImportFrom(pos token.Position) ast.Stmt {
	p.advance() // from
	mod := p.parseDottedName()
	p.expect(token.IMPORT)
	var names []ast.ImportAlias
	paren := false
	if p.at(token.LPAREN) {
		paren = true
		p.advance()
	}
	if p.at(token.STAR) {
		p.advance()
		names = append(names, ast.ImportAlias{Path: "*"})
	} else {
		for {
			n := p.expect(token.IDENT)
			alias := ast.ImportAlias{Path: n.Lexeme}
			if p.at(token.AS) {
				p.advance()
				a := p.expect(token.IDENT)
				alias.Alias = a.Lexeme
			}
			names = append(names, alias)
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if paren {
		p.expect(token.RPAREN)
	}
	return &ast.ImportFrom{baseNode: ast.NewBase(pos), Module: mod, Names: names}
}

// parseExprOrAssignment disambiguates the assignment forms that share a
// leading expression: chained `=`, a single augmented operator, an
// annotated assignment after a bare identifier, or else a plain expression
// statement.
func (p *Parser) parseExprOrAssignment() ast.Stmt {
	pos := p.cur().Pos
	first := p.parseExprList()

	if augOp := p.cur().Kind; augAssignOps[augOp] {
		p.advance()
		value := p.parseExprList()
		return &ast.AugAssign{baseNode: ast.NewBase(pos), Target: first, Op: augOp, Value: value}
	}

	if id, ok := first.(*ast.Ident); ok && p.at(token.COLON) {
		p.advance()
		annot := p.parseExpr(precTernary)
		var val ast.Expr
		if p.at(token.ASSIGN) {
			p.advance()
			val = p.parseExprList()
		}
		return &ast.AnnAssign{baseNode: ast.NewBase(pos), Target: id, Annotation: annot, Value: val}
	}

	if p.at(token.ASSIGN) {
		targets := []ast.Expr{first}
		var value ast.Expr
		for p.at(token.ASSIGN) {
			p.advance()
			value = p.parseExprList()
			if p.at(token.ASSIGN) {
				targets = append(targets, value)
			}
		}
		return &ast.Assign{baseNode: ast.NewBase(pos), Targets: targets, Value: value}
	}

	return &ast.ExprStmt{baseNode: ast.NewBase(pos), Value: first}
}

// parseTarget parses a single assignment target (identifier, subscript,
// attribute, starred, or parenthesised/bracketed tuple/list of targets).
func (p *Parser) parseTarget() ast.Expr {
	return p.parseExpr(precBitOr)
}

// parseTargetList parses a for-loop / with-as target, allowing a bare
// comma-separated tuple without parentheses.
func (p *Parser) parseTargetList() ast.Expr {
	pos := p.cur().Pos
	first := p.parseTarget()
	if !p.at(token.COMMA) {
		return first
	}
	elts := []ast.Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.IN) {
			break
		}
		elts = append(elts, p.parseTarget())
	}
	return &ast.TupleLit{baseNode: ast.NewBase(pos), Elts: elts}
}

// parseExprList parses a single expression, or a bare comma-separated tuple
// (used on the right-hand side of assignment/return/yield and for-iterables).
func (p *Parser) parseExprList() ast.Expr {
	pos := p.cur().Pos
	first := p.parseExprAllowStar(precLowest)
	if !p.at(token.COMMA) {
		return first
	}
	elts := []ast.Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.atStatementEnd() || p.at(token.ASSIGN) {
			break
		}
		elts = append(elts, p.parseExprAllowStar(precLowest))
	}
	return &ast.TupleLit{baseNode: ast.NewBase(pos), Elts: elts}
}

func (p *Parser) parseExprAllowStar(prec int) ast.Expr {
	if p.at(token.STAR) {
		pos := p.cur().Pos
		p.advance()
		return &ast.Starred{baseNode: ast.NewBase(pos), Value: p.parseExpr(prec)}
	}
	return p.parseExpr(prec)
}

// ---------------------------------------------------------------------
// Expressions (Pratt parser)
// ---------------------------------------------------------------------

func (p *Parser) parseExpr(prec int) ast.Expr {
	left := p.parsePrefix()
	for {
		if p.at(token.IF) && prec < precTernary {
			left = p.parseTernary(left)
			continue
		}
		if p.at(token.WALRUS) && prec < precNamedExpr {
			left = p.parseNamedExpr(left)
			continue
		}
		if p.at(token.NOT) && p.peek().Kind == token.IN && prec < precCompare {
			left = p.parseCompareChain(left)
			continue
		}
		if p.at(token.IS) && prec < precCompare {
			left = p.parseCompareChain(left)
			continue
		}
		if isCompareOp(p.cur().Kind) && prec < precCompare {
			left = p.parseCompareChain(left)
			continue
		}
		if p.at(token.IN) && prec < precCompare {
			left = p.parseCompareChain(left)
			continue
		}
		if p.at(token.AND) && prec < precAnd {
			left = p.parseBoolOp(left, token.AND, precAnd)
			continue
		}
		if p.at(token.OR) && prec < precOr {
			left = p.parseBoolOp(left, token.OR, precOr)
			continue
		}
		nextPrec, ok := precedences[p.cur().Kind]
		if !ok || prec >= nextPrec {
			break
		}
		left = p.parseInfix(left, nextPrec)
	}
	return left
}

func isCompareOp(k token.Kind) bool {
	switch k {
	case token.LT, token.GT, token.LE, token.GE, token.EQ, token.NE:
		return true
	}
	return false
}

func (p *Parser) parseCompareChain(left ast.Expr) ast.Expr {
	pos := left.Pos()
	chain := &ast.CompareChain{baseNode: ast.NewBase(pos), Left: left}
	for {
		op := ast.CompareOp{}
		switch {
		case p.at(token.NOT) && p.peek().Kind == token.IN:
			p.advance()
			p.advance()
			op.Op = token.IN
			op.NotIn = true
		case p.at(token.IS) && p.peek().Kind == token.NOT:
			p.advance()
			p.advance()
			op.Op = token.IS
			op.IsNot = true
		case p.at(token.IS):
			p.advance()
			op.Op = token.IS
		case p.at(token.IN):
			p.advance()
			op.Op = token.IN
		case isCompareOp(p.cur().Kind):
			op.Op = p.advance().Kind
		default:
			return chain
		}
		op.Right = p.parseExpr(precCompare)
		chain.Ops = append(chain.Ops, op)
		if isCompareOp(p.cur().Kind) || p.at(token.IN) || p.at(token.IS) || (p.at(token.NOT) && p.peek().Kind == token.IN) {
			continue
		}
		break
	}
	return chain
}

func (p *Parser) parseBoolOp(left ast.Expr, op token.Kind, prec int) ast.Expr {
	pos := left.Pos()
	operands := []ast.Expr{left}
	for p.at(op) {
		p.advance()
		operands = append(operands, p.parseExpr(prec))
	}
	return &ast.BoolOp{baseNode: ast.NewBase(pos), Op: op, Operands: operands}
}

func (p *Parser) parseTernary(body ast.Expr) ast.Expr {
	pos := body.Pos()
	p.advance() // if
	test := p.parseExpr(precOr)
	p.expect(token.ELSE)
	orelse := p.parseExpr(precTernary)
	return &ast.IfExpr{baseNode: ast.NewBase(pos), Test: test, Body: body, Orelse: orelse}
}

func (p *Parser) parseNamedExpr(target ast.Expr) ast.Expr {
	id, ok := target.(*ast.Ident)
	pos := target.Pos()
	if !ok {
		p.addError(pos, "left side of := must be a name")
	}
	p.advance() // :=
	val := p.parseExpr(precNamedExpr)
	return &ast.NamedExpr{baseNode: ast.NewBase(pos), Target: id, Value: val}
}

func (p *Parser) parseInfix(left ast.Expr, prec int) ast.Expr {
	switch p.cur().Kind {
	case token.LPAREN:
		return p.parseCall(left)
	case token.LBRACKET:
		return p.parseSubscript(left)
	case token.DOT:
		return p.parseAttribute(left)
	case token.DOUBLESTAR:
		pos := p.cur().Pos
		p.advance()
		right := p.parseExpr(prec - 1) // right-associative
		return &ast.BinaryOp{baseNode: ast.NewBase(pos), Op: token.DOUBLESTAR, Left: left, Right: right}
	default:
		op := p.advance()
		right := p.parseExpr(prec)
		return &ast.BinaryOp{baseNode: ast.NewBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
}

func (p *Parser) parseAttribute(left ast.Expr) ast.Expr {
	pos := p.cur().Pos
	p.advance() // .
	name := p.expect(token.IDENT)
	return &ast.Attribute{baseNode: ast.NewBase(pos), Value: left, Attr: name.Lexeme}
}

func (p *Parser) parseSubscript(left ast.Expr) ast.Expr {
	pos := p.cur().Pos
	p.advance() // [
	index := p.parseSliceOrIndex()
	p.expect(token.RBRACKET)
	return &ast.Subscript{baseNode: ast.NewBase(pos), Value: left, Index: index}
}

func (p *Parser) parseSliceOrIndex() ast.Expr {
	pos := p.cur().Pos
	var lower, upper, step ast.Expr
	isSlice := false
	if !p.at(token.COLON) {
		lower = p.parseExpr(precLowest)
	}
	if p.at(token.COLON) {
		isSlice = true
		p.advance()
		if !p.at(token.COLON) && !p.at(token.RBRACKET) {
			upper = p.parseExpr(precLowest)
		}
		if p.at(token.COLON) {
			p.advance()
			if !p.at(token.RBRACKET) {
				step = p.parseExpr(precLowest)
			}
		}
	}
	if !isSlice {
		return lower
	}
	return &ast.Slice{baseNode: ast.NewBase(pos), Lower: lower, Upper: upper, Step: step}
}

func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	pos := p.cur().Pos
	p.advance() // (
	var args []ast.Arg
	seenKeyword := false
	for !p.at(token.RPAREN) {
		switch {
		case p.at(token.STAR):
			p.advance()
			args = append(args, ast.Arg{Value: p.parseExpr(precTernary), Starred: true})
		case p.at(token.DOUBLESTAR):
			p.advance()
			args = append(args, ast.Arg{Value: p.parseExpr(precTernary), DoubleStarred: true})
			seenKeyword = true
		case p.at(token.IDENT) && p.peek().Kind == token.ASSIGN:
			name := p.advance()
			p.advance()
			args = append(args, ast.Arg{Name: name.Lexeme, Value: p.parseExpr(precTernary)})
			seenKeyword = true
		default:
			val := p.parseExpr(precTernary)
			if p.at(token.FOR) {
				// generator expression as sole argument
				clauses := p.parseCompClauses()
				args = append(args, ast.Arg{Value: &ast.GeneratorExp{baseNode: ast.NewBase(pos), Elt: val, Clauses: clauses}})
			} else {
				if seenKeyword {
					p.addError(val.Pos(), "positional argument follows keyword argument")
				}
				args = append(args, ast.Arg{Value: val})
			}
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return &ast.Call{baseNode: ast.NewBase(pos), Func: fn, Args: args}
}

func (p *Parser) parseCompClauses() []ast.CompClause {
	var clauses []ast.CompClause
	for p.at(token.FOR) || (p.at(token.ASYNC) && p.peek().Kind == token.FOR) {
		isAsync := false
		if p.at(token.ASYNC) {
			isAsync = true
			p.advance()
		}
		p.advance() // for
		target := p.parseTargetList()
		p.expect(token.IN)
		iter := p.parseExpr(precOr)
		cl := ast.CompClause{Target: target, Iter: iter, IsAsync: isAsync}
		for p.at(token.IF) {
			p.advance()
			cl.Ifs = append(cl.Ifs, p.parseExpr(precOr))
		}
		clauses = append(clauses, cl)
	}
	return clauses
}

// ---------------------------------------------------------------------
// Prefix / primary expressions
// ---------------------------------------------------------------------

func (p *Parser) parsePrefix() ast.Expr {
	tok := p.cur()
	pos := tok.Pos
	switch tok.Kind {
	case token.NOT:
		p.advance()
		return &ast.NotOp{baseNode: ast.NewBase(pos), Operand: p.parseExpr(precNot)}
	case token.MINUS, token.PLUS, token.TILDE:
		p.advance()
		return &ast.UnaryOp{baseNode: ast.NewBase(pos), Op: tok.Kind, Operand: p.parseExpr(precUnary)}
	case token.AWAIT:
		p.advance()
		return &ast.Await{baseNode: ast.NewBase(pos), Value: p.parseExpr(precAwait)}
	case token.YIELD:
		p.advance()
		if p.at(token.FROM) {
			p.advance()
			return &ast.YieldFrom{baseNode: ast.NewBase(pos), Value: p.parseExpr(precLowest)}
		}
		if p.atStatementEnd() || p.at(token.RPAREN) {
			return &ast.Yield{baseNode: ast.NewBase(pos)}
		}
		return &ast.Yield{baseNode: ast.NewBase(pos), Value: p.parseExprList()}
	case token.LAMBDA:
		return p.parseLambda()
	case token.INT, token.FLOAT, token.IMAG:
		return p.parseNumber()
	case token.STRING:
		p.advance()
		return &ast.StringLit{baseNode: ast.NewBase(pos), Value: tok.StrVal}
	case token.BYTES:
		p.advance()
		return &ast.BytesLit{baseNode: ast.NewBase(pos), Value: []byte(tok.StrVal)}
	case token.FSTRING:
		p.advance()
		return p.buildFString(pos, tok.FParts)
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{baseNode: ast.NewBase(pos), Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{baseNode: ast.NewBase(pos), Value: false}
	case token.NONE:
		p.advance()
		return &ast.NoneLit{baseNode: ast.NewBase(pos)}
	case token.IDENT:
		p.advance()
		return &ast.Ident{baseNode: ast.NewBase(pos), Name: tok.Lexeme}
	case token.LPAREN:
		return p.parseParenForm()
	case token.LBRACKET:
		return p.parseBracketForm()
	case token.LBRACE:
		return p.parseBraceForm()
	case token.STAR:
		p.advance()
		return &ast.Starred{baseNode: ast.NewBase(pos), Value: p.parseExpr(precUnary)}
	default:
		p.addError(pos, "unexpected token %s in expression", tok.Kind)
		p.advance()
		return &ast.NoneLit{baseNode: ast.NewBase(pos)}
	}
}

func (p *Parser) buildFString(pos token.Position, parts []token.FStringPart) ast.Expr {
	out := &ast.FStringLit{baseNode: ast.NewBase(pos)}
	for _, part := range parts {
		if !part.IsExpr {
			out.Parts = append(out.Parts, ast.FStringPart{Literal: part.Literal})
			continue
		}
		sub, err := New(part.Expr)
		var expr ast.Expr
		if err == nil {
			expr = sub.parseExpr(precLowest)
		}
		fp := ast.FStringPart{Expr: expr, Conversion: part.Conversion, FormatText: part.FormatSpec}
		out.Parts = append(out.Parts, fp)
	}
	return out
}

func (p *Parser) parseNumber() ast.Expr {
	tok := p.advance()
	pos := tok.Pos
	if tok.Kind == token.IMAG {
		return &ast.NumberLit{baseNode: ast.NewBase(pos), IsImag: true, Float: tok.FloatVal}
	}
	if tok.Kind == token.FLOAT {
		return &ast.NumberLit{baseNode: ast.NewBase(pos), Float: tok.FloatVal}
	}
	intText := normalizeIntLiteral(tok.IntVal)
	return &ast.NumberLit{baseNode: ast.NewBase(pos), IsInt: true, IntText: intText}
}

// normalizeIntLiteral converts hex/oct/bin literal text into a decimal
// string so internal/object can parse it uniformly with math/big.
func normalizeIntLiteral(raw string) string {
	lower := strings.ToLower(raw)
	var base int
	var digits string
	switch {
	case strings.HasPrefix(lower, "0x"):
		base, digits = 16, lower[2:]
	case strings.HasPrefix(lower, "0o"):
		base, digits = 8, lower[2:]
	case strings.HasPrefix(lower, "0b"):
		base, digits = 2, lower[2:]
	default:
		return raw
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err == nil {
		return strconv.FormatInt(n, 10)
	}
	// fall through for values too large for int64; leave prefixed form for
	// the object package's big.Int parser, which understands base prefixes.
	return raw
}

func (p *Parser) parseLambda() ast.Expr {
	pos := p.cur().Pos
	p.advance() // lambda
	var params []ast.Param
	seenStar := false
	for !p.at(token.COLON) {
		if p.at(token.STAR) {
			p.advance()
			if p.at(token.IDENT) {
				name := p.advance()
				params = append(params, ast.Param{Name: name.Lexeme, Kind: ast.ParamVarArgs})
			}
			seenStar = true
		} else if p.at(token.DOUBLESTAR) {
			p.advance()
			name := p.expect(token.IDENT)
			params = append(params, ast.Param{Name: name.Lexeme, Kind: ast.ParamKwArgs})
		} else {
			name := p.expect(token.IDENT)
			param := ast.Param{Name: name.Lexeme}
			if seenStar {
				param.Kind = ast.ParamKeywordOnly
			}
			if p.at(token.ASSIGN) {
				p.advance()
				param.Default = p.parseExpr(precTernary)
			}
			params = append(params, param)
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.COLON)
	body := p.parseExpr(precTernary)
	return &ast.Lambda{baseNode: ast.NewBase(pos), Params: params, Body: body}
}

// parseParenForm handles `(...)`: parenthesised expression, tuple, or
// generator expression.
func (p *Parser) parseParenForm() ast.Expr {
	pos := p.cur().Pos
	p.advance() // (
	if p.at(token.RPAREN) {
		p.advance()
		return &ast.TupleLit{baseNode: ast.NewBase(pos)}
	}
	first := p.parseExprAllowStar(precLowest)
	if p.at(token.FOR) || (p.at(token.ASYNC) && p.peek().Kind == token.FOR) {
		clauses := p.parseCompClauses()
		p.expect(token.RPAREN)
		return &ast.GeneratorExp{baseNode: ast.NewBase(pos), Elt: first, Clauses: clauses}
	}
	if p.at(token.COMMA) {
		elts := []ast.Expr{first}
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RPAREN) {
				break
			}
			elts = append(elts, p.parseExprAllowStar(precLowest))
		}
		p.expect(token.RPAREN)
		return &ast.TupleLit{baseNode: ast.NewBase(pos), Elts: elts}
	}
	p.expect(token.RPAREN)
	return first
}

// parseBracketForm handles `[...]`: list literal or list comprehension.
func (p *Parser) parseBracketForm() ast.Expr {
	pos := p.cur().Pos
	p.advance() // [
	if p.at(token.RBRACKET) {
		p.advance()
		return &ast.ListLit{baseNode: ast.NewBase(pos)}
	}
	first := p.parseExprAllowStar(precLowest)
	if p.at(token.FOR) || (p.at(token.ASYNC) && p.peek().Kind == token.FOR) {
		clauses := p.parseCompClauses()
		p.expect(token.RBRACKET)
		return &ast.ListComp{baseNode: ast.NewBase(pos), Elt: first, Clauses: clauses}
	}
	elts := []ast.Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RBRACKET) {
			break
		}
		elts = append(elts, p.parseExprAllowStar(precLowest))
	}
	p.expect(token.RBRACKET)
	return &ast.ListLit{baseNode: ast.NewBase(pos), Elts: elts}
}

// parseBraceForm handles `{...}`: set/dict literal or comprehension,
// disambiguated by the first `:`.
func (p *Parser) parseBraceForm() ast.Expr {
	pos := p.cur().Pos
	p.advance() // {
	if p.at(token.RBRACE) {
		p.advance()
		return &ast.DictLit{baseNode: ast.NewBase(pos)}
	}
	if p.at(token.DOUBLESTAR) {
		p.advance()
		spread := p.parseExpr(precTernary)
		entries := []ast.DictEntry{{Value: spread}}
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RBRACE) {
				break
			}
			entries = append(entries, p.parseDictEntry())
		}
		p.expect(token.RBRACE)
		return &ast.DictLit{baseNode: ast.NewBase(pos), Entries: entries}
	}

	first := p.parseExprAllowStar(precLowest)
	if p.at(token.COLON) {
		p.advance()
		val := p.parseExpr(precTernary)
		if p.at(token.FOR) {
			clauses := p.parseCompClauses()
			p.expect(token.RBRACE)
			return &ast.DictComp{baseNode: ast.NewBase(pos), Key: first, Value: val, Clauses: clauses}
		}
		entries := []ast.DictEntry{{Key: first, Value: val}}
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RBRACE) {
				break
			}
			entries = append(entries, p.parseDictEntry())
		}
		p.expect(token.RBRACE)
		return &ast.DictLit{baseNode: ast.NewBase(pos), Entries: entries}
	}

	if p.at(token.FOR) {
		clauses := p.parseCompClauses()
		p.expect(token.RBRACE)
		return &ast.SetComp{baseNode: ast.NewBase(pos), Elt: first, Clauses: clauses}
	}

	elts := []ast.Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RBRACE) {
			break
		}
		elts = append(elts, p.parseExprAllowStar(precLowest))
	}
	p.expect(token.RBRACE)
	return &ast.SetLit{baseNode: ast.NewBase(pos), Elts: elts}
}

func (p *Parser) parseDictEntry() ast.DictEntry {
	if p.at(token.DOUBLESTAR) {
		p.advance()
		return ast.DictEntry{Value: p.parseExpr(precTernary)}
	}
	key := p.parseExpr(precTernary)
	p.expect(token.COLON)
	val := p.parseExpr(precTernary)
	return ast.DictEntry{Key: key, Value: val}
}
