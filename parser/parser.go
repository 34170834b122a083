// Package parser implements the ivy recursive-descent parser.
//
// The parser consumes a finished token slice, normally produced by a lexer
// outside this module or loaded with package tokenfile, and builds an
// [ast.Root]. Every production picks its alternative by looking at most three
// tokens ahead; nothing is ever backtracked. Binary operators are parsed by
// precedence climbing over a small table, one loop per level, which keeps
// every level left-associative.
//
// Usage:
//
//	root, err := parser.Parse(tokens, parser.Options{})
//	if err != nil {
//		var perr *parser.Error
//		errors.As(err, &perr) // perr.Pos, perr.Want
//	}
//
// Errors: the first mismatch aborts the parse. No tree is returned alongside
// an error and there is no recovery.
package parser

import (
	"log/slog"

	"github.com/metaphox/ivy-lang/ast"
)

// ── Parser ────────────────────────────────────────────────────────────────────

// Parser holds the state of one parse over a token slice.
// Create one with [New] and call [Parser.Parse]. A Parser is not safe for
// concurrent use; parse different inputs with different Parsers.
type Parser struct {
	cursor

	logger   *slog.Logger
	tracer   Tracer
	maxDepth int
	scan     TupleScan

	depth int // open guarded productions
	open  int // open traced productions
}

// New returns a Parser over tokens. The slice is read, never modified.
func New(tokens []ast.Token, opts Options) *Parser {
	opts = opts.withDefaults()
	p := &Parser{
		logger:   opts.Logger,
		tracer:   opts.Tracer,
		maxDepth: opts.MaxDepth,
		scan:     opts.TupleScan,
	}
	p.cursor.reset(tokens)
	return p
}

// Parse is shorthand for New(tokens, opts).Parse().
func Parse(tokens []ast.Token, opts Options) (*ast.Root, error) {
	return New(tokens, opts).Parse()
}

// Parse consumes the whole token slice and returns the program tree.
//
// A program is a sequence of statements, each an expression followed by `;`.
// An empty slice is an empty program. On failure the returned error is an
// *Error and the tree is nil. Calling Parse again starts over from the first
// token and yields an identical result.
func (p *Parser) Parse() (*ast.Root, error) {
	p.cursor.reset(p.tokens)
	p.depth, p.open = 0, 0

	p.logger.Debug("parse started", slog.Int("tokens", len(p.tokens)))
	root := &ast.Root{}
	for !p.done() {
		stmt, err := p.parseStatement()
		if err != nil {
			p.logger.Debug("parse failed", slog.String("error", err.Error()))
			return nil, err
		}
		root.Children = append(root.Children, stmt)
	}
	p.logger.Debug("parse finished", slog.Int("statements", len(root.Children)))
	return root, nil
}

// ── Guards ────────────────────────────────────────────────────────────────────

// descend enters a guarded production. Callers must pair a nil result with
// a deferred ascend.
func (p *Parser) descend() error {
	if p.depth >= p.maxDepth {
		return tooDeep(p.posAt(0), p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *Parser) ascend() { p.depth-- }

// ── Statements ────────────────────────────────────────────────────────────────

// parseStatement parses expression ';'.
func (p *Parser) parseStatement() (ast.Node, error) {
	defer p.trace("statement")()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.Semicolon); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseStatements parses statements up to, and including, a closing '}'.
// The opening '{' must already be consumed.
func (p *Parser) parseStatements() ([]ast.Node, error) {
	var body []ast.Node
	for {
		next, ok := p.peek(0)
		if !ok {
			return nil, expected(ast.RCurly.Describe(), p.endPos())
		}
		if next.Type == ast.RCurly {
			p.advance()
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

// parseExpression dispatches on the leading keyword. Anything that does not
// start with one is an operator expression.
func (p *Parser) parseExpression() (ast.Node, error) {
	if err := p.descend(); err != nil {
		return nil, err
	}
	defer p.ascend()
	defer p.trace("expression")()

	next, ok := p.peek(0)
	if !ok {
		return nil, expected(wantExpression, p.endPos())
	}
	switch next.Type {
	case ast.Let:
		return p.parseLet()
	case ast.Mut:
		return p.parseMut()
	case ast.Fn:
		return p.parseFn()
	case ast.If:
		return p.parseIf()
	case ast.Pub:
		return p.parsePub()
	case ast.Data:
		return p.parseData()
	case ast.Struct:
		return p.parseStruct()
	case ast.Package:
		return p.parsePackage()
	case ast.Import:
		return p.parseImport()
	case ast.Match:
		return p.parseMatch()
	case ast.While:
		return p.parseWhile()
	case ast.Do:
		return p.parseDo()
	case ast.Return:
		return p.parseReturn()
	}
	return p.parseBinary(precOr)
}

// ── Bindings ──────────────────────────────────────────────────────────────────

// parseLet parses
//
//	let [mut] (symbol | '(' symbol {',' symbol} [','] ')') ['::' type] '=' expression
func (p *Parser) parseLet() (ast.Node, error) {
	defer p.trace("let")()

	tok, err := p.expect(ast.Let)
	if err != nil {
		return nil, err
	}
	let := &ast.LetExpr{Token: tok}
	if p.peekIs(0, ast.Mut) {
		p.advance()
		let.Mutable = true
	}

	switch next, ok := p.peek(0); {
	case ok && next.Type == ast.Symbol:
		sym, _ := p.parseSymbol()
		let.Symbols = []*ast.Atom{sym}
	case ok && next.Type == ast.LParen:
		let.Symbols, _, err = delimited(p, ast.LParen, ast.RParen, true, p.parseSymbol)
		if err != nil {
			return nil, err
		}
	default:
		return nil, expectedOneOf(p.posAt(0), describe(ast.Symbol, ast.LParen)...)
	}

	if p.peekIs(0, ast.DoubleColon) {
		p.advance()
		if let.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ast.Bind); err != nil {
		return nil, err
	}
	if let.Value, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return let, nil
}

// parseMut parses mut target '=' expression, where target is an attribute
// or index access chain.
func (p *Parser) parseMut() (ast.Node, error) {
	defer p.trace("mut")()

	tok, err := p.expect(ast.Mut)
	if err != nil {
		return nil, err
	}
	target, err := p.parseAccess()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.Bind); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.MutExpr{Token: tok, Target: target, Value: value}, nil
}

// ── Control flow ──────────────────────────────────────────────────────────────

// parseIf parses if expression then expression [else expression].
func (p *Parser) parseIf() (ast.Node, error) {
	defer p.trace("if")()

	tok, err := p.expect(ast.If)
	if err != nil {
		return nil, err
	}
	expr := &ast.IfExpr{Token: tok}
	if expr.Cond, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.Then); err != nil {
		return nil, err
	}
	if expr.Then, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if p.peekIs(0, ast.Else) {
		p.advance()
		if expr.Else, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// parseMatch parses match expression with '(' {'|' pattern '->' expression} ')'.
func (p *Parser) parseMatch() (ast.Node, error) {
	defer p.trace("match")()

	tok, err := p.expect(ast.Match)
	if err != nil {
		return nil, err
	}
	expr := &ast.MatchExpr{Token: tok}
	if expr.Subject, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.With); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.LParen); err != nil {
		return nil, err
	}
	for {
		next, ok := p.peek(0)
		if !ok || next.Type == ast.RParen {
			break
		}
		branch, err := p.parseMatchBranch()
		if err != nil {
			return nil, err
		}
		expr.Branches = append(expr.Branches, branch)
	}
	if _, err := p.expect(ast.RParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseMatchBranch() (*ast.MatchBranch, error) {
	defer p.trace("match branch")()

	tok, err := p.expect(ast.Bar)
	if err != nil {
		return nil, err
	}
	branch := &ast.MatchBranch{Token: tok}
	if branch.Pattern, err = p.parseExpression(); err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.Arrow); err != nil {
		return nil, err
	}
	if branch.Value, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return branch, nil
}

// parseWhile parses while expression '{' {statement} '}'.
func (p *Parser) parseWhile() (ast.Node, error) {
	defer p.trace("while")()

	tok, err := p.expect(ast.While)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.LCurly); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	return &ast.WhileExpr{Token: tok, Cond: cond, Body: body}, nil
}

// parseDo parses do '{' {statement} '}'.
func (p *Parser) parseDo() (ast.Node, error) {
	defer p.trace("do")()

	tok, err := p.expect(ast.Do)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.LCurly); err != nil {
		return nil, err
	}
	body, err := p.parseStatements()
	if err != nil {
		return nil, err
	}
	return &ast.DoExpr{Token: tok, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	defer p.trace("return")()

	tok, err := p.expect(ast.Return)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnExpr{Token: tok, Value: value}, nil
}

func (p *Parser) parsePub() (ast.Node, error) {
	defer p.trace("pub")()

	tok, err := p.expect(ast.Pub)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.PubExpr{Token: tok, Value: value}, nil
}

// ── Lists ─────────────────────────────────────────────────────────────────────

// delimited parses open item {',' item} close. With trailing set, one comma
// may directly precede close. A missing comma between two items is reported
// at the token where the comma should be.
func delimited[T any](p *Parser, open, close ast.TokenType, trailing bool, item func() (T, error)) ([]T, ast.Token, error) {
	start, err := p.expect(open)
	if err != nil {
		return nil, start, err
	}
	var items []T
	for {
		next, ok := p.peek(0)
		if !ok || next.Type == close {
			break
		}
		if len(items) > 0 {
			if _, err := p.expect(ast.Comma); err != nil {
				return nil, start, err
			}
			if trailing && p.peekIs(0, close) {
				break
			}
		}
		it, err := item()
		if err != nil {
			return nil, start, err
		}
		items = append(items, it)
	}
	if _, err := p.expect(close); err != nil {
		return nil, start, err
	}
	return items, start, nil
}

// parseSymbol consumes a Symbol token as an atom.
func (p *Parser) parseSymbol() (*ast.Atom, error) {
	tok, err := p.expect(ast.Symbol)
	if err != nil {
		return nil, err
	}
	return &ast.Atom{Token: tok}, nil
}

// parseString consumes a String token as an atom.
func (p *Parser) parseString() (*ast.Atom, error) {
	tok, err := p.expect(ast.String)
	if err != nil {
		return nil, err
	}
	return &ast.Atom{Token: tok}, nil
}
