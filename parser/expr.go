package parser

import "github.com/metaphox/ivy-lang/ast"

// ── Operator precedence ───────────────────────────────────────────────────────

// Binary precedence levels, loosest first. Unary, call, access and factor
// bind tighter than every level here.
const (
	precOr = iota
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	numPrec
)

// binaryOps lists the operators accepted at each precedence level.
var binaryOps = [numPrec][]ast.TokenType{
	precOr:             {ast.Or},
	precAnd:            {ast.And},
	precEquality:       {ast.Eq, ast.NotEq},
	precRelational:     {ast.Greater, ast.GreaterEqual, ast.Less, ast.LessEqual},
	precAdditive:       {ast.Plus, ast.Minus},
	precMultiplicative: {ast.Star, ast.Slash},
}

var precNames = [numPrec]string{"or", "and", "equality", "relational", "additive", "multiplicative"}

// atPrec reports whether the next token is an operator of level prec.
func (p *Parser) atPrec(prec int) bool {
	next, ok := p.peek(0)
	if !ok {
		return false
	}
	for _, op := range binaryOps[prec] {
		if next.Type == op {
			return true
		}
	}
	return false
}

// ── Operator expressions ──────────────────────────────────────────────────────

// parseOr is the guarded entry into the operator ladder used where an
// expression nests without passing through parseExpression.
func (p *Parser) parseOr() (ast.Node, error) {
	if err := p.descend(); err != nil {
		return nil, err
	}
	defer p.ascend()
	return p.parseBinary(precOr)
}

// parseBinary parses operand {op operand} for the operators of level prec,
// folding to the left: a - b - c is ((a - b) - c).
func (p *Parser) parseBinary(prec int) (ast.Node, error) {
	if prec == numPrec {
		return p.parseUnary()
	}
	defer p.trace(precNames[prec])()

	left, err := p.parseBinary(prec + 1)
	if err != nil {
		return nil, err
	}
	for p.atPrec(prec) {
		op, _ := p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Token: op, Left: left, Right: right}
	}
	return left, nil
}

// parseUnary parses ['!' | '-'] call.
func (p *Parser) parseUnary() (ast.Node, error) {
	defer p.trace("unary")()

	if p.peekIs(0, ast.Not) || p.peekIs(0, ast.Minus) {
		op, _ := p.advance()
		operand, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Token: op, Operand: operand}, nil
	}
	return p.parseCall()
}

// parseCall parses symbol '(' [expression {',' expression}] ')' when the
// next two tokens are a symbol and '(', and an access chain otherwise.
func (p *Parser) parseCall() (ast.Node, error) {
	if !p.peekIs(0, ast.Symbol) || !p.peekIs(1, ast.LParen) {
		return p.parseAccess()
	}
	defer p.trace("call")()

	callee, _ := p.parseSymbol()
	args, _, err := delimited(p, ast.LParen, ast.RParen, false, p.parseExpression)
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Args: args}, nil
}

// parseAccess parses index {'.' member}. A member is a call or an index
// expression, and the chain folds to the left: a.b.c is ((a.b).c).
func (p *Parser) parseAccess() (ast.Node, error) {
	defer p.trace("access")()

	expr, err := p.parseIndex()
	if err != nil {
		return nil, err
	}
	for p.peekIs(0, ast.Dot) {
		dot, _ := p.advance()
		var member ast.Node
		if p.peekIs(0, ast.Symbol) && p.peekIs(1, ast.LParen) {
			member, err = p.parseCall()
		} else {
			member, err = p.parseIndex()
		}
		if err != nil {
			return nil, err
		}
		expr = &ast.Access{Token: dot, Object: expr, Member: member}
	}
	return expr, nil
}

// parseIndex parses factor {'[' expression ']'}.
func (p *Parser) parseIndex() (ast.Node, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.peekIs(0, ast.LBracket) {
		open, _ := p.advance()
		index, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.RBracket); err != nil {
			return nil, err
		}
		expr = &ast.AccessIndex{Token: open, Object: expr, Index: index}
	}
	return expr, nil
}

// ── Factors ───────────────────────────────────────────────────────────────────

// parseFactor parses an atom, a list, a tuple or a parenthesised group.
// A group yields its inner expression; no node records the parentheses.
func (p *Parser) parseFactor() (ast.Node, error) {
	defer p.trace("factor")()

	next, ok := p.peek(0)
	if !ok {
		return nil, expected(wantFactor, p.endPos())
	}
	switch next.Type {
	case ast.Integer, ast.String, ast.Symbol, ast.True, ast.False:
		p.advance()
		return &ast.Atom{Token: next}, nil
	case ast.LBracket:
		return p.parseList()
	case ast.LParen:
		if p.isTuple() {
			return p.parseTuple()
		}
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.RParen); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, expected(wantFactor, next.Pos())
}

func (p *Parser) parseTuple() (ast.Node, error) {
	defer p.trace("tuple")()

	items, open, err := delimited(p, ast.LParen, ast.RParen, false, p.parseExpression)
	if err != nil {
		return nil, err
	}
	return &ast.Tuple{Token: open, Items: items}, nil
}

// isTuple classifies the '(' under the cursor without consuming anything.
// () is an empty tuple under both scans.
func (p *Parser) isTuple() bool {
	if p.scan == ScanFlat {
		return p.isTupleFlat()
	}
	return p.isTupleNested()
}

// isTupleNested looks for a comma outside any nested (), [] or {} pair.
// '<' is not tracked, since it is also less-than, so the comma in a
// generic type such as Map<K, V> inside a group makes the group a tuple.
func (p *Parser) isTupleNested() bool {
	depth := 0
	for i := p.pos + 1; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case ast.LParen, ast.LBracket, ast.LCurly:
			depth++
		case ast.RParen, ast.RBracket, ast.RCurly:
			if depth == 0 {
				return i == p.pos+1
			}
			depth--
		case ast.Comma:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// isTupleFlat answers true at the first comma and stops at the first ')'.
// A '(' that ends the stream also counts as a tuple.
func (p *Parser) isTupleFlat() bool {
	for i := p.pos + 1; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case ast.Comma:
			return true
		case ast.RParen:
			return i == p.pos+1
		}
	}
	return p.pos+1 >= len(p.tokens)
}

// parseList parses a list split '[' head '|' tail ']' when the two tokens
// after '[' are a symbol and '|', and a list literal otherwise.
func (p *Parser) parseList() (ast.Node, error) {
	if p.peekIs(1, ast.Symbol) && p.peekIs(2, ast.Bar) {
		return p.parseListSplit()
	}
	defer p.trace("list literal")()

	items, open, err := delimited(p, ast.LBracket, ast.RBracket, false, p.parseExpression)
	if err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Token: open, Items: items}, nil
}

func (p *Parser) parseListSplit() (ast.Node, error) {
	defer p.trace("list split")()

	open, err := p.expect(ast.LBracket)
	if err != nil {
		return nil, err
	}
	head, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.Bar); err != nil {
		return nil, err
	}
	tail, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RBracket); err != nil {
		return nil, err
	}
	return &ast.ListSplit{Token: open, Head: head, Tail: tail}, nil
}
