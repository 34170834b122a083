package parser

import "github.com/metaphox/ivy-lang/ast"

// ── Types ─────────────────────────────────────────────────────────────────────
//
//	type      = composite {'->' composite}
//	composite = symbol '<' type {',' type} '>' | list
//	list      = '[' type ']' | tuple
//	tuple     = '(' [type {',' type}] ')' | base
//	base      = ['mut'] symbol

// parseType parses a function type. '->' associates to the left:
// A -> B -> C is ((A -> B) -> C).
func (p *Parser) parseType() (ast.Node, error) {
	if err := p.descend(); err != nil {
		return nil, err
	}
	defer p.ascend()
	defer p.trace("type")()

	result, err := p.parseTypeComposite()
	if err != nil {
		return nil, err
	}
	for p.peekIs(0, ast.Arrow) {
		arrow, _ := p.advance()
		next, err := p.parseTypeComposite()
		if err != nil {
			return nil, err
		}
		result = &ast.TypeFn{Token: arrow, Param: result, Result: next}
	}
	return result, nil
}

func (p *Parser) parseTypeComposite() (ast.Node, error) {
	if !p.peekIs(0, ast.Symbol) || !p.peekIs(1, ast.Less) {
		return p.parseTypeList()
	}
	name, _ := p.parseSymbol()
	params, _, err := delimited(p, ast.Less, ast.Greater, false, p.parseType)
	if err != nil {
		return nil, err
	}
	return &ast.TypeComposite{Name: name, Params: params}, nil
}

func (p *Parser) parseTypeList() (ast.Node, error) {
	if !p.peekIs(0, ast.LBracket) {
		return p.parseTypeTuple()
	}
	open, _ := p.advance()
	elem, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.RBracket); err != nil {
		return nil, err
	}
	return &ast.TypeList{Token: open, Elem: elem}, nil
}

func (p *Parser) parseTypeTuple() (ast.Node, error) {
	if !p.peekIs(0, ast.LParen) {
		return p.parseTypeBase()
	}
	elems, open, err := delimited(p, ast.LParen, ast.RParen, false, p.parseType)
	if err != nil {
		return nil, err
	}
	return &ast.TypeTuple{Token: open, Elems: elems}, nil
}

func (p *Parser) parseTypeBase() (ast.Node, error) {
	next, ok := p.peek(0)
	if !ok {
		return nil, expected(wantType, p.endPos())
	}
	switch next.Type {
	case ast.Mut:
		p.advance()
		name, err := p.parseSymbol()
		if err != nil {
			return nil, err
		}
		return &ast.TypeBase{Token: next, Name: name, Mutable: true}, nil
	case ast.Symbol:
		p.advance()
		return &ast.TypeBase{Token: next, Name: &ast.Atom{Token: next}}, nil
	}
	return nil, expectedOneOf(next.Pos(), describe(ast.Mut, ast.Symbol)...)
}
