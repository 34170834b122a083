package parser

import "github.com/metaphox/ivy-lang/ast"

// ── Functions ─────────────────────────────────────────────────────────────────

// parseFn picks one of the three function forms by the tokens after 'fn':
//
//	fn '(' ...          anonymous function
//	fn symbol '::' ...  signature
//	fn symbol '(' ...   declaration
func (p *Parser) parseFn() (ast.Node, error) {
	second, ok := p.peek(1)
	if !ok {
		return nil, expectedOneOf(p.posAt(1), describe(ast.Symbol, ast.LParen)...)
	}
	switch second.Type {
	case ast.LParen:
		return p.parseFnAnon()
	case ast.Symbol:
		if p.peekIs(2, ast.DoubleColon) {
			return p.parseFnSignature()
		}
		if p.peekIs(2, ast.LParen) {
			return p.parseFnDeclaration()
		}
		return nil, expectedOneOf(p.posAt(2), describe(ast.DoubleColon, ast.LParen)...)
	}
	return nil, expectedOneOf(second.Pos(), describe(ast.Symbol, ast.LParen)...)
}

// parseFnAnon parses fn args [':' type] '=>' expression.
func (p *Parser) parseFnAnon() (ast.Node, error) {
	defer p.trace("fn anon")()

	tok, err := p.expect(ast.Fn)
	if err != nil {
		return nil, err
	}
	fn := &ast.FnAnon{Token: tok}
	if fn.Args, fn.ReturnType, err = p.parseFnHead(); err != nil {
		return nil, err
	}
	if fn.Body, err = p.parseFnBody(); err != nil {
		return nil, err
	}
	return fn, nil
}

// parseFnSignature parses fn symbol '::' type.
func (p *Parser) parseFnSignature() (ast.Node, error) {
	defer p.trace("fn signature")()

	tok, err := p.expect(ast.Fn)
	if err != nil {
		return nil, err
	}
	name, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.DoubleColon); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.FnSignature{Token: tok, Name: name, Type: typ}, nil
}

// parseFnDeclaration parses fn symbol args [':' type] '=>' expression.
func (p *Parser) parseFnDeclaration() (ast.Node, error) {
	defer p.trace("fn declaration")()

	tok, err := p.expect(ast.Fn)
	if err != nil {
		return nil, err
	}
	fn := &ast.FnDeclaration{Token: tok}
	if fn.Name, err = p.parseSymbol(); err != nil {
		return nil, err
	}
	if fn.Args, fn.ReturnType, err = p.parseFnHead(); err != nil {
		return nil, err
	}
	if fn.Body, err = p.parseFnBody(); err != nil {
		return nil, err
	}
	return fn, nil
}

// parseFnHead parses the argument list and the optional return type.
func (p *Parser) parseFnHead() ([]ast.Node, ast.Node, error) {
	args, _, err := delimited(p, ast.LParen, ast.RParen, false, p.parseFnArg)
	if err != nil {
		return nil, nil, err
	}
	if !p.peekIs(0, ast.Colon) {
		return args, nil, nil
	}
	p.advance()
	ret, err := p.parseType()
	if err != nil {
		return nil, nil, err
	}
	return args, ret, nil
}

func (p *Parser) parseFnBody() (ast.Node, error) {
	if _, err := p.expect(ast.EqArrow); err != nil {
		return nil, err
	}
	return p.parseExpression()
}

// parseFnArg parses one argument: a list pattern, a literal, a call, or a
// symbol with an optional ':' type annotation.
func (p *Parser) parseFnArg() (ast.Node, error) {
	defer p.trace("fn argument")()

	next, ok := p.peek(0)
	switch {
	case ok && next.Type == ast.LBracket:
		return p.parseList()
	case ok && (next.Type == ast.String || next.Type == ast.Integer):
		p.advance()
		return &ast.Atom{Token: next}, nil
	case ok && next.Type == ast.Symbol && p.peekIs(1, ast.LParen):
		return p.parseCall()
	}

	name, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	arg := &ast.FnArg{Name: name}
	if p.peekIs(0, ast.Colon) {
		p.advance()
		if arg.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	return arg, nil
}

// ── Data and structs ──────────────────────────────────────────────────────────

// parseData parses
//
//	data symbol ['<' symbol {',' symbol} '>'] '(' ['|'] item {'|' item} ')'
func (p *Parser) parseData() (ast.Node, error) {
	defer p.trace("data")()

	tok, err := p.expect(ast.Data)
	if err != nil {
		return nil, err
	}
	decl := &ast.DataDeclaration{Token: tok}
	if decl.Name, err = p.parseSymbol(); err != nil {
		return nil, err
	}
	if p.peekIs(0, ast.Less) {
		if decl.Generics, _, err = delimited(p, ast.Less, ast.Greater, false, p.parseSymbol); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ast.LParen); err != nil {
		return nil, err
	}
	lead := p.peekIs(0, ast.Bar)
	if lead {
		p.advance()
	}
	for {
		next, ok := p.peek(0)
		closing := !ok || next.Type == ast.RParen
		if closing && !(lead && len(decl.Variants) == 0) {
			break
		}
		if len(decl.Variants) > 0 {
			if _, err := p.expect(ast.Bar); err != nil {
				return nil, err
			}
		}
		item, err := p.parseDataItem()
		if err != nil {
			return nil, err
		}
		decl.Variants = append(decl.Variants, item)
	}
	if _, err := p.expect(ast.RParen); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseDataItem parses symbol ['::' (anonymous struct | type)].
func (p *Parser) parseDataItem() (*ast.DataItem, error) {
	defer p.trace("data item")()

	name, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	item := &ast.DataItem{Name: name}
	if !p.peekIs(0, ast.DoubleColon) {
		return item, nil
	}
	p.advance()
	if p.peekIs(0, ast.Struct) {
		item.Type, err = p.parseStructAnon()
	} else {
		item.Type, err = p.parseType()
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// parseStruct parses a named struct declaration when a symbol follows
// 'struct', and an anonymous struct otherwise.
func (p *Parser) parseStruct() (ast.Node, error) {
	if !p.peekIs(1, ast.Symbol) {
		return p.parseStructAnon()
	}
	defer p.trace("struct declaration")()

	tok, err := p.expect(ast.Struct)
	if err != nil {
		return nil, err
	}
	name, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	fields, _, err := delimited(p, ast.LParen, ast.RParen, true, p.parseStructField)
	if err != nil {
		return nil, err
	}
	return &ast.StructDeclaration{Token: tok, Name: name, Fields: fields}, nil
}

// parseStructAnon parses struct '(' field {',' field} [','] ')'.
func (p *Parser) parseStructAnon() (ast.Node, error) {
	defer p.trace("struct anon")()

	tok, err := p.expect(ast.Struct)
	if err != nil {
		return nil, err
	}
	fields, _, err := delimited(p, ast.LParen, ast.RParen, true, p.parseStructField)
	if err != nil {
		return nil, err
	}
	return &ast.StructAnon{Token: tok, Fields: fields}, nil
}

// parseStructField parses symbol '::' type.
func (p *Parser) parseStructField() (*ast.StructField, error) {
	name, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.DoubleColon); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.StructField{Name: name, Type: typ}, nil
}

// ── Packages ──────────────────────────────────────────────────────────────────

func (p *Parser) parsePackage() (ast.Node, error) {
	defer p.trace("package")()

	tok, err := p.expect(ast.Package)
	if err != nil {
		return nil, err
	}
	name, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	return &ast.PackageDecl{Token: tok, Name: name}, nil
}

// parseImport parses import string, or import '(' string {',' string} [','] ')'.
func (p *Parser) parseImport() (ast.Node, error) {
	defer p.trace("import")()

	tok, err := p.expect(ast.Import)
	if err != nil {
		return nil, err
	}
	imp := &ast.ImportDecl{Token: tok}
	switch next, ok := p.peek(0); {
	case !ok:
		return nil, expectedOneOf(p.endPos(), describe(ast.LParen, ast.String)...)
	case next.Type == ast.LParen:
		if imp.Paths, _, err = delimited(p, ast.LParen, ast.RParen, true, p.parseString); err != nil {
			return nil, err
		}
	default:
		path, err := p.parseString()
		if err != nil {
			return nil, err
		}
		imp.Paths = []*ast.Atom{path}
	}
	return imp, nil
}
