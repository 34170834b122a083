package parser

import "github.com/metaphox/ivy-lang/ast"

// cursor is the positional state over a token slice. It never looks more
// than three tokens ahead and never moves backwards.
type cursor struct {
	tokens []ast.Token
	pos    int // 0 <= pos <= len(tokens)
	last   ast.Position
	moved  bool // last is valid
}

func (c *cursor) reset(tokens []ast.Token) {
	*c = cursor{tokens: tokens}
}

// done reports whether every token has been consumed.
func (c *cursor) done() bool { return c.pos >= len(c.tokens) }

// peek returns the token k positions ahead of the current one without
// consuming anything. ok is false past the end of the stream.
func (c *cursor) peek(k int) (tok ast.Token, ok bool) {
	if i := c.pos + k; i < len(c.tokens) {
		return c.tokens[i], true
	}
	return ast.Token{}, false
}

// peekIs reports whether the token k ahead exists and has type tt.
func (c *cursor) peekIs(k int, tt ast.TokenType) bool {
	tok, ok := c.peek(k)
	return ok && tok.Type == tt
}

// advance consumes and returns the current token.
func (c *cursor) advance() (ast.Token, bool) {
	if c.done() {
		return ast.Token{}, false
	}
	tok := c.tokens[c.pos]
	c.pos++
	c.last = tok.Pos()
	c.moved = true
	return tok, true
}

// expect consumes the current token and requires it to have type tt.
func (c *cursor) expect(tt ast.TokenType) (ast.Token, error) {
	tok, ok := c.advance()
	if !ok {
		return tok, expected(tt.Describe(), c.endPos())
	}
	if tok.Type != tt {
		return tok, expected(tt.Describe(), tok.Pos())
	}
	return tok, nil
}

// endPos is where diagnostics about a missing token point: one column past
// the last token of the stream.
func (c *cursor) endPos() ast.Position {
	switch {
	case c.done() && c.moved:
		return ast.Position{Line: c.last.Line, Col: c.last.Col + 1}
	case len(c.tokens) > 0:
		end := c.tokens[len(c.tokens)-1]
		return ast.Position{Line: end.Line, Col: end.Col + 1}
	}
	return ast.Position{Line: 1, Col: 1}
}

// posAt is the position of the token k ahead, or endPos past the stream.
func (c *cursor) posAt(k int) ast.Position {
	if tok, ok := c.peek(k); ok {
		return tok.Pos()
	}
	return c.endPos()
}
