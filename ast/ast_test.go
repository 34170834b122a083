package ast_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/ivy-lang/ast"
)

func sym(name string) *ast.Atom { return &ast.Atom{Token: ast.Sym(name, 1, 1)} }
func num(v int64) *ast.Atom     { return &ast.Atom{Token: ast.Int(v, 1, 1)} }

func binary(tt ast.TokenType, l, r ast.Node) *ast.BinaryExpr {
	return &ast.BinaryExpr{Token: ast.Tok(tt, 1, 1), Left: l, Right: r}
}

func base(name string) *ast.TypeBase {
	return &ast.TypeBase{Token: ast.Sym(name, 1, 1), Name: sym(name)}
}

// square is let square = fn (x) => x * x.
func square() *ast.Root {
	return &ast.Root{Children: []ast.Node{
		&ast.LetExpr{
			Token:   ast.Tok(ast.Let, 1, 1),
			Symbols: []*ast.Atom{sym("square")},
			Value: &ast.FnAnon{
				Token: ast.Tok(ast.Fn, 1, 14),
				Args:  []ast.Node{&ast.FnArg{Name: sym("x")}},
				Body:  binary(ast.Star, sym("x"), sym("x")),
			},
		},
	}}
}

// ── Tokens ────────────────────────────────────────────────────────────────────

func TestToken_Lookup(t *testing.T) {
	for _, s := range []string{"let", "::", "=>", "->", "and", "true", "false", "{"} {
		tt, ok := ast.Lookup(s)
		require.True(t, ok, s)
		assert.Equal(t, s, tt.String())
	}
	for _, s := range []string{"<symbol>", "ILLEGAL", "letter", ""} {
		_, ok := ast.Lookup(s)
		assert.False(t, ok, s)
	}
}

func TestToken_Describe(t *testing.T) {
	assert.Equal(t, "<symbol>", ast.Symbol.Describe())
	assert.Equal(t, "<integer>", ast.Integer.Describe())
	assert.Equal(t, "`::`", ast.DoubleColon.Describe())
	assert.Equal(t, "`let`", ast.Let.Describe())
	assert.True(t, ast.String.HasPayload())
	assert.False(t, ast.True.HasPayload())
	assert.Equal(t, "TokenType(-1)", ast.TokenType(-1).String())
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "[Integer: 3]", ast.Int(3, 1, 1).String())
	assert.Equal(t, "[Symbol: x]", ast.Sym("x", 1, 1).String())
	assert.Equal(t, "[String: hi]", ast.Str("hi", 1, 1).String())
	assert.Equal(t, "[::]", ast.Tok(ast.DoubleColon, 1, 1).String())

	tok := ast.Sym("x", 3, 9)
	assert.Equal(t, "3:9", tok.Pos().String())
	assert.True(t, tok.Is(ast.Symbol))
}

// ── String ────────────────────────────────────────────────────────────────────

func TestNode_String(t *testing.T) {
	tests := []struct {
		node ast.Node
		want string
	}{
		{square(), "let square = fn (x) => (x * x);\n"},
		{&ast.Atom{Token: ast.Str("s", 1, 1)}, `"s"`},
		{&ast.Atom{Token: ast.Token{Type: ast.True}}, "true"},
		{&ast.UnaryExpr{Token: ast.Tok(ast.Minus, 1, 1), Operand: sym("x")}, "(-x)"},
		{&ast.Tuple{Items: []ast.Node{num(1)}}, "(1,)"},
		{&ast.Call{Callee: sym("f"), Args: []ast.Node{num(1), sym("y")}}, "f(1, y)"},
		{&ast.Access{Object: sym("a"), Member: sym("b")}, "(a.b)"},
		{&ast.AccessIndex{Object: sym("a"), Index: num(0)}, "a[0]"},
		{&ast.TypeFn{Param: base("A"), Result: &ast.TypeList{Elem: base("B")}}, "(A -> [B])"},
		{&ast.TypeBase{Name: sym("Buf"), Mutable: true}, "mut Buf"},
		{&ast.WhileExpr{Cond: sym("c"), Body: []ast.Node{sym("s")}}, "while c { s; }"},
		{&ast.FnSignature{Name: sym("f"), Type: base("Int")}, "fn f :: Int"},
		{&ast.DataDeclaration{Name: sym("T"), Variants: []*ast.DataItem{{Name: sym("A")}, {Name: sym("B"), Type: base("Int")}}}, "data T (| A | B :: Int)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.node.String())
	}
}

func TestNode_Ops(t *testing.T) {
	assert.Equal(t, ast.Star, binary(ast.Star, num(1), num(2)).Op())
	assert.Equal(t, ast.Not, (&ast.UnaryExpr{Token: ast.Tok(ast.Not, 1, 1)}).Op())
	assert.Equal(t, "square", sym("square").Name())
}

// ── Fprint ────────────────────────────────────────────────────────────────────

func fprint(t *testing.T, n ast.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ast.Fprint(&buf, n))
	return buf.String()
}

func lines(ls ...string) string { return strings.Join(ls, "\n") + "\n" }

func TestFprint_Square(t *testing.T) {
	want := lines(
		"[root]",
		"  0: [let]",
		"    lhs: [Symbol 'square']",
		"    rhs: [fn anon]",
		"      args: [Symbol 'x']",
		"      value: [*]",
		"        lhs: [Symbol 'x']",
		"        rhs: [Symbol 'x']",
	)
	assert.Equal(t, want, fprint(t, square()))
}

func TestFprint_Declaration(t *testing.T) {
	fn := &ast.FnDeclaration{
		Name: sym("add"),
		Args: []ast.Node{
			&ast.FnArg{Name: sym("a"), Type: base("Int")},
			&ast.FnArg{Name: sym("b")},
		},
		ReturnType: base("Int"),
		Body:       binary(ast.Plus, sym("a"), sym("b")),
	}
	want := lines(
		"[fn declaration]",
		"  name: [Symbol 'add']",
		"  args: [tuple]",
		"    0: [fn argument]",
		"      symbol: [Symbol 'a']",
		"      type: [type 'Int']",
		"    1: [Symbol 'b']",
		"  rtype: [type 'Int']",
		"  value: [+]",
		"    lhs: [Symbol 'a']",
		"    rhs: [Symbol 'b']",
	)
	assert.Equal(t, want, fprint(t, fn))
}

func TestFprint_NoArgs(t *testing.T) {
	decl := &ast.FnDeclaration{Name: sym("f"), Body: num(1)}
	assert.Equal(t, lines(
		"[fn declaration]",
		"  name: [Symbol 'f']",
		"  args: ()",
		"  value: [Int '1']",
	), fprint(t, decl))

	anon := &ast.FnAnon{Body: num(1)}
	assert.Equal(t, lines(
		"[fn anon]",
		"  args: ()",
		"  value: [Int '1']",
	), fprint(t, anon))
}

func TestFprint_IfAndAtoms(t *testing.T) {
	n := &ast.IfExpr{
		Cond: &ast.Atom{Token: ast.Tok(ast.True, 1, 1)},
		Then: &ast.Atom{Token: ast.Str("yes", 1, 1)},
		Else: num(0),
	}
	want := lines(
		"[if]",
		"  cond: [Bool 'true']",
		`  true branch: [String "yes"]`,
		"  false branch: [Int '0']",
	)
	assert.Equal(t, want, fprint(t, n))
}

func TestFprint_Blocks(t *testing.T) {
	n := &ast.DoExpr{Body: []ast.Node{
		&ast.ReturnExpr{Value: &ast.ListSplit{Head: sym("h"), Tail: sym("t")}},
	}}
	want := lines(
		"[do]",
		"  stmts: [block]",
		"    0: [return]",
		"      value: [list split]",
		"        head: [Symbol 'h']",
		"        tail: [Symbol 't']",
	)
	assert.Equal(t, want, fprint(t, n))
}

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(p), nil
}

func TestFprint_WriteError(t *testing.T) {
	w := &failWriter{n: 2}
	err := ast.Fprint(w, square())
	assert.EqualError(t, err, "disk full")
}
