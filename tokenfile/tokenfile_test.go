package tokenfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/ivy-lang/ast"
	"github.com/metaphox/ivy-lang/tokenfile"
)

func types(toks []ast.Token) []ast.TokenType {
	out := make([]ast.TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, tokenfile.YAML, tokenfile.FormatOf("a/b.yaml"))
	assert.Equal(t, tokenfile.YAML, tokenfile.FormatOf("b.YML"))
	assert.Equal(t, tokenfile.Words, tokenfile.FormatOf("b.tok"))
	assert.Equal(t, tokenfile.Words, tokenfile.FormatOf("b"))
	assert.Equal(t, "yaml", tokenfile.YAML.String())
}

func TestLoad_FormatsAgree(t *testing.T) {
	words, err := tokenfile.Load("testdata/square.tok")
	require.NoError(t, err)
	fromYAML, err := tokenfile.Load("testdata/square.yaml")
	require.NoError(t, err)

	require.Len(t, words, 17)
	assert.Equal(t, types(words), types(fromYAML))
	for i := range words {
		assert.Equal(t, words[i].Literal, fromYAML[i].Literal, "token %d", i)
		assert.Equal(t, words[i].Int, fromYAML[i].Int, "token %d", i)
	}
}

func TestDecodeYAML_Positions(t *testing.T) {
	toks, err := tokenfile.Load("testdata/square.yaml")
	require.NoError(t, err)

	assert.Equal(t, ast.Position{Line: 1, Col: 1}, toks[0].Pos())
	assert.Equal(t, ast.Position{Line: 1, Col: 5}, toks[1].Pos(), "pinned column")
	assert.Equal(t, ast.Position{Line: 1, Col: 6}, toks[2].Pos(), "continues after the pinned column")
	assert.Equal(t, ast.Position{Line: 2, Col: 1}, toks[12].Pos(), "pinned line starts at column 1")
	assert.Equal(t, ast.Position{Line: 2, Col: 3}, toks[14].Pos())
	assert.Equal(t, int64(3), toks[14].Int)
}

func TestDecodeYAML_Payloads(t *testing.T) {
	src := `
tokens:
  - {string: "hello, world"}
  - {type: "::"}
  - {int: -7}
  - true
  - "?"
`
	toks, err := tokenfile.DecodeYAML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, toks, 5)

	assert.Equal(t, ast.String, toks[0].Type)
	assert.Equal(t, "hello, world", toks[0].Literal)
	assert.Equal(t, ast.DoubleColon, toks[1].Type)
	assert.Equal(t, ast.Integer, toks[2].Type)
	assert.Equal(t, int64(-7), toks[2].Int)
	assert.Equal(t, ast.True, toks[3].Type)
	assert.Equal(t, ast.Illegal, toks[4].Type)
}

func TestDecodeYAML_Empty(t *testing.T) {
	toks, err := tokenfile.DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, toks)

	toks, err = tokenfile.DecodeYAML(strings.NewReader("tokens: []\n"))
	require.NoError(t, err)
	assert.Empty(t, toks)
}

func TestDecodeYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"two payloads", "tokens:\n  - {symbol: x, int: 3}\n", "want exactly one of"},
		{"no payload", "tokens:\n  - {line: 3}\n", "want exactly one of"},
		{"unknown spelling", "tokens:\n  - {type: \"<>\"}\n", `unknown token spelling "<>"`},
		{"bad symbol", "tokens:\n  - {symbol: \"1x\"}\n", `invalid symbol "1x"`},
		{"nested list", "tokens:\n  - [a, b]\n", "want a scalar or a mapping"},
		{"not yaml", "tokens: [\n", "decode yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokenfile.DecodeYAML(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := tokenfile.Load("testdata/missing.tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open token file")

	_, err = tokenfile.Load("testdata/bad.yaml")
	require.Error(t, err)
	var ferr *tokenfile.Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "testdata/bad.yaml", ferr.File)
	assert.Equal(t, 3, ferr.Line)
	assert.True(t, strings.HasPrefix(err.Error(), "testdata/bad.yaml:3:"), err.Error())
}

func TestRead_Words(t *testing.T) {
	toks, err := tokenfile.Read(strings.NewReader("a + 1 ;"), tokenfile.Words)
	require.NoError(t, err)
	assert.Equal(t, []ast.TokenType{ast.Symbol, ast.Plus, ast.Integer, ast.Semicolon}, types(toks))
}
