package tokenfile

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/metaphox/ivy-lang/ast"
)

// document is the top level of a YAML token file.
type document struct {
	Tokens []yaml.Node `yaml:"tokens"`
}

// entry is the mapping form of one token. Exactly one of the payload keys
// must be set.
type entry struct {
	Symbol *string `yaml:"symbol"`
	Int    *int64  `yaml:"int"`
	String *string `yaml:"string"`
	Type   *string `yaml:"type"`
	Line   int     `yaml:"line"`
	Col    int     `yaml:"col"`
}

// DecodeYAML reads a YAML token file.
//
//	tokens:
//	  - let
//	  - square
//	  - "="
//	  - {string: "hello, world"}
//	  - {type: ";", line: 2, col: 1}
//
// A scalar item is classified like a word (see [Classify]). A mapping item
// names its payload explicitly and may pin its position. Items without a
// position continue on the line of the previous item, one column further.
func DecodeYAML(r io.Reader) ([]ast.Token, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &Error{Msg: fmt.Sprintf("decode yaml: %v", err)}
	}

	toks := make([]ast.Token, 0, len(doc.Tokens))
	line, col := 1, 0
	for i := range doc.Tokens {
		n := &doc.Tokens[i]
		switch n.Kind {
		case yaml.ScalarNode:
			col++
			tok, err := Classify(n.Value, line, col)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case yaml.MappingNode:
			var e entry
			if err := n.Decode(&e); err != nil {
				return nil, &Error{Line: n.Line, Col: n.Column, Msg: fmt.Sprintf("token %d: %v", i, err)}
			}
			switch {
			case e.Line > 0:
				line, col = e.Line, max(e.Col, 1)
			case e.Col > 0:
				col = e.Col
			default:
				col++
			}
			tok, err := e.token(line, col)
			if err != nil {
				return nil, &Error{Line: n.Line, Col: n.Column, Msg: fmt.Sprintf("token %d: %v", i, err)}
			}
			toks = append(toks, tok)
		default:
			return nil, &Error{Line: n.Line, Col: n.Column, Msg: fmt.Sprintf("token %d: want a scalar or a mapping", i)}
		}
	}
	return toks, nil
}

func (e entry) token(line, col int) (ast.Token, error) {
	set := 0
	for _, ok := range []bool{e.Symbol != nil, e.Int != nil, e.String != nil, e.Type != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return ast.Token{}, errors.New("want exactly one of symbol, int, string, type")
	}

	switch {
	case e.Symbol != nil:
		if !isName(*e.Symbol) {
			return ast.Token{}, fmt.Errorf("invalid symbol %q", *e.Symbol)
		}
		return ast.Sym(*e.Symbol, line, col), nil
	case e.Int != nil:
		return ast.Int(*e.Int, line, col), nil
	case e.String != nil:
		return ast.Str(*e.String, line, col), nil
	}
	tt, ok := ast.Lookup(*e.Type)
	if !ok {
		return ast.Token{}, fmt.Errorf("unknown token spelling %q", *e.Type)
	}
	return ast.Tok(tt, line, col), nil
}
