package tokenfile

import (
	"fmt"
	"strconv"

	"github.com/metaphox/ivy-lang/ast"
)

// ParseWords reads a word file: tokens separated by whitespace, with line
// and column taken from where each word starts. A word is classified by
// [Classify]; a double-quoted word is a String and may contain spaces and
// the escapes \n \t \\ \". Everything from a '#' at the start of a word to
// the end of the line is a comment.
//
//	let square = fn ( x ) => x * x ;
//	import "std/io" ;
func ParseWords(src string) ([]ast.Token, error) {
	s := newScanner(src)
	var toks []ast.Token
	for {
		s.skipSpaceAndComments()
		if s.ch == 0 {
			return toks, nil
		}
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

// Classify turns one bare word into a token at line:col. Fixed spellings
// ("let", "::", "true") get their own type, decimal digits an Integer, names
// a Symbol. Anything else is an Illegal token carrying the word, which the
// parser rejects wherever it appears.
func Classify(word string, line, col int) (ast.Token, error) {
	if tt, ok := ast.Lookup(word); ok {
		return ast.Tok(tt, line, col), nil
	}
	if isDigits(word) {
		v, err := strconv.ParseInt(word, 10, 64)
		if err != nil {
			return ast.Token{}, &Error{Line: line, Col: col, Msg: fmt.Sprintf("integer %s out of range", word)}
		}
		return ast.Int(v, line, col), nil
	}
	if isName(word) {
		return ast.Sym(word, line, col), nil
	}
	return ast.Token{Type: ast.Illegal, Literal: word, Line: line, Col: col}, nil
}

// ── Scanner ───────────────────────────────────────────────────────────────────

// scanner walks a word file byte by byte. line and col are 1-based and
// describe ch.
type scanner struct {
	input   string
	readPos int
	pos     int
	ch      byte

	line, col int
}

func newScanner(input string) *scanner {
	s := &scanner{input: input, line: 1}
	s.readChar()
	return s
}

// readChar advances by one byte. ch is 0 at end of input.
func (s *scanner) readChar() {
	if s.ch == '\n' {
		s.line++
		s.col = 0
	}
	if s.readPos >= len(s.input) {
		s.ch = 0
	} else {
		s.ch = s.input[s.readPos]
	}
	s.pos = s.readPos
	s.readPos++
	s.col++
}

func (s *scanner) skipSpaceAndComments() {
	for {
		switch s.ch {
		case ' ', '\t', '\r', '\n':
			s.readChar()
		case '#':
			for s.ch != '\n' && s.ch != 0 {
				s.readChar()
			}
		default:
			return
		}
	}
}

func (s *scanner) next() (ast.Token, error) {
	line, col := s.line, s.col
	if s.ch == '"' {
		return s.readString(line, col)
	}
	start := s.pos
	for !isSpace(s.ch) && s.ch != 0 {
		s.readChar()
	}
	return Classify(s.input[start:s.pos], line, col)
}

// readString scans a quoted word. The opening '"' is under the cursor.
func (s *scanner) readString(line, col int) (ast.Token, error) {
	s.readChar()
	var buf []byte
	for {
		switch s.ch {
		case '"':
			s.readChar()
			if !isSpace(s.ch) && s.ch != 0 {
				return ast.Token{}, &Error{Line: s.line, Col: s.col, Msg: "missing space after string"}
			}
			return ast.Str(string(buf), line, col), nil
		case '\\':
			s.readChar()
			switch s.ch {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case '\\', '"':
				buf = append(buf, s.ch)
			default:
				return ast.Token{}, &Error{Line: s.line, Col: s.col, Msg: fmt.Sprintf("unknown escape \\%c", s.ch)}
			}
			s.readChar()
		case '\n', 0:
			return ast.Token{}, &Error{Line: line, Col: col, Msg: "unterminated string"}
		default:
			buf = append(buf, s.ch)
			s.readChar()
		}
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

func isDigits(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			return false
		}
	}
	return true
}

// isName reports whether w matches [A-Za-z_][A-Za-z0-9_']*.
func isName(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		b := w[i]
		switch {
		case b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z'):
		case i > 0 && ((b >= '0' && b <= '9') || b == '\''):
		default:
			return false
		}
	}
	return true
}
