// Package ast defines the token types and the AST node types shared by the
// ivy parser and its consumers.
//
// Tokens are produced by an external lexical layer; the parser only reads and
// copies them. Every token carries its type, its literal text (symbol name,
// string contents, or the source spelling), an integer payload for Integer
// tokens, and its source position. Position is 1-based: the first character of
// a file is Line 1, Col 1.
package ast

import "fmt"

// TokenType identifies the category of a token.
// The zero value is Illegal.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// Illegal is a token the lexical layer could not classify. The parser
	// never accepts it; it shows up only in diagnostics.
	Illegal TokenType = iota

	// ── Payload tokens ────────────────────────────────────────────────────────

	// Integer is a decimal integer literal; the value is in Token.Int.
	Integer
	// String is a string literal; the contents are in Token.Literal.
	String
	// Symbol is a user-defined name; the name is in Token.Literal.
	Symbol
	// True is the boolean literal true.
	True
	// False is the boolean literal false.
	False

	// ── Operators ─────────────────────────────────────────────────────────────

	Plus         // +
	Minus        // -
	Star         // *
	Slash        // /
	Bind         // =
	Eq           // ==
	Not          // !
	NotEq        // !=
	Greater      // >
	GreaterEqual // >=
	Less         // <
	LessEqual    // <=
	And          // and
	Or           // or

	// ── Delimiters ────────────────────────────────────────────────────────────

	Bar         // |
	Arrow       // ->
	EqArrow     // =>
	Comma       // ,
	Semicolon   // ;
	Colon       // :
	DoubleColon // ::
	Dot         // .
	LParen      // (
	RParen      // )
	LBracket    // [
	RBracket    // ]
	LCurly      // {
	RCurly      // }

	// ── Keywords ──────────────────────────────────────────────────────────────

	Let
	Mut
	Fn
	If
	Then
	Else
	Pub
	Data
	Struct
	Package
	Import
	Match
	With
	While
	Do
	Return

	numTokenTypes
)

// spellings holds the source form of every token type that has a fixed one.
// Payload tokens are described by category instead.
var spellings = [numTokenTypes]string{
	Illegal: "ILLEGAL",
	Integer: "<integer>",
	String:  "<string>",
	Symbol:  "<symbol>",
	True:    "true",
	False:   "false",

	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Bind:         "=",
	Eq:           "==",
	Not:          "!",
	NotEq:        "!=",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	And:          "and",
	Or:           "or",

	Bar:         "|",
	Arrow:       "->",
	EqArrow:     "=>",
	Comma:       ",",
	Semicolon:   ";",
	Colon:       ":",
	DoubleColon: "::",
	Dot:         ".",
	LParen:      "(",
	RParen:      ")",
	LBracket:    "[",
	RBracket:    "]",
	LCurly:      "{",
	RCurly:      "}",

	Let:     "let",
	Mut:     "mut",
	Fn:      "fn",
	If:      "if",
	Then:    "then",
	Else:    "else",
	Pub:     "pub",
	Data:    "data",
	Struct:  "struct",
	Package: "package",
	Import:  "import",
	Match:   "match",
	With:    "with",
	While:   "while",
	Do:      "do",
	Return:  "return",
}

// bySpelling is the reverse of spellings for the fixed-spelling tokens.
var bySpelling = func() map[string]TokenType {
	m := make(map[string]TokenType, numTokenTypes)
	for tt := Plus; tt < numTokenTypes; tt++ {
		m[spellings[tt]] = tt
	}
	m["true"] = True
	m["false"] = False
	return m
}()

// Lookup returns the token type whose fixed spelling is s, such as "::" or
// "let". Payload tokens have no fixed spelling and are never returned.
func Lookup(s string) (TokenType, bool) {
	tt, ok := bySpelling[s]
	return tt, ok
}

// String returns the source spelling of tt, or its category for payload tokens.
func (tt TokenType) String() string {
	if tt < 0 || tt >= numTokenTypes {
		return fmt.Sprintf("TokenType(%d)", int(tt))
	}
	return spellings[tt]
}

// Describe returns the form used in "expected ..." diagnostics: fixed
// spellings are quoted in backticks, categories are left as <name>.
func (tt TokenType) Describe() string {
	switch tt {
	case Integer, String, Symbol:
		return tt.String()
	}
	return "`" + tt.String() + "`"
}

// HasPayload reports whether tokens of this type carry a value.
func (tt TokenType) HasPayload() bool {
	return tt == Integer || tt == String || tt == Symbol
}

// Position is a 1-based source location.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is a single lexical unit handed to the parser.
//
// Tokens are values: nodes keep their own copy of the token they were built
// from, so the token slice can be reused or discarded after parsing.
type Token struct {
	Type    TokenType
	Literal string // symbol name, string contents, or source spelling
	Int     int64  // payload of Integer tokens
	Line    int
	Col     int
}

// Pos returns the token's source position.
func (t Token) Pos() Position { return Position{Line: t.Line, Col: t.Col} }

// Is reports whether the token has type tt.
func (t Token) Is(tt TokenType) bool { return t.Type == tt }

// String returns a human-readable representation of the token for debugging.
func (t Token) String() string {
	switch t.Type {
	case Integer:
		return fmt.Sprintf("[Integer: %d]", t.Int)
	case String:
		return fmt.Sprintf("[String: %s]", t.Literal)
	case Symbol:
		return fmt.Sprintf("[Symbol: %s]", t.Literal)
	case Illegal:
		return fmt.Sprintf("[Illegal: %s]", t.Literal)
	}
	return "[" + t.Type.String() + "]"
}

// Tok builds a fixed-spelling token at line:col.
func Tok(tt TokenType, line, col int) Token {
	return Token{Type: tt, Literal: tt.String(), Line: line, Col: col}
}

// Int builds an Integer token at line:col.
func Int(v int64, line, col int) Token {
	return Token{Type: Integer, Literal: fmt.Sprint(v), Int: v, Line: line, Col: col}
}

// Str builds a String token at line:col.
func Str(s string, line, col int) Token {
	return Token{Type: String, Literal: s, Line: line, Col: col}
}

// Sym builds a Symbol token at line:col.
func Sym(name string, line, col int) Token {
	return Token{Type: Symbol, Literal: name, Line: line, Col: col}
}
