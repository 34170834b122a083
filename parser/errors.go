package parser

import (
	"fmt"
	"strings"

	"github.com/metaphox/ivy-lang/ast"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// Expected means exactly one construct would have been accepted.
	Expected ErrorKind = iota
	// ExpectedOneOf means any of several constructs would have been accepted.
	ExpectedOneOf
	// TooDeep means the input nests deeper than Options.MaxDepth.
	TooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case Expected:
		return "expected"
	case ExpectedOneOf:
		return "expected one of"
	case TooDeep:
		return "too deep"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the single diagnostic returned by a failed parse.
//
// Want holds the construct descriptions in diagnostic form: fixed tokens in
// backticks (`;`) and categories in angle brackets (<symbol>). Pos is the
// offending token, or one column past the last token when the stream ran out.
type Error struct {
	Kind  ErrorKind
	Want  []string
	Pos   ast.Position
	Limit int // the exceeded depth, for TooDeep
}

func (e *Error) Error() string {
	if len(e.Want) == 0 && e.Kind != TooDeep {
		return fmt.Sprintf("%s: parse error", e.Pos)
	}
	switch e.Kind {
	case Expected:
		return fmt.Sprintf("%s: expected %s", e.Pos, e.Want[0])
	case ExpectedOneOf:
		return fmt.Sprintf("%s: expected one of %s", e.Pos, strings.Join(e.Want, ", "))
	case TooDeep:
		return fmt.Sprintf("%s: nesting exceeds maximum depth of %d", e.Pos, e.Limit)
	}
	return fmt.Sprintf("%s: parse error", e.Pos)
}

func expected(want string, pos ast.Position) *Error {
	return &Error{Kind: Expected, Want: []string{want}, Pos: pos}
}

func expectedOneOf(pos ast.Position, want ...string) *Error {
	return &Error{Kind: ExpectedOneOf, Want: want, Pos: pos}
}

func tooDeep(pos ast.Position, limit int) *Error {
	return &Error{Kind: TooDeep, Pos: pos, Limit: limit}
}

// describe renders token types in diagnostic form.
func describe(tts ...ast.TokenType) []string {
	out := make([]string, len(tts))
	for i, tt := range tts {
		out[i] = tt.Describe()
	}
	return out
}

const (
	wantExpression = "<expression>"
	wantFactor     = "<factor>"
	wantType       = "<type>"
)
