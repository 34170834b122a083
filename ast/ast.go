// Package ast defines the Abstract Syntax Tree (AST) node types for ivy.
//
// The node set is closed: every grammar production has exactly one struct,
// and all of them implement [Node] through an unexported marker method, so a
// type switch over the variants below is exhaustive.
//
//	Root
//	  bindings      LetExpr, MutExpr
//	  functions     FnAnon, FnSignature, FnDeclaration, FnArg
//	  control       IfExpr, MatchExpr, MatchBranch, WhileExpr, DoExpr, ReturnExpr
//	  declarations  PubExpr, DataDeclaration, DataItem, StructAnon,
//	                StructDeclaration, StructField, Package, Import
//	  types         TypeFn, TypeList, TypeTuple, TypeComposite, TypeBase
//	  expressions   BinaryExpr, UnaryExpr, Call, Access, AccessIndex,
//	                Tuple, ListLiteral, ListSplit, Atom
//
// Nodes own their children exclusively and are never mutated after the
// parser returns them. Each node keeps a copy of the token it started at.
package ast

import (
	"fmt"
	"strings"
)

// Node is the interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the literal of the token that began this node.
	TokenLiteral() string
	// Pos returns the position of the token that began this node.
	Pos() Position
	// String returns a compact, single-line representation of the node.
	// It is intended for debugging and test output; see Fprint for the
	// labeled tree form.
	String() string

	node()
}

// join renders nodes with String and joins them with sep.
func join[T Node](nodes []T, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

// ── Root ──────────────────────────────────────────────────────────────────────

// Root is the node returned by a successful parse. It owns the top-level
// statements in source order.
type Root struct {
	Children []Node
}

func (r *Root) node() {}

// TokenLiteral returns the literal of the first statement's starting token,
// or "" for an empty program.
func (r *Root) TokenLiteral() string {
	if len(r.Children) > 0 {
		return r.Children[0].TokenLiteral()
	}
	return ""
}

// Pos returns the position of the first statement, or 1:1 for an empty program.
func (r *Root) Pos() Position {
	if len(r.Children) > 0 {
		return r.Children[0].Pos()
	}
	return Position{Line: 1, Col: 1}
}

// String returns every statement followed by its terminator on its own line.
func (r *Root) String() string {
	var b strings.Builder
	for _, c := range r.Children {
		b.WriteString(c.String())
		b.WriteString(";\n")
	}
	return b.String()
}

// ── Bindings ──────────────────────────────────────────────────────────────────

// LetExpr introduces one or more bindings.
//
//	let x = 1
//	let mut (a, b) :: (Int, Int) = pair
type LetExpr struct {
	Token   Token   // the 'let' token
	Symbols []*Atom // one symbol, or the members of a symbol tuple
	Type    Node    // optional annotation after '::'
	Value   Node
	Mutable bool
}

func (e *LetExpr) node()                {}
func (e *LetExpr) TokenLiteral() string { return e.Token.Literal }
func (e *LetExpr) Pos() Position        { return e.Token.Pos() }
func (e *LetExpr) String() string {
	var b strings.Builder
	b.WriteString("let ")
	if e.Mutable {
		b.WriteString("mut ")
	}
	if len(e.Symbols) == 1 {
		b.WriteString(e.Symbols[0].String())
	} else {
		b.WriteString("(" + join(e.Symbols, ", ") + ")")
	}
	if e.Type != nil {
		b.WriteString(" :: " + e.Type.String())
	}
	b.WriteString(" = " + e.Value.String())
	return b.String()
}

// MutExpr reassigns an existing mutable binding or member.
//
//	mut counter = counter + 1
//	mut point.x = 3
type MutExpr struct {
	Token  Token // the 'mut' token
	Target Node  // Atom, Access or AccessIndex
	Value  Node
}

func (e *MutExpr) node()                {}
func (e *MutExpr) TokenLiteral() string { return e.Token.Literal }
func (e *MutExpr) Pos() Position        { return e.Token.Pos() }
func (e *MutExpr) String() string {
	return fmt.Sprintf("mut %s = %s", e.Target, e.Value)
}

// ── Functions ─────────────────────────────────────────────────────────────────

// FnAnon is an anonymous function.
//
//	fn (x, y: Int): Int => x + y
type FnAnon struct {
	Token      Token  // the 'fn' token
	Args       []Node // FnArg, ListLiteral, ListSplit, Atom or Call
	ReturnType Node   // nil when omitted
	Body       Node
}

func (e *FnAnon) node()                {}
func (e *FnAnon) TokenLiteral() string { return e.Token.Literal }
func (e *FnAnon) Pos() Position        { return e.Token.Pos() }
func (e *FnAnon) String() string {
	return "fn (" + join(e.Args, ", ") + ")" + returnSuffix(e.ReturnType) + " => " + e.Body.String()
}

// FnSignature declares the type of a named function without a body.
//
//	fn square :: Int -> Int
type FnSignature struct {
	Token Token // the 'fn' token
	Name  *Atom
	Type  Node
}

func (e *FnSignature) node()                {}
func (e *FnSignature) TokenLiteral() string { return e.Token.Literal }
func (e *FnSignature) Pos() Position        { return e.Token.Pos() }
func (e *FnSignature) String() string {
	return fmt.Sprintf("fn %s :: %s", e.Name, e.Type)
}

// FnDeclaration is a named function with a body.
//
//	fn square (x: Int): Int => x * x
type FnDeclaration struct {
	Token      Token // the 'fn' token
	Name       *Atom
	Args       []Node
	ReturnType Node // nil when omitted
	Body       Node
}

func (e *FnDeclaration) node()                {}
func (e *FnDeclaration) TokenLiteral() string { return e.Token.Literal }
func (e *FnDeclaration) Pos() Position        { return e.Token.Pos() }
func (e *FnDeclaration) String() string {
	return "fn " + e.Name.String() + " (" + join(e.Args, ", ") + ")" +
		returnSuffix(e.ReturnType) + " => " + e.Body.String()
}

func returnSuffix(t Node) string {
	if t == nil {
		return ""
	}
	return ": " + t.String()
}

// FnArg is a named function argument with an optional type.
type FnArg struct {
	Name *Atom
	Type Node // nil for an untyped argument
}

func (e *FnArg) node()                {}
func (e *FnArg) TokenLiteral() string { return e.Name.TokenLiteral() }
func (e *FnArg) Pos() Position        { return e.Name.Pos() }
func (e *FnArg) String() string {
	if e.Type == nil {
		return e.Name.String()
	}
	return e.Name.String() + ": " + e.Type.String()
}

// ── Control flow ──────────────────────────────────────────────────────────────

// IfExpr is a conditional expression. Else is nil when there is no else branch.
//
//	if n < 2 then n else fib(n - 1) + fib(n - 2)
type IfExpr struct {
	Token Token // the 'if' token
	Cond  Node
	Then  Node
	Else  Node
}

func (e *IfExpr) node()                {}
func (e *IfExpr) TokenLiteral() string { return e.Token.Literal }
func (e *IfExpr) Pos() Position        { return e.Token.Pos() }
func (e *IfExpr) String() string {
	out := fmt.Sprintf("if %s then %s", e.Cond, e.Then)
	if e.Else != nil {
		out += " else " + e.Else.String()
	}
	return out
}

// MatchExpr matches a subject against a list of branches.
//
//	match shape with ( | Circle -> 1 | Square -> 2 )
type MatchExpr struct {
	Token    Token // the 'match' token
	Subject  Node
	Branches []*MatchBranch
}

func (e *MatchExpr) node()                {}
func (e *MatchExpr) TokenLiteral() string { return e.Token.Literal }
func (e *MatchExpr) Pos() Position        { return e.Token.Pos() }
func (e *MatchExpr) String() string {
	if len(e.Branches) == 0 {
		return fmt.Sprintf("match %s with ()", e.Subject)
	}
	return fmt.Sprintf("match %s with (%s)", e.Subject, join(e.Branches, " "))
}

// MatchBranch is one '|' pattern '->' value arm of a match.
type MatchBranch struct {
	Token   Token // the '|' token
	Pattern Node
	Value   Node
}

func (e *MatchBranch) node()                {}
func (e *MatchBranch) TokenLiteral() string { return e.Token.Literal }
func (e *MatchBranch) Pos() Position        { return e.Token.Pos() }
func (e *MatchBranch) String() string {
	return fmt.Sprintf("| %s -> %s", e.Pattern, e.Value)
}

// WhileExpr loops over a block of statements while Cond holds.
type WhileExpr struct {
	Token Token // the 'while' token
	Cond  Node
	Body  []Node
}

func (e *WhileExpr) node()                {}
func (e *WhileExpr) TokenLiteral() string { return e.Token.Literal }
func (e *WhileExpr) Pos() Position        { return e.Token.Pos() }
func (e *WhileExpr) String() string {
	return "while " + e.Cond.String() + " " + block(e.Body)
}

// DoExpr is a block of statements in expression position.
type DoExpr struct {
	Token Token // the 'do' token
	Body  []Node
}

func (e *DoExpr) node()                {}
func (e *DoExpr) TokenLiteral() string { return e.Token.Literal }
func (e *DoExpr) Pos() Position        { return e.Token.Pos() }
func (e *DoExpr) String() string       { return "do " + block(e.Body) }

func block(stmts []Node) string {
	out := "{ "
	for _, s := range stmts {
		out += s.String() + "; "
	}
	return out + "}"
}

// ReturnExpr returns a value from the enclosing function.
type ReturnExpr struct {
	Token Token // the 'return' token
	Value Node
}

func (e *ReturnExpr) node()                {}
func (e *ReturnExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ReturnExpr) Pos() Position        { return e.Token.Pos() }
func (e *ReturnExpr) String() string       { return "return " + e.Value.String() }

// ── Declarations ──────────────────────────────────────────────────────────────

// PubExpr marks the wrapped expression as exported.
type PubExpr struct {
	Token Token // the 'pub' token
	Value Node
}

func (e *PubExpr) node()                {}
func (e *PubExpr) TokenLiteral() string { return e.Token.Literal }
func (e *PubExpr) Pos() Position        { return e.Token.Pos() }
func (e *PubExpr) String() string       { return "pub " + e.Value.String() }

// DataDeclaration introduces an algebraic data type.
//
//	data Option<T> ( | None | Some :: T )
type DataDeclaration struct {
	Token    Token // the 'data' token
	Name     *Atom
	Generics []*Atom
	Variants []*DataItem
}

func (e *DataDeclaration) node()                {}
func (e *DataDeclaration) TokenLiteral() string { return e.Token.Literal }
func (e *DataDeclaration) Pos() Position        { return e.Token.Pos() }
func (e *DataDeclaration) String() string {
	name := e.Name.String()
	if len(e.Generics) > 0 {
		name += "<" + join(e.Generics, ", ") + ">"
	}
	variants := ""
	for _, v := range e.Variants {
		variants += "| " + v.String() + " "
	}
	return "data " + name + " (" + strings.TrimSuffix(variants, " ") + ")"
}

// DataItem is one variant of a data declaration. Type is nil for a bare
// variant, a *StructAnon for an inline struct, or a type expression.
type DataItem struct {
	Name *Atom
	Type Node
}

func (e *DataItem) node()                {}
func (e *DataItem) TokenLiteral() string { return e.Name.TokenLiteral() }
func (e *DataItem) Pos() Position        { return e.Name.Pos() }
func (e *DataItem) String() string {
	if e.Type == nil {
		return e.Name.String()
	}
	return e.Name.String() + " :: " + e.Type.String()
}

// StructAnon is an anonymous struct type: struct (x :: Int, y :: Int).
type StructAnon struct {
	Token  Token // the 'struct' token
	Fields []*StructField
}

func (e *StructAnon) node()                {}
func (e *StructAnon) TokenLiteral() string { return e.Token.Literal }
func (e *StructAnon) Pos() Position        { return e.Token.Pos() }
func (e *StructAnon) String() string       { return "struct (" + join(e.Fields, ", ") + ")" }

// StructDeclaration is a named struct: struct Point (x :: Int, y :: Int).
type StructDeclaration struct {
	Token  Token // the 'struct' token
	Name   *Atom
	Fields []*StructField
}

func (e *StructDeclaration) node()                {}
func (e *StructDeclaration) TokenLiteral() string { return e.Token.Literal }
func (e *StructDeclaration) Pos() Position        { return e.Token.Pos() }
func (e *StructDeclaration) String() string {
	return "struct " + e.Name.String() + " (" + join(e.Fields, ", ") + ")"
}

// StructField is one name :: type member of a struct.
type StructField struct {
	Name *Atom
	Type Node
}

func (e *StructField) node()                {}
func (e *StructField) TokenLiteral() string { return e.Name.TokenLiteral() }
func (e *StructField) Pos() Position        { return e.Name.Pos() }
func (e *StructField) String() string       { return e.Name.String() + " :: " + e.Type.String() }

// PackageDecl names the package a file belongs to.
type PackageDecl struct {
	Token Token // the 'package' token
	Name  *Atom
}

func (e *PackageDecl) node()                {}
func (e *PackageDecl) TokenLiteral() string { return e.Token.Literal }
func (e *PackageDecl) Pos() Position        { return e.Token.Pos() }
func (e *PackageDecl) String() string       { return "package " + e.Name.String() }

// ImportDecl lists the packages a file depends on.
type ImportDecl struct {
	Token Token   // the 'import' token
	Paths []*Atom // String atoms
}

func (e *ImportDecl) node()                {}
func (e *ImportDecl) TokenLiteral() string { return e.Token.Literal }
func (e *ImportDecl) Pos() Position        { return e.Token.Pos() }
func (e *ImportDecl) String() string {
	if len(e.Paths) == 1 {
		return "import " + e.Paths[0].String()
	}
	return "import (" + join(e.Paths, ", ") + ")"
}

// ── Types ─────────────────────────────────────────────────────────────────────

// TypeFn is a function type: Param -> Result.
type TypeFn struct {
	Token  Token // the '->' token
	Param  Node
	Result Node
}

func (e *TypeFn) node()                {}
func (e *TypeFn) TokenLiteral() string { return e.Token.Literal }
func (e *TypeFn) Pos() Position        { return e.Param.Pos() }
func (e *TypeFn) String() string       { return fmt.Sprintf("(%s -> %s)", e.Param, e.Result) }

// TypeList is a list type: [Elem].
type TypeList struct {
	Token Token // the '[' token
	Elem  Node
}

func (e *TypeList) node()                {}
func (e *TypeList) TokenLiteral() string { return e.Token.Literal }
func (e *TypeList) Pos() Position        { return e.Token.Pos() }
func (e *TypeList) String() string       { return "[" + e.Elem.String() + "]" }

// TypeTuple is a tuple type: (A, B, ...).
type TypeTuple struct {
	Token Token // the '(' token
	Elems []Node
}

func (e *TypeTuple) node()                {}
func (e *TypeTuple) TokenLiteral() string { return e.Token.Literal }
func (e *TypeTuple) Pos() Position        { return e.Token.Pos() }
func (e *TypeTuple) String() string       { return "(" + join(e.Elems, ", ") + ")" }

// TypeComposite is a generic type application: Name<A, B>.
type TypeComposite struct {
	Name   *Atom
	Params []Node
}

func (e *TypeComposite) node()                {}
func (e *TypeComposite) TokenLiteral() string { return e.Name.TokenLiteral() }
func (e *TypeComposite) Pos() Position        { return e.Name.Pos() }
func (e *TypeComposite) String() string {
	return e.Name.String() + "<" + join(e.Params, ", ") + ">"
}

// TypeBase is a named type, optionally marked mutable: Int, mut Buffer.
type TypeBase struct {
	Token   Token // 'mut' or the symbol token
	Name    *Atom
	Mutable bool
}

func (e *TypeBase) node()                {}
func (e *TypeBase) TokenLiteral() string { return e.Token.Literal }
func (e *TypeBase) Pos() Position        { return e.Token.Pos() }
func (e *TypeBase) String() string {
	if e.Mutable {
		return "mut " + e.Name.String()
	}
	return e.Name.String()
}

// ── Expressions ───────────────────────────────────────────────────────────────

// BinaryExpr is a binary operation. The operator is the token's type.
type BinaryExpr struct {
	Token Token // the operator token
	Left  Node
	Right Node
}

func (e *BinaryExpr) node()                {}
func (e *BinaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpr) Pos() Position        { return e.Left.Pos() }

// Op returns the operator's token type.
func (e *BinaryExpr) Op() TokenType { return e.Token.Type }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Token.Type, e.Right)
}

// UnaryExpr is a prefix operation: !x or -x.
type UnaryExpr struct {
	Token   Token // the operator token
	Operand Node
}

func (e *UnaryExpr) node()                {}
func (e *UnaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryExpr) Pos() Position        { return e.Token.Pos() }

// Op returns the operator's token type.
func (e *UnaryExpr) Op() TokenType { return e.Token.Type }
func (e *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", e.Token.Type, e.Operand)
}

// Call applies a named function to arguments: square(3).
type Call struct {
	Callee *Atom
	Args   []Node
}

func (e *Call) node()                {}
func (e *Call) TokenLiteral() string { return e.Callee.TokenLiteral() }
func (e *Call) Pos() Position        { return e.Callee.Pos() }
func (e *Call) String() string       { return e.Callee.String() + "(" + join(e.Args, ", ") + ")" }

// Access is a member access or method call: point.x, list.len().
type Access struct {
	Token  Token // the '.' token
	Object Node
	Member Node
}

func (e *Access) node()                {}
func (e *Access) TokenLiteral() string { return e.Token.Literal }
func (e *Access) Pos() Position        { return e.Object.Pos() }
func (e *Access) String() string       { return fmt.Sprintf("(%s.%s)", e.Object, e.Member) }

// AccessIndex is an index access: items[0].
type AccessIndex struct {
	Token  Token // the '[' token
	Object Node
	Index  Node
}

func (e *AccessIndex) node()                {}
func (e *AccessIndex) TokenLiteral() string { return e.Token.Literal }
func (e *AccessIndex) Pos() Position        { return e.Object.Pos() }
func (e *AccessIndex) String() string       { return fmt.Sprintf("%s[%s]", e.Object, e.Index) }

// Tuple is a parenthesised, comma-separated list of expressions.
type Tuple struct {
	Token Token // the '(' token
	Items []Node
}

func (e *Tuple) node()                {}
func (e *Tuple) TokenLiteral() string { return e.Token.Literal }
func (e *Tuple) Pos() Position        { return e.Token.Pos() }
func (e *Tuple) String() string {
	if len(e.Items) == 1 {
		return "(" + e.Items[0].String() + ",)"
	}
	return "(" + join(e.Items, ", ") + ")"
}

// ListLiteral is a bracketed list of expressions: [1, 2, 3].
type ListLiteral struct {
	Token Token // the '[' token
	Items []Node
}

func (e *ListLiteral) node()                {}
func (e *ListLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *ListLiteral) Pos() Position        { return e.Token.Pos() }
func (e *ListLiteral) String() string       { return "[" + join(e.Items, ", ") + "]" }

// ListSplit is a head/tail list pattern: [head | tail].
type ListSplit struct {
	Token Token // the '[' token
	Head  *Atom
	Tail  *Atom
}

func (e *ListSplit) node()                {}
func (e *ListSplit) TokenLiteral() string { return e.Token.Literal }
func (e *ListSplit) Pos() Position        { return e.Token.Pos() }
func (e *ListSplit) String() string       { return fmt.Sprintf("[%s | %s]", e.Head, e.Tail) }

// Atom wraps exactly one Integer, String, Symbol, True or False token.
type Atom struct {
	Token Token
}

func (e *Atom) node()                {}
func (e *Atom) TokenLiteral() string { return e.Token.Literal }
func (e *Atom) Pos() Position        { return e.Token.Pos() }

// Name returns the symbol name for Symbol atoms and the literal otherwise.
func (e *Atom) Name() string { return e.Token.Literal }
func (e *Atom) String() string {
	switch e.Token.Type {
	case Integer:
		return fmt.Sprint(e.Token.Int)
	case String:
		return fmt.Sprintf("%q", e.Token.Literal)
	case True, False:
		return e.Token.Type.String()
	}
	return e.Token.Literal
}
