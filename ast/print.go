package ast

import (
	"fmt"
	"io"
	"strings"
)

const indentUnit = "  "

// Fprint writes a labeled tree rendering of n to w: one line per node, with
// children indented one level deeper and prefixed by their role.
//
//	[root]
//	  0: [let]
//	    lhs: [Symbol 'square']
//	    rhs: [fn anon]
//	      args: [Symbol 'x']
//	      value: [*]
//	        lhs: [Symbol 'x']
//	        rhs: [Symbol 'x']
//
// The first write error stops output and is returned.
func Fprint(w io.Writer, n Node) error {
	p := &printer{w: w}
	p.node(0, "", n)
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, label, text string) {
	if p.err != nil {
		return
	}
	prefix := strings.Repeat(indentUnit, depth)
	if label != "" {
		prefix += label + ": "
	}
	_, p.err = fmt.Fprintln(p.w, prefix+text)
}

// list prints a single child inline and several as an indexed tuple.
func (p *printer) list(depth int, label string, nodes []Node) {
	switch len(nodes) {
	case 0:
		p.line(depth, label, "()")
	case 1:
		p.node(depth, label, nodes[0])
	default:
		p.line(depth, label, "[tuple]")
		p.items(depth+1, nodes)
	}
}

func (p *printer) items(depth int, nodes []Node) {
	for i, n := range nodes {
		p.node(depth, fmt.Sprint(i), n)
	}
}

func (p *printer) opt(depth int, label string, n Node) {
	if n != nil {
		p.node(depth, label, n)
	}
}

func nodesOf[T Node](xs []T) []Node {
	out := make([]Node, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func (p *printer) node(depth int, label string, n Node) {
	d := depth + 1
	switch n := n.(type) {
	case *Root:
		p.line(depth, label, "[root]")
		p.items(d, n.Children)
	case *LetExpr:
		if n.Mutable {
			p.line(depth, label, "[let mut]")
		} else {
			p.line(depth, label, "[let]")
		}
		p.list(d, "lhs", nodesOf(n.Symbols))
		p.opt(d, "type", n.Type)
		p.node(d, "rhs", n.Value)
	case *MutExpr:
		p.line(depth, label, "[mut]")
		p.node(d, "lhs", n.Target)
		p.node(d, "rhs", n.Value)
	case *FnAnon:
		p.line(depth, label, "[fn anon]")
		p.list(d, "args", n.Args)
		p.opt(d, "rtype", n.ReturnType)
		p.node(d, "value", n.Body)
	case *FnSignature:
		p.line(depth, label, "[fn signature]")
		p.node(d, "name", n.Name)
		p.node(d, "type", n.Type)
	case *FnDeclaration:
		p.line(depth, label, "[fn declaration]")
		p.node(d, "name", n.Name)
		p.list(d, "args", n.Args)
		p.opt(d, "rtype", n.ReturnType)
		p.node(d, "value", n.Body)
	case *FnArg:
		if n.Type == nil {
			p.node(depth, label, n.Name)
			return
		}
		p.line(depth, label, "[fn argument]")
		p.node(d, "symbol", n.Name)
		p.node(d, "type", n.Type)
	case *IfExpr:
		p.line(depth, label, "[if]")
		p.node(d, "cond", n.Cond)
		p.node(d, "true branch", n.Then)
		p.opt(d, "false branch", n.Else)
	case *MatchExpr:
		p.line(depth, label, "[match]")
		p.node(d, "lhs", n.Subject)
		p.line(d, "branches", "[tuple]")
		p.items(d+1, nodesOf(n.Branches))
	case *MatchBranch:
		p.line(depth, label, "[match branch]")
		p.node(d, "lhs", n.Pattern)
		p.node(d, "rhs", n.Value)
	case *WhileExpr:
		p.line(depth, label, "[while]")
		p.node(d, "condition", n.Cond)
		p.line(d, "stmts", "[block]")
		p.items(d+1, n.Body)
	case *DoExpr:
		p.line(depth, label, "[do]")
		p.line(d, "stmts", "[block]")
		p.items(d+1, n.Body)
	case *ReturnExpr:
		p.line(depth, label, "[return]")
		p.node(d, "value", n.Value)
	case *PubExpr:
		p.line(depth, label, "[pub]")
		p.node(d, "rhs", n.Value)
	case *DataDeclaration:
		p.line(depth, label, "[data declaration]")
		p.node(d, "name", n.Name)
		if len(n.Generics) > 0 {
			p.list(d, "generics", nodesOf(n.Generics))
		}
		p.line(d, "variants", "[tuple]")
		p.items(d+1, nodesOf(n.Variants))
	case *DataItem:
		if n.Type == nil {
			p.node(depth, label, n.Name)
			return
		}
		p.line(depth, label, "[data item]")
		p.node(d, "name", n.Name)
		p.node(d, "type", n.Type)
	case *StructAnon:
		p.line(depth, label, "[struct anon]")
		p.line(d, "fields", "[tuple]")
		p.items(d+1, nodesOf(n.Fields))
	case *StructDeclaration:
		p.line(depth, label, "[struct declaration]")
		p.node(d, "name", n.Name)
		p.line(d, "fields", "[tuple]")
		p.items(d+1, nodesOf(n.Fields))
	case *StructField:
		p.line(depth, label, "[struct field]")
		p.node(d, "name", n.Name)
		p.node(d, "type", n.Type)
	case *PackageDecl:
		p.line(depth, label, "[package]")
		p.node(d, "name", n.Name)
	case *ImportDecl:
		p.line(depth, label, "[import]")
		p.list(d, "name", nodesOf(n.Paths))
	case *TypeFn:
		p.line(depth, label, "[->]")
		p.node(d, "lhs", n.Param)
		p.node(d, "rhs", n.Result)
	case *TypeList:
		p.line(depth, label, "[list type]")
		p.node(d, "type", n.Elem)
	case *TypeTuple:
		p.line(depth, label, "[tuple type]")
		p.items(d, n.Elems)
	case *TypeComposite:
		p.line(depth, label, "[composite type]")
		p.node(d, "name", n.Name)
		p.list(d, "items", n.Params)
	case *TypeBase:
		if n.Mutable {
			p.line(depth, label, fmt.Sprintf("[type mut '%s']", n.Name.Name()))
		} else {
			p.line(depth, label, fmt.Sprintf("[type '%s']", n.Name.Name()))
		}
	case *BinaryExpr:
		p.line(depth, label, "["+n.Token.Type.String()+"]")
		p.node(d, "lhs", n.Left)
		p.node(d, "rhs", n.Right)
	case *UnaryExpr:
		p.line(depth, label, "["+n.Token.Type.String()+"]")
		p.node(d, "rhs", n.Operand)
	case *Call:
		p.line(depth, label, "[call]")
		p.node(d, "lhs", n.Callee)
		if len(n.Args) > 0 {
			p.list(d, "args", n.Args)
		}
	case *Access:
		p.line(depth, label, "[access]")
		p.node(d, "lhs", n.Object)
		p.node(d, "rhs", n.Member)
	case *AccessIndex:
		p.line(depth, label, "[index]")
		p.node(d, "lhs", n.Object)
		p.node(d, "rhs", n.Index)
	case *Tuple:
		p.line(depth, label, "[tuple]")
		p.items(d, n.Items)
	case *ListLiteral:
		p.line(depth, label, "[list literal]")
		p.items(d, n.Items)
	case *ListSplit:
		p.line(depth, label, "[list split]")
		p.node(d, "head", n.Head)
		p.node(d, "tail", n.Tail)
	case *Atom:
		p.line(depth, label, atomHeader(n.Token))
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
}

func atomHeader(t Token) string {
	switch t.Type {
	case Symbol:
		return fmt.Sprintf("[Symbol '%s']", t.Literal)
	case Integer:
		return fmt.Sprintf("[Int '%d']", t.Int)
	case String:
		return fmt.Sprintf("[String %q]", t.Literal)
	case True, False:
		return fmt.Sprintf("[Bool '%s']", t.Type)
	}
	return "[" + t.Type.String() + "]"
}
