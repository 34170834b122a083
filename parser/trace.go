package parser

import (
	"log/slog"
	"strings"

	"github.com/metaphox/ivy-lang/ast"
)

// Tracer observes the productions a parse walks through.
//
// Enter is called with the next unconsumed token, which is the zero Token
// once the stream is exhausted. depth counts the productions currently open.
type Tracer interface {
	Enter(rule string, next ast.Token, depth int)
	Exit(rule string, depth int)
}

// SlogTracer writes one Debug record per production entered and left.
type SlogTracer struct {
	logger *slog.Logger
}

// NewSlogTracer returns a Tracer that logs to logger.
func NewSlogTracer(logger *slog.Logger) *SlogTracer {
	return &SlogTracer{logger: logger}
}

func (t *SlogTracer) Enter(rule string, next ast.Token, depth int) {
	if next.Line == 0 {
		t.logger.Debug(indent(depth)+rule, "next", "EOF")
		return
	}
	t.logger.Debug(indent(depth)+rule, "next", next.String(), "pos", next.Pos().String())
}

func (t *SlogTracer) Exit(rule string, depth int) {
	t.logger.Debug(indent(depth) + "end " + rule)
}

func indent(depth int) string { return strings.Repeat(". ", depth) }

var untraced = func() {}

// trace reports entry into rule and returns the matching exit call.
//
//	defer p.trace("let")()
func (p *Parser) trace(rule string) func() {
	if p.tracer == nil {
		return untraced
	}
	next, _ := p.peek(0)
	p.tracer.Enter(rule, next, p.open)
	p.open++
	return func() {
		p.open--
		p.tracer.Exit(rule, p.open)
	}
}
