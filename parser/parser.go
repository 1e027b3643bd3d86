// Package parser implements a recursive-descent parser with
// operator-precedence climbing over a token-stream view, producing a tree
// of AST nodes alongside a diagnostic bag.
package parser

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/report"
	"github.com/theQuarky/tsppc/token"
	"github.com/theQuarky/tsppc/tokstream"
)

// Parser walks a token view, producing AST nodes and reporting diagnostics.
// It declares no symbols and performs no type-level work; that is the type
// checker's job.
type Parser struct {
	view *tokstream.View
	file string
	bag  *report.Bag
}

// New creates a parser over the given token view.
func New(file string, toks []token.Token) *Parser {
	return &Parser{
		view: tokstream.New(toks),
		file: file,
		bag:  report.NewBag(report.PhaseSyntax),
	}
}

// Parse consumes the entire token stream, returning the top-level node
// sequence. Diagnostics accumulated during parsing are available via
// Diagnostics(); a non-empty error list does not stop parsing — recovery
// keeps the walk going at statement/declaration boundaries.
func (p *Parser) Parse() *ast.File {
	var nodes []ast.Node
	for !p.view.IsAtEnd() {
		n := p.parseTopLevel()
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return &ast.File{Name: p.file, Nodes: nodes}
}

// Diagnostics returns every diagnostic recorded while parsing.
func (p *Parser) Diagnostics() []report.Diagnostic {
	return p.bag.Diagnostics()
}

// Success reports whether the parser completed without reporting any error.
func (p *Parser) Success() bool {
	return !p.bag.HasErrors()
}

// -----------------------------------------------------------------------------
// cursor helpers

func (p *Parser) peek() token.Token       { return p.view.Peek() }
func (p *Parser) peekAt(n int) token.Token { return p.view.PeekAt(n) }
func (p *Parser) check(k token.Kind) bool { return p.view.Check(k) }

func (p *Parser) advance() token.Token { return p.view.Advance() }

func (p *Parser) match(kinds ...token.Kind) (token.Token, bool) {
	return p.view.Match(kinds...)
}

// consume requires the current token to have kind k, reporting a syntax
// diagnostic (category 1xxx) if it does not.
func (p *Parser) consume(k token.Kind, context string) (token.Token, bool) {
	if tok, ok := p.view.Consume(k); ok {
		return tok, true
	}
	p.errorf(p.peek().Position, "expected %s %s, got %s", k, context, p.peek().Kind)
	return p.peek(), false
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.bag.Errorf(pos, report.General, 1, format, args...)
}

// save/restore expose the underlying view's O(1) position bookmark, used by
// the generic-call-vs-comparison disambiguation.
func (p *Parser) save() tokstream.Position    { return p.view.Save() }
func (p *Parser) restore(m tokstream.Position) { p.view.Restore(m) }

// synchronize advances past the offending token until it reaches a token
// after a `;` or a declaration-starting keyword, per the fixed
// synchronization anchor set.
func (p *Parser) synchronize() {
	for !p.view.IsAtEnd() {
		if tok, ok := p.match(token.SEMICOLON); ok {
			_ = tok
			return
		}
		if token.IsSyncPoint(p.peek().Kind) {
			return
		}
		p.advance()
	}
}

func (p *Parser) here() token.Position { return p.peek().Position }

func (p *Parser) spanFrom(start token.Position) ast.Span {
	return ast.Span{Start: start, End: p.view.Previous().Position}
}
