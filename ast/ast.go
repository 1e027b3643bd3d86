// Package ast defines the closed set of AST node variants produced by the
// parser: declarations, statements, expressions, and types.
package ast

import "github.com/theQuarky/tsppc/token"

// Node is the interface implemented by every AST node.
type Node interface {
	Span() Span
}

// Span is the source range a node occupies, delimited by its first and last
// token positions.
type Span struct {
	Start token.Position
	End   token.Position
}

func (s Span) String() string { return s.Start.String() }

// Base is embedded by every concrete node to satisfy Node.
type Base struct {
	span Span
}

// NewBase creates a Base spanning a single position (start == end).
func NewBase(pos token.Position) Base {
	return Base{span: Span{Start: pos, End: pos}}
}

// NewBaseOver creates a Base spanning from start to end.
func NewBaseOver(start, end token.Position) Base {
	return Base{span: Span{Start: start, End: end}}
}

func (b Base) Span() Span { return b.span }

// Decl is implemented by every declaration-family node.
type Decl interface {
	Node
	declNode()
}

// Stmt is implemented by every statement-family node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression-family node.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is implemented by every type-family node (a parsed, unresolved
// type annotation, as distinct from a checker-produced resolved type).
type TypeExpr interface {
	Node
	typeNode()
}

// File is the root of a parsed source file: an ordered sequence of
// top-level declarations and statements (top-level statements are legal;
// they are gathered into a synthetic main by the lowerer when no explicit
// main function is declared).
type File struct {
	Name  string
	Nodes []Node
}
