// Package ast defines the syntax tree for the supported Python subset.
//
// Nodes form a closed set of variants split into expressions and statements.
// The tree is immutable after parsing: consumers (rules, formatters) borrow
// identifier text and spans from nodes and never mutate them.
package ast

import (
	"pyfix/internal/source"
)

// Node is the interface implemented by every syntax tree node.
type Node interface {
	// Span returns the source byte range the node covers.
	Span() source.Span
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Module is the root node for one parsed file.
type Module struct {
	Body []Stmt
	Loc  source.Span
}

func (m *Module) Span() source.Span { return m.Loc }
