// Package ast defines the abstract syntax tree produced by the cPaws parser.
//
// The tree has exactly three node kinds:
//
//	Symbol      atomic text, bare or quoted
//	Expression  ( … ) an ordered group of nodes
//	Execution   { … } an ordered group of nodes
//
// Node is a sealed interface; no other package can add a variant, so a type
// switch over *Symbol, *Expression and *Execution is exhaustive.
package ast

import "github.com/leapstack-labs/paws/pkg/token"

// Node is a cPaws AST node.
type Node interface {
	// Position returns where the node begins.
	Position() token.Position
	// Span returns the source range the node was parsed from.
	Span() token.Span

	node()
}

// Group is implemented by Expression and Execution.
type Group interface {
	Node
	// Nodes returns the group's children in source order.
	Nodes() []Node
	// Delimiters returns the opening and closing characters of the group.
	Delimiters() (open, closeRune rune)
}

// Symbol is an atomic symbol. Text is exactly the captured span; quoting
// style does not alter it.
type Symbol struct {
	Text  string
	Quote token.QuoteStyle
	Pos   token.Position
	End   token.Position
}

// Expression is a parenthesized group.
type Expression struct {
	Children []Node
	Pos      token.Position
	End      token.Position
}

// Execution is a braced group.
type Execution struct {
	Children []Node
	Pos      token.Position
	End      token.Position
}

func (*Symbol) node()     {}
func (*Expression) node() {}
func (*Execution) node()  {}

// Position implements Node.
func (s *Symbol) Position() token.Position { return s.Pos }

// Span implements Node.
func (s *Symbol) Span() token.Span { return token.Span{Start: s.Pos, End: s.End} }

// Position implements Node.
func (e *Expression) Position() token.Position { return e.Pos }

// Span implements Node.
func (e *Expression) Span() token.Span { return token.Span{Start: e.Pos, End: e.End} }

// Nodes implements Group.
func (e *Expression) Nodes() []Node { return e.Children }

// Delimiters implements Group.
func (e *Expression) Delimiters() (rune, rune) { return token.OpenParen, token.CloseParen }

// Position implements Node.
func (e *Execution) Position() token.Position { return e.Pos }

// Span implements Node.
func (e *Execution) Span() token.Span { return token.Span{Start: e.Pos, End: e.End} }

// Nodes implements Group.
func (e *Execution) Nodes() []Node { return e.Children }

// Delimiters implements Group.
func (e *Execution) Delimiters() (rune, rune) { return token.OpenBrace, token.CloseBrace }

// Program is the result of parsing one source: its top-level node sequence.
type Program struct {
	Name  string // source name used in diagnostics
	Nodes []Node
}

// NewGroup builds the group node opened by tok with the given children.
// It returns nil if tok does not open a group.
func NewGroup(open token.Token, children []Node, end token.Position) Group {
	switch open.Type {
	case token.LPAREN:
		return &Expression{Children: children, Pos: open.Pos, End: end}
	case token.LBRACE:
		return &Execution{Children: children, Pos: open.Pos, End: end}
	}
	return nil
}
