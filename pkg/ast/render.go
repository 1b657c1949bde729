package ast

import (
	"strconv"
	"strings"
)

// Render returns the debug rendering of a node:
//
//	Symbol("text")
//	Expression([n1, n2, …])
//	Execution([n1, n2, …])
//
// The rendering is meant for diagnostics and tests; it is not cPaws source.
func Render(n Node) string {
	var b strings.Builder
	writeNodes(&b, []Node{n})
	return b.String()
}

// RenderNodes renders a top-level sequence as "[n1, n2, …]".
func RenderNodes(nodes []Node) string {
	var b strings.Builder
	b.WriteByte('[')
	writeNodes(&b, nodes)
	b.WriteByte(']')
	return b.String()
}

// RenderProgram renders the program's top-level sequence.
func RenderProgram(p *Program) string {
	if p == nil {
		return "[]"
	}
	return RenderNodes(p.Nodes)
}

type renderFrame struct {
	nodes []Node
	next  int
}

// writeNodes renders nodes separated by ", " without surrounding brackets.
// Nesting is tracked on an explicit stack so depth is bounded only by memory.
func writeNodes(b *strings.Builder, nodes []Node) {
	stack := []renderFrame{{nodes: nodes}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.nodes) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				b.WriteString("])")
			}
			continue
		}
		if top.next > 0 {
			b.WriteString(", ")
		}
		n := top.nodes[top.next]
		top.next++

		switch n := n.(type) {
		case *Symbol:
			b.WriteString("Symbol(")
			b.WriteString(strconv.Quote(n.Text))
			b.WriteByte(')')
		case *Expression:
			b.WriteString("Expression([")
			stack = append(stack, renderFrame{nodes: n.Children})
		case *Execution:
			b.WriteString("Execution([")
			stack = append(stack, renderFrame{nodes: n.Children})
		}
	}
}
