package ast

// Walk visits nodes in pre-order. If fn returns false the children of the
// visited node are skipped. The traversal uses an explicit stack.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	type item struct {
		node  Node
		depth int
	}

	stack := make([]item, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, item{node: nodes[i]})
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(it.node, it.depth) {
			continue
		}
		g, ok := it.node.(Group)
		if !ok {
			continue
		}
		children := g.Nodes()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: children[i], depth: it.depth + 1})
		}
	}
}

// Count returns the number of symbols and groups in the tree.
func Count(nodes []Node) (symbols, groups int) {
	Walk(nodes, func(n Node, _ int) bool {
		if _, ok := n.(*Symbol); ok {
			symbols++
		} else {
			groups++
		}
		return true
	})
	return symbols, groups
}

// Depth returns the deepest group nesting in the tree. A sequence of bare
// symbols has depth 0.
func Depth(nodes []Node) int {
	deepest := 0
	Walk(nodes, func(n Node, depth int) bool {
		if _, ok := n.(Group); ok && depth+1 > deepest {
			deepest = depth + 1
		}
		return true
	})
	return deepest
}

// NodeAt returns the innermost node whose span contains the byte offset,
// or nil if none does.
func NodeAt(nodes []Node, offset int) Node {
	var found Node
	Walk(nodes, func(n Node, _ int) bool {
		if !n.Span().Contains(offset) {
			return false
		}
		found = n
		return true
	})
	return found
}

// Equal reports whether two sequences have the same structure and symbol
// text. Positions and quoting style are ignored.
func Equal(a, b []Node) bool {
	type pair struct{ a, b []Node }

	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(p.a) != len(p.b) {
			return false
		}
		for i := range p.a {
			switch x := p.a[i].(type) {
			case *Symbol:
				y, ok := p.b[i].(*Symbol)
				if !ok || x.Text != y.Text {
					return false
				}
			case *Expression:
				y, ok := p.b[i].(*Expression)
				if !ok {
					return false
				}
				stack = append(stack, pair{x.Children, y.Children})
			case *Execution:
				y, ok := p.b[i].(*Execution)
				if !ok {
					return false
				}
				stack = append(stack, pair{x.Children, y.Children})
			}
		}
	}
	return true
}
