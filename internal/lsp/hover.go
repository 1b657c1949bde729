package lsp

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/paws/pkg/ast"
	"github.com/leapstack-labs/paws/pkg/token"
)

// getHover describes the innermost node under the cursor. It returns nil
// when the document is unknown, does not parse, or the cursor is between
// nodes.
func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil || doc.Program == nil {
		return nil
	}

	offset := doc.PositionToOffset(params.Position)
	n := ast.NodeAt(doc.Program.Nodes, offset)
	if n == nil {
		return nil
	}

	r := doc.nodeRange(n)
	return &Hover{
		Contents: MarkupContent{Kind: MarkupKindMarkdown, Value: describeNode(n)},
		Range:    &r,
	}
}

func describeNode(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Symbol:
		desc := "**Symbol** `" + strconv.Quote(n.Text) + "`"
		if n.Quote != token.QuoteNone {
			desc += " (" + n.Quote.String() + " quotes)"
		}
		return desc
	case *ast.Expression:
		return "**Expression** " + childCount(len(n.Children))
	case *ast.Execution:
		return "**Execution** " + childCount(len(n.Children))
	}
	return ""
}

func childCount(n int) string {
	if n == 1 {
		return "(1 child)"
	}
	return fmt.Sprintf("(%d children)", n)
}
