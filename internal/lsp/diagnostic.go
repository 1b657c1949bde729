package lsp

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/leapstack-labs/paws/pkg/ast"
	"github.com/leapstack-labs/paws/pkg/parser"
)

// Diagnostic codes.
const (
	CodeUnterminatedGroup    = "unterminated-group"
	CodeUnexpectedTerminator = "unexpected-terminator"
	CodeMaxDepth             = "max-depth"
)

const diagnosticSource = "paws"

// publishDiagnostics publishes the document's parse diagnostics, clearing
// earlier ones when it parses.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: diagnosticsFor(doc),
	})
}

// diagnosticsFor converts the document's parse error, if any, to at most
// one diagnostic.
func diagnosticsFor(doc *Document) []Diagnostic {
	diagnostics := []Diagnostic{}
	if doc.Err == nil {
		return diagnostics
	}

	var perr *parser.ParseError
	var derr *parser.DepthError
	switch {
	case errors.As(doc.Err, &perr):
		code := CodeUnexpectedTerminator
		if perr.Kind == parser.UnterminatedGroup {
			code = CodeUnterminatedGroup
		}
		diagnostics = append(diagnostics, Diagnostic{
			Range:    doc.charRange(perr.Pos.Offset),
			Severity: DiagnosticSeverityError,
			Code:     code,
			Source:   diagnosticSource,
			Message:  perr.Message(),
		})
	case errors.As(doc.Err, &derr):
		diagnostics = append(diagnostics, Diagnostic{
			Range:    doc.charRange(derr.Pos.Offset),
			Severity: DiagnosticSeverityError,
			Code:     CodeMaxDepth,
			Source:   diagnosticSource,
			Message:  fmt.Sprintf("nesting exceeds maximum depth of %d", derr.Limit),
		})
	default:
		diagnostics = append(diagnostics, Diagnostic{
			Range:    Range{Start: doc.EndPosition(), End: doc.EndPosition()},
			Severity: DiagnosticSeverityError,
			Source:   diagnosticSource,
			Message:  doc.Err.Error(),
		})
	}
	return diagnostics
}

// charRange returns the range of the character at offset, or an empty
// range at end of input.
func (d *Document) charRange(offset int) Range {
	start := d.OffsetToPosition(offset)
	if offset >= len(d.Content) {
		return Range{Start: start, End: start}
	}
	_, size := utf8.DecodeRuneInString(d.Content[offset:])
	return Range{Start: start, End: d.OffsetToPosition(offset + size)}
}

// nodeRange returns the LSP range covering n.
func (d *Document) nodeRange(n ast.Node) Range {
	span := n.Span()
	return Range{
		Start: d.OffsetToPosition(span.Start.Offset),
		End:   d.OffsetToPosition(span.End.Offset),
	}
}
