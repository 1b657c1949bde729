package lsp

import (
	"testing"

	"github.com/leapstack-labs/paws/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore(parser.Options{})

	uri := "file:///test/happy.paws"
	doc := store.Open(uri, "{happy (x)}", 1)
	require.NotNil(t, doc)
	require.NoError(t, doc.Err)
	require.NotNil(t, doc.Program)
	assert.Equal(t, "/test/happy.paws", doc.Program.Name)

	got := store.Get(uri)
	require.NotNil(t, got)
	assert.Equal(t, uri, got.URI)
	assert.Equal(t, 1, got.Version)

	store.Close(uri)
	assert.Nil(t, store.Get(uri))
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore(parser.Options{})

	uri := "file:///test/a.paws"
	store.Open(uri, "(a)", 1)

	doc := store.Update(uri, "(a", 2)
	require.NotNil(t, doc)
	assert.Equal(t, "(a", doc.Content)
	assert.Equal(t, 2, doc.Version)
	assert.Nil(t, doc.Program)
	require.Error(t, doc.Err)

	assert.Nil(t, store.Update("file:///not/open.paws", "x", 1))
}

func TestDocumentStore_MaxDepth(t *testing.T) {
	store := NewDocumentStore(parser.Options{MaxDepth: 1})
	doc := store.Open("file:///d.paws", "((x))", 1)
	var derr *parser.DepthError
	assert.ErrorAs(t, doc.Err, &derr)
}

func TestDocumentPositions(t *testing.T) {
	// 'é' is two bytes and one UTF-16 unit; '😀' is four bytes and two units.
	doc := NewDocumentStore(parser.Options{}).Open("file:///p.paws", "aé😀b\n(x)", 1)

	tests := []struct {
		offset int
		pos    Position
	}{
		{0, Position{Line: 0, Character: 0}},
		{1, Position{Line: 0, Character: 1}},
		{3, Position{Line: 0, Character: 2}},
		{7, Position{Line: 0, Character: 4}},
		{8, Position{Line: 0, Character: 5}},
		{9, Position{Line: 1, Character: 0}},
		{12, Position{Line: 1, Character: 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset), "offset %d", tt.offset)
		assert.Equal(t, tt.offset, doc.PositionToOffset(tt.pos), "position %+v", tt.pos)
	}

	assert.Equal(t, 8, doc.PositionToOffset(Position{Line: 0, Character: 99}), "clamps to line end")
	assert.Equal(t, 12, doc.PositionToOffset(Position{Line: 7}), "clamps to content end")
	assert.Equal(t, Position{Line: 1, Character: 3}, doc.EndPosition())
	assert.Equal(t, "aé😀b", doc.GetLine(0))
	assert.Equal(t, "(x)", doc.GetLine(1))
	assert.Equal(t, "", doc.GetLine(2))
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/tmp/my file.paws", URIToPath("file:///tmp/my%20file.paws"))
	assert.Equal(t, "untitled:1", URIToPath("untitled:1"))
	assert.Equal(t, "file:///tmp/my%20file.paws", PathToURI("/tmp/my file.paws"))
	assert.Equal(t, "file:///x", PathToURI("file:///x"))
}

func TestDiagnosticsFor(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    parser.Options
		want    []Diagnostic
	}{
		{
			name:    "clean",
			content: "{happy}",
			want:    []Diagnostic{},
		},
		{
			name:    "unexpected terminator",
			content: "a\n  }",
			want: []Diagnostic{{
				Range:    Range{Start: Position{Line: 1, Character: 2}, End: Position{Line: 1, Character: 3}},
				Severity: DiagnosticSeverityError,
				Code:     CodeUnexpectedTerminator,
				Source:   "paws",
				Message:  "unexpected terminator '}'",
			}},
		},
		{
			name:    "unterminated group at end of input",
			content: "(a\n",
			want: []Diagnostic{{
				Range:    Range{Start: Position{Line: 1}, End: Position{Line: 1}},
				Severity: DiagnosticSeverityError,
				Code:     CodeUnterminatedGroup,
				Source:   "paws",
				Message:  "expected ')' before end-of-input",
			}},
		},
		{
			name:    "unterminated curly quote points at opener",
			content: "x “abc",
			want: []Diagnostic{{
				Range:    Range{Start: Position{Character: 2}, End: Position{Character: 3}},
				Severity: DiagnosticSeverityError,
				Code:     CodeUnterminatedGroup,
				Source:   "paws",
				Message:  "expected '”' before end-of-input",
			}},
		},
		{
			name:    "depth",
			content: "((x))",
			opts:    parser.Options{MaxDepth: 1},
			want: []Diagnostic{{
				Range:    Range{Start: Position{Character: 1}, End: Position{Character: 2}},
				Severity: DiagnosticSeverityError,
				Code:     CodeMaxDepth,
				Source:   "paws",
				Message:  "nesting exceeds maximum depth of 1",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocumentStore(tt.opts).Open("file:///t.paws", tt.content, 1)
			assert.Equal(t, tt.want, diagnosticsFor(doc))
		})
	}
}
