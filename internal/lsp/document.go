package lsp

import (
	"net/url"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/leapstack-labs/paws/pkg/ast"
	"github.com/leapstack-labs/paws/pkg/parser"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/file.paws)
	Content string // Full document content
	Version int    // Version number, incremented on each change
	Lines   []int  // Byte offsets of line starts for fast position lookups

	// Program is the parse result, nil when Err is set.
	Program *ast.Program
	Err     error
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
	opts      parser.Options
}

// NewDocumentStore creates a new document store. Documents are parsed with
// opts whenever their content changes.
func NewDocumentStore(opts parser.Options) *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
		opts:      opts,
	}
}

func (s *DocumentStore) newDocument(uri, content string, version int) *Document {
	doc := &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}
	doc.Program, doc.Err = parser.ParseWithOptions(URIToPath(uri), content, s.opts)
	return doc
}

// Open adds or replaces a document in the store and returns it.
func (s *DocumentStore) Open(uri string, content string, version int) *Document {
	doc := s.newDocument(uri, content, version)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[uri] = doc
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update replaces an open document's content. It returns nil if the
// document is not open.
func (s *DocumentStore) Update(uri string, content string, version int) *Document {
	if s.Get(uri) == nil {
		return nil
	}
	doc := s.newDocument(uri, content, version)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[uri]; !ok {
		return nil
	}
	s.documents[uri] = doc
	return doc
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0}

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// lineEnd returns the byte offset where line ends, excluding its newline.
func (d *Document) lineEnd(line int) int {
	if line+1 < len(d.Lines) {
		return d.Lines[line+1] - 1
	}
	return len(d.Content)
}

// PositionToOffset converts an LSP position to a byte offset. Characters
// past the end of the line clamp to the line end.
func (d *Document) PositionToOffset(pos Position) int {
	if d == nil || len(d.Lines) == 0 {
		return 0
	}

	line := int(pos.Line)
	if line >= len(d.Lines) {
		return len(d.Content)
	}

	offset := d.Lines[line]
	end := d.lineEnd(line)
	units := int(pos.Character)
	for offset < end && units > 0 {
		r, size := utf8.DecodeRuneInString(d.Content[offset:])
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if n > units {
			break
		}
		units -= n
		offset += size
	}
	return offset
}

// OffsetToPosition converts a byte offset to an LSP position.
func (d *Document) OffsetToPosition(offset int) Position {
	if d == nil || len(d.Lines) == 0 {
		return Position{}
	}

	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Content) {
		offset = len(d.Content)
	}

	line := 0
	for i, lineOffset := range d.Lines {
		if lineOffset > offset {
			break
		}
		line = i
	}

	character := 0
	for _, r := range d.Content[d.Lines[line]:offset] {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		character += n
	}
	return Position{
		Line:      uint32(line),
		Character: uint32(character),
	}
}

// EndPosition returns the position just past the last character.
func (d *Document) EndPosition() Position {
	return d.OffsetToPosition(len(d.Content))
}

// GetLine returns the content of a specific line.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}
	return d.Content[d.Lines[line]:d.lineEnd(line)]
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	const prefix = "file://"
	if !strings.HasPrefix(uri, prefix) {
		return uri
	}
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		return u.Path
	}
	return uri[len(prefix):]
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return (&url.URL{Scheme: "file", Path: path}).String()
}
