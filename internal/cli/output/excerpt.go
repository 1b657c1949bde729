package output

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/paws/pkg/token"
	"golang.org/x/text/width"
)

// Excerpt returns the source line holding pos followed by a caret line
// pointing at pos.Column:
//
//	3 | going to be an error{
//	  |                      ^
//
// Wide characters take two cells and tabs are copied into the padding so
// the caret stays aligned on a terminal.
func Excerpt(text string, pos token.Position) string {
	if !pos.IsValid() {
		return ""
	}

	line := sourceLine(text, pos.Line)
	gutter := strconv.Itoa(pos.Line)
	blank := strings.Repeat(" ", len(gutter))

	var b strings.Builder
	b.WriteString(" " + gutter + " | " + line + "\n")
	b.WriteString(" " + blank + " | " + caretPadding(line, pos.Column) + "^\n")
	return b.String()
}

// sourceLine returns the 1-based line n of text without its terminator.
func sourceLine(text string, n int) string {
	for i := 1; i < n; i++ {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			return ""
		}
		text = text[idx+1:]
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSuffix(text, "\r")
}

// caretPadding returns the cells preceding column col of line.
func caretPadding(line string, col int) string {
	var b strings.Builder
	n := 1
	for _, r := range line {
		if n >= col {
			break
		}
		switch {
		case r == '\t':
			b.WriteByte('\t')
		case isWide(r):
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
		n++
	}
	// Columns past the end of the line (end of input) pad with spaces.
	for ; n < col; n++ {
		b.WriteByte(' ')
	}
	return b.String()
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
