package ast

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/paws/pkg/token"
)

const indentSize = 2

// ErrUnquotable is returned by Format for a symbol containing both a
// straight quote and a closing curly quote. cPaws has no escapes, so no
// quoting style can represent it.
var ErrUnquotable = errors.New("symbol cannot be quoted")

// Format prints nodes as canonical cPaws source.
//
// Symbols are written bare when possible, otherwise in straight quotes, and
// otherwise in curly quotes. A group whose children are all symbols fits on
// one line; a group containing another group puts each child on its own
// line, indented. Top-level nodes are one per line.
func Format(nodes []Node) (string, error) {
	p := newPrinter()
	if err := p.printNodes(nodes); err != nil {
		return "", err
	}
	return p.String(), nil
}

// FormatProgram formats the program's top-level sequence.
func FormatProgram(prog *Program) (string, error) {
	if prog == nil {
		return "", nil
	}
	return Format(prog.Nodes)
}

// Printer accumulates formatted cPaws source.
type Printer struct {
	output      *bytes.Buffer
	depth       int
	atLineStart bool
}

func newPrinter() *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	out := strings.TrimRight(p.output.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeRune(r rune) {
	p.write(string(r))
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

type printFrame struct {
	nodes     []Node
	next      int
	multiline bool
	closer    rune // 0 for the top level
}

func (p *Printer) printNodes(nodes []Node) error {
	stack := []printFrame{{nodes: nodes, multiline: true}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next == len(top.nodes) {
			done := *top
			stack = stack[:len(stack)-1]
			if done.closer == 0 {
				continue
			}
			if done.multiline {
				if !p.atLineStart {
					p.writeln()
				}
				p.dedent()
			}
			p.writeRune(done.closer)
			continue
		}

		n := top.nodes[top.next]
		first := top.next == 0
		top.next++

		if top.multiline {
			if !p.atLineStart {
				p.writeln()
			}
		} else if !first {
			p.space()
		}

		switch n := n.(type) {
		case *Symbol:
			text, err := quoteSymbol(n.Text)
			if err != nil {
				return fmt.Errorf("%s: %w", n.Pos, err)
			}
			p.write(text)
		case Group:
			open, closer := n.Delimiters()
			multiline := hasGroupChild(n.Nodes())
			p.writeRune(open)
			if multiline {
				p.indent()
			}
			stack = append(stack, printFrame{
				nodes:     n.Nodes(),
				multiline: multiline,
				closer:    closer,
			})
		}
	}
	return nil
}

func hasGroupChild(nodes []Node) bool {
	for _, n := range nodes {
		if _, ok := n.(Group); ok {
			return true
		}
	}
	return false
}

// quoteSymbol returns the source form of a symbol's text.
func quoteSymbol(text string) (string, error) {
	if isBare(text) {
		return text, nil
	}
	if !strings.ContainsRune(text, token.StraightQuote) {
		return string(token.StraightQuote) + text + string(token.StraightQuote), nil
	}
	if !strings.ContainsRune(text, token.CurlyCloseQuote) {
		return string(token.CurlyOpenQuote) + text + string(token.CurlyCloseQuote), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnquotable, text)
}

// isBare reports whether text would lex back as a single bare symbol.
func isBare(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if unicode.IsSpace(r) || token.IsSpecial(r) {
			return false
		}
	}
	return true
}
