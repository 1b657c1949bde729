// Package parser turns cPaws source text into an AST.
//
// # Usage
//
//	prog, err := parser.Parse("example.paws", src)
//	if err != nil {
//	    var perr *parser.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Fprintln(os.Stderr, perr) // example.paws:3:1: expected '}' before end-of-input
//	    }
//	}
//	fmt.Println(ast.RenderProgram(prog))
//
// # Grammar Overview
//
//	program  → node* EOF
//	node     → SYMBOL
//	         | '(' node* ')'    Expression
//	         | '{' node* '}'    Execution
//
// Open groups are tracked on an explicit stack rather than the Go call
// stack, so nesting depth is limited only by memory. The first error ends
// the parse; there is no recovery and no partial tree.
package parser

import (
	"io"

	"github.com/leapstack-labs/paws/pkg/ast"
	"github.com/leapstack-labs/paws/pkg/token"
)

// Options tune a parse.
type Options struct {
	// MaxDepth bounds group nesting when greater than zero.
	MaxDepth int
}

// Parser parses cPaws tokens into an AST.
type Parser struct {
	name  string
	lexer *Lexer
	opts  Options
}

// frame is an open group and the children collected for it so far.
type frame struct {
	open     token.Token
	children []ast.Node
}

// NewParser creates a parser reading tokens from lx. name is used in
// diagnostics.
func NewParser(name string, lx *Lexer) *Parser {
	return &Parser{name: name, lexer: lx}
}

// NewParserWithOptions creates a parser with explicit options.
func NewParserWithOptions(name string, lx *Lexer, opts Options) *Parser {
	return &Parser{name: name, lexer: lx, opts: opts}
}

// Parse parses text and returns the program or the first error.
// Syntax errors are *ParseError.
func Parse(name, text string) (*ast.Program, error) {
	return NewParser(name, NewLexer(NewSource(text))).Parse()
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(name, text string, opts Options) (*ast.Program, error) {
	return NewParserWithOptions(name, NewLexer(NewSource(text)), opts).Parse()
}

// ParseReader parses everything readable from r.
func ParseReader(name string, r io.Reader) (*ast.Program, error) {
	return NewParser(name, NewLexer(NewReaderSource(r))).Parse()
}

// Parse consumes the token stream and builds the program.
func (p *Parser) Parse() (*ast.Program, error) {
	var stack []frame
	top := []ast.Node{}

	appendNode := func(n ast.Node) {
		if len(stack) > 0 {
			f := &stack[len(stack)-1]
			f.children = append(f.children, n)
			return
		}
		top = append(top, n)
	}

	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, withSource(err, p.name)
		}

		switch tok.Type {
		case token.SYMBOL:
			appendNode(&ast.Symbol{
				Text:  tok.Literal,
				Quote: tok.Quote,
				Pos:   tok.Pos,
				End:   tok.End,
			})

		case token.LPAREN, token.LBRACE:
			if p.opts.MaxDepth > 0 && len(stack) >= p.opts.MaxDepth {
				return nil, &DepthError{Source: p.name, Pos: tok.Pos, Limit: p.opts.MaxDepth}
			}
			stack = append(stack, frame{open: tok, children: []ast.Node{}})

		case token.RPAREN, token.RBRACE:
			if len(stack) == 0 || stack[len(stack)-1].open.Type.Closer() != tok.Type.Rune() {
				return nil, p.errorAt(tok.Pos, UnexpectedTerminator, tok.Type.Rune())
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			appendNode(ast.NewGroup(f.open, f.children, tok.End))

		case token.EOF:
			if len(stack) > 0 {
				return nil, p.errorAt(tok.Pos, UnterminatedGroup, stack[len(stack)-1].open.Type.Closer())
			}
			return &ast.Program{Name: p.name, Nodes: top}, nil
		}
	}
}

func (p *Parser) errorAt(pos token.Position, kind ErrorKind, delim rune) *ParseError {
	return &ParseError{
		Source:    p.name,
		Pos:       pos,
		Kind:      kind,
		Delimiter: delim,
	}
}
