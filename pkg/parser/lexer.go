package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/paws/pkg/token"
)

// Lexer tokenizes cPaws input.
type Lexer struct {
	src *Source
}

// NewLexer creates a new Lexer reading from src.
func NewLexer(src *Source) *Lexer {
	return &Lexer{src: src}
}

// NextToken returns the next token. At end of input it returns an EOF token
// positioned just past the last character; calling it again keeps returning
// EOF.
//
// An unterminated quoted symbol is reported as a *ParseError of kind
// UnterminatedGroup at the opening quote, and a stray closing curly quote as
// UnexpectedTerminator at its position. Read failures of the underlying
// source are returned wrapped.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	pos := l.src.Pos()
	ch, ok := l.src.Peek()
	if !ok {
		if err := l.src.Err(); err != nil {
			return token.Token{}, fmt.Errorf("reading source: %w", err)
		}
		return token.Token{Type: token.EOF, Pos: pos, End: pos}, nil
	}

	if tt, ok := token.LookupDelimiter(ch); ok {
		l.src.Advance()
		return token.Token{Type: tt, Literal: string(ch), Pos: pos, End: l.src.Pos()}, nil
	}

	if style, closer, ok := token.QuoteFor(ch); ok {
		return l.readQuoted(pos, style, closer)
	}

	// A closing curly quote outside a quoted symbol closes nothing.
	if ch == token.CurlyCloseQuote {
		return token.Token{}, &ParseError{
			Pos:       pos,
			Kind:      UnexpectedTerminator,
			Delimiter: ch,
		}
	}

	return l.readBare(pos)
}

// skipWhitespace consumes whitespace between tokens.
func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.src.Peek()
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		l.src.Advance()
	}
}

// readBare reads a maximal run of characters that are not whitespace,
// structural delimiters or quotes.
func (l *Lexer) readBare(pos token.Position) (token.Token, error) {
	var text strings.Builder
	for {
		ch, ok := l.src.Peek()
		if !ok || unicode.IsSpace(ch) || token.IsSpecial(ch) {
			break
		}
		l.src.Advance()
		l.src.writeLast(&text)
	}
	if err := l.src.Err(); err != nil {
		return token.Token{}, fmt.Errorf("reading source: %w", err)
	}
	return token.Token{
		Type:    token.SYMBOL,
		Literal: text.String(),
		Quote:   token.QuoteNone,
		Pos:     pos,
		End:     l.src.Pos(),
	}, nil
}

// readQuoted reads a quoted symbol. Everything up to the closing quote of
// the same style is captured verbatim; there are no escape sequences.
func (l *Lexer) readQuoted(pos token.Position, style token.QuoteStyle, closer rune) (token.Token, error) {
	l.src.Advance() // skip opening quote

	var text strings.Builder
	for {
		ch, ok := l.src.Advance()
		if !ok {
			if err := l.src.Err(); err != nil {
				return token.Token{}, fmt.Errorf("reading source: %w", err)
			}
			return token.Token{}, &ParseError{
				Pos:       pos,
				Kind:      UnterminatedGroup,
				Delimiter: closer,
			}
		}
		if ch == closer {
			break
		}
		l.src.writeLast(&text)
	}

	return token.Token{
		Type:    token.SYMBOL,
		Literal: text.String(),
		Quote:   style,
		Pos:     pos,
		End:     l.src.Pos(),
	}, nil
}

// Tokenize lexes text to completion. The returned slice ends with the EOF
// token unless an error stops lexing first, in which case the tokens read so
// far are returned with the error.
func Tokenize(name, text string) ([]token.Token, error) {
	l := NewLexer(NewSource(text))
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, withSource(err, name)
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}
