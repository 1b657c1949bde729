// Package token defines the lexical tokens of cPaws source text.
//
// cPaws has a deliberately tiny token set: symbols (bare or quoted) and the
// four structural delimiters. Everything else, including meaning, belongs to
// the runtime.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter, token.TokenType reads clearly at call sites
type TokenType int

const (
	EOF    TokenType = iota // end of input
	SYMBOL                  // bare or quoted symbol text
	LPAREN                  // (
	RPAREN                  // )
	LBRACE                  // {
	RBRACE                  // }
)

var tokenNames = map[TokenType]string{
	EOF:    "EOF",
	SYMBOL: "SYMBOL",
	LPAREN: "LPAREN",
	RPAREN: "RPAREN",
	LBRACE: "LBRACE",
	RBRACE: "RBRACE",
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

// IsOpener returns true for the group-opening delimiters.
func (t TokenType) IsOpener() bool {
	return t == LPAREN || t == LBRACE
}

// IsCloser returns true for the group-closing delimiters.
func (t TokenType) IsCloser() bool {
	return t == RPAREN || t == RBRACE
}

// Delimiter characters recognized by the lexer.
const (
	OpenParen       = '('
	CloseParen      = ')'
	OpenBrace       = '{'
	CloseBrace      = '}'
	StraightQuote   = '"'
	CurlyOpenQuote  = '“'
	CurlyCloseQuote = '”'
)

// Closer returns the delimiter that closes a group opened by t.
// It returns 0 for token types that do not open a group.
func (t TokenType) Closer() rune {
	switch t {
	case LPAREN:
		return CloseParen
	case LBRACE:
		return CloseBrace
	}
	return 0
}

// Rune returns the delimiter character of a structural token, or 0.
func (t TokenType) Rune() rune {
	switch t {
	case LPAREN:
		return OpenParen
	case RPAREN:
		return CloseParen
	case LBRACE:
		return OpenBrace
	case RBRACE:
		return CloseBrace
	}
	return 0
}

// LookupDelimiter returns the structural token type for r.
func LookupDelimiter(r rune) (TokenType, bool) {
	switch r {
	case OpenParen:
		return LPAREN, true
	case CloseParen:
		return RPAREN, true
	case OpenBrace:
		return LBRACE, true
	case CloseBrace:
		return RBRACE, true
	}
	return EOF, false
}

// IsSpecial reports whether r ends a bare symbol: a structural delimiter or
// a quote character.
func IsSpecial(r rune) bool {
	switch r {
	case OpenParen, CloseParen, OpenBrace, CloseBrace, StraightQuote, CurlyOpenQuote, CurlyCloseQuote:
		return true
	}
	return false
}

// QuoteStyle records how a symbol was written in the source.
type QuoteStyle int

// Quote styles.
const (
	QuoteNone     QuoteStyle = iota // bare symbol
	QuoteStraight                   // "text"
	QuoteCurly                      // “text”
)

// String returns the style name.
func (q QuoteStyle) String() string {
	switch q {
	case QuoteStraight:
		return "straight"
	case QuoteCurly:
		return "curly"
	default:
		return "bare"
	}
}

// QuoteFor returns the quote style opened by r and its closing character.
// Quotes only close with the same style that opened them.
func QuoteFor(r rune) (QuoteStyle, rune, bool) {
	switch r {
	case StraightQuote:
		return QuoteStraight, StraightQuote, true
	case CurlyOpenQuote:
		return QuoteCurly, CurlyCloseQuote, true
	}
	return QuoteNone, 0, false
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Quote   QuoteStyle // only meaningful for SYMBOL
	Pos     Position   // where the token starts
	End     Position   // just past the token's last character
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}
