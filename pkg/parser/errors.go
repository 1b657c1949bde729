package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/paws/pkg/token"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// UnterminatedGroup means input ended before a group or quoted symbol
	// was closed.
	UnterminatedGroup ErrorKind = iota + 1
	// UnexpectedTerminator means a closing delimiter had no matching opener,
	// or did not match the innermost open group.
	UnexpectedTerminator
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case UnterminatedGroup:
		return "unterminated group"
	case UnexpectedTerminator:
		return "unexpected terminator"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Diagnostic message formats.
const (
	ErrExpectedBeforeEOF    = "expected '%c' before end-of-input"
	ErrUnexpectedTerminator = "unexpected terminator '%c'"
)

// ParseError represents a parsing error with position information.
//
// For UnterminatedGroup, Delimiter is the closer that was expected; for
// UnexpectedTerminator it is the closer that was found.
type ParseError struct {
	Source    string
	Pos       token.Position
	Kind      ErrorKind
	Delimiter rune
}

// Message returns the diagnostic text without the source location.
func (e *ParseError) Message() string {
	switch e.Kind {
	case UnterminatedGroup:
		return fmt.Sprintf(ErrExpectedBeforeEOF, e.Delimiter)
	case UnexpectedTerminator:
		return fmt.Sprintf(ErrUnexpectedTerminator, e.Delimiter)
	default:
		return e.Kind.String()
	}
}

func (e *ParseError) Error() string {
	return FormatError(e.Source, e)
}

// FormatError renders err in the canonical one-line form
//
//	<source_name>:<line>:<column>: <message>
func FormatError(sourceName string, err *ParseError) string {
	return fmt.Sprintf("%s:%d:%d: %s", sourceName, err.Pos.Line, err.Pos.Column, err.Message())
}

// DepthError is returned when a group opens deeper than Options.MaxDepth.
type DepthError struct {
	Source string
	Pos    token.Position
	Limit  int
}

// Message returns the diagnostic text without the location prefix.
func (e *DepthError) Message() string {
	return fmt.Sprintf("nesting exceeds maximum depth of %d", e.Limit)
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Pos.Line, e.Pos.Column, e.Message())
}

// withSource stamps the source name onto errors raised below the parser.
func withSource(err error, name string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Source = name
	}
	return err
}
