package parser

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/paws/pkg/token"
)

// Source is a character cursor over cPaws text that tracks the current
// position. Characters are pulled lazily, so a Source can wrap a stream.
//
// A newline moves to column 1 of the next line; any other character moves
// one column right. Offsets count bytes. Invalid UTF-8 is read one byte at a
// time as utf8.RuneError; the original byte is kept for symbol text.
type Source struct {
	r   runeByteScanner
	pos token.Position

	ch     rune // lookahead character, valid when peeked
	size   int  // byte width of ch
	bad    bool // ch stands for the invalid byte raw
	raw    byte
	peeked bool
	eof    bool
	err    error // first read error other than io.EOF

	last    rune // most recently advanced character
	lastBad bool
	lastRaw byte
}

type runeByteScanner interface {
	io.RuneScanner
	io.ByteReader
}

// NewSource creates a Source over an in-memory string.
func NewSource(text string) *Source {
	return newSource(strings.NewReader(text))
}

// NewReaderSource creates a Source that reads from r on demand.
func NewReaderSource(r io.Reader) *Source {
	rr, ok := r.(runeByteScanner)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return newSource(rr)
}

func newSource(r runeByteScanner) *Source {
	return &Source{
		r:   r,
		pos: token.Position{Line: 1, Column: 1, Offset: 0},
	}
}

// fill loads the lookahead character if there is one.
func (s *Source) fill() {
	if s.peeked || s.eof {
		return
	}
	ch, size, err := s.r.ReadRune()
	if err != nil {
		s.eof = true
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return
	}
	s.ch, s.size, s.peeked = ch, size, true
	s.bad = false
	if ch == utf8.RuneError && size == 1 {
		// Re-read the byte the decoder rejected.
		if err := s.r.UnreadRune(); err == nil {
			if b, err := s.r.ReadByte(); err == nil {
				s.bad, s.raw = true, b
			}
		}
	}
}

// Peek returns the next character without consuming it.
// ok is false at end of input.
func (s *Source) Peek() (ch rune, ok bool) {
	s.fill()
	if !s.peeked {
		return 0, false
	}
	return s.ch, true
}

// Advance consumes and returns the next character.
// ok is false at end of input, and the position does not move.
func (s *Source) Advance() (ch rune, ok bool) {
	s.fill()
	if !s.peeked {
		return 0, false
	}
	s.peeked = false
	s.last, s.lastBad, s.lastRaw = s.ch, s.bad, s.raw

	s.pos.Offset += s.size
	if s.ch == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}
	return s.ch, true
}

// writeLast appends the source bytes of the character most recently
// returned by Advance to b.
func (s *Source) writeLast(b *strings.Builder) {
	if s.lastBad {
		b.WriteByte(s.lastRaw)
		return
	}
	b.WriteRune(s.last)
}

// Pos returns the position of the next unconsumed character, which at end
// of input is the position just past the last character.
func (s *Source) Pos() token.Position {
	return s.pos
}

// Err returns the first read error encountered, excluding io.EOF.
func (s *Source) Err() error {
	return s.err
}
