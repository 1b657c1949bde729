package parser

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/leapstack-labs/paws/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceAdvance(t *testing.T) {
	s := NewSource("ab\nç")
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, s.Pos())

	ch, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 'a', ch)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, s.Pos(), "peek does not move")

	want := []struct {
		ch  rune
		pos token.Position
	}{
		{'a', token.Position{Line: 1, Column: 2, Offset: 1}},
		{'b', token.Position{Line: 1, Column: 3, Offset: 2}},
		{'\n', token.Position{Line: 2, Column: 1, Offset: 3}},
		{'ç', token.Position{Line: 2, Column: 2, Offset: 5}},
	}
	for _, w := range want {
		ch, ok := s.Advance()
		require.True(t, ok)
		assert.Equal(t, w.ch, ch)
		assert.Equal(t, w.pos, s.Pos())
	}

	_, ok = s.Advance()
	assert.False(t, ok)
	_, ok = s.Peek()
	assert.False(t, ok)
	assert.Equal(t, token.Position{Line: 2, Column: 2, Offset: 5}, s.Pos(), "end of input does not move")
	assert.NoError(t, s.Err())
}

func TestSourceInvalidUTF8(t *testing.T) {
	s := NewSource("a\xffb")
	s.Advance()
	ch, ok := s.Advance()
	require.True(t, ok)
	assert.Equal(t, utf8.RuneError, ch)
	assert.Equal(t, token.Position{Line: 1, Column: 3, Offset: 2}, s.Pos())
}

func TestSourceKeepsInvalidBytes(t *testing.T) {
	for name, s := range map[string]*Source{
		"string": NewSource("a\xff\xfe\uFFFDb"),
		"reader": NewReaderSource(iotest.OneByteReader(strings.NewReader("a\xff\xfe\uFFFDb"))),
	} {
		t.Run(name, func(t *testing.T) {
			var b strings.Builder
			for {
				if _, ok := s.Advance(); !ok {
					break
				}
				s.writeLast(&b)
			}
			assert.Equal(t, "a\xff\xfe\uFFFDb", b.String())
			assert.Equal(t, token.Position{Line: 1, Column: 6, Offset: 7}, s.Pos())
		})
	}
}

func TestReaderSource(t *testing.T) {
	s := NewReaderSource(iotest.HalfReader(strings.NewReader("“x”\ny")))
	var got []rune
	for {
		ch, ok := s.Advance()
		if !ok {
			break
		}
		got = append(got, ch)
	}
	assert.Equal(t, []rune("“x”\ny"), got)
	assert.Equal(t, token.Position{Line: 2, Column: 2, Offset: 9}, s.Pos())
}

func TestReaderSourceError(t *testing.T) {
	boom := errors.New("disk on fire")
	s := NewReaderSource(iotest.ErrReader(boom))
	_, ok := s.Peek()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Err(), boom)
}
