package tokenizer

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestCursorTakeWhileFrom(t *testing.T) {
	c := newCursor([]byte("</élan> rest"), "f")

	name := c.takeWhileFrom(2, unicode.IsLetter)

	assert.Equal(t, "élan", name)
	assert.Equal(t, 6, c.index)
	assert.True(t, c.is('>'))
}

func TestCursorTakeWhileStopsAtEnd(t *testing.T) {
	c := newCursor([]byte("abc"), "f")

	assert.Equal(t, "abc", c.takeWhile(unicode.IsLetter))
	assert.True(t, c.eof())
	assert.Equal(t, "", c.takeWhile(unicode.IsLetter))

	r, eof := c.peek()
	assert.True(t, eof)
	assert.Zero(t, r)
}

func TestCursorOffsetPastEnd(t *testing.T) {
	c := newCursor([]byte("<"), "f")

	assert.Equal(t, "", c.takeWhileFrom(2, unicode.IsLetter))
	assert.True(t, c.eof())
}

func TestCursorSkipWhitespace(t *testing.T) {
	c := newCursor([]byte(" \t\n x"), "f")

	assert.True(t, c.skipWhitespace())
	assert.False(t, c.skipWhitespace())
	assert.True(t, c.is('x'))
}

func TestCursorHasPrefix(t *testing.T) {
	c := newCursor([]byte("</a>"), "f")

	assert.True(t, c.hasPrefix("</"))
	assert.True(t, c.hasPrefix("</a>"))
	assert.False(t, c.hasPrefix("</a>>"))
	assert.False(t, c.hasPrefix("<a"))

	c.advance(1)
	assert.True(t, c.hasPrefix("/"))
}

func TestCursorLocation(t *testing.T) {
	c := newCursor([]byte("ab\ncd\n\nxyz"), "doc.html")

	c.advance(4)
	assert.Equal(t, Location{File: "doc.html", Line: 1, Column: 1, Offset: 4}, c.location())

	c.advance(3)
	assert.Equal(t, Location{File: "doc.html", Line: 3, Column: 0, Offset: 7}, c.location())

	c.advance(100)
	assert.Equal(t, 3, c.line)
	assert.Equal(t, 3, c.col)
	assert.Equal(t, 0, c.remaining())
}
