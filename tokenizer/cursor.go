package tokenizer

import "unicode"

// cursor walks an immutable rune buffer. Consumed runes are never revisited.
type cursor struct {
	file  string
	runes []rune

	index     int
	line, col int
}

func newCursor(file []byte, fileName string) cursor {
	return cursor{
		file:  fileName,
		runes: []rune(string(file)),
	}
}

func (c *cursor) eof() bool {
	return c.index >= len(c.runes)
}

func (c *cursor) remaining() int {
	return len(c.runes) - c.index
}

func (c *cursor) peek() (r rune, eof bool) {
	return c.peekAt(0)
}

func (c *cursor) peekAt(n int) (r rune, eof bool) {
	if c.index+n >= len(c.runes) {
		return 0, true
	}

	return c.runes[c.index+n], false
}

func (c *cursor) is(r rune) bool {
	got, eof := c.peek()
	return !eof && got == r
}

func (c *cursor) hasPrefix(s string) bool {
	i := c.index
	for _, r := range s {
		if i >= len(c.runes) || c.runes[i] != r {
			return false
		}
		i++
	}

	return true
}

// advance moves the cursor n runes forward, or up to the end of the input.
func (c *cursor) advance(n int) {
	for ; n > 0 && c.index < len(c.runes); n-- {
		if c.runes[c.index] == '\n' {
			c.line++
			c.col = 0
		} else {
			c.col++
		}

		c.index++
	}
}

// takeWhileFrom skips offset runes and then consumes the longest run of runes
// matching pred. The skipped runes are not part of the returned string.
func (c *cursor) takeWhileFrom(offset int, pred func(rune) bool) string {
	c.advance(offset)

	start := c.index
	end := start
	for end < len(c.runes) && pred(c.runes[end]) {
		end++
	}

	c.advance(end - start)

	return string(c.runes[start:end])
}

func (c *cursor) takeWhile(pred func(rune) bool) string {
	return c.takeWhileFrom(0, pred)
}

func (c *cursor) skipWhitespace() (took bool) {
	return c.takeWhile(unicode.IsSpace) != ""
}

func (c *cursor) location() Location {
	return Location{
		File:   c.file,
		Line:   c.line,
		Column: c.col,
		Offset: c.index,
	}
}
