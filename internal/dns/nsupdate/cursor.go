package nsupdate

import (
	"errors"
	"strconv"
)

// cursor walks the input one byte at a time. Every rule reads from the current
// position and either advances past what it matched or returns a *ParseError.
type cursor struct {
	src       string
	pos       int
	line      int
	lineStart int
}

func newCursor(src string) *cursor {
	return &cursor{src: src, line: 1}
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.src)
}

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.pos]
}

// atLineEnd reports whether nothing meaningful is left on the current line:
// end of input, a newline (LF or CRLF), or the start of a comment.
func (c *cursor) atLineEnd() bool {
	if c.eof() {
		return true
	}
	switch c.src[c.pos] {
	case '\n', ';':
		return true
	case '\r':
		return c.pos+1 == len(c.src) || c.src[c.pos+1] == '\n'
	}
	return false
}

// atDelimiter reports whether the current token has ended: whitespace or the end of the line.
func (c *cursor) atDelimiter() bool {
	return isSpace(c.peek()) || c.atLineEnd()
}

// run consumes the longest prefix whose bytes satisfy pred.
func (c *cursor) run(pred func(byte) bool) string {
	start := c.pos
	for c.pos < len(c.src) && pred(c.src[c.pos]) {
		c.pos++
	}
	return c.src[start:c.pos]
}

// word consumes a run of ASCII letters and digits.
func (c *cursor) word() string {
	return c.run(isAlnum)
}

func (c *cursor) skipSpaces() int {
	return len(c.run(isSpace))
}

// spaces consumes the whitespace required between two fields.
func (c *cursor) spaces(rule string) error {
	if c.skipSpaces() > 0 {
		return nil
	}
	return c.errEOI(ErrStructural, rule, "whitespace")
}

// skipComment consumes a comment up to, but not including, the newline.
func (c *cursor) skipComment() {
	if c.peek() != ';' {
		return
	}
	for !c.eof() && c.src[c.pos] != '\n' {
		c.pos++
	}
}

// endLine consumes trailing whitespace, an optional comment and the line terminator.
func (c *cursor) endLine() error {
	c.skipSpaces()
	c.skipComment()
	if c.eof() {
		return nil
	}
	switch {
	case c.src[c.pos] == '\n':
		c.pos++
	case c.src[c.pos] == '\r' && c.pos+1 < len(c.src) && c.src[c.pos+1] == '\n':
		c.pos += 2
	case c.src[c.pos] == '\r' && c.pos+1 == len(c.src):
		c.pos++
		return nil
	default:
		return c.err(ErrStructural, "line", "end of line")
	}
	c.line++
	c.lineStart = c.pos
	return nil
}

// endInput requires that only whitespace and an optional comment remain.
func (c *cursor) endInput(rule string) error {
	c.skipSpaces()
	c.skipComment()
	if c.eof() {
		return nil
	}
	return c.err(ErrStructural, rule, "end of input")
}

// token describes what sits at pos for error messages.
func (c *cursor) token(pos int) string {
	if pos >= len(c.src) {
		return "end of input"
	}
	switch c.src[pos] {
	case '\n':
		return "end of line"
	case '\r':
		if pos+1 == len(c.src) || c.src[pos+1] == '\n' {
			return "end of line"
		}
	case ';':
		return "comment"
	}
	end := pos
	for end < len(c.src) && end-pos < 32 && !isSpace(c.src[end]) && c.src[end] != '\n' && c.src[end] != '\r' {
		end++
	}
	if end == pos {
		end++ // a stray carriage return
	}
	return strconv.Quote(c.src[pos:end])
}

// errAt builds a ParseError for a failure at pos on the current line.
func (c *cursor) errAt(pos int, kind error, rule string, expected ...string) *ParseError {
	return &ParseError{
		Kind:     kind,
		Offset:   pos,
		Line:     c.line,
		Column:   pos - c.lineStart + 1,
		Rule:     rule,
		Expected: expected,
		Found:    c.token(pos),
	}
}

func (c *cursor) err(kind error, rule string, expected ...string) *ParseError {
	return c.errAt(c.pos, kind, rule, expected...)
}

// errEOI is err for a missing token: when the line has run out the kind becomes ErrUnexpectedEOI.
func (c *cursor) errEOI(kind error, rule string, expected ...string) *ParseError {
	if c.atLineEnd() {
		kind = ErrUnexpectedEOI
	}
	return c.err(kind, rule, expected...)
}

// furthest picks the error that got further into the input, preferring b on ties.
func furthest(a, b error) error {
	var pa, pb *ParseError
	if !errors.As(a, &pa) {
		return b
	}
	if !errors.As(b, &pb) {
		return a
	}
	if pa.Offset > pb.Offset {
		return a
	}
	return b
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlnum(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isLabelByte matches the characters of a domain label: [A-Za-z0-9_-].
func isLabelByte(b byte) bool {
	return isAlnum(b) || b == '_' || b == '-'
}
