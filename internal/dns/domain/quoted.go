package domain

import (
	"errors"
	"strings"
)

// ErrInvalidEscape is returned by Unescape for a backslash sequence outside the supported set.
var ErrInvalidEscape = errors.New("invalid escape sequence")

// QuotedString is the text between the quotes of a quoted string, with escapes left as written.
type QuotedString struct {
	Raw string
}

// Unescape interprets the backslash escapes \" \\ \/ \b \f \n \r \t.
// Parsing never calls this; it is for callers that need the decoded text.
func (q QuotedString) Unescape() (string, error) {
	if !strings.Contains(q.Raw, `\`) {
		return q.Raw, nil
	}
	var b strings.Builder
	b.Grow(len(q.Raw))
	for i := 0; i < len(q.Raw); i++ {
		c := q.Raw[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(q.Raw) {
			return "", ErrInvalidEscape
		}
		switch q.Raw[i] {
		case '"', '\\', '/':
			b.WriteByte(q.Raw[i])
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			return "", ErrInvalidEscape
		}
	}
	return b.String(), nil
}
