package nsupdate

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. A *ParseError unwraps to exactly one of these, so callers can
// classify failures with errors.Is.
var (
	// ErrLexical means the input did not match an expected primitive: a digit run,
	// a hex run, the class keyword, or a quoted string (unterminated or bad escape).
	ErrLexical = errors.New("lexical error")
	// ErrAddress means an IPv4 segment was out of range or no IPv6 shape matched.
	ErrAddress = errors.New("address error")
	// ErrDomain means a domain was empty, held an invalid label character, or lacked its trailing dot.
	ErrDomain = errors.New("domain error")
	// ErrRecordType means the record keyword is not one of the supported types.
	ErrRecordType = errors.New("record type error")
	// ErrStructural means a directive was malformed above the field level.
	ErrStructural = errors.New("structural error")
	// ErrUnexpectedEOI means the line or the input ended in the middle of a directive.
	ErrUnexpectedEOI = errors.New("unexpected end of input")
)

// ParseError describes the first grammar violation found in the input.
type ParseError struct {
	Kind     error
	Offset   int // byte offset into the input
	Line     int // 1-based
	Column   int // 1-based, in bytes
	Rule     string
	Expected []string
	Found    string
	Reason   string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d, column %d: %v in %s", e.Line, e.Column, e.Kind, e.Rule)
	switch len(e.Expected) {
	case 0:
	case 1:
		fmt.Fprintf(&b, ": expected %s", e.Expected[0])
	default:
		fmt.Fprintf(&b, ": expected one of %s", strings.Join(e.Expected, ", "))
	}
	if e.Found != "" {
		fmt.Fprintf(&b, ", found %s", e.Found)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, " (%s)", e.Reason)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
