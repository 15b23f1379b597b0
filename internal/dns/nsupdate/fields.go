package nsupdate

import (
	"math"
	"strconv"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// decimal reads one or more ASCII digits as an unsigned integer no larger than max.
func (c *cursor) decimal(rule string, max uint64) (uint64, error) {
	start := c.pos
	digits := c.run(isDigit)
	if digits == "" {
		return 0, c.errEOI(ErrLexical, rule, "decimal")
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || v > max {
		e := c.errAt(start, ErrLexical, rule, "decimal")
		e.Reason = "value exceeds " + strconv.FormatUint(max, 10)
		return 0, e
	}
	return v, nil
}

func (c *cursor) ttl() (uint32, error) {
	v, err := c.decimal("ttl", math.MaxUint32)
	return uint32(v), err
}

// u16 reads a 16-bit decimal field such as a priority, weight or port.
func (c *cursor) u16(rule string) (uint16, error) {
	v, err := c.decimal(rule, math.MaxUint16)
	return uint16(v), err
}

// class reads the class keyword. IN is the only one.
func (c *cursor) class() (domain.RRClass, error) {
	start := c.pos
	w := c.word()
	if w == "" {
		return 0, c.errEOI(ErrLexical, "class", "IN")
	}
	cls := domain.ParseRRClass(w)
	if cls == 0 {
		return 0, c.errAt(start, ErrLexical, "class", "IN")
	}
	return cls, nil
}

// digit reads exactly one decimal digit, as used by the SSHFP algorithm and type fields.
func (c *cursor) digit(rule string) (uint8, error) {
	start := c.pos
	d := c.run(isDigit)
	if d == "" {
		return 0, c.errEOI(ErrLexical, rule, "digit")
	}
	if len(d) != 1 {
		return 0, c.errAt(start, ErrLexical, rule, "single digit")
	}
	return d[0] - '0', nil
}

// hex reads one or more hexadecimal digits, case-insensitive, returned as written.
func (c *cursor) hex(rule string) (string, error) {
	h := c.run(isHex)
	if h == "" {
		return "", c.errEOI(ErrLexical, rule, "hex digits")
	}
	return h, nil
}

// recordType reads a record keyword and resolves it to one of the supported types.
func (c *cursor) recordType() (domain.RRType, error) {
	start := c.pos
	kw := c.word()
	if kw == "" {
		return 0, c.errEOI(ErrRecordType, "record_type", recordKeywords...)
	}
	t := domain.RRTypeFromString(kw)
	if t == 0 {
		return 0, c.errAt(start, ErrRecordType, "record_type", recordKeywords...)
	}
	return t, nil
}

var recordKeywords = func() []string {
	out := make([]string, 0, len(domain.RecordTypes))
	for _, t := range domain.RecordTypes {
		out = append(out, t.String())
	}
	return out
}()
