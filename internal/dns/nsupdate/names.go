package nsupdate

import "github.com/haukened/rr-nsupdate/internal/dns/domain"

// domainName reads one or more labels, each terminated by a dot.
// A name without its trailing dot is rejected: relative names are never accepted.
func (c *cursor) domainName(rule string) (domain.Name, error) {
	var labels []string
	for {
		label := c.run(isLabelByte)
		if label == "" {
			if len(labels) == 0 {
				return domain.Name{}, c.errEOI(ErrDomain, rule, "domain label")
			}
			if !c.atDelimiter() {
				return domain.Name{}, c.err(ErrDomain, rule, "domain label")
			}
			return domain.Name{Labels: labels}, nil
		}
		if c.peek() != '.' {
			return domain.Name{}, c.err(ErrDomain, rule, `"."`)
		}
		c.pos++
		labels = append(labels, label)
	}
}

// quoted reads a double-quoted string. Escapes are checked but kept verbatim.
func (c *cursor) quoted(rule string) (domain.QuotedString, error) {
	if c.peek() != '"' {
		return domain.QuotedString{}, c.errEOI(ErrLexical, rule, "quoted string")
	}
	start := c.pos
	c.pos++
	for {
		if c.eof() || c.src[c.pos] == '\n' {
			e := c.err(ErrLexical, rule, `closing '"'`)
			e.Reason = "unterminated quoted string"
			return domain.QuotedString{}, e
		}
		switch c.src[c.pos] {
		case '"':
			raw := c.src[start+1 : c.pos]
			c.pos++
			return domain.QuotedString{Raw: raw}, nil
		case '\\':
			if c.pos+1 >= len(c.src) || !isEscape(c.src[c.pos+1]) {
				e := c.err(ErrLexical, rule, `\"`, `\\`, `\/`, `\b`, `\f`, `\n`, `\r`, `\t`)
				e.Reason = "invalid escape sequence"
				return domain.QuotedString{}, e
			}
			c.pos += 2
		default:
			c.pos++
		}
	}
}

func isEscape(b byte) bool {
	switch b {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return true
	}
	return false
}
