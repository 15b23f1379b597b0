package nsupdate

import "github.com/haukened/rr-nsupdate/internal/dns/domain"

// ipv4 reads a dotted-quad address.
func (c *cursor) ipv4(rule string) (domain.IPv4Address, error) {
	start := c.pos
	text := c.run(func(b byte) bool { return isDigit(b) || b == '.' })
	if text == "" {
		return domain.IPv4Address{}, c.errEOI(ErrAddress, rule, "IPv4 address")
	}
	if !c.atDelimiter() {
		e := c.errAt(start, ErrAddress, rule, "IPv4 address")
		e.Reason = "unexpected " + c.token(c.pos) + " after address"
		return domain.IPv4Address{}, e
	}
	addr, bad, ok := parseIPv4(text)
	if !ok {
		e := c.errAt(start+bad, ErrAddress, rule, "IPv4 segment 0-255")
		e.Reason = "invalid IPv4 address " + text
		return domain.IPv4Address{}, e
	}
	return addr, nil
}

// parseIPv4 matches exactly four segments joined by dots. On failure it returns the
// offset of the offending segment or separator.
func parseIPv4(s string) (domain.IPv4Address, int, bool) {
	var a domain.IPv4Address
	i := 0
	for seg := 0; seg < 4; seg++ {
		if seg > 0 {
			if i >= len(s) || s[i] != '.' {
				return a, i, false
			}
			i++
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		v, ok := octet(s[i:j])
		if !ok {
			return a, i, false
		}
		a[seg] = v
		i = j
	}
	if i != len(s) {
		return a, i, false
	}
	return a, 0, true
}

// octet accepts the segment forms 0-9, 10-99, 100-199, 200-249 and 250-255.
// Multi-digit segments may not start with zero.
func octet(d string) (byte, bool) {
	switch len(d) {
	case 1:
		return d[0] - '0', true
	case 2:
		if d[0] == '0' {
			return 0, false
		}
	case 3:
		switch {
		case d[0] == '1':
		case d[0] == '2' && d[1] <= '4':
		case d[0] == '2' && d[1] == '5' && d[2] <= '5':
		default:
			return 0, false
		}
	default:
		return 0, false
	}
	v := 0
	for i := 0; i < len(d); i++ {
		v = v*10 + int(d[i]-'0')
	}
	return byte(v), true
}
