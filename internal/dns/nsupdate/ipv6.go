package nsupdate

import (
	"strings"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// ipv6 reads an IPv6 literal and tags it with the shape it was written in.
//
// The whole literal is consumed first and classified afterwards, so the shapes
// are mutually exclusive by construction and no alternative can mask a longer
// match. Literals ending in a dotted-quad can only be IPv4-mapped or
// IPv4-embedded; the rest are full, link-local or compressed, with link-local
// checked before the generic compressed shapes.
func (c *cursor) ipv6(rule string) (domain.IPv6Address, error) {
	start := c.pos
	lit := c.run(func(b byte) bool { return isHex(b) || b == ':' || b == '.' })
	if lit == "" {
		return domain.IPv6Address{}, c.errEOI(ErrAddress, rule, "IPv6 address")
	}
	var zone string
	if c.peek() == '%' {
		c.pos++
		zone = c.word()
		if zone == "" {
			return domain.IPv6Address{}, c.err(ErrAddress, rule, "zone index")
		}
	}
	if !c.atDelimiter() {
		e := c.errAt(start, ErrAddress, rule, "IPv6 address")
		e.Reason = "unexpected " + c.token(c.pos) + " after address"
		return domain.IPv6Address{}, e
	}
	shape, reason := classifyIPv6(lit, zone != "")
	if reason != "" {
		e := c.errAt(start, ErrAddress, rule, "IPv6 address")
		e.Reason = reason
		return domain.IPv6Address{}, e
	}
	return domain.IPv6Address{Shape: shape, Literal: lit, Zone: zone}, nil
}

// classifyIPv6 returns the shape of s, or a non-empty reason when no shape matches.
func classifyIPv6(s string, zoned bool) (domain.IPv6Shape, string) {
	if strings.Count(s, "::") > 1 {
		return 0, `more than one "::"`
	}
	var (
		shape  domain.IPv6Shape
		reason string
	)
	if strings.Contains(s, ".") {
		shape, reason = classifyDotted(s)
	} else {
		shape, reason = classifyGroups(s)
	}
	if reason == "" && zoned && shape != domain.IPv6LinkLocal {
		return 0, "zone index on a non link-local address"
	}
	return shape, reason
}

// classifyGroups handles literals made only of hex groups.
func classifyGroups(s string) (domain.IPv6Shape, string) {
	head, tail, compressed := strings.Cut(s, "::")
	if !compressed {
		groups := strings.Split(s, ":")
		if len(groups) != 8 {
			return 0, "expected 8 groups"
		}
		if !validGroups(groups) {
			return 0, "invalid group"
		}
		return domain.IPv6Full, ""
	}
	hg, ok := splitGroups(head)
	if !ok {
		return 0, "invalid group"
	}
	tg, ok := splitGroups(tail)
	if !ok {
		return 0, "invalid group"
	}
	if strings.EqualFold(head, "fe80") && len(tg) <= 4 {
		return domain.IPv6LinkLocal, ""
	}
	if len(hg)+len(tg) > 7 {
		return 0, "too many groups"
	}
	shape, _ := domain.CompressedAt(len(hg))
	return shape, ""
}

// classifyDotted handles literals ending in a dotted-quad.
func classifyDotted(s string) (domain.IPv6Shape, string) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return 0, "IPv4 address without IPv6 prefix"
	}
	if _, _, ok := parseIPv4(s[i+1:]); !ok {
		return 0, "invalid trailing IPv4 address"
	}
	prefix := strings.ToLower(s[:i+1])
	if isMappedPrefix(prefix) {
		return domain.IPv6Mapped, ""
	}
	if head, ok := strings.CutSuffix(prefix, "::"); ok && head != "" {
		groups := strings.Split(head, ":")
		if len(groups) <= 4 && validGroups(groups) {
			return domain.IPv6Embedded, ""
		}
	}
	return 0, "unsupported IPv4-suffixed form"
}

// isMappedPrefix matches "::", "::ffff:" and "::ffff:" followed by one to four zeros and a colon.
func isMappedPrefix(p string) bool {
	if p == "::" || p == "::ffff:" {
		return true
	}
	rest, ok := strings.CutPrefix(p, "::ffff:")
	if !ok {
		return false
	}
	zeros, ok := strings.CutSuffix(rest, ":")
	return ok && len(zeros) >= 1 && len(zeros) <= 4 && strings.Trim(zeros, "0") == ""
}

func splitGroups(s string) ([]string, bool) {
	if s == "" {
		return nil, true
	}
	groups := strings.Split(s, ":")
	return groups, validGroups(groups)
}

// validGroups reports whether every group is one to four hex digits.
func validGroups(groups []string) bool {
	for _, g := range groups {
		if len(g) == 0 || len(g) > 4 {
			return false
		}
		for i := 0; i < len(g); i++ {
			if !isHex(g[i]) {
				return false
			}
		}
	}
	return true
}
