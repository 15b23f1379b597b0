package domain

import (
	"fmt"
	"net/netip"
)

// IPv4Address is a dotted-quad IPv4 address as four octets.
type IPv4Address [4]byte

// String returns the dotted-decimal form of the address.
func (a IPv4Address) String() string {
	return netip.AddrFrom4(a).String()
}

// Addr returns the address as a netip.Addr.
func (a IPv4Address) Addr() netip.Addr {
	return netip.AddrFrom4(a)
}

// IPv6Shape identifies which textual layout an IPv6 literal was written in.
type IPv6Shape uint8

// IPv6 literal shapes. The compressed shapes are numbered by how many
// groups precede the "::" (IPv6Compressed0 is "::x", IPv6Compressed7 is "a:b:c:d:e:f:g::").
const (
	IPv6Full IPv6Shape = iota
	IPv6LinkLocal
	IPv6Mapped
	IPv6Embedded
	IPv6Compressed0
	IPv6Compressed1
	IPv6Compressed2
	IPv6Compressed3
	IPv6Compressed4
	IPv6Compressed5
	IPv6Compressed6
	IPv6Compressed7
)

// IPv6Shapes lists every shape in the order the parser documents them.
var IPv6Shapes = []IPv6Shape{
	IPv6Full, IPv6LinkLocal, IPv6Mapped, IPv6Embedded,
	IPv6Compressed0, IPv6Compressed1, IPv6Compressed2, IPv6Compressed3,
	IPv6Compressed4, IPv6Compressed5, IPv6Compressed6, IPv6Compressed7,
}

// CompressedAt returns the compressed shape with n groups before the "::".
func CompressedAt(n int) (IPv6Shape, bool) {
	if n < 0 || n > 7 {
		return 0, false
	}
	return IPv6Compressed0 + IPv6Shape(n), true
}

// CompressionIndex returns the number of groups before the "::" for compressed shapes.
func (s IPv6Shape) CompressionIndex() (int, bool) {
	if s < IPv6Compressed0 || s > IPv6Compressed7 {
		return 0, false
	}
	return int(s - IPv6Compressed0), true
}

func (s IPv6Shape) String() string {
	switch s {
	case IPv6Full:
		return "full"
	case IPv6LinkLocal:
		return "link-local"
	case IPv6Mapped:
		return "ipv4-mapped"
	case IPv6Embedded:
		return "ipv4-embedded"
	}
	if n, ok := s.CompressionIndex(); ok {
		return fmt.Sprintf("compressed-%d", n)
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
}

// IPv6Address is an IPv6 literal together with the shape it matched.
// Literal excludes the zone index, which is kept separately in Zone.
type IPv6Address struct {
	Shape   IPv6Shape
	Literal string
	Zone    string
}

// String returns the address as written, including any zone index.
func (a IPv6Address) String() string {
	if a.Zone == "" {
		return a.Literal
	}
	return a.Literal + "%" + a.Zone
}

// Addr normalizes the literal into a netip.Addr.
func (a IPv6Address) Addr() (netip.Addr, error) {
	addr, err := netip.ParseAddr(a.Literal)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid IPv6 literal %q: %w", a.Literal, err)
	}
	if a.Zone != "" {
		addr = addr.WithZone(a.Zone)
	}
	return addr, nil
}
