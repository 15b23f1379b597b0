package domain

import (
	"testing"
)

func TestIPv4Address(t *testing.T) {
	a := IPv4Address{192, 0, 2, 1}
	if got := a.String(); got != "192.0.2.1" {
		t.Errorf("String() = %q", got)
	}
	if got := a.Addr(); !got.Is4() || got.String() != "192.0.2.1" {
		t.Errorf("Addr() = %v", got)
	}
}

func TestIPv6Shape_String(t *testing.T) {
	cases := []struct {
		shape IPv6Shape
		want  string
	}{
		{IPv6Full, "full"},
		{IPv6LinkLocal, "link-local"},
		{IPv6Mapped, "ipv4-mapped"},
		{IPv6Embedded, "ipv4-embedded"},
		{IPv6Compressed0, "compressed-0"},
		{IPv6Compressed7, "compressed-7"},
		{IPv6Shape(99), "UNKNOWN(99)"},
	}
	for _, tc := range cases {
		if got := tc.shape.String(); got != tc.want {
			t.Errorf("String(%d) = %q, want %q", tc.shape, got, tc.want)
		}
	}
	if len(IPv6Shapes) != 12 {
		t.Errorf("len(IPv6Shapes) = %d, want 12", len(IPv6Shapes))
	}
}

func TestCompressedAt(t *testing.T) {
	for n := 0; n <= 7; n++ {
		s, ok := CompressedAt(n)
		if !ok {
			t.Fatalf("CompressedAt(%d) not ok", n)
		}
		if got, _ := s.CompressionIndex(); got != n {
			t.Errorf("CompressionIndex() = %d, want %d", got, n)
		}
	}
	if _, ok := CompressedAt(8); ok {
		t.Errorf("CompressedAt(8) should fail")
	}
	if _, ok := IPv6Full.CompressionIndex(); ok {
		t.Errorf("IPv6Full has no compression index")
	}
}

func TestIPv6Address_Addr(t *testing.T) {
	a := IPv6Address{Shape: IPv6LinkLocal, Literal: "fe80::1", Zone: "eth0"}
	if got := a.String(); got != "fe80::1%eth0" {
		t.Errorf("String() = %q", got)
	}
	addr, err := a.Addr()
	if err != nil {
		t.Fatalf("Addr() error: %v", err)
	}
	if addr.Zone() != "eth0" || !addr.IsLinkLocalUnicast() {
		t.Errorf("Addr() = %v", addr)
	}

	mapped := IPv6Address{Shape: IPv6Mapped, Literal: "::ffff:192.0.2.1"}
	addr, err = mapped.Addr()
	if err != nil {
		t.Fatalf("Addr() error: %v", err)
	}
	if !addr.Is4In6() {
		t.Errorf("expected IPv4-mapped address, got %v", addr)
	}

	if _, err := (IPv6Address{Literal: "not-an-address"}).Addr(); err == nil {
		t.Errorf("expected error for invalid literal")
	}
}

func TestQuotedString_Unescape(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{`plain`, "plain", false},
		{`a\"b`, `a"b`, false},
		{`c:\\dir\/x`, `c:\dir/x`, false},
		{`\b\f\n\r\t`, "\b\f\n\r\t", false},
		{`bad\q`, "", true},
		{`trailing\`, "", true},
	}
	for _, tc := range cases {
		got, err := QuotedString{Raw: tc.raw}.Unescape()
		if (err != nil) != tc.wantErr {
			t.Errorf("Unescape(%q) error = %v, wantErr %v", tc.raw, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Unescape(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
