package utils

import (
	"strings"
	"testing"
)

func TestCanonicalDNSName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple domain without trailing dot", input: "example.com", expected: "example.com"},
		{name: "simple domain with trailing dot", input: "example.com.", expected: "example.com"},
		{name: "uppercase domain", input: "EXAMPLE.COM.", expected: "example.com"},
		{name: "mixed case domain", input: "ExAmPlE.CoM.", expected: "example.com"},
		{name: "domain with tabs and spaces", input: "\t example.com. \t", expected: "example.com"},
		{name: "multiple trailing dots", input: "example.com..", expected: "example.com"},
		{name: "root domain", input: ".", expected: ""},
		{name: "empty string", input: "", expected: ""},
		{name: "underscore service label", input: "_sip._tcp.Example.com.", expected: "_sip._tcp.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalDNSName(tt.input)
			if got != tt.expected {
				t.Errorf("CanonicalDNSName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalDNSName_Idempotent(t *testing.T) {
	for _, input := range []string{"example.com.", "EXAMPLE.COM", "  www.example.com.  ", "."} {
		first := CanonicalDNSName(input)
		second := CanonicalDNSName(first)
		if first != second {
			t.Errorf("CanonicalDNSName is not idempotent for %q: first=%q, second=%q", input, first, second)
		}
		if first != strings.ToLower(first) {
			t.Errorf("CanonicalDNSName(%q) = %q, expected lowercase output", input, first)
		}
	}
}

func TestIsSubdomain(t *testing.T) {
	tests := []struct {
		name, zone string
		want       bool
	}{
		{"www.example.com.", "example.com.", true},
		{"example.com.", "example.com", true},
		{"WWW.Example.COM.", "example.com.", true},
		{"badexample.com.", "example.com.", false},
		{"example.org.", "example.com.", false},
		{"example.com.", "", true},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := IsSubdomain(tt.name, tt.zone); got != tt.want {
			t.Errorf("IsSubdomain(%q, %q) = %v, want %v", tt.name, tt.zone, got, tt.want)
		}
	}
}

func TestFQDN(t *testing.T) {
	tests := map[string]string{
		"example.com":   "example.com.",
		"Example.COM..": "example.com.",
		"":              ".",
	}
	for in, want := range tests {
		if got := FQDN(in); got != want {
			t.Errorf("FQDN(%q) = %q, want %q", in, got, want)
		}
	}
}
