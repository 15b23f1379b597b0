package utils

import "strings"

// CanonicalDNSName returns a DNS name in canonical form:
// - Lowercased
// - Trimmed of surrounding whitespace
// - No trailing dot; update scripts always write one, so it carries no information in keys.
func CanonicalDNSName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	// remove all trailing dots
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}

// IsSubdomain reports whether name equals zone or lies beneath it.
// Both arguments are canonicalized before comparison.
func IsSubdomain(name, zone string) bool {
	name = CanonicalDNSName(name)
	zone = CanonicalDNSName(zone)
	if zone == "" {
		return name != ""
	}
	return name == zone || strings.HasSuffix(name, "."+zone)
}

// FQDN returns the canonical name with exactly one trailing dot.
func FQDN(name string) string {
	name = CanonicalDNSName(name)
	if name == "" {
		return "."
	}
	return name + "."
}
