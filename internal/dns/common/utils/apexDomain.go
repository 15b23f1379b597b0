package utils

import "golang.org/x/net/publicsuffix"

// GetApexDomain returns the registrable domain (eTLD+1) of name, without a trailing dot.
// Names the public suffix list cannot split are returned canonicalized as-is.
func GetApexDomain(name string) string {
	name = CanonicalDNSName(name)
	apexDomain, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		apexDomain = name // Fallback to the original name if parsing fails
	}
	return apexDomain
}
