package domain

import (
	"github.com/haukened/rr-nsupdate/internal/dns/common/utils"
)

// GenerateCacheKey returns a consistent store key derived from a DNS name, type, and class.
// Format: "name|type|class" (e.g., "www.example.com|A|IN").
// Uses pipe (|) separator to avoid conflicts with colons in IPv6 addresses and URIs.
func GenerateCacheKey(name string, t RRType, c RRClass) string {
	return utils.CanonicalDNSName(name) + "|" + t.String() + "|" + c.String()
}
