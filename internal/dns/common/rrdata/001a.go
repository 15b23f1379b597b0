package rrdata

import (
	"fmt"
	"net/netip"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// encodeAData encodes an A record into its 4-byte binary representation.
func encodeAData(rd domain.AData) ([]byte, error) {
	b := rd.Address
	return b[:], nil
}

// decodeAData decodes a 4-byte A record RDATA.
func decodeAData(b []byte) (string, error) {
	if len(b) != 4 {
		return "", fmt.Errorf("invalid A record length: %d", len(b))
	}
	return netip.AddrFrom4([4]byte(b)).String(), nil
}
