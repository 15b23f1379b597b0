package rrdata

import (
	"fmt"
	"net/netip"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// encodeAAAAData encodes an AAAA record into its 16-byte binary representation.
// Any zone index is dropped; it has no wire form.
func encodeAAAAData(rd domain.AAAAData) ([]byte, error) {
	addr, err := rd.Address.Addr()
	if err != nil {
		return nil, err
	}
	b := addr.As16()
	return b[:], nil
}

func decodeAAAAData(b []byte) (string, error) {
	if len(b) != 16 {
		return "", fmt.Errorf("invalid AAAA record length: %d", len(b))
	}
	return netip.AddrFrom16([16]byte(b)).String(), nil
}
