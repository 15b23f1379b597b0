package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// encodeMXData encodes an MX record into its binary representation.
// The preference is the update's priority.
func encodeMXData(rd domain.MXData, preference uint16) ([]byte, error) {
	encodedDomain, err := encodeDomainName(rd.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid MX exchange domain: %w", err)
	}
	buf := make([]byte, 2, 2+len(encodedDomain))
	binary.BigEndian.PutUint16(buf, preference)
	return append(buf, encodedDomain...), nil
}

// decodeMXData decodes MX (Mail Exchange) record data from the given byte slice.
func decodeMXData(b []byte) (string, error) {
	if len(b) < 3 {
		return "", fmt.Errorf("invalid MX data length")
	}
	pref := binary.BigEndian.Uint16(b[:2])
	host, err := decodeTrailingName(b[2:])
	if err != nil {
		return "", fmt.Errorf("invalid MX exchange domain: %w", err)
	}
	return fmt.Sprintf("%d %s", pref, host), nil
}
