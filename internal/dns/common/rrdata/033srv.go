package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// encodeSRVData encodes an SRV record into its binary representation (RFC 2782).
func encodeSRVData(rd domain.SRVData, priority uint16) ([]byte, error) {
	target, err := encodeDomainName(rd.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid SRV target: %w", err)
	}
	buf := make([]byte, 6, 6+len(target))
	binary.BigEndian.PutUint16(buf[0:], priority)
	binary.BigEndian.PutUint16(buf[2:], rd.Weight)
	binary.BigEndian.PutUint16(buf[4:], rd.Port)
	return append(buf, target...), nil
}

func decodeSRVData(b []byte) (string, error) {
	if len(b) < 7 {
		return "", fmt.Errorf("invalid SRV data length")
	}
	target, err := decodeTrailingName(b[6:])
	if err != nil {
		return "", fmt.Errorf("invalid SRV target: %w", err)
	}
	return fmt.Sprintf("%d %d %d %s",
		binary.BigEndian.Uint16(b[0:]),
		binary.BigEndian.Uint16(b[2:]),
		binary.BigEndian.Uint16(b[4:]),
		target), nil
}
