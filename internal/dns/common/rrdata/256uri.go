package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// encodeURIData encodes a URI record (RFC 7553): priority, weight, then the target
// as raw bytes running to the end of the RDATA.
func encodeURIData(rd domain.URIData, priority uint16) ([]byte, error) {
	target, err := rd.Target.Unescape()
	if err != nil {
		return nil, fmt.Errorf("invalid URI target: %w", err)
	}
	if target == "" {
		return nil, fmt.Errorf("URI target must not be empty")
	}
	buf := make([]byte, 4, 4+len(target))
	binary.BigEndian.PutUint16(buf[0:], priority)
	binary.BigEndian.PutUint16(buf[2:], rd.Weight)
	return append(buf, target...), nil
}

func decodeURIData(b []byte) (string, error) {
	if len(b) < 5 {
		return "", fmt.Errorf("invalid URI data length")
	}
	return fmt.Sprintf("%d %d %s",
		binary.BigEndian.Uint16(b[0:]),
		binary.BigEndian.Uint16(b[2:]),
		quoteText(b[4:])), nil
}
