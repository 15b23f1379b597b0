package rrdata

import "github.com/haukened/rr-nsupdate/internal/dns/domain"

// encodeCNAMEData encodes a CNAME record into its binary representation.
func encodeCNAMEData(rd domain.CNAMEData) ([]byte, error) {
	return encodeDomainName(rd.Target)
}

func decodeCNAMEData(b []byte) (string, error) {
	return decodeTrailingName(b)
}
