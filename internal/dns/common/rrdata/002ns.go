package rrdata

import "github.com/haukened/rr-nsupdate/internal/dns/domain"

// encodeNSData encodes an NS record into its binary representation.
func encodeNSData(rd domain.NSData) ([]byte, error) {
	return encodeDomainName(rd.Host)
}

// decodeNSData decodes a byte slice representing an NS (Name Server) record's RDATA
func decodeNSData(b []byte) (string, error) {
	return decodeTrailingName(b)
}
