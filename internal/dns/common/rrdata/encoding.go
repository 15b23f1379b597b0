package rrdata

import (
	"fmt"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// Encode encodes a parsed record payload to its RDATA wire representation.
// priority is written for the types that carry one (MX, SRV, URI) and ignored otherwise.
func Encode(rd domain.RData, priority uint16) ([]byte, error) {
	switch v := rd.(type) {
	case domain.AData: // 1
		return encodeAData(v)
	case domain.NSData: // 2
		return encodeNSData(v)
	case domain.CNAMEData: // 5
		return encodeCNAMEData(v)
	case domain.MXData: // 15
		return encodeMXData(v, priority)
	case domain.TXTData: // 16
		return encodeTXTData(v)
	case domain.AAAAData: // 28
		return encodeAAAAData(v)
	case domain.SRVData: // 33
		return encodeSRVData(v, priority)
	case domain.SSHFPData: // 44
		return encodeSSHFPData(v)
	case domain.URIData: // 256
		return encodeURIData(v, priority)
	case nil:
		return nil, fmt.Errorf("no record data to encode")
	default:
		return nil, fmt.Errorf("%s record encoding not implemented", rd.Type())
	}
}
