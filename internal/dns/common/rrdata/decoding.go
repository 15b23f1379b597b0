package rrdata

import (
	"fmt"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// Decode renders RDATA in the presentation form an update script would use after the type keyword,
// including the priority for MX, SRV and URI.
func Decode(rrType domain.RRType, data []byte) (string, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return decodeAData(data)
	case domain.RRTypeNS: // 2
		return decodeNSData(data)
	case domain.RRTypeCNAME: // 5
		return decodeCNAMEData(data)
	case domain.RRTypeMX: // 15
		return decodeMXData(data)
	case domain.RRTypeTXT: // 16
		return decodeTXTData(data)
	case domain.RRTypeAAAA: // 28
		return decodeAAAAData(data)
	case domain.RRTypeSRV: // 33
		return decodeSRVData(data)
	case domain.RRTypeSSHFP: // 44
		return decodeSSHFPData(data)
	case domain.RRTypeURI: // 256
		return decodeURIData(data)
	default:
		return "", fmt.Errorf("%s record decoding not implemented", rrType)
	}
}
