package domain

import "fmt"

// RRType represents a DNS resource record type (e.g. A, AAAA, MX).
// See IANA DNS Parameters for assigned codes.
type RRType uint16

// DNS Resource Record Type constants for the record types an update script may carry.
const (
	RRTypeA     RRType = 1   // A - IPv4 address
	RRTypeNS    RRType = 2   // NS - Name server
	RRTypeCNAME RRType = 5   // CNAME - Canonical name
	RRTypeMX    RRType = 15  // MX - Mail exchange
	RRTypeTXT   RRType = 16  // TXT - Text
	RRTypeAAAA  RRType = 28  // AAAA - IPv6 address
	RRTypeSRV   RRType = 33  // SRV - Service
	RRTypeSSHFP RRType = 44  // SSHFP - SSH key fingerprint
	RRTypeURI   RRType = 256 // URI - Uniform resource identifier
)

// RecordTypes lists the supported record types in keyword order.
// The order is the one used in "expected one of" diagnostics.
var RecordTypes = []RRType{
	RRTypeA,
	RRTypeAAAA,
	RRTypeCNAME,
	RRTypeTXT,
	RRTypeSRV,
	RRTypeMX,
	RRTypeNS,
	RRTypeSSHFP,
	RRTypeURI,
}

// IsValid returns true if the RRType is one of the supported types.
func (t RRType) IsValid() bool {
	switch t {
	case RRTypeA, RRTypeNS, RRTypeCNAME, RRTypeMX, RRTypeTXT,
		RRTypeAAAA, RRTypeSRV, RRTypeSSHFP, RRTypeURI:
		return true
	default:
		return false
	}
}

// AcceptsPriority reports whether an update may place a priority before the record content.
func (t RRType) AcceptsPriority() bool {
	return t == RRTypeMX || t == RRTypeSRV || t == RRTypeURI
}

// String returns the textual representation of the RRType.
// For unknown types, it returns "UNKNOWN(<value>)".
func (t RRType) String() string {
	switch t {
	case RRTypeA:
		return "A"
	case RRTypeNS:
		return "NS"
	case RRTypeCNAME:
		return "CNAME"
	case RRTypeMX:
		return "MX"
	case RRTypeTXT:
		return "TXT"
	case RRTypeAAAA:
		return "AAAA"
	case RRTypeSRV:
		return "SRV"
	case RRTypeSSHFP:
		return "SSHFP"
	case RRTypeURI:
		return "URI"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", t)
	}
}

// RRTypeFromString converts a record type keyword to its corresponding RRType value.
// Keywords are case-sensitive; unknown keywords return 0.
func RRTypeFromString(s string) RRType {
	switch s {
	case "A":
		return RRTypeA
	case "NS":
		return RRTypeNS
	case "CNAME":
		return RRTypeCNAME
	case "MX":
		return RRTypeMX
	case "TXT":
		return RRTypeTXT
	case "AAAA":
		return RRTypeAAAA
	case "SRV":
		return RRTypeSRV
	case "SSHFP":
		return RRTypeSSHFP
	case "URI":
		return RRTypeURI
	default:
		return 0 // invalid/unknown
	}
}
