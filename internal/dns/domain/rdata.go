package domain

// RData is the type-specific payload of a record in an update script.
// Each supported RRType has exactly one implementation.
type RData interface {
	Type() RRType
}

// AData is the payload of an A record.
type AData struct {
	Address IPv4Address
}

// AAAAData is the payload of an AAAA record.
type AAAAData struct {
	Address IPv6Address
}

// CNAMEData is the payload of a CNAME record.
type CNAMEData struct {
	Target Name
}

// TXTData is the payload of a TXT record. The text keeps its escapes.
type TXTData struct {
	Text QuotedString
}

// SRVData is the payload of an SRV record.
type SRVData struct {
	Weight uint16
	Port   uint16
	Target Name
}

// MXData is the payload of an MX record; the preference travels as the update's priority.
type MXData struct {
	Host Name
}

// NSData is the payload of an NS record.
type NSData struct {
	Host Name
}

// SSHFPData is the payload of an SSHFP record. Fingerprint is the hex text as written.
type SSHFPData struct {
	Algorithm       uint8
	FingerprintType uint8
	Fingerprint     string
}

// URIData is the payload of a URI record.
type URIData struct {
	Weight uint16
	Target QuotedString
}

func (AData) Type() RRType     { return RRTypeA }
func (AAAAData) Type() RRType  { return RRTypeAAAA }
func (CNAMEData) Type() RRType { return RRTypeCNAME }
func (TXTData) Type() RRType   { return RRTypeTXT }
func (SRVData) Type() RRType   { return RRTypeSRV }
func (MXData) Type() RRType    { return RRTypeMX }
func (NSData) Type() RRType    { return RRTypeNS }
func (SSHFPData) Type() RRType { return RRTypeSSHFP }
func (URIData) Type() RRType   { return RRTypeURI }
