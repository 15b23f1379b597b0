package domain

// RRClass represents a DNS class. Update scripts only ever name IN.
type RRClass uint16

// RRClassIN is the Internet class, the only class the update language accepts.
const RRClassIN RRClass = 1

// IsValid returns true if the RRClass is one of the supported classes.
func (c RRClass) IsValid() bool {
	return c == RRClassIN
}

// String returns the textual representation of the RRClass.
func (c RRClass) String() string {
	if c == RRClassIN {
		return "IN"
	}
	return "UNKNOWN"
}

// ParseRRClass converts a string name to an RRClass value.
// Unknown names return 0.
func ParseRRClass(s string) RRClass {
	if s == "IN" {
		return RRClassIN
	}
	return 0
}
