package rrdata

import (
	"fmt"
	"strings"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

const (
	maxLabelLength = 63
	maxNameLength  = 255
)

// encodeDomainName encodes a domain name into wire format (length-prefixed labels ending in 0).
// Labels are lowercased. Used in multiple record types.
func encodeDomainName(name domain.Name) ([]byte, error) {
	encoded := make([]byte, 0, len(name.String())+1)
	for _, label := range name.Labels {
		if len(label) == 0 {
			return nil, fmt.Errorf("empty label in %q", name.String())
		}
		if len(label) > maxLabelLength {
			return nil, fmt.Errorf("label too long: %s", label)
		}
		encoded = append(encoded, byte(len(label)))
		encoded = append(encoded, strings.ToLower(label)...)
	}
	encoded = append(encoded, 0) // root
	if len(encoded) > maxNameLength {
		return nil, fmt.Errorf("domain name too long: %d bytes", len(encoded))
	}
	return encoded, nil
}

// decodeDomainName decodes an uncompressed wire name into its dot-terminated presentation form.
// It returns the number of bytes consumed.
func decodeDomainName(b []byte) (string, int, error) {
	var sb strings.Builder
	for i := 0; i < len(b); {
		labelLen := int(b[i])
		if labelLen == 0 {
			if sb.Len() == 0 {
				return ".", i + 1, nil
			}
			return sb.String(), i + 1, nil
		}
		if labelLen > maxLabelLength {
			return "", 0, fmt.Errorf("invalid label length %d", labelLen)
		}
		i++
		if i+labelLen > len(b) {
			return "", 0, fmt.Errorf("invalid domain name encoding")
		}
		sb.Write(b[i : i+labelLen])
		sb.WriteByte('.')
		i += labelLen
	}
	return "", 0, fmt.Errorf("domain name missing root label")
}

// decodeTrailingName decodes a name that must end exactly at the end of b.
func decodeTrailingName(b []byte) (string, error) {
	name, n, err := decodeDomainName(b)
	if err != nil {
		return "", err
	}
	if n != len(b) {
		return "", fmt.Errorf("%d trailing bytes after domain name", len(b)-n)
	}
	return name, nil
}

// quoteText renders bytes as a quoted string using the escapes an update script accepts.
func quoteText(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) + 2)
	sb.WriteByte('"')
	for _, c := range b {
		switch c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
