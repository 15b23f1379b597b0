package rrdata

import (
	"fmt"
	"strings"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

const maxCharacterString = 255

// encodeTXTData encodes a TXT record into its binary representation.
// The text is unescaped and split into character-strings of at most 255 bytes
// (RFC 1035 section 3.3.14). An empty text becomes a single empty character-string.
func encodeTXTData(rd domain.TXTData) ([]byte, error) {
	text, err := rd.Text.Unescape()
	if err != nil {
		return nil, fmt.Errorf("invalid TXT text: %w", err)
	}
	if text == "" {
		return []byte{0}, nil
	}
	encoded := make([]byte, 0, len(text)+len(text)/maxCharacterString+1)
	for len(text) > 0 {
		n := min(len(text), maxCharacterString)
		encoded = append(encoded, byte(n))
		encoded = append(encoded, text[:n]...)
		text = text[n:]
	}
	return encoded, nil
}

// decodeTXTData decodes TXT RDATA into space-separated quoted strings.
func decodeTXTData(b []byte) (string, error) {
	if len(b) == 0 {
		return "", fmt.Errorf("TXT record must contain at least one character-string")
	}
	var parts []string
	for i := 0; i < len(b); {
		n := int(b[i])
		i++
		if i+n > len(b) {
			return "", fmt.Errorf("invalid TXT character-string length")
		}
		parts = append(parts, quoteText(b[i:i+n]))
		i += n
	}
	return strings.Join(parts, " "), nil
}
