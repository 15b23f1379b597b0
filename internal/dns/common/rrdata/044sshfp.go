package rrdata

import (
	"encoding/hex"
	"fmt"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// encodeSSHFPData encodes an SSHFP record (RFC 4255): algorithm, type, then the raw fingerprint.
func encodeSSHFPData(rd domain.SSHFPData) ([]byte, error) {
	fp, err := hex.DecodeString(rd.Fingerprint)
	if err != nil {
		return nil, fmt.Errorf("invalid SSHFP fingerprint: %w", err)
	}
	if len(fp) == 0 {
		return nil, fmt.Errorf("SSHFP fingerprint must not be empty")
	}
	return append([]byte{rd.Algorithm, rd.FingerprintType}, fp...), nil
}

func decodeSSHFPData(b []byte) (string, error) {
	if len(b) < 3 {
		return "", fmt.Errorf("invalid SSHFP data length")
	}
	return fmt.Sprintf("%d %d %s", b[0], b[1], hex.EncodeToString(b[2:])), nil
}
