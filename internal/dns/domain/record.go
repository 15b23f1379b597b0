package domain

import (
	"bytes"
	"fmt"

	"github.com/haukened/rr-nsupdate/internal/dns/common/utils"
)

// AuthoritativeRecord is a record held by the zone store.
// Records do not expire; TTL is carried for the wire.
type AuthoritativeRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32
	Data  []byte // wire-encoded RDATA
}

// NewAuthoritativeRecord constructs and validates an AuthoritativeRecord with a canonical name.
func NewAuthoritativeRecord(name string, rrtype RRType, class RRClass, ttl uint32, data []byte) (*AuthoritativeRecord, error) {
	ar := &AuthoritativeRecord{
		Name:  utils.CanonicalDNSName(name),
		Type:  rrtype,
		Class: class,
		TTL:   ttl,
		Data:  data,
	}
	if err := ar.Validate(); err != nil {
		return nil, err
	}
	return ar, nil
}

// Validate checks whether the AuthoritativeRecord fields are valid.
func (ar AuthoritativeRecord) Validate() error {
	if ar.Name == "" {
		return fmt.Errorf("record name must not be empty")
	}
	if !ar.Type.IsValid() {
		return fmt.Errorf("invalid RRType: %d", ar.Type)
	}
	if !ar.Class.IsValid() {
		return fmt.Errorf("invalid RRClass: %d", ar.Class)
	}
	if len(ar.Data) == 0 {
		return fmt.Errorf("record data must not be empty")
	}
	return nil
}

// CacheKey returns the store key derived from the record's name, type, and class.
func (ar AuthoritativeRecord) CacheKey() string {
	return GenerateCacheKey(ar.Name, ar.Type, ar.Class)
}

// SameData reports whether two records carry identical RDATA.
func (ar AuthoritativeRecord) SameData(o *AuthoritativeRecord) bool {
	return o != nil && bytes.Equal(ar.Data, o.Data)
}
