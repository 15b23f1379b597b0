// Package namefilter keeps a probabilistic set of the owner names present in the zone store,
// so deletes of names that were never added can be rejected without a store lookup.
package namefilter

import (
	"math"
	"sync"

	bitsbloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/haukened/rr-nsupdate/internal/dns/common/utils"
	"github.com/haukened/rr-nsupdate/internal/dns/domain"
	"github.com/haukened/rr-nsupdate/internal/dns/services/updater"
)

// Filter wraps a bits-and-blooms BloomFilter keyed by canonical names.
// Names are never removed: a deleted name stays a (harmless) positive.
type Filter struct {
	mu sync.RWMutex
	bf *bitsbloom.BloomFilter
	n  uint64
}

// New returns a Filter sized for capacity names at the given false-positive rate.
func New(capacity uint64, fpRate float64) *Filter {
	m, k := size(capacity, fpRate)
	return &Filter{bf: bitsbloom.New(uint(m), uint(k))}
}

// NewFromRecords returns a Filter seeded with the owner names of records.
func NewFromRecords(capacity uint64, fpRate float64, records []*domain.AuthoritativeRecord) *Filter {
	f := New(capacity, fpRate)
	for _, r := range records {
		f.Add(r.Name)
	}
	return f
}

// Add inserts a name.
func (f *Filter) Add(name string) {
	key := []byte(utils.CanonicalDNSName(name))
	f.mu.Lock()
	f.bf.Add(key)
	f.n++
	f.mu.Unlock()
}

// MayContain reports whether name might have been added. False is definitive.
func (f *Filter) MayContain(name string) bool {
	key := []byte(utils.CanonicalDNSName(name))
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.bf.Test(key)
}

// Added returns the number of Add calls so far, duplicates included.
func (f *Filter) Added() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.n
}

// FalsePositiveRate estimates the current false-positive rate from the number of adds,
// counting duplicates, so it errs high.
func (f *Filter) FalsePositiveRate() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.n == 0 {
		return 0
	}
	m, k, n := float64(f.bf.Cap()), float64(f.bf.K()), float64(f.n)
	return math.Pow(1-math.Exp(-k*n/m), k)
}

var _ updater.NameFilter = (*Filter)(nil)
