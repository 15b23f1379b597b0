// Package history keeps the reports of recently applied batches in a bounded LRU.
package history

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
	"github.com/haukened/rr-nsupdate/internal/dns/services/updater"
)

// reportCache is an LRU-backed implementation of updater.History keyed by batch ID.
// It tracks basic metrics: hits, misses, and evictions.
type reportCache struct {
	lru       *lru.Cache[string, domain.BatchReport]
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledHistory is a no-op History used when size <= 0.
type disabledHistory struct{}

// Stats is implemented by histories that count lookups.
type Stats interface {
	Stats() (hits, misses, evictions uint64)
}

// New creates a History holding at most size reports. If size <= 0, a
// disabled history is returned that records nothing.
func New(size int) (updater.History, error) {
	if size <= 0 {
		return &disabledHistory{}, nil
	}

	var rc reportCache
	cache, err := lru.NewWithEvict(size, func(_ string, _ domain.BatchReport) {
		atomic.AddUint64(&rc.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	rc.lru = cache
	return &rc, nil
}

// Record stores a report under its ID. Reports without an ID are dropped.
func (c *reportCache) Record(report domain.BatchReport) {
	if report.ID == "" {
		return
	}
	c.lru.Add(report.ID, report)
}

// Get looks up a report by batch ID. When found, increments hits; otherwise increments misses.
func (c *reportCache) Get(id string) (domain.BatchReport, bool) {
	if val, ok := c.lru.Get(id); ok {
		atomic.AddUint64(&c.hits, 1)
		return val, true
	}
	atomic.AddUint64(&c.misses, 1)
	return domain.BatchReport{}, false
}

// Recent returns up to n reports, most recently recorded or read first.
// n <= 0 returns all of them.
func (c *reportCache) Recent(n int) []domain.BatchReport {
	keys := c.lru.Keys() // oldest first
	if n <= 0 || n > len(keys) {
		n = len(keys)
	}
	out := make([]domain.BatchReport, 0, n)
	for i := len(keys) - 1; i >= 0 && len(out) < n; i-- {
		if r, ok := c.lru.Peek(keys[i]); ok {
			out = append(out, r)
		}
	}
	return out
}

// Stats returns cumulative hit/miss/eviction counters.
func (c *reportCache) Stats() (hits, misses, evictions uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), atomic.LoadUint64(&c.evictions)
}

func (d *disabledHistory) Record(domain.BatchReport) {}

func (d *disabledHistory) Get(string) (domain.BatchReport, bool) {
	return domain.BatchReport{}, false
}

func (d *disabledHistory) Recent(int) []domain.BatchReport { return nil }

func (d *disabledHistory) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }

var _ updater.History = (*reportCache)(nil)
var _ updater.History = (*disabledHistory)(nil)
var _ Stats = (*reportCache)(nil)
var _ Stats = (*disabledHistory)(nil)
