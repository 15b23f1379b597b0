package zonecache

import (
	"sort"
	"sync"

	"github.com/haukened/rr-nsupdate/internal/dns/common/utils"
	"github.com/haukened/rr-nsupdate/internal/dns/domain"
	"github.com/haukened/rr-nsupdate/internal/dns/services/updater"
)

// ZoneCache is an in-memory implementation of updater.ZoneStore.
// It holds authoritative records grouped by zone and is safe for concurrent use.
type ZoneCache struct {
	mu    sync.RWMutex
	zones map[string]map[string][]*domain.AuthoritativeRecord
	//    zoneRoot → CacheKey → records
}

// New creates a new ZoneCache instance
func New() *ZoneCache {
	return &ZoneCache{
		zones: make(map[string]map[string][]*domain.AuthoritativeRecord),
	}
}

// ZoneFor returns the zone root a name belongs to: the longest loaded zone containing it,
// or its registrable domain when no loaded zone does.
func (zc *ZoneCache) ZoneFor(name string) string {
	zc.mu.RLock()
	defer zc.mu.RUnlock()
	return zc.zoneFor(utils.CanonicalDNSName(name))
}

func (zc *ZoneCache) zoneFor(fqdn string) string {
	best := ""
	for root := range zc.zones {
		if utils.IsSubdomain(fqdn, root) && len(root) > len(best) {
			best = root
		}
	}
	if best != "" {
		return best
	}
	return utils.GetApexDomain(fqdn)
}

// FindRecords returns the records stored under name, type and class.
func (zc *ZoneCache) FindRecords(name string, t domain.RRType, c domain.RRClass) ([]*domain.AuthoritativeRecord, bool) {
	zc.mu.RLock()
	defer zc.mu.RUnlock()

	fqdn := utils.CanonicalDNSName(name)
	zoneRecords, found := zc.zones[zc.zoneFor(fqdn)]
	if !found {
		return nil, false
	}
	records, exists := zoneRecords[domain.GenerateCacheKey(fqdn, t, c)]
	if !exists || len(records) == 0 {
		return nil, false
	}
	out := make([]*domain.AuthoritativeRecord, len(records))
	copy(out, records)
	return out, true
}

// AddRecord stores rec in the zone its name belongs to, creating the zone when needed.
// A record with identical RDATA under the same key is replaced, so its TTL is refreshed.
func (zc *ZoneCache) AddRecord(rec *domain.AuthoritativeRecord) bool {
	zc.mu.Lock()
	defer zc.mu.Unlock()

	root := zc.zoneFor(utils.CanonicalDNSName(rec.Name))
	zoneMap, ok := zc.zones[root]
	if !ok {
		zoneMap = make(map[string][]*domain.AuthoritativeRecord)
		zc.zones[root] = zoneMap
	}
	key := rec.CacheKey()
	for i, existing := range zoneMap[key] {
		if existing.SameData(rec) {
			zoneMap[key][i] = rec
			return true
		}
	}
	zoneMap[key] = append(zoneMap[key], rec)
	return false
}

// DeleteRecords removes the record set at name, type and class and returns its size.
func (zc *ZoneCache) DeleteRecords(name string, t domain.RRType, c domain.RRClass) int {
	zc.mu.Lock()
	defer zc.mu.Unlock()

	fqdn := utils.CanonicalDNSName(name)
	zoneMap, ok := zc.zones[zc.zoneFor(fqdn)]
	if !ok {
		return 0
	}
	key := domain.GenerateCacheKey(fqdn, t, c)
	n := len(zoneMap[key])
	delete(zoneMap, key)
	return n
}

// PutZone replaces all records for a zone with new records
func (zc *ZoneCache) PutZone(zoneRoot string, records []*domain.AuthoritativeRecord) {
	zoneRoot = utils.CanonicalDNSName(zoneRoot)

	zc.mu.Lock()
	defer zc.mu.Unlock()

	zoneMap := make(map[string][]*domain.AuthoritativeRecord)
	for _, record := range records {
		zoneMap[record.CacheKey()] = append(zoneMap[record.CacheKey()], record)
	}
	zc.zones[zoneRoot] = zoneMap
}

// RemoveZone removes all records for a zone
func (zc *ZoneCache) RemoveZone(zoneRoot string) {
	zoneRoot = utils.CanonicalDNSName(zoneRoot)

	zc.mu.Lock()
	defer zc.mu.Unlock()

	delete(zc.zones, zoneRoot)
}

// Zones returns the roots of all zones held, sorted.
func (zc *ZoneCache) Zones() []string {
	zc.mu.RLock()
	defer zc.mu.RUnlock()

	zones := make([]string, 0, len(zc.zones))
	for zoneRoot := range zc.zones {
		zones = append(zones, zoneRoot)
	}
	sort.Strings(zones)
	return zones
}

// All returns every record of a zone ordered by key, or nil when the zone is unknown.
func (zc *ZoneCache) All(zoneRoot string) []*domain.AuthoritativeRecord {
	zoneRoot = utils.CanonicalDNSName(zoneRoot)

	zc.mu.RLock()
	defer zc.mu.RUnlock()

	zoneMap, ok := zc.zones[zoneRoot]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(zoneMap))
	for k := range zoneMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []*domain.AuthoritativeRecord
	for _, k := range keys {
		out = append(out, zoneMap[k]...)
	}
	return out
}

// Count returns the number of record sets across all zones.
func (zc *ZoneCache) Count() int {
	zc.mu.RLock()
	defer zc.mu.RUnlock()

	count := 0
	for _, zone := range zc.zones {
		count += len(zone)
	}

	return count
}

// Ensure ZoneCache implements updater.ZoneStore at compile time
var _ updater.ZoneStore = (*ZoneCache)(nil)
