package updater

import "github.com/haukened/rr-nsupdate/internal/dns/domain"

// ZoneStore holds the authoritative records that updates mutate.
type ZoneStore interface {
	// AddRecord stores rec. A record with the same name, type, class and RDATA is replaced
	// in place (TTL refresh) rather than duplicated; replaced reports which happened.
	AddRecord(rec *domain.AuthoritativeRecord) (replaced bool)
	// DeleteRecords removes every record of the given name, type and class and returns how many went.
	DeleteRecords(name string, t domain.RRType, c domain.RRClass) int
	FindRecords(name string, t domain.RRType, c domain.RRClass) ([]*domain.AuthoritativeRecord, bool)
	// ZoneFor returns the zone root a name belongs to.
	ZoneFor(name string) string
	Count() int
}

// Journal persists applied changes in order.
type Journal interface {
	Append(changes ...domain.Change) error
}

// ChangeSource replays previously journaled changes in the order they were applied.
type ChangeSource interface {
	Replay(visit func(domain.Change) error) error
}

// NameFilter is a probabilistic set of owner names known to the store.
// A false MayContain is definitive; a true one must be confirmed against the store.
type NameFilter interface {
	Add(name string)
	MayContain(name string) bool
}

// History keeps recent batch reports for inspection.
type History interface {
	Record(report domain.BatchReport)
	Get(id string) (domain.BatchReport, bool)
	Recent(n int) []domain.BatchReport
}

// MessageBuilder renders a batch as RFC 2136 UPDATE messages, one per zone.
type MessageBuilder interface {
	Build(batch domain.Batch) ([]domain.UpdateMessage, error)
}
