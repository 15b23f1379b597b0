// Package journal persists applied zone changes to a bbolt database so the zone store
// can be rebuilt by replaying them in order.
package journal

import (
	"encoding/binary"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
	"github.com/haukened/rr-nsupdate/internal/dns/services/updater"
)

var (
	bucketChanges = []byte("changes")
	bucketMeta    = []byte("meta")

	metaCount   = []byte("count")
	metaUpdated = []byte("updated")
)

// Stats summarises the journal contents.
type Stats struct {
	Count       uint64
	LastSeq     uint64
	UpdatedUnix int64
}

// Journal implements updater.Journal and updater.ChangeSource using bbolt.
type Journal struct {
	db *bbolt.DB
}

// Open opens (or creates) a journal at path and ensures buckets exist.
func Open(path string) (*Journal, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketChanges); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return err
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error { return j.db.Close() }

// Append writes changes in a single transaction, assigning each the next sequence number.
// Either all changes are stored or none are.
func (j *Journal) Append(changes ...domain.Change) error {
	if len(changes) == 0 {
		return nil
	}
	return j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketChanges)
		var last time.Time
		for _, c := range changes {
			if err := c.Validate(); err != nil {
				return fmt.Errorf("journal: %w", err)
			}
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			v, err := encodeChange(c)
			if err != nil {
				return err
			}
			if err := b.Put(seqKey(seq), v); err != nil {
				return err
			}
			if c.At.After(last) {
				last = c.At
			}
		}
		if last.IsZero() {
			last = time.Now()
		}
		return j.bumpMeta(tx, uint64(len(changes)), last.Unix())
	})
}

func (j *Journal) bumpMeta(tx *bbolt.Tx, added uint64, updated int64) error {
	m := tx.Bucket(bucketMeta)
	var count uint64
	if v := m.Get(metaCount); len(v) == 8 {
		count = binary.BigEndian.Uint64(v)
	}
	cbuf := make([]byte, 8)
	ubuf := make([]byte, 8)
	binary.BigEndian.PutUint64(cbuf, count+added)
	binary.BigEndian.PutUint64(ubuf, uint64(updated))
	if err := m.Put(metaCount, cbuf); err != nil {
		return err
	}
	return m.Put(metaUpdated, ubuf)
}

// Replay calls visit for every stored change in sequence order. A visit error stops
// the replay and is returned as is.
func (j *Journal) Replay(visit func(domain.Change) error) error {
	return j.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketChanges)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			c, err := decodeChange(v)
			if err != nil {
				return fmt.Errorf("journal entry %x: %w", k, err)
			}
			if len(k) == 8 {
				c.Seq = binary.BigEndian.Uint64(k)
			}
			return visit(c)
		})
	})
}

// Stats returns entry counts and the last update time.
func (j *Journal) Stats() Stats {
	st := Stats{}
	_ = j.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketChanges); b != nil {
			st.LastSeq = b.Sequence()
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get(metaCount); len(v) == 8 {
				st.Count = binary.BigEndian.Uint64(v)
			}
			if v := b.Get(metaUpdated); len(v) == 8 {
				st.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
			}
		}
		return nil
	})
	return st
}

// Truncate removes every stored change. Sequence numbers keep increasing afterwards.
func (j *Journal) Truncate() error {
	return j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketChanges)
		seq := b.Sequence()
		if err := tx.DeleteBucket(bucketChanges); err != nil {
			return err
		}
		nb, err := tx.CreateBucket(bucketChanges)
		if err != nil {
			return err
		}
		if err := nb.SetSequence(seq); err != nil {
			return err
		}
		m := tx.Bucket(bucketMeta)
		if err := m.Delete(metaCount); err != nil {
			return err
		}
		return nil
	})
}

var _ updater.Journal = (*Journal)(nil)
var _ updater.ChangeSource = (*Journal)(nil)
