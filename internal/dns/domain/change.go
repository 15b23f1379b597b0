package domain

import (
	"fmt"
	"time"
)

// ChangeOp is the kind of mutation a Change applies to the zone store.
type ChangeOp uint8

const (
	ChangeAdd    ChangeOp = 1
	ChangeDelete ChangeOp = 2
)

func (op ChangeOp) String() string {
	switch op {
	case ChangeAdd:
		return "add"
	case ChangeDelete:
		return "delete"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(op))
	}
}

// Change is one applied mutation as it is written to the journal.
// For deletes only Name, Type and Class are meaningful.
type Change struct {
	Seq     uint64
	Op      ChangeOp
	Name    string
	Type    RRType
	Class   RRClass
	TTL     uint32
	Data    []byte
	BatchID string
	At      time.Time
}

// Record returns the authoritative record an add change carries.
func (c Change) Record() *AuthoritativeRecord {
	return &AuthoritativeRecord{
		Name:  c.Name,
		Type:  c.Type,
		Class: c.Class,
		TTL:   c.TTL,
		Data:  c.Data,
	}
}

// Validate checks the change can be replayed.
func (c Change) Validate() error {
	if c.Op != ChangeAdd && c.Op != ChangeDelete {
		return fmt.Errorf("invalid change op: %d", c.Op)
	}
	if c.Name == "" {
		return fmt.Errorf("change name must not be empty")
	}
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid RRType: %d", c.Type)
	}
	if c.Op == ChangeAdd {
		return c.Record().Validate()
	}
	return nil
}
