package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

const codecVersion = 1

// ErrCorrupt is returned when a stored change cannot be decoded.
var ErrCorrupt = errors.New("journal: corrupt entry")

// Entry layout, big-endian:
//
//	version u8 | op u8 | type u16 | class u16 | ttl u32 | at i64 (unix nanos)
//	name len u16 + bytes | batch id len u8 + bytes | data len u16 + bytes
const fixedLen = 1 + 1 + 2 + 2 + 4 + 8

func encodeChange(c domain.Change) ([]byte, error) {
	if len(c.Name) > math.MaxUint16 || len(c.Data) > math.MaxUint16 || len(c.BatchID) > math.MaxUint8 {
		return nil, fmt.Errorf("journal: change for %s too large to store", c.Name)
	}
	var at int64
	if !c.At.IsZero() {
		at = c.At.UnixNano()
	}
	buf := make([]byte, 0, fixedLen+2+len(c.Name)+1+len(c.BatchID)+2+len(c.Data))
	buf = append(buf, codecVersion, byte(c.Op))
	buf = binary.BigEndian.AppendUint16(buf, uint16(c.Type))
	buf = binary.BigEndian.AppendUint16(buf, uint16(c.Class))
	buf = binary.BigEndian.AppendUint32(buf, c.TTL)
	buf = binary.BigEndian.AppendUint64(buf, uint64(at))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(c.Name)))
	buf = append(buf, c.Name...)
	buf = append(buf, byte(len(c.BatchID)))
	buf = append(buf, c.BatchID...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(c.Data)))
	buf = append(buf, c.Data...)
	return buf, nil
}

func decodeChange(b []byte) (domain.Change, error) {
	if len(b) < fixedLen || b[0] != codecVersion {
		return domain.Change{}, ErrCorrupt
	}
	c := domain.Change{
		Op:    domain.ChangeOp(b[1]),
		Type:  domain.RRType(binary.BigEndian.Uint16(b[2:4])),
		Class: domain.RRClass(binary.BigEndian.Uint16(b[4:6])),
		TTL:   binary.BigEndian.Uint32(b[6:10]),
	}
	if at := int64(binary.BigEndian.Uint64(b[10:18])); at != 0 {
		c.At = time.Unix(0, at).UTC()
	}
	rest := b[fixedLen:]

	name, rest, ok := readField(rest, 2)
	if !ok {
		return domain.Change{}, ErrCorrupt
	}
	id, rest, ok := readField(rest, 1)
	if !ok {
		return domain.Change{}, ErrCorrupt
	}
	data, rest, ok := readField(rest, 2)
	if !ok || len(rest) != 0 {
		return domain.Change{}, ErrCorrupt
	}
	c.Name = string(name)
	c.BatchID = string(id)
	if len(data) > 0 {
		c.Data = append([]byte(nil), data...)
	}
	return c, nil
}

// readField reads a length-prefixed field whose prefix is width bytes wide.
func readField(b []byte, width int) (field, rest []byte, ok bool) {
	if len(b) < width {
		return nil, nil, false
	}
	var n int
	if width == 1 {
		n = int(b[0])
	} else {
		n = int(binary.BigEndian.Uint16(b))
	}
	b = b[width:]
	if len(b) < n {
		return nil, nil, false
	}
	return b[:n], b[n:], true
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
