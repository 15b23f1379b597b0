package domain

import "time"

// Batch is the group of updates a single send flushes.
// The updates after the last send form a batch with Sent set to false.
type Batch struct {
	Updates []Directive
	Sent    bool
	// SendLine is the line of the terminating send, 0 when unsent.
	SendLine int
}

// Batches splits the document at every send, in source order.
// Consecutive sends produce empty batches; an unsent tail is returned last and only if non-empty.
func (d Document) Batches() []Batch {
	var out []Batch
	var pending []Directive
	for _, dir := range d.Directives {
		if s, ok := dir.(Send); ok {
			out = append(out, Batch{Updates: pending, Sent: true, SendLine: s.Line})
			pending = nil
			continue
		}
		pending = append(pending, dir)
	}
	if len(pending) > 0 {
		out = append(out, Batch{Updates: pending})
	}
	return out
}

// BatchReport records the outcome of applying one batch.
type BatchReport struct {
	ID      string
	Index   int
	Sent    bool
	Applied int
	Failed  int
	Pending int
	Skipped int // dry run
	At      time.Time
}

// UpdateMessage is one packed RFC 2136 UPDATE message built from a batch.
type UpdateMessage struct {
	Zone    string
	Adds    int
	Deletes int
	Wire    []byte
	Text    string
}
