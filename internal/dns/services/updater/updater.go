// Package updater applies parsed update scripts to the authoritative zone store.
package updater

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/haukened/rr-nsupdate/internal/dns/common/clock"
	"github.com/haukened/rr-nsupdate/internal/dns/common/log"
	"github.com/haukened/rr-nsupdate/internal/dns/common/metrics"
	"github.com/haukened/rr-nsupdate/internal/dns/common/rrdata"
	"github.com/haukened/rr-nsupdate/internal/dns/common/utils"
	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

var (
	// ErrNotFound marks a delete that matched no records.
	ErrNotFound = errors.New("record not found")
	// ErrNoZoneStore is returned by New when Options.Zones is nil.
	ErrNoZoneStore = errors.New("updater: zone store is required")
	// ErrNoBuilder is returned by New when dry run is requested without a MessageBuilder.
	ErrNoBuilder = errors.New("updater: dry run requires a message builder")
)

// DirectiveError records why one directive was not applied.
type DirectiveError struct {
	Batch int
	Line  int
	Err   error
}

func (e DirectiveError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e DirectiveError) Unwrap() error { return e.Err }

// Summary totals the outcome of applying a document.
type Summary struct {
	Batches  int
	Applied  int
	Failed   int
	Pending  int
	Skipped  int
	Reports  []domain.BatchReport
	Failures []DirectiveError
	// Messages holds the UPDATE messages built in dry run.
	Messages []domain.UpdateMessage
}

func (s *Summary) add(r domain.BatchReport) {
	s.Batches++
	s.Applied += r.Applied
	s.Failed += r.Failed
	s.Pending += r.Pending
	s.Skipped += r.Skipped
	s.Reports = append(s.Reports, r)
}

// Updater applies documents batch by batch.
type Updater struct {
	zones   ZoneStore
	journal Journal
	filter  NameFilter
	history History
	builder MessageBuilder
	logger  log.Logger
	clock   clock.Clock
	metrics *metrics.Metrics
	dryRun  bool
	newID   func() string
}

// Options configures an Updater. Only Zones is required; Journal, Filter, History
// and Metrics are skipped when nil.
type Options struct {
	Zones   ZoneStore
	Journal Journal
	Filter  NameFilter
	History History
	Builder MessageBuilder
	Logger  log.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics
	// DryRun builds messages with Builder and leaves the store untouched.
	DryRun bool
	// NewID generates batch IDs; defaults to random UUIDs.
	NewID func() string
}

func New(opts Options) (*Updater, error) {
	if opts.Zones == nil {
		return nil, ErrNoZoneStore
	}
	if opts.DryRun && opts.Builder == nil {
		return nil, ErrNoBuilder
	}
	u := &Updater{
		zones:   opts.Zones,
		journal: opts.Journal,
		filter:  opts.Filter,
		history: opts.History,
		builder: opts.Builder,
		logger:  opts.Logger,
		clock:   opts.Clock,
		metrics: opts.Metrics,
		dryRun:  opts.DryRun,
		newID:   opts.NewID,
	}
	if u.logger == nil {
		u.logger = log.NewNoopLogger()
	}
	if u.clock == nil {
		u.clock = clock.RealClock{}
	}
	if u.newID == nil {
		u.newID = uuid.NewString
	}
	return u, nil
}

// Apply applies every sent batch of doc in order. Updates after the last send are
// reported as pending and never applied.
//
// A directive that cannot be applied is counted as failed and the batch carries on.
// Apply only stops early when ctx is done or the journal rejects a batch; the
// summary then covers the batches handled so far.
func (u *Updater) Apply(ctx context.Context, doc domain.Document) (Summary, error) {
	var sum Summary
	for i, batch := range doc.Batches() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		report := domain.BatchReport{
			ID:    u.newID(),
			Index: i,
			Sent:  batch.Sent,
			At:    u.clock.Now(),
		}

		var err error
		switch {
		case !batch.Sent:
			u.deferBatch(batch, &report)
		case u.dryRun:
			err = u.buildBatch(batch, &report, &sum)
		default:
			err = u.applyBatch(ctx, batch, &report, &sum)
		}

		u.metrics.Batch(batch.Sent)
		if u.history != nil {
			u.history.Record(report)
		}
		sum.add(report)
		if err != nil {
			return sum, err
		}
	}
	if u.metrics != nil {
		u.metrics.ZoneRecords.Set(float64(u.zones.Count()))
	}
	return sum, nil
}

func (u *Updater) deferBatch(batch domain.Batch, report *domain.BatchReport) {
	report.Pending = len(batch.Updates)
	for _, d := range batch.Updates {
		u.metrics.Directive(opName(d), metrics.ResultPending)
	}
	if report.Pending > 0 {
		u.logger.Warn(map[string]any{
			"batch_id": report.ID,
			"updates":  report.Pending,
			"line":     batch.Updates[0].SourceLine(),
		}, "Updates without a trailing send were not applied")
	}
}

func (u *Updater) buildBatch(batch domain.Batch, report *domain.BatchReport, sum *Summary) error {
	msgs, err := u.builder.Build(batch)
	if err != nil {
		report.Failed = len(batch.Updates)
		for _, d := range batch.Updates {
			u.metrics.Directive(opName(d), metrics.ResultFailed)
		}
		sum.Failures = append(sum.Failures, DirectiveError{Batch: report.Index, Line: batch.SendLine, Err: err})
		u.logger.Error(map[string]any{"batch_id": report.ID, "error": err}, "Failed to build update messages")
		return nil
	}
	report.Skipped = len(batch.Updates)
	for _, d := range batch.Updates {
		u.metrics.Directive(opName(d), metrics.ResultSkipped)
	}
	sum.Messages = append(sum.Messages, msgs...)
	for _, m := range msgs {
		u.logger.Info(map[string]any{
			"batch_id": report.ID,
			"zone":     m.Zone,
			"adds":     m.Adds,
			"deletes":  m.Deletes,
			"bytes":    len(m.Wire),
		}, "Dry run update message built")
	}
	return nil
}

func (u *Updater) applyBatch(ctx context.Context, batch domain.Batch, report *domain.BatchReport, sum *Summary) error {
	start := time.Now()
	changes := make([]domain.Change, 0, len(batch.Updates))

	for _, d := range batch.Updates {
		if err := ctx.Err(); err != nil {
			// keep the store and journal consistent for what was already applied
			if jerr := u.appendJournal(report, changes); jerr != nil {
				return errors.Join(err, jerr)
			}
			return err
		}
		change, err := u.applyDirective(d, report)
		if err != nil {
			report.Failed++
			sum.Failures = append(sum.Failures, DirectiveError{Batch: report.Index, Line: d.SourceLine(), Err: err})
			u.metrics.Directive(opName(d), metrics.ResultFailed)
			u.logger.Warn(map[string]any{
				"batch_id": report.ID,
				"line":     d.SourceLine(),
				"error":    err,
			}, "Update not applied")
			continue
		}
		report.Applied++
		changes = append(changes, change)
		u.metrics.Directive(opName(d), metrics.ResultApplied)
	}

	if err := u.appendJournal(report, changes); err != nil {
		return err
	}
	if u.metrics != nil {
		u.metrics.ApplyDuration.Observe(time.Since(start).Seconds())
	}
	u.logger.Info(map[string]any{
		"batch_id":  report.ID,
		"send_line": batch.SendLine,
		"applied":   report.Applied,
		"failed":    report.Failed,
	}, "Batch applied")
	return nil
}

func (u *Updater) appendJournal(report *domain.BatchReport, changes []domain.Change) error {
	if u.journal == nil || len(changes) == 0 {
		return nil
	}
	if err := u.journal.Append(changes...); err != nil {
		u.logger.Error(map[string]any{"batch_id": report.ID, "error": err}, "Failed to journal batch")
		return fmt.Errorf("journal batch %s: %w", report.ID, err)
	}
	return nil
}

// applyDirective mutates the store for one update and returns the change to journal.
func (u *Updater) applyDirective(d domain.Directive, report *domain.BatchReport) (domain.Change, error) {
	switch v := d.(type) {
	case domain.UpdateAdd:
		data, err := rrdata.Encode(v.Record, v.PriorityOrZero())
		if err != nil {
			return domain.Change{}, err
		}
		rec, err := domain.NewAuthoritativeRecord(v.Name.String(), v.Type(), v.Class, v.TTL, data)
		if err != nil {
			return domain.Change{}, err
		}
		replaced := u.zones.AddRecord(rec)
		if u.filter != nil {
			u.filter.Add(rec.Name)
		}
		fields := map[string]any{
			"name":     rec.Name,
			"type":     rec.Type.String(),
			"ttl":      rec.TTL,
			"replaced": replaced,
		}
		if text, err := rrdata.Decode(rec.Type, rec.Data); err == nil {
			fields["rdata"] = text
		}
		u.logger.Debug(fields, "Record added")
		return domain.Change{
			Op:      domain.ChangeAdd,
			Name:    rec.Name,
			Type:    rec.Type,
			Class:   rec.Class,
			TTL:     rec.TTL,
			Data:    rec.Data,
			BatchID: report.ID,
			At:      report.At,
		}, nil

	case domain.UpdateDelete:
		name := v.Name.String()
		if u.filter != nil && !u.filter.MayContain(name) {
			return domain.Change{}, fmt.Errorf("%s %s: %w", name, v.Type, ErrNotFound)
		}
		n := u.zones.DeleteRecords(name, v.Type, domain.RRClassIN)
		if n == 0 {
			return domain.Change{}, fmt.Errorf("%s %s: %w", name, v.Type, ErrNotFound)
		}
		u.logger.Debug(map[string]any{
			"name":    name,
			"type":    v.Type.String(),
			"removed": n,
		}, "Records deleted")
		return domain.Change{
			Op:      domain.ChangeDelete,
			Name:    utils.CanonicalDNSName(name),
			Type:    v.Type,
			Class:   domain.RRClassIN,
			BatchID: report.ID,
			At:      report.At,
		}, nil
	}
	return domain.Change{}, fmt.Errorf("unsupported directive %T", d)
}

// Restore rebuilds the store from previously journaled changes and returns how many were replayed.
func (u *Updater) Restore(src ChangeSource) (int, error) {
	n := 0
	err := src.Replay(func(c domain.Change) error {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("change %d: %w", c.Seq, err)
		}
		switch c.Op {
		case domain.ChangeAdd:
			u.zones.AddRecord(c.Record())
			if u.filter != nil {
				u.filter.Add(c.Name)
			}
		case domain.ChangeDelete:
			u.zones.DeleteRecords(c.Name, c.Type, c.Class)
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}
	if u.metrics != nil {
		u.metrics.ZoneRecords.Set(float64(u.zones.Count()))
	}
	u.logger.Info(map[string]any{"changes": n, "record_sets": u.zones.Count()}, "Journal replayed")
	return n, nil
}

func opName(d domain.Directive) string {
	switch d.(type) {
	case domain.UpdateAdd:
		return domain.ChangeAdd.String()
	case domain.UpdateDelete:
		return domain.ChangeDelete.String()
	}
	return "send"
}
