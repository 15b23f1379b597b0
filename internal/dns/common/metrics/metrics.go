// Package metrics holds the Prometheus instruments for applying update scripts.
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Directive outcomes.
const (
	ResultApplied = "applied"
	ResultFailed  = "failed"
	ResultPending = "pending"
	ResultSkipped = "skipped"
)

// Metrics groups the counters the updater reports into.
type Metrics struct {
	// Directives counts update directives by operation (add, delete) and result.
	Directives *prometheus.CounterVec
	// Batches counts batches by whether a send closed them.
	Batches *prometheus.CounterVec
	// ApplyDuration observes the time spent applying one batch.
	ApplyDuration prometheus.Histogram
	// ZoneRecords tracks the number of record sets held by the zone store.
	ZoneRecords prometheus.Gauge
}

// New registers the instruments with reg. A nil reg creates unregistered instruments.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Directives: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nsupdate_directives_total",
			Help: "Total number of update directives processed",
		}, []string{"op", "result"}),
		Batches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nsupdate_batches_total",
			Help: "Total number of batches processed",
		}, []string{"state"}),
		ApplyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nsupdate_batch_apply_duration_seconds",
			Help:    "Histogram of batch apply duration",
			Buckets: prometheus.DefBuckets,
		}),
		ZoneRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "nsupdate_zone_record_sets",
			Help: "Number of record sets in the zone store",
		}),
	}
}

// Directive increments the directive counter for op and result.
func (m *Metrics) Directive(op, result string) {
	if m == nil {
		return
	}
	m.Directives.WithLabelValues(op, result).Inc()
}

// Batch increments the batch counter.
func (m *Metrics) Batch(sent bool) {
	if m == nil {
		return
	}
	state := "pending"
	if sent {
		state = "sent"
	}
	m.Batches.WithLabelValues(state).Inc()
}

// Summary flattens every counter and gauge gathered from g into "name{label=value,...}" keys.
// Histograms are reported by their sample count.
func Summary(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			key := mf.GetName()
			if len(labels) > 0 {
				key += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
