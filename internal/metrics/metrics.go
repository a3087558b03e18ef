// Package metrics publishes Prometheus metrics for the cache layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ReadTier identifies which tier served a read.
type ReadTier string

const (
	// TierMemory records reads served from the in-memory cache.
	TierMemory ReadTier = "memory"
	// TierStore records reads served from the durable local store.
	TierStore ReadTier = "store"
	// TierRemote records reads that required a remote fetch.
	TierRemote ReadTier = "remote"
	// TierStatic records reads that fell back to the compiled-in defaults.
	TierStatic ReadTier = "static"
)

// RefreshOutcome captures the result of a fetch-and-cache operation.
type RefreshOutcome string

const (
	RefreshOK     RefreshOutcome = "ok"
	RefreshFailed RefreshOutcome = "failed"
)

// Recorder publishes cache activity. A nil *Recorder is valid and records
// nothing, so wiring metrics stays optional.
type Recorder struct {
	reads     *prometheus.CounterVec
	refreshes *prometheus.CounterVec
	records   *prometheus.GaugeVec
}

// NewRecorder registers the cache metrics with reg and returns the recorder.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barback",
			Subsystem: "cache",
			Name:      "reads_total",
			Help:      "Collection reads by the tier that served them.",
		}, []string{"collection", "tier"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barback",
			Subsystem: "cache",
			Name:      "refreshes_total",
			Help:      "Fetch-and-cache operations by outcome.",
		}, []string{"collection", "outcome"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "barback",
			Subsystem: "cache",
			Name:      "records",
			Help:      "Records currently cached per collection.",
		}, []string{"collection"}),
	}
	reg.MustRegister(r.reads, r.refreshes, r.records)
	return r
}

// ObserveRead counts a read served by the given tier.
func (r *Recorder) ObserveRead(collection string, tier ReadTier) {
	if r == nil {
		return
	}
	r.reads.WithLabelValues(collection, string(tier)).Inc()
}

// ObserveRefresh counts a fetch-and-cache attempt.
func (r *Recorder) ObserveRefresh(collection string, outcome RefreshOutcome) {
	if r == nil {
		return
	}
	r.refreshes.WithLabelValues(collection, string(outcome)).Inc()
}

// SetRecordCount tracks the cached record count after a save or patch.
func (r *Recorder) SetRecordCount(collection string, count int) {
	if r == nil {
		return
	}
	r.records.WithLabelValues(collection).Set(float64(count))
}
