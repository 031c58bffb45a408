package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector contains the service's prometheus metrics.
type Collector struct {
	LookupsTotal   *prometheus.CounterVec
	LookupDuration prometheus.Histogram
	AuditWritten   prometheus.Counter
	AuditDropped   prometheus.Counter
}

// NewCollector registers all metrics against reg. Tests pass a fresh
// prometheus.NewRegistry to avoid duplicate registration.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		LookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tgscope_lookups_total",
			Help: "Lookups processed, by resolved kind and outcome.",
		}, []string{"kind", "outcome"}),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tgscope_lookup_duration_seconds",
			Help:    "End to end duration of one lookup.",
			Buckets: prometheus.DefBuckets,
		}),
		AuditWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "tgscope_audit_events_written_total",
			Help: "Lookup audit events persisted.",
		}),
		AuditDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "tgscope_audit_events_dropped_total",
			Help: "Lookup audit events dropped because the buffer was full.",
		}),
	}
}
