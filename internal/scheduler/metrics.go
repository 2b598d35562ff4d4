package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts renewal scan outcomes. Registered once at bootstrap.
type Metrics struct {
	scans              prometheus.Counter
	subscriptionsDue   prometheus.Counter
	deliveriesCreated  prometheus.Counter
	renewalFailures    prometheus.Counter
	scanDurationSecond prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		scans: factory.NewCounter(prometheus.CounterOpts{
			Name: "renewal_scans_total",
			Help: "Number of renewal scans executed.",
		}),
		subscriptionsDue: factory.NewCounter(prometheus.CounterOpts{
			Name: "renewal_subscriptions_due_total",
			Help: "Number of due subscriptions picked up by scans.",
		}),
		deliveriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "renewal_deliveries_created_total",
			Help: "Number of deliveries materialized by the scheduler.",
		}),
		renewalFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "renewal_failures_total",
			Help: "Number of subscriptions whose renewal failed.",
		}),
		scanDurationSecond: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "renewal_scan_duration_seconds",
			Help:    "Duration of full renewal scans.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
