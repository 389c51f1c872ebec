package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PeopleRegistered prometheus.Counter
	PeopleUpdated    prometheus.Counter
	VersionConflicts prometheus.Counter

	WishesRegistered prometheus.Counter
	WishesReplaced   prometheus.Counter
	WishLimitHits    prometheus.Counter

	FulfillmentsStarted   prometheus.Counter
	FulfillmentsSucceeded prometheus.Counter
	FulfillmentsFailed    *prometheus.CounterVec
	NoncesTried           prometheus.Counter
	SearchDuration        prometheus.Histogram

	EndpointLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PeopleRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "northpole_people_registered_total",
			Help: "Total number of people registered",
		}),
		PeopleUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "northpole_people_updated_total",
			Help: "Total number of successful person updates",
		}),
		VersionConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "northpole_version_conflicts_total",
			Help: "Total number of optimistic lock failures on person updates",
		}),
		WishesRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "northpole_wishes_registered_total",
			Help: "Total number of wishes registered",
		}),
		WishesReplaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "northpole_wishes_replaced_total",
			Help: "Total number of wishes replaced",
		}),
		WishLimitHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "northpole_wish_limit_hits_total",
			Help: "Total number of wish registrations rejected by the three wish limit",
		}),
		FulfillmentsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "northpole_fulfillments_started_total",
			Help: "Total number of wish fulfillment requests started",
		}),
		FulfillmentsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "northpole_fulfillments_succeeded_total",
			Help: "Total number of wish fulfillments that found a valid hash",
		}),
		FulfillmentsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "northpole_fulfillments_failed_total",
			Help: "Total number of failed wish fulfillments, labeled by reason",
		}, []string{"reason"}),
		NoncesTried: promauto.NewCounter(prometheus.CounterOpts{
			Name: "northpole_pow_nonces_tried_total",
			Help: "Total number of nonces tried across all proof of work searches",
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "northpole_pow_search_duration_seconds",
			Help:    "Duration of proof of work searches in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "northpole_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}
