package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelfront_searches_total",
		Help: "Flight searches handled, by trip type and outcome.",
	}, []string{"trip_type", "outcome"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "travelfront_search_duration_seconds",
		Help:    "End-to-end flight search latency.",
		Buckets: prometheus.DefBuckets,
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travelfront_search_cache_hits_total",
		Help: "Searches answered from the result cache.",
	})

	SupersededSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travelfront_superseded_searches_total",
		Help: "In-flight searches discarded because a newer one was dispatched.",
	})

	UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelfront_upstream_failures_total",
		Help: "Failed calls to remote backends, by endpoint.",
	}, []string{"endpoint"})

	BookingsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelfront_bookings_submitted_total",
		Help: "Booking submissions forwarded upstream, by kind and outcome.",
	}, []string{"kind", "outcome"})
)
