package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MapsCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "maps_call_duration_seconds",
		Help: "Duration of external maps provider calls.",
	}, []string{"api"})

	DBDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "db_call_duration_seconds",
		Help: "Duration of database calls.",
	}, []string{"operation"})

	PlaceCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "place_cache_requests_total",
		Help: "Place detail cache lookups by result.",
	}, []string{"result"})

	SearchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "search_failures_total",
		Help: "Shop searches that degraded to an empty result set.",
	})
)

// RecordMapsCall times an external maps provider call.
func RecordMapsCall(api string, f func() error) error {
	start := time.Now()
	err := f()
	MapsCallDuration.WithLabelValues(api).Observe(time.Since(start).Seconds())
	return err
}
