package observability

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwapTransitions counts lifecycle operations by action and outcome.
	SwapTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_swap_transitions_total",
		Help: "Total swap request lifecycle operations by action and result",
	}, []string{"action", "result"})

	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_notifications_published_total",
		Help: "Total notifications published to subscribers by type",
	}, []string{"type"})

	// CacheLookups counts stats cache hits and misses.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_cache_lookups_total",
		Help: "Total cache lookups by cache name and outcome",
	}, []string{"cache", "outcome"})
)

// NewHTTPMetrics returns the fiber middleware that records request metrics.
func NewHTTPMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	prom := fiberprometheus.New(serviceName)
	prom.SetSkipPaths([]string{"/health", "/metrics"})
	return prom
}
