package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Slot computation metrics
	SlotComputations *prometheus.CounterVec
	SlotsReturned    *prometheus.HistogramVec
	ComputeLatency   *prometheus.HistogramVec

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Cache metrics
	CacheLookups    *prometheus.CounterVec
	RedisOperations *prometheus.CounterVec
	Invalidations   *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them with reg
func NewMetrics(namespace, subsystem string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SlotComputations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slot_computations_total",
			Help:      "Total number of slot computations by booking flow and outcome",
		}, []string{"flow", "outcome"}),
		SlotsReturned: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slots_returned",
			Help:      "Number of slots returned per computation",
			Buckets:   []float64{0, 1, 4, 8, 16, 32, 64, 128},
		}, []string{"flow"}),
		ComputeLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "slot_computation_duration_seconds",
			Help:      "Time spent gathering inputs and computing slots",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"flow"}),

		DatabaseOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache and result",
		}, []string{"cache", "result"}),
		RedisOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "redis_operations_total",
			Help:      "Total number of Redis operations",
		}, []string{"operation", "status"}),
		Invalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_invalidations_total",
			Help:      "Cache invalidation events received",
		}, []string{"channel"}),
	}
}

// ObserveDB records one database operation
func (m *Metrics) ObserveDB(operation string, start time.Time, err error) {
	m.DatabaseOperations.WithLabelValues(operation, status(err)).Inc()
	m.DatabaseLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveRedis records one Redis operation
func (m *Metrics) ObserveRedis(operation string, err error) {
	m.RedisOperations.WithLabelValues(operation, status(err)).Inc()
}

func (m *Metrics) CacheHit(cache string)  { m.CacheLookups.WithLabelValues(cache, "hit").Inc() }
func (m *Metrics) CacheMiss(cache string) { m.CacheLookups.WithLabelValues(cache, "miss").Inc() }

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
