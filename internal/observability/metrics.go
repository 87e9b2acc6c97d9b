// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Normalization metrics
	TokensNormalized  prometheus.Counter
	WalletsNormalized prometheus.Counter
	NormalizeErrors   *prometheus.CounterVec

	// Provider metrics
	ProviderCallLatency *prometheus.HistogramVec
	ProviderCallErrors  *prometheus.CounterVec

	// Storage metrics
	EntitiesUpserted  *prometheus.CounterVec
	SnapshotsInserted prometheus.Counter
	StoreErrors       *prometheus.CounterVec

	// Collector metrics
	TickDuration       prometheus.Histogram
	TicksTotal         *prometheus.CounterVec
	LastSuccessfulTick prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered on the default
// registry. Call at most once per process; use NewMetricsWith in tests.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates a new Metrics instance registered on reg.
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "tokenradar"
	}
	factory := promauto.With(reg)

	return &Metrics{
		TokensNormalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalize",
			Name:      "tokens_total",
			Help:      "Total number of tokens normalized",
		}),
		WalletsNormalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalize",
			Name:      "wallets_total",
			Help:      "Total number of wallets normalized",
		}),
		NormalizeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalize",
			Name:      "errors_total",
			Help:      "Total number of normalization failures by entity",
		}, []string{"entity"}),

		ProviderCallLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "call_latency_seconds",
			Help:      "Provider API call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		ProviderCallErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "call_errors_total",
			Help:      "Total number of provider API call errors by method",
		}, []string{"method"}),

		EntitiesUpserted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "entities_upserted_total",
			Help:      "Total number of entities upserted by kind",
		}, []string{"entity"}),
		SnapshotsInserted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "snapshots_inserted_total",
			Help:      "Total number of token snapshots inserted",
		}),
		StoreErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "errors_total",
			Help:      "Total number of store errors by backend",
		}, []string{"backend"}),

		TickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "tick_duration_seconds",
			Help:      "Collector tick duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		TicksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "ticks_total",
			Help:      "Total number of collector ticks by status",
		}, []string{"status"}),
		LastSuccessfulTick: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "last_successful_tick_timestamp",
			Help:      "Unix timestamp of the last successful collector tick",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
