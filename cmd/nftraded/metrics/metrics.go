// Package metrics provides Prometheus metrics for the daemon.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nftrade"

// Metrics holds all Prometheus metrics of the daemon.
type Metrics struct {
	registry *prometheus.Registry

	// Ledger metrics
	TxTotal    *prometheus.CounterVec
	TxDuration *prometheus.HistogramVec
	Height     prometheus.Gauge

	// Swap metrics
	SwapEvents *prometheus.CounterVec

	// Publisher metrics
	Published     prometheus.Counter
	PublishErrors prometheus.Counter
	Dropped       prometheus.Counter
}

// New creates all metrics and registers them in a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		TxTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "transactions_total",
			Help:      "Total number of delivered transactions by message path and result",
		}, []string{"path", "result"}),
		TxDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "transaction_duration_seconds",
			Help:      "Time spent delivering and committing a transaction",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		Height: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "height",
			Help:      "Version of the last commit",
		}),
		SwapEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "swap",
			Name:      "events_total",
			Help:      "Total number of committed swap state changes",
		}, []string{"event"}),
		Published: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "publisher",
			Name:      "published_total",
			Help:      "Total number of events published to redis",
		}),
		PublishErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "publisher",
			Name:      "errors_total",
			Help:      "Total number of failed publish attempts",
		}),
		Dropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "publisher",
			Name:      "dropped_total",
			Help:      "Total number of events dropped because the queue was full",
		}),
	}
}

// ObserveTx records a delivered transaction.
func (m *Metrics) ObserveTx(path string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.TxTotal.WithLabelValues(path, result).Inc()
	m.TxDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

// Registry returns the registry holding all metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing all metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
