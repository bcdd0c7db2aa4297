package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the dashboard service.
type Metrics struct {
	RecordsLoaded prometheus.Gauge
	RowsDropped   prometheus.Counter

	ViewUpdates        *prometheus.CounterVec // label: mode={density,points,placeholder}
	ViewUpdateDuration prometheus.Histogram
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_map",
			Name:      "records_loaded",
			Help:      "Records retained in the in-memory table after cleaning.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_map",
			Name:      "rows_dropped_total",
			Help:      "Input rows dropped during load for missing coordinates, type, or location.",
		}),
		ViewUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_map",
			Name:      "view_updates_total",
			Help:      "View updater invocations by selected render mode.",
		}, []string{"mode"}),
		ViewUpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_map",
			Name:      "view_update_duration_seconds",
			Help:      "Duration of a full filter-and-summarize view update.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}

	prometheus.MustRegister(
		m.RecordsLoaded,
		m.RowsDropped,
		m.ViewUpdates,
		m.ViewUpdateDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered instruments to
// avoid "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsLoaded:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disaster_map", Name: "records_loaded"}),
		RowsDropped:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_map", Name: "rows_dropped_total"}),
		ViewUpdates:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_map", Name: "view_updates_total"}, []string{"mode"}),
		ViewUpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "disaster_map", Name: "view_update_duration_seconds"}),
	}
}
