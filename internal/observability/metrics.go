package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the hazard-zone service.
type Metrics struct {
	// Query metrics.
	Queries       *prometheus.CounterVec // labels: outcome={matched,empty,invalid,error}
	QueryDuration prometheus.Histogram
	QueryMatches  prometheus.Histogram

	// Dataset metrics.
	DatasetZones   prometheus.Gauge
	DatasetReloads *prometheus.CounterVec // labels: result={success,unchanged,error}

	// Match-event feed metrics.
	MatchEvents        *prometheus.CounterVec // labels: outcome={published,error}
	MatchEventsEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Queries,
		m.QueryDuration,
		m.QueryMatches,
		m.DatasetZones,
		m.DatasetReloads,
		m.MatchEvents,
		m.MatchEventsEnabled,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_zones",
			Name:      "queries_total",
			Help:      "Point queries by outcome.",
		}, []string{"outcome"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hazard_zones",
			Name:      "query_duration_seconds",
			Help:      "Time spent evaluating a point query against the dataset.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		QueryMatches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hazard_zones",
			Name:      "query_matches",
			Help:      "Number of zones matched per successful query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		}),
		DatasetZones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hazard_zones",
			Name:      "dataset_zones",
			Help:      "Number of zones in the active dataset snapshot.",
		}),
		DatasetReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_zones",
			Name:      "dataset_reloads_total",
			Help:      "Dataset reload attempts by result.",
		}, []string{"result"}),
		MatchEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_zones",
			Name:      "match_events_total",
			Help:      "Match events handed to the Kafka feed by outcome.",
		}, []string{"outcome"}),
		MatchEventsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hazard_zones",
			Name:      "match_events_enabled",
			Help:      "1 when the match-event feed is enabled, 0 otherwise.",
		}),
	}
}
