package countserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the count server.
type Metrics struct {
	ParsesTotal   *prometheus.CounterVec
	ParseDuration prometheus.Histogram
	MemoEntries   prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		ParsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkcount_parses_total",
				Help: "Total parses by outcome (exact, saturated, truncated, error).",
			},
			[]string{"outcome"},
		),
		ParseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linkcount_parse_duration_seconds",
				Help:    "Whole-sentence counting latency in seconds.",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
		),
		MemoEntries: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linkcount_memo_entries",
				Help:    "Memo table entries held at the end of a parse.",
				Buckets: prometheus.ExponentialBuckets(16, 4, 10),
			},
		),
	}
	prometheus.MustRegister(m.ParsesTotal, m.ParseDuration, m.MemoEntries)
	return m
}

// Handler exposes the scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
