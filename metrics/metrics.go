// Package metrics exposes Prometheus counters for parses, fetches and the
// page cache.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors and the registry they are registered in.
type Metrics struct {
	registry *prometheus.Registry

	ParsesTotal   *prometheus.CounterVec
	ParseDuration *prometheus.HistogramVec
	FetchesTotal  *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	CacheLookups  *prometheus.CounterVec
	BatchesActive prometheus.Gauge
}

// New creates the collectors in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ParsesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridiron_parses_total",
			Help: "Pages parsed, by page type and outcome.",
		}, []string{"page", "outcome"}),
		ParseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridiron_parse_duration_seconds",
			Help:    "Time spent unwrapping and parsing a page.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"page"}),
		FetchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridiron_fetches_total",
			Help: "Page fetches, by engine and outcome.",
		}, []string{"engine", "outcome"}),
		FetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridiron_fetch_duration_seconds",
			Help:    "Time spent fetching a page.",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"engine"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridiron_cache_lookups_total",
			Help: "Fetch cache lookups, by result.",
		}, []string{"result"}),
		BatchesActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "gridiron_batches_active",
			Help: "Batches with jobs still running.",
		}),
	}
}

// ObserveParse records one parse of page.
func (m *Metrics) ObserveParse(page string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.ParsesTotal.WithLabelValues(page, outcome(err)).Inc()
	m.ParseDuration.WithLabelValues(page).Observe(d.Seconds())
}

// ObserveFetch records one fetch. engine may be empty when every engine failed.
func (m *Metrics) ObserveFetch(engine string, d time.Duration, err error) {
	if m == nil {
		return
	}
	if engine == "" {
		engine = "none"
	}
	m.FetchesTotal.WithLabelValues(engine, outcome(err)).Inc()
	m.FetchDuration.WithLabelValues(engine).Observe(d.Seconds())
}

// ObserveCache records a cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
