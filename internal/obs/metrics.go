// Package obs holds the Prometheus metrics of the dashboard.
package obs

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KaramelBytes/cardash/internal/dashboard"
)

// Metrics holds all metrics on a private registry.
type Metrics struct {
	Recomputes     prometheus.Counter
	RecomputeTime  prometheus.Histogram
	FilteredRows   prometheus.Gauge
	DatasetRows    prometheus.Gauge
	RenderDuration *prometheus.HistogramVec
	Exports        prometheus.Counter
	registry       *prometheus.Registry
}

// NewMetrics creates metrics on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		Recomputes: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardash_recomputes_total",
			Help: "Total filter recomputations",
		}),
		RecomputeTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardash_recompute_seconds",
			Help:    "Filter and panel build latency",
			Buckets: prometheus.DefBuckets,
		}),
		FilteredRows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cardash_filtered_rows",
			Help: "Rows in the most recent filtered view",
		}),
		DatasetRows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cardash_dataset_rows",
			Help: "Rows in the loaded dataset",
		}),
		RenderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cardash_chart_render_seconds",
			Help:    "PNG render latency per chart kind",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		Exports: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardash_exports_total",
			Help: "Total CSV exports",
		}),
		registry: registry,
	}
}

// Observe records one recompute. It has the dashboard observer signature.
func (m *Metrics) Observe(s *dashboard.Snapshot) {
	m.Recomputes.Inc()
	m.RecomputeTime.Observe(s.Took.Seconds())
	m.FilteredRows.Set(float64(s.View.Len()))
	m.DatasetRows.Set(float64(s.View.Dataset().Len()))
}

// ObserveRender records the time spent drawing a chart of the given kind.
func (m *Metrics) ObserveRender(kind string, d time.Duration) {
	m.RenderDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format. Compression is
// left to the server middleware.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{DisableCompression: true})
}
