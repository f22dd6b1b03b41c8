package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Build outcomes.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Registry holds the collectors exported by the service.
type Registry struct {
	reg *prometheus.Registry

	builds       *prometheus.CounterVec
	buildSeconds *prometheus.HistogramVec
	rows         *prometheus.GaugeVec
	tablesLoaded prometheus.Gauge
}

// New creates a Registry with process and Go runtime collectors attached.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feature_builds_total",
			Help: "Feature builds by pipeline and outcome.",
		}, []string{"pipeline", "status"}),
		buildSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feature_build_duration_seconds",
			Help:    "Time spent loading tables and deriving features.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"pipeline"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "feature_rows",
			Help: "Rows produced by the last successful build.",
		}, []string{"pipeline"}),
		tablesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_tables_loaded",
			Help: "Tables found by the last dataset load.",
		}),
	}

	r.reg.MustRegister(
		r.builds,
		r.buildSeconds,
		r.rows,
		r.tablesLoaded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveBuild records one build of the named pipeline.
func (r *Registry) ObserveBuild(pipeline string, elapsed time.Duration, rows int, err error) {
	if r == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	r.builds.WithLabelValues(pipeline, status).Inc()
	r.buildSeconds.WithLabelValues(pipeline).Observe(elapsed.Seconds())
	if err == nil {
		r.rows.WithLabelValues(pipeline).Set(float64(rows))
	}
}

// ObserveTables records how many tables a dataset load returned.
func (r *Registry) ObserveTables(n int) {
	if r == nil {
		return
	}
	r.tablesLoaded.Set(float64(n))
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}
