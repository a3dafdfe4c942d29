package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookings"

type Metrics struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	DatasetsLoaded   *prometheus.CounterVec
	SchemaRejections prometheus.Counter
	RowsLoaded       prometheus.Histogram
	ActiveDatasets   prometheus.Gauge

	EvaluateDuration prometheus.Histogram
	Exports          *prometheus.CounterVec
}

// registry propio por instancia (tests levantan varios servidores)
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "code"}),
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DatasetsLoaded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "datasets_loaded_total",
			Help:      "Datasets loaded by source",
		}, []string{"source"}),
		SchemaRejections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "schema_rejections_total",
			Help:      "Loads rejected because the CSV did not match the expected columns",
		}),
		RowsLoaded: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rows_per_dataset",
			Help:      "Row count of loaded datasets",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),
		ActiveDatasets: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "active_datasets",
			Help:      "Datasets currently held in memory",
		}),
		EvaluateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "metrics",
			Name:      "evaluate_duration_seconds",
			Help:      "Time spent filtering, aggregating and projecting one dataset",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "runs_total",
			Help:      "Sink exports by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
