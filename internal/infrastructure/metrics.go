package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the screening pipeline.
type Metrics struct {
	UploadsTotal       prometheus.Counter
	ParseFailuresTotal *prometheus.CounterVec
	ScreensTotal       prometheus.Counter
	ExportsTotal       *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge
	UploadRows         prometheus.Histogram
}

// NewMetrics registers the application collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		UploadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "screener",
			Name:      "uploads_total",
			Help:      "Number of workbook uploads accepted.",
		}),
		ParseFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screener",
			Name:      "parse_failures_total",
			Help:      "Number of rejected uploads by failure kind.",
		}, []string{"kind"}),
		ScreensTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "screener",
			Name:      "screens_total",
			Help:      "Number of screening runs executed.",
		}),
		ExportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "screener",
			Name:      "exports_total",
			Help:      "Number of result exports by format.",
		}, []string{"format"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "screener",
			Name:      "active_sessions",
			Help:      "Datasets currently held in memory.",
		}),
		UploadRows: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "screener",
			Name:      "upload_rows",
			Help:      "Cleaned row count per accepted upload.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),
	}
}
