package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "home_activity"

type Metrics struct {
	Cycles         *prometheus.CounterVec
	TenantFailures *prometheus.CounterVec
	Events         *prometheus.CounterVec
	PublishErrors  prometheus.Counter
	WindowsWritten prometheus.Counter
	DailyRows      prometheus.Counter
	CycleDuration  *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Cycles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Number of completed cycles by kind.",
		}, []string{"kind"}),
		TenantFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tenant_failures_total",
			Help:      "Number of failed tenant syncs by error kind.",
		}, []string{"kind"}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Number of activity events emitted by device class.",
		}, []string{"class"}),
		PublishErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Number of activity events that could not be published.",
		}),
		WindowsWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_written_total",
			Help:      "Number of activity windows upserted.",
		}),
		DailyRows: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "daily_stats_written_total",
			Help:      "Number of daily stats rows upserted.",
		}),
		CycleDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of cycles by kind.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8),
		}, []string{"kind"}),
	}
}

// NewForTest returns metrics registered on a private registry.
func NewForTest() *Metrics {
	return New(prometheus.NewRegistry())
}
