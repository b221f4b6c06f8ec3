package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Brownie44l1/iris-api/internal/version"
)

const (
	Namespace = "iris"
	Subsystem = "api"
)

// Variables declared for metrics.
var (
	PredictCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "predict_total",
		Help:      "Counter of the number of predictions, by predicted label.",
	}, []string{"label"})

	PredictFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "predict_failure_total",
		Help:      "Counter of the number of failed predictions.",
	})

	PredictConfidence = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "predict_confidence",
		Help:      "Histogram of the confidence of predictions.",
		Buckets:   []float64{0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 0.99, 1},
	})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"git_version", "git_commit", "go_version"})
)

func init() {
	VersionGauge.WithLabelValues(version.GitVersion, version.GitCommit, version.GoVersion).Set(1)
}
