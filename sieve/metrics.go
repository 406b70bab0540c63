package sieve

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes reported in metrics.
const (
	outcomeSaved   = "saved"
	outcomeInvalid = "invalid"
	outcomeFailed  = "failed"
)

type metrics struct {
	registry     *prometheus.Registry
	submissions  *prometheus.CounterVec
	saveDuration *prometheus.HistogramVec
	queued       prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sieve",
			Name:      "submissions_total",
			Help:      "Form submissions by form and outcome",
		}, []string{"form", "outcome"}),
		saveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sieve",
			Name:      "save_duration_seconds",
			Help:      "Time from queueing a submission to the end of its save",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
		queued: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "sieve",
			Name:      "submissions_pending",
			Help:      "Submissions queued or being saved",
		}),
	}
}

func (m *metrics) observe(form, outcome string, start time.Time) {
	m.submissions.WithLabelValues(form, outcome).Inc()
	m.saveDuration.WithLabelValues(form).Observe(time.Since(start).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
