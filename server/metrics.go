package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zero-day-ai/firecheck/schema"
)

const namespace = "firecheck"

// Metrics holds the Prometheus metrics of the service. Each Metrics owns
// its registry, so several servers can run in one process.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ValidationsTotal *prometheus.CounterVec
	ViolationsTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics, along with the
// Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "code"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),

		ValidationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Total number of documents validated, by result",
		}, []string{"result"}),
		ViolationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "violations_total",
			Help:      "Total number of violations reported, by kind",
		}, []string{"kind"}),
	}
}

// RecordValidation counts one validation outcome and its violations.
func (m *Metrics) RecordValidation(result string, violations []schema.Violation) {
	m.ValidationsTotal.WithLabelValues(result).Inc()
	for _, v := range violations {
		m.ViolationsTotal.WithLabelValues(string(v.Kind)).Inc()
	}
}
