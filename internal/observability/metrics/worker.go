package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge
	stepFailures    *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pcat",
			Subsystem: "worker",
			Name:      "ingest_process_total",
			Help:      "Total processed ingest requests by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pcat",
			Subsystem: "worker",
			Name:      "ingest_process_duration_seconds",
			Help:      "Ingest request processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pcat",
			Subsystem: "worker",
			Name:      "ingest_process_in_flight",
			Help:      "Number of in-flight ingest requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	stepFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pcat",
			Subsystem: "worker",
			Name:      "step_failures_total",
			Help:      "Total pipeline failures by step.",
		},
		[]string{"service", "step"},
	)

	registry.MustRegister(processTotal, processDuration, processInFlight, stepFailures)

	return &WorkerMetrics{
		registry:        registry,
		processTotal:    processTotal,
		processDuration: processDuration,
		processInFlight: processInFlight,
		stepFailures:    stepFailures,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartIngest() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishIngest(service string, duration time.Duration, failedStep string, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
		if failedStep != "" {
			m.stepFailures.WithLabelValues(service, failedStep).Inc()
		}
	}

	m.processTotal.WithLabelValues(service, status).Inc()
	m.processDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}
