package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	ingestTotal       *prometheus.CounterVec
	ingestDuration    *prometheus.HistogramVec
	stepFailuresTotal *prometheus.CounterVec
	batchItemsTotal   *prometheus.CounterVec
	batchSize         *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pcat",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pcat",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pcat",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	ingestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pcat",
			Subsystem: "ingest",
			Name:      "perfumes_total",
			Help:      "Total ingestion attempts by outcome.",
		},
		[]string{"service", "status"},
	)
	ingestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pcat",
			Subsystem: "ingest",
			Name:      "duration_seconds",
			Help:      "End-to-end single-item ingestion duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	stepFailuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pcat",
			Subsystem: "ingest",
			Name:      "step_failures_total",
			Help:      "Total pipeline failures by step.",
		},
		[]string{"service", "step"},
	)
	batchItemsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pcat",
			Subsystem: "ingest",
			Name:      "batch_items_total",
			Help:      "Total batch items processed by outcome.",
		},
		[]string{"service", "status"},
	)
	batchSize := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pcat",
			Subsystem: "ingest",
			Name:      "batch_size",
			Help:      "Distribution of batch sizes submitted for ingestion.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 250},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		ingestTotal,
		ingestDuration,
		stepFailuresTotal,
		batchItemsTotal,
		batchSize,
	)

	return &HTTPServerMetrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		ingestTotal:       ingestTotal,
		ingestDuration:    ingestDuration,
		stepFailuresTotal: stepFailuresTotal,
		batchItemsTotal:   batchItemsTotal,
		batchSize:         batchSize,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/perfumes/") && path != "/v1/perfumes/search":
		return "/v1/perfumes/{perfume_id}"
	case strings.HasPrefix(path, "/v1/ingredients/"):
		return "/v1/ingredients/{ingredient_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordIngest(service string, success bool, failedStep string, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
		if failedStep != "" {
			m.stepFailuresTotal.WithLabelValues(service, failedStep).Inc()
		}
	}
	m.ingestTotal.WithLabelValues(service, status).Inc()
	m.ingestDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordBatch(service string, total, successful, failed int) {
	m.batchSize.WithLabelValues(service).Observe(float64(total))
	if successful > 0 {
		m.batchItemsTotal.WithLabelValues(service, "success").Add(float64(successful))
	}
	if failed > 0 {
		m.batchItemsTotal.WithLabelValues(service, "error").Add(float64(failed))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
