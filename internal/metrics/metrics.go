// Package metrics exposes Prometheus instrumentation for the claim
// extraction service: request counters and durations per endpoint, and
// business metrics for document processing and storage.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a dedicated registry, so
// multiple instances never collide on the global default.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Errors          *prometheus.CounterVec

	DocumentsProcessed prometheus.Counter
	DocumentsInStorage prometheus.Gauge
	OCRDuration        prometheus.Histogram
	ExtractionDuration prometheus.Histogram
}

// New creates and registers the service collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total requests",
		}, []string{"method", "endpoint"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "request_duration_seconds",
			Help: "Request duration in seconds",
		}, []string{"method", "endpoint"}),

		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total errors",
		}, []string{"method", "endpoint", "error_type"}),

		DocumentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "documents_processed_total",
			Help: "Total number of documents processed",
		}),

		DocumentsInStorage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "documents_in_storage",
			Help: "Number of documents currently in storage",
		}),

		OCRDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "ocr_processing_duration_seconds",
			Help: "OCR processing time in seconds",
		}),

		ExtractionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "extraction_processing_duration_seconds",
			Help: "Extraction processing time in seconds",
		}),
	}

	m.registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.Errors,
		m.DocumentsProcessed,
		m.DocumentsInStorage,
		m.OCRDuration,
		m.ExtractionDuration,
	)

	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
