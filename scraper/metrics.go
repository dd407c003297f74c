package scraper

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for one run of the tool.
type Metrics struct {
	Registry         *prometheus.Registry
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  prometheus.Histogram
	ErrorsTotal      *prometheus.CounterVec
	PageBytes        prometheus.Gauge
	LotsExtracted    prometheus.Counter
	RowsSkippedTotal *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lots_fetch_requests_total",
			Help: "Page requests by phase.",
		},
		[]string{"phase"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lots_fetch_duration_seconds",
			Help:    "Latency of the listing page request.",
			Buckets: prometheus.DefBuckets,
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lots_fetch_errors_total",
			Help: "Failed page requests by error type.",
		},
		[]string{"error_type"},
	)
	pageBytes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lots_page_bytes",
			Help: "Size of the last decoded listing page.",
		},
	)
	lotsExtracted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lots_extracted_total",
			Help: "Lots extracted from the listing table.",
		},
	)
	rowsSkipped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lots_rows_skipped_total",
			Help: "Listing table rows that did not yield a lot, by reason.",
		},
		[]string{"reason"},
	)

	registry.MustRegister(requests, requestDuration, errorsTotal, pageBytes, lotsExtracted, rowsSkipped)

	return &Metrics{
		Registry:         registry,
		RequestsTotal:    requests,
		RequestDuration:  requestDuration,
		ErrorsTotal:      errorsTotal,
		PageBytes:        pageBytes,
		LotsExtracted:    lotsExtracted,
		RowsSkippedTotal: rowsSkipped,
	}
}

// IncRequest increments the requests counter for a phase.
func (m *Metrics) IncRequest(phase string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(phase).Inc()
}

// ObserveDuration records the request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncError increments the errors counter for a kind.
func (m *Metrics) IncError(kind ErrorKind) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(string(kind)).Inc()
}

// SetPageBytes records the decoded page size.
func (m *Metrics) SetPageBytes(n int) {
	if m == nil {
		return
	}
	m.PageBytes.Set(float64(n))
}

// AddLots adds n to the extracted lots counter.
func (m *Metrics) AddLots(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.LotsExtracted.Add(float64(n))
}

// AddSkipped adds n skipped rows for reason.
func (m *Metrics) AddSkipped(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RowsSkippedTotal.WithLabelValues(reason).Add(float64(n))
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
