// Package metrics defines the Prometheus collectors for statement parsing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// Parse request outcomes.
const (
	OutcomeParsed           = "parsed"
	OutcomeRejected         = "rejected"
	OutcomeExtractionFailed = "extraction_failed"
	OutcomeUnsupported      = "unsupported_issuer"
	OutcomeError            = "error"
)

// Metrics groups the collectors registered by New.
type Metrics struct {
	Requests          *prometheus.CounterVec
	Extractions       *prometheus.CounterVec
	IssuerDetections  *prometheus.CounterVec
	FieldsNotFound    *prometheus.CounterVec
	ExtractionSeconds prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_parse_requests_total",
			Help: "Parse requests by outcome.",
		}, []string{"outcome"}),
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_text_extractions_total",
			Help: "Successful text extractions by method.",
		}, []string{"method"}),
		IssuerDetections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_issuer_detections_total",
			Help: "Statements attributed to each issuer.",
		}, []string{"issuer"}),
		FieldsNotFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_fields_not_found_total",
			Help: "Fields whose pattern did not match, by issuer.",
		}, []string{"issuer", "field"}),
		ExtractionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statement_extraction_duration_seconds",
			Help:    "Time spent acquiring statement text, including OCR.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Extractions, m.IssuerDetections, m.FieldsNotFound, m.ExtractionSeconds)
	}
	return m
}

// ObserveRequest counts one finished request.
func (m *Metrics) ObserveRequest(outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome).Inc()
}

// ObserveExtraction records how long text acquisition took and which method won.
func (m *Metrics) ObserveExtraction(method models.Method, d time.Duration) {
	if m == nil {
		return
	}
	m.Extractions.WithLabelValues(string(method)).Inc()
	m.ExtractionSeconds.Observe(d.Seconds())
}

// ObserveResult counts the detected issuer and its unresolved fields.
func (m *Metrics) ObserveResult(r models.ExtractionResult) {
	if m == nil {
		return
	}
	m.IssuerDetections.WithLabelValues(r.Issuer).Inc()
	for _, f := range r.Missing() {
		m.FieldsNotFound.WithLabelValues(r.Issuer, string(f)).Inc()
	}
}
