package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for sizing requests
const (
	OutcomeSized        = "sized"
	OutcomeInsufficient = "insufficient"
	OutcomeRejected     = "rejected"
	OutcomeUndefined    = "undefined_geometry"
)

// SizingMetrics records sizing activity for the API server
type SizingMetrics struct {
	requests       *prometheus.CounterVec
	excluded       prometheus.Counter
	throatDiameter prometheus.Histogram
	duration       prometheus.Histogram
}

// NewSizingMetrics creates the collectors and registers them with reg
func NewSizingMetrics(reg prometheus.Registerer) *SizingMetrics {
	m := &SizingMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ejector_sizing_requests_total",
			Help: "Sizing requests by outcome.",
		}, []string{"outcome"}),
		excluded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ejector_streams_excluded_total",
			Help: "Streams skipped because their flow was not positive.",
		}),
		throatDiameter: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ejector_throat_diameter_inches",
			Help:    "Computed nozzle throat diameters.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ejector_sizing_duration_seconds",
			Help:    "Time spent in one sizing pass.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}

	reg.MustRegister(m.requests, m.excluded, m.throatDiameter, m.duration)
	return m
}

// ObserveSized records a successful sizing
func (m *SizingMetrics) ObserveSized(throatDiameter float64, excluded int, elapsed time.Duration) {
	m.requests.WithLabelValues(OutcomeSized).Inc()
	m.excluded.Add(float64(excluded))
	m.throatDiameter.Observe(throatDiameter)
	m.duration.Observe(elapsed.Seconds())
}

// ObserveInsufficient records a sizing that had no usable stream
func (m *SizingMetrics) ObserveInsufficient(excluded int, elapsed time.Duration) {
	m.requests.WithLabelValues(OutcomeInsufficient).Inc()
	m.excluded.Add(float64(excluded))
	m.duration.Observe(elapsed.Seconds())
}

// ObserveRejected records a request refused before sizing
func (m *SizingMetrics) ObserveRejected() {
	m.requests.WithLabelValues(OutcomeRejected).Inc()
}

// ObserveUndefined records a sizing whose throat came out infinite or NaN
func (m *SizingMetrics) ObserveUndefined(excluded int, elapsed time.Duration) {
	m.requests.WithLabelValues(OutcomeUndefined).Inc()
	m.excluded.Add(float64(excluded))
	m.duration.Observe(elapsed.Seconds())
}
