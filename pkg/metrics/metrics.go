package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics хранит все метрики сервиса
type Metrics struct {
	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Availability: результаты запросов слотов (ok, empty, stale, error)
	AvailabilityQueries *prometheus.CounterVec
	AvailabilityLatency prometheus.Histogram

	// Hold lifecycle: переходы состояний и исходы identity gate
	HoldTransitions *prometheus.CounterVec
	GateOutcomes    *prometheus.CounterVec

	// Flow sessions
	ActiveFlows prometheus.Gauge
}

// New создает метрики и регистрирует их в переданном registerer
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AvailabilityQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "availability_queries_total",
			Help:      "Availability lookups by outcome",
		}, []string{"outcome"}),
		AvailabilityLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "availability_query_duration_seconds",
			Help:      "Availability lookup latency",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		HoldTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "hold_transitions_total",
			Help:      "Hold lifecycle transitions by target state",
		}, []string{"state"}),
		GateOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "identity_gate_outcomes_total",
			Help:      "Identity gate outcomes",
		}, []string{"outcome"}),
		ActiveFlows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "active_flows",
			Help:      "Number of booking flows held in memory",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.AvailabilityQueries,
		m.AvailabilityLatency,
		m.HoldTransitions,
		m.GateOutcomes,
		m.ActiveFlows,
	)

	return m
}

// ObserveAvailability фиксирует исход запроса доступности. Безопасно вызывать на nil.
func (m *Metrics) ObserveAvailability(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.AvailabilityQueries.WithLabelValues(outcome).Inc()
	m.AvailabilityLatency.Observe(seconds)
}

// ObserveHoldTransition фиксирует переход hold lifecycle. Безопасно вызывать на nil.
func (m *Metrics) ObserveHoldTransition(state string) {
	if m == nil {
		return
	}
	m.HoldTransitions.WithLabelValues(state).Inc()
}

// ObserveGateOutcome фиксирует исход identity gate. Безопасно вызывать на nil.
func (m *Metrics) ObserveGateOutcome(outcome string) {
	if m == nil {
		return
	}
	m.GateOutcomes.WithLabelValues(outcome).Inc()
}

// SetActiveFlows выставляет количество активных сессий. Безопасно вызывать на nil.
func (m *Metrics) SetActiveFlows(n int) {
	if m == nil {
		return
	}
	m.ActiveFlows.Set(float64(n))
}
