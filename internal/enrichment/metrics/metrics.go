package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the enrichment engine. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	// Provider calls by provider, capability and outcome (success or error category)
	ProviderCalls *prometheus.CounterVec

	// Provider call latency by provider
	ProviderLatency *prometheus.HistogramVec

	// Calls skipped because the monthly quota is spent
	QuotaSkipped *prometheus.CounterVec

	// Calls skipped because the provider's breaker is open
	BreakerSkipped *prometheus.CounterVec

	// Enrichment outcomes by entity (person, company) and result (enriched, synthesized, invalid)
	Outcomes *prometheus.CounterVec

	// Completeness score of returned records by entity
	Score *prometheus.HistogramVec

	// Last health check result by provider (1 up, 0 down)
	ProviderUp *prometheus.GaugeVec
}

// New registers the enrichment metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ProviderCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enricher_provider_calls_total",
			Help: "Total provider calls by provider, capability and outcome",
		}, []string{"provider", "capability", "outcome"}),

		ProviderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enricher_provider_call_duration_seconds",
			Help:    "Duration of provider calls by provider",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		}, []string{"provider"}),

		QuotaSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enricher_provider_quota_skipped_total",
			Help: "Provider calls skipped because the monthly quota is exhausted",
		}, []string{"provider"}),

		BreakerSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enricher_provider_breaker_skipped_total",
			Help: "Provider calls skipped because the circuit breaker is open",
		}, []string{"provider"}),

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enricher_enrichment_outcomes_total",
			Help: "Enrichment outcomes by entity and result",
		}, []string{"entity", "result"}),

		Score: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enricher_enrichment_score",
			Help:    "Completeness score of returned records",
			Buckets: []float64{0, 17, 34, 50, 67, 84, 100},
		}, []string{"entity"}),

		ProviderUp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "enricher_provider_up",
			Help: "Whether the provider's last health check succeeded",
		}, []string{"provider"}),
	}
}

// ObserveProviderCall records one provider call and its latency.
func (m *Metrics) ObserveProviderCall(provider, capability, outcome string, d time.Duration) {
	if m != nil {
		m.ProviderCalls.WithLabelValues(provider, capability, outcome).Inc()
		m.ProviderLatency.WithLabelValues(provider).Observe(d.Seconds())
	}
}

// IncrementQuotaSkipped records a call skipped for quota.
func (m *Metrics) IncrementQuotaSkipped(provider string) {
	if m != nil {
		m.QuotaSkipped.WithLabelValues(provider).Inc()
	}
}

// IncrementBreakerSkipped records a call skipped by an open breaker.
func (m *Metrics) IncrementBreakerSkipped(provider string) {
	if m != nil {
		m.BreakerSkipped.WithLabelValues(provider).Inc()
	}
}

// SetProviderUp records a health check result.
func (m *Metrics) SetProviderUp(provider string, up bool) {
	if m == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	m.ProviderUp.WithLabelValues(provider).Set(v)
}

// ObserveOutcome records the terminal state of one enrichment and, unless the
// request was rejected, its score.
func (m *Metrics) ObserveOutcome(entity, result string, score int) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(entity, result).Inc()
	if result != OutcomeInvalid {
		m.Score.WithLabelValues(entity).Observe(float64(score))
	}
}

const (
	OutcomeEnriched    = "enriched"
	OutcomeSynthesized = "synthesized"
	OutcomeInvalid     = "invalid"
)
