// Package orchestrator is the enrichment engine. It routes a request through
// the registered providers in priority order, spends quota only on calls that
// succeed, merges partial results first-non-null-wins, scores the merged
// record and falls back to a synthetic record when no provider contributed.
//
// The Orchestrator is built once at startup and shared; it is safe for
// concurrent use. Quota counters, circuit breakers and cached health checks
// are its only mutable state.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"enricher/internal/enrichment/fallback"
	"enricher/internal/enrichment/metrics"
	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/providers"
	"enricher/internal/enrichment/quota"
	"enricher/internal/enrichment/score"
	"enricher/pkg/platform/circuit"
)

// Strategy selects how a request's provider calls are scheduled.
type Strategy string

const (
	// StrategySequential calls providers one at a time in priority order.
	// Later calls may use fields found by earlier ones.
	StrategySequential Strategy = "sequential"

	// StrategyParallel reserves quota for every eligible provider up front,
	// calls them concurrently and merges in priority order.
	StrategyParallel Strategy = "parallel"
)

// ParseStrategy maps a config value to a Strategy. Unknown values mean
// sequential.
func ParseStrategy(s string) Strategy {
	if Strategy(s) == StrategyParallel {
		return StrategyParallel
	}
	return StrategySequential
}

// Synthesizer produces placeholder records when no provider contributes.
type Synthesizer interface {
	Person(ctx context.Context, req models.PersonRequest) *models.PersonRecord
	Company(ctx context.Context, req models.CompanyRequest) *models.CompanyRecord
}

// Quota is the subset of quota.Manager the engine needs.
type Quota interface {
	Reserve(ctx context.Context, provider string) (*quota.Reservation, bool)
	Get(ctx context.Context, provider string) (quota.State, error)
}

type Orchestrator struct {
	registry    *providers.Registry
	quota       Quota
	logger      *slog.Logger
	metrics     *metrics.Metrics
	synthesizer Synthesizer
	strategy    Strategy

	breakerThreshold int
	breakerOpts      []circuit.Option
	breakers         map[string]*circuit.Breaker

	personScore  *score.Calculator[models.Person]
	companyScore *score.Calculator[models.Company]

	healthTTL time.Duration
	healthMu  sync.Mutex
	health    map[string]ProviderHealth
}

type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

func WithSynthesizer(s Synthesizer) Option {
	return func(o *Orchestrator) {
		o.synthesizer = s
	}
}

func WithStrategy(s Strategy) Option {
	return func(o *Orchestrator) {
		o.strategy = s
	}
}

// WithBreakers gives every provider a circuit breaker that opens after
// threshold consecutive transient failures. A threshold of 0 disables them.
func WithBreakers(threshold int, opts ...circuit.Option) Option {
	return func(o *Orchestrator) {
		o.breakerThreshold = threshold
		o.breakerOpts = opts
	}
}

func New(registry *providers.Registry, q Quota, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:     registry,
		quota:        q,
		synthesizer:  fallback.New(),
		strategy:     StrategySequential,
		breakers:     make(map[string]*circuit.Breaker),
		personScore:  score.Person(),
		companyScore: score.Company(),
		healthTTL:    defaultHealthTTL,
		health:       make(map[string]ProviderHealth),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.breakerThreshold > 0 {
		for _, id := range registry.IDs() {
			bopts := append([]circuit.Option{circuit.WithFailureThreshold(o.breakerThreshold)}, o.breakerOpts...)
			o.breakers[id] = circuit.New(id, bopts...)
		}
	}
	return o
}

// ProviderInfo describes one registered provider for listing surfaces.
type ProviderInfo struct {
	ID           string                 `json:"id"`
	Protocol     providers.Protocol     `json:"protocol"`
	Version      string                 `json:"version,omitempty"`
	Capabilities []providers.Capability `json:"capabilities"`
	Inputs       []string               `json:"inputs,omitempty"`
	Quota        *quota.State           `json:"quota,omitempty"`
	Breaker      circuit.State          `json:"breaker,omitempty"`
	Health       *ProviderHealth        `json:"health,omitempty"`
}

// Providers lists every registered provider in priority order with its
// current quota state and, once CheckHealth has run, its last health check.
func (o *Orchestrator) Providers(ctx context.Context) []ProviderInfo {
	ordered := o.registry.Ordered()
	out := make([]ProviderInfo, 0, len(ordered))
	for _, p := range ordered {
		caps := p.Capabilities()
		info := ProviderInfo{
			ID:           p.ID(),
			Protocol:     caps.Protocol,
			Version:      caps.Version,
			Capabilities: caps.Supported,
			Inputs:       caps.Inputs,
		}
		if state, err := o.quota.Get(ctx, p.ID()); err == nil {
			info.Quota = &state
		}
		if b, ok := o.breakers[p.ID()]; ok {
			info.Breaker = b.State()
		}
		if h, ok := o.lastHealth(p.ID()); ok {
			info.Health = &h
		}
		out = append(out, info)
	}
	return out
}
