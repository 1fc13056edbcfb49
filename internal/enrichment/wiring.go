// Package enrichment assembles the enrichment engine from configuration.
// cmd/server and cmd/enrichctl share this wiring.
package enrichment

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"enricher/internal/enrichment/fallback"
	"enricher/internal/enrichment/metrics"
	"enricher/internal/enrichment/orchestrator"
	"enricher/internal/enrichment/providers"
	"enricher/internal/enrichment/providers/clearbit"
	"enricher/internal/enrichment/providers/github"
	"enricher/internal/enrichment/providers/hunter"
	"enricher/internal/enrichment/providers/surfe"
	"enricher/internal/enrichment/providers/wiza"
	"enricher/internal/enrichment/quota"
	"enricher/internal/platform/config"
)

type factory func(providers.Config, ...providers.ClientOption) providers.Provider

var factories = map[string]factory{
	config.Clearbit: func(c providers.Config, o ...providers.ClientOption) providers.Provider { return clearbit.New(c, o...) },
	config.Surfe:    func(c providers.Config, o ...providers.ClientOption) providers.Provider { return surfe.New(c, o...) },
	config.Wiza:     func(c providers.Config, o ...providers.ClientOption) providers.Provider { return wiza.New(c, o...) },
	config.GitHub:   func(c providers.Config, o ...providers.ClientOption) providers.Provider { return github.New(c, o...) },
	config.Hunter:   func(c providers.Config, o ...providers.ClientOption) providers.Provider { return hunter.New(c, o...) },
}

// BuildRegistry registers every configured provider in priority order.
// Providers without an API key, or missing from the priority list, are
// left out.
func BuildRegistry(cfg config.Config, opts ...providers.ClientOption) (*providers.Registry, error) {
	registry := providers.NewRegistry()
	for _, name := range cfg.Engine.Priority {
		pc, ok := cfg.Providers[name]
		if !ok || !pc.Configured() {
			continue
		}
		build, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("no adapter for provider %q", name)
		}
		p := build(providers.Config{
			APIKey:       pc.APIKey,
			BaseURL:      pc.BaseURL,
			Timeout:      pc.Timeout,
			RateLimitRPS: pc.RateLimitRPS,
		}, opts...)
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}
	return registry, nil
}

// BuildQuota creates a quota manager holding the monthly allowance of every
// registered provider.
func BuildQuota(cfg config.Config, registry *providers.Registry, logger *slog.Logger) (*quota.Manager, error) {
	manager := quota.New(quota.WithLogger(logger))
	for _, id := range registry.IDs() {
		if err := manager.Register(id, cfg.Providers[id].MonthlyQuota); err != nil {
			return nil, fmt.Errorf("quota for %s: %w", id, err)
		}
	}
	return manager, nil
}

// Engine is the assembled enrichment engine and the parts callers reach
// directly.
type Engine struct {
	*orchestrator.Orchestrator
	Registry *providers.Registry
	Quota    *quota.Manager
}

// NewEngine builds the registry, quota manager and orchestrator from cfg.
// reg receives the engine metrics; nil disables them.
func NewEngine(cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Engine, error) {
	registry, err := BuildRegistry(cfg)
	if err != nil {
		return nil, err
	}
	manager, err := BuildQuota(cfg, registry, logger)
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	if reg != nil {
		m = metrics.New(reg)
	}

	o := orchestrator.New(registry, manager,
		orchestrator.WithLogger(logger),
		orchestrator.WithMetrics(m),
		orchestrator.WithSynthesizer(fallback.New()),
		orchestrator.WithStrategy(orchestrator.ParseStrategy(cfg.Engine.Strategy)),
		orchestrator.WithBreakers(cfg.Engine.BreakerThreshold),
	)

	logger.Info("enrichment engine ready",
		"providers", registry.IDs(),
		"strategy", cfg.Engine.Strategy,
		"breaker_threshold", cfg.Engine.BreakerThreshold,
	)
	return &Engine{Orchestrator: o, Registry: registry, Quota: manager}, nil
}
