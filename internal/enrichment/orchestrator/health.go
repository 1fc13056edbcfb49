package orchestrator

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"enricher/internal/enrichment/providers"
	"enricher/pkg/requestcontext"
)

const (
	defaultHealthTTL = 30 * time.Second
	healthTimeout    = 5 * time.Second
)

type HealthStatus string

const (
	HealthOK          HealthStatus = "ok"
	HealthUnavailable HealthStatus = "unavailable"
)

// ProviderHealth is the last health check of one provider.
type ProviderHealth struct {
	Status    HealthStatus            `json:"status"`
	Category  providers.ErrorCategory `json:"category,omitempty"`
	Error     string                  `json:"error,omitempty"`
	CheckedAt time.Time               `json:"checked_at"`
	providers.Health
}

// WithHealthTTL sets how long a health result is reused before the provider
// is asked again. Zero checks on every call.
func WithHealthTTL(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.healthTTL = d
	}
}

// CheckHealth asks every provider that can report health, concurrently, and
// returns the results by provider ID. Results younger than the TTL are
// reused. Health checks spend no quota and do not feed the breakers.
func (o *Orchestrator) CheckHealth(ctx context.Context) map[string]ProviderHealth {
	now := requestcontext.Now(ctx)

	var stale []providers.HealthChecker
	var ids []string
	out := make(map[string]ProviderHealth)

	o.healthMu.Lock()
	for _, p := range o.registry.Ordered() {
		hc, ok := p.(providers.HealthChecker)
		if !ok {
			continue
		}
		if cached, ok := o.health[p.ID()]; ok && now.Sub(cached.CheckedAt) < o.healthTTL {
			out[p.ID()] = cached
			continue
		}
		stale = append(stale, hc)
		ids = append(ids, p.ID())
	}
	o.healthMu.Unlock()

	results := make([]ProviderHealth, len(stale))
	var g errgroup.Group
	for i, hc := range stale {
		g.Go(func() error {
			results[i] = o.checkOne(ctx, ids[i], hc, now)
			return nil
		})
	}
	// Checks never return errors to the group; failures live in results.
	_ = g.Wait()

	o.healthMu.Lock()
	for i, id := range ids {
		o.health[id] = results[i]
		out[id] = results[i]
	}
	o.healthMu.Unlock()
	return out
}

func (o *Orchestrator) checkOne(ctx context.Context, id string, hc providers.HealthChecker, now time.Time) ProviderHealth {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	h, err := safeHealth(ctx, id, hc)
	if err != nil {
		category := providers.GetCategory(err)
		reason := providers.Redact(err.Error())
		o.metrics.SetProviderUp(id, false)
		o.warn(ctx, "provider health check failed",
			"provider", id,
			"category", string(category),
			"error", reason,
		)
		return ProviderHealth{Status: HealthUnavailable, Category: category, Error: reason, CheckedAt: now}
	}
	o.metrics.SetProviderUp(id, true)
	return ProviderHealth{Status: HealthOK, CheckedAt: now, Health: h}
}

func safeHealth(ctx context.Context, id string, hc providers.HealthChecker) (h providers.Health, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			h = providers.Health{}
			err = providers.NewProviderError(providers.ErrorInternal, id, "health check panicked", nil)
		}
	}()
	return hc.Health(ctx)
}

// lastHealth returns the cached health of id, if it was ever checked.
func (o *Orchestrator) lastHealth(id string) (ProviderHealth, bool) {
	o.healthMu.Lock()
	defer o.healthMu.Unlock()
	h, ok := o.health[id]
	return h, ok
}

// Unavailable lists providers whose last check failed, sorted.
func Unavailable(results map[string]ProviderHealth) []string {
	var down []string
	for id, h := range results {
		if h.Status != HealthOK {
			down = append(down, id)
		}
	}
	sort.Strings(down)
	return down
}
