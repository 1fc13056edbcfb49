package orchestrator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"enricher/internal/enrichment/providers"
	"enricher/internal/enrichment/quota"
)

// call is one planned adapter invocation producing a partial T.
type call[T any] struct {
	provider   string
	capability providers.Capability
	invoke     func(ctx context.Context) (*T, error)
}

// planner picks at most one call for p given what is known so far.
type planner[T any] func(p providers.Provider, acc *T) (call[T], bool)

// schema tells the loop how to merge and test partials of T.
type schema[T any] struct {
	merge func(dst, src *T) // first-non-null-wins
	empty func(*T) bool
}

// run is the per-request accumulator. Only the request goroutine touches it.
type run[T any] struct {
	acc     T
	sources []string
	errors  map[string]string
}

// execute runs the provider loop with the configured strategy.
func execute[T any](ctx context.Context, o *Orchestrator, ordered []providers.Provider, plan planner[T], sc schema[T]) *run[T] {
	r := &run[T]{}
	if o.strategy == StrategyParallel {
		parallel(ctx, o, r, ordered, plan, sc)
		return r
	}

	for _, p := range ordered {
		c, ok := plan(p, &r.acc)
		if !ok {
			continue
		}
		reservation, ok := o.admit(ctx, c.provider)
		if !ok {
			continue
		}
		r.collect(invoke(ctx, o, c, reservation, sc.empty), sc.merge)
	}
	return r
}

// parallel plans every call from the request alone, admits them in priority
// order, runs them concurrently and merges in priority order.
func parallel[T any](ctx context.Context, o *Orchestrator, r *run[T], ordered []providers.Provider, plan planner[T], sc schema[T]) {
	var empty T
	admitted := make([]call[T], 0, len(ordered))
	reservations := make([]*quota.Reservation, 0, len(ordered))
	for _, p := range ordered {
		c, ok := plan(p, &empty)
		if !ok {
			continue
		}
		reservation, ok := o.admit(ctx, c.provider)
		if !ok {
			continue
		}
		admitted = append(admitted, c)
		reservations = append(reservations, reservation)
	}

	results := make([]providers.Result[T], len(admitted))
	var g errgroup.Group
	for i, c := range admitted {
		g.Go(func() error {
			results[i] = invoke(ctx, o, c, reservations[i], sc.empty)
			return nil
		})
	}
	// Calls never return errors to the group; failures live in results.
	_ = g.Wait()

	for _, res := range results {
		r.collect(res, sc.merge)
	}
}

func (r *run[T]) collect(res providers.Result[T], merge func(dst, src *T)) {
	if !res.Success() {
		if r.errors == nil {
			r.errors = make(map[string]string)
		}
		r.errors[res.Provider] = res.Reason()
		return
	}
	merge(&r.acc, res.Partial)
	r.sources = append(r.sources, res.Provider)
}

// admit takes a quota slot and checks the breaker. Either refusal is a
// silent skip.
func (o *Orchestrator) admit(ctx context.Context, provider string) (*quota.Reservation, bool) {
	reservation, ok := o.quota.Reserve(ctx, provider)
	if !ok {
		o.metrics.IncrementQuotaSkipped(provider)
		o.debug(ctx, "provider skipped: quota exhausted", "provider", provider)
		return nil, false
	}
	if b, ok := o.breakers[provider]; ok && !b.Allow() {
		reservation.Release()
		o.metrics.IncrementBreakerSkipped(provider)
		o.debug(ctx, "provider skipped: circuit open", "provider", provider)
		return nil, false
	}
	return reservation, true
}

// invoke calls the adapter and settles the reservation: Commit on success,
// Release on failure. A nil or empty partial is a not_found failure.
func invoke[T any](ctx context.Context, o *Orchestrator, c call[T], reservation *quota.Reservation, empty func(*T) bool) providers.Result[T] {
	start := time.Now()
	partial, err := safeInvoke(ctx, c)
	took := time.Since(start)

	if err == nil && (partial == nil || empty(partial)) {
		err = providers.NewProviderError(providers.ErrorNotFound, c.provider, "empty result", nil)
	}

	if err != nil {
		res := providers.Failed[T](c.provider, c.capability, err, took)
		reservation.Release()
		o.recordBreaker(ctx, c.provider, err)
		o.metrics.ObserveProviderCall(c.provider, string(c.capability), res.Outcome(), took)
		o.logFailure(ctx, res.Provider, res.Capability, res.Category, res.Reason(), took)
		return res
	}

	res := providers.Found(c.provider, c.capability, partial, took)
	reservation.Commit(ctx)
	o.recordBreaker(ctx, c.provider, nil)
	o.metrics.ObserveProviderCall(c.provider, string(c.capability), res.Outcome(), took)
	o.debug(ctx, "provider call succeeded",
		"provider", c.provider,
		"capability", string(c.capability),
		"duration_ms", took.Milliseconds(),
	)
	return res
}

// safeInvoke turns an adapter panic into an internal provider error so one
// broken adapter cannot take the request down.
func safeInvoke[T any](ctx context.Context, c call[T]) (partial *T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			partial = nil
			err = providers.NewProviderError(providers.ErrorInternal, c.provider, "adapter panicked", nil)
		}
	}()
	return c.invoke(ctx)
}

// recordBreaker feeds the provider's breaker. Only transient failures count
// against it; any other answer proves the provider is reachable.
func (o *Orchestrator) recordBreaker(ctx context.Context, provider string, err error) {
	b, ok := o.breakers[provider]
	if !ok {
		return
	}
	if providers.IsTransient(err) {
		if _, change := b.RecordFailure(); change.Opened {
			o.warn(ctx, "provider circuit opened", "provider", provider)
		}
		return
	}
	if _, change := b.RecordSuccess(); change.Closed {
		o.info(ctx, "provider circuit closed", "provider", provider)
	}
}
