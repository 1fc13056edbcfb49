package quota

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	dErrors "enricher/pkg/domain-errors"
	"enricher/pkg/platform/sentinel"
	"enricher/pkg/requestcontext"
)

// Manager tracks a monthly call budget per provider. It is safe for
// concurrent use; each provider's counters sit behind their own mutex.
//
// Budgets reset lazily: the first access at or after a provider's ResetAt
// clears Used and moves the period to the current calendar month (UTC).
type Manager struct {
	mu       sync.RWMutex
	counters map[string]*counter
	logger   *slog.Logger
}

type counter struct {
	mu    sync.Mutex
	state State
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLimits registers providers with their monthly allowance.
func WithLimits(limits map[string]int) Option {
	return func(m *Manager) {
		for provider, monthly := range limits {
			_ = m.register(provider, monthly)
		}
	}
}

func New(opts ...Option) *Manager {
	m := &Manager{
		counters: make(map[string]*counter),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a provider, or updates its limit while keeping usage.
func (m *Manager) Register(provider string, monthly int) error {
	if provider == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "provider is required")
	}
	if monthly < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "monthly limit must not be negative")
	}
	return m.register(provider, monthly)
}

func (m *Manager) register(provider string, monthly int) error {
	if provider == "" || monthly < 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.counters[provider]; ok {
		c.mu.Lock()
		c.state.MonthlyLimit = monthly
		if c.state.Used > monthly {
			c.state.Used = monthly
		}
		c.mu.Unlock()
		return nil
	}
	m.counters[provider] = &counter{state: State{Provider: provider, MonthlyLimit: monthly}}
	return nil
}

func (m *Manager) lookup(provider string) (*counter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.counters[provider]
	return c, ok
}

// Allowed reports whether a call to provider is currently permitted.
// Unknown providers are never allowed.
func (m *Manager) Allowed(ctx context.Context, provider string) bool {
	c, ok := m.lookup(provider)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m.refresh(ctx, c)
	return c.state.Used+c.state.Pending < c.state.MonthlyLimit
}

// Record counts one completed call. Unknown providers are ignored, and usage
// never climbs past the monthly limit.
func (m *Manager) Record(ctx context.Context, provider string) {
	c, ok := m.lookup(provider)
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m.refresh(ctx, c)
	if c.state.Used >= c.state.MonthlyLimit {
		return
	}
	m.consume(ctx, c)
}

// Reserve atomically checks the budget and holds one slot for a call.
// The caller must Commit on success or Release on failure.
func (m *Manager) Reserve(ctx context.Context, provider string) (*Reservation, bool) {
	c, ok := m.lookup(provider)
	if !ok {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m.refresh(ctx, c)
	if c.state.Used+c.state.Pending >= c.state.MonthlyLimit {
		return nil, false
	}
	c.state.Pending++
	return &Reservation{manager: m, counter: c}, true
}

// Get returns a copy of provider's state.
func (m *Manager) Get(ctx context.Context, provider string) (State, error) {
	c, ok := m.lookup(provider)
	if !ok {
		return State{}, dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, fmt.Sprintf("no quota for provider %q", provider))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m.refresh(ctx, c)
	return c.state, nil
}

// Snapshot returns every provider's state ordered by provider name.
func (m *Manager) Snapshot(ctx context.Context) []State {
	m.mu.RLock()
	counters := make([]*counter, 0, len(m.counters))
	for _, c := range m.counters {
		counters = append(counters, c)
	}
	m.mu.RUnlock()

	out := make([]State, 0, len(counters))
	for _, c := range counters {
		c.mu.Lock()
		m.refresh(ctx, c)
		out = append(out, c.state)
		c.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out
}

// Reset clears provider's usage for the current period.
func (m *Manager) Reset(ctx context.Context, provider string) error {
	c, ok := m.lookup(provider)
	if !ok {
		return dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, fmt.Sprintf("no quota for provider %q", provider))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m.refresh(ctx, c)
	c.state.Used = 0

	logAudit(ctx, m.logger, "provider_quota_reset", "provider", provider)
	return nil
}

// refresh rolls the period over when it has ended. Caller holds c.mu.
func (m *Manager) refresh(ctx context.Context, c *counter) {
	now := requestcontext.Now(ctx)
	if !c.state.ResetAt.IsZero() && now.Before(c.state.ResetAt) {
		return
	}
	start, next := monthBounds(now)
	rolled := !c.state.ResetAt.IsZero() && c.state.Used > 0
	c.state.Used = 0
	c.state.PeriodStart = start
	c.state.ResetAt = next
	if rolled {
		logAudit(ctx, m.logger, "provider_quota_period_rolled",
			"provider", c.state.Provider,
			"period_start", start,
			"reset_at", next,
		)
	}
}

// consume moves one call into Used. Caller holds c.mu.
func (m *Manager) consume(ctx context.Context, c *counter) {
	c.state.Used++
	if c.state.Used == c.state.MonthlyLimit {
		logAudit(ctx, m.logger, "provider_quota_exhausted",
			"provider", c.state.Provider,
			"used", c.state.Used,
			"monthly_limit", c.state.MonthlyLimit,
			"reset_at", c.state.ResetAt,
		)
	}
}

// Reservation is one held slot of a provider's budget. Only the first of
// Commit or Release takes effect; later calls are no-ops.
type Reservation struct {
	manager *Manager
	counter *counter
	once    sync.Once
}

// Commit turns the slot into a used call.
func (r *Reservation) Commit(ctx context.Context) {
	if r == nil {
		return
	}
	r.once.Do(func() {
		c := r.counter
		c.mu.Lock()
		defer c.mu.Unlock()
		c.state.Pending--
		r.manager.refresh(ctx, c)
		if c.state.Used < c.state.MonthlyLimit {
			r.manager.consume(ctx, c)
		}
	})
}

// Release hands the slot back without counting a call.
func (r *Reservation) Release() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		r.counter.mu.Lock()
		r.counter.state.Pending--
		r.counter.mu.Unlock()
	})
}
