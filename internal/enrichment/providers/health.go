package providers

import (
	"context"
	"time"
)

// Health is what a provider reports about its own account. Counters stay nil
// when the provider does not expose them.
type Health struct {
	Remaining *int       `json:"remaining,omitempty"` // Credits or requests left upstream
	Limit     *int       `json:"limit,omitempty"`
	ResetAt   *time.Time `json:"reset_at,omitempty"`
}

// HealthChecker is implemented by adapters with a status endpoint that does
// not spend enrichment credits. Failures use the same error taxonomy as
// lookups.
type HealthChecker interface {
	Health(ctx context.Context) (Health, error)
}
