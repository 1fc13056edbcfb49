package providers

import (
	"errors"
	"fmt"

	"enricher/pkg/platform/sentinel"
)

// ErrorCategory defines the normalized failure taxonomy.
type ErrorCategory string

const (
	// ErrorMisconfigured indicates the adapter has no credential; no call was made
	ErrorMisconfigured ErrorCategory = "misconfigured"

	// ErrorTimeout indicates the provider took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the provider returned invalid/malformed data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates the provider rejected the credential
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorProviderOutage covers transport errors and unexpected non-2xx statuses
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorNotFound indicates the provider has no record for the input
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates the provider throttled us
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorProcessing indicates the provider accepted the lookup but has no result yet
	ErrorProcessing ErrorCategory = "processing"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps provider failures with normalized categorization.
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	Underlying error
	Transient  bool // Whether the failure says something about provider health
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a normalized provider error.
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	transient := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited

	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
		Transient:  transient,
	}
}

// NotConfigured is returned by adapters called without an API key.
func NotConfigured(providerID string) *ProviderError {
	return NewProviderError(ErrorMisconfigured, providerID, "not configured", nil)
}

// IsTransient reports whether err is a provider-health failure (timeout,
// outage, throttling). Circuit breakers only count these.
func IsTransient(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Transient
	}
	return false
}

// GetCategory extracts the error category from an error.
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// Sentinel errors for registry misuse.
var (
	ErrDuplicateProvider  = fmt.Errorf("provider %w", sentinel.ErrAlreadyExists)
	ErrCapabilityMismatch = errors.New("advertised capability not implemented")
)
