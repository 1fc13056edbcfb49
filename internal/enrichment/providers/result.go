package providers

import (
	"time"
)

// OutcomeSuccess labels a call that produced a usable partial.
const OutcomeSuccess = "success"

// Result is the outcome of one adapter call: a partial on success, a
// categorized error otherwise.
type Result[T any] struct {
	Provider   string
	Capability Capability
	Partial    *T
	Err        error
	Category   ErrorCategory // Set only on failure
	Duration   time.Duration
}

// Found builds a success result carrying a partial.
func Found[T any](provider string, capability Capability, partial *T, took time.Duration) Result[T] {
	return Result[T]{Provider: provider, Capability: capability, Partial: partial, Duration: took}
}

// Failed builds a failure result from an adapter error.
func Failed[T any](provider string, capability Capability, err error, took time.Duration) Result[T] {
	return Result[T]{
		Provider:   provider,
		Capability: capability,
		Err:        err,
		Category:   GetCategory(err),
		Duration:   took,
	}
}

func (r Result[T]) Success() bool {
	return r.Err == nil
}

// Outcome is the metrics label: "success" or the failure category.
func (r Result[T]) Outcome() string {
	if r.Success() {
		return OutcomeSuccess
	}
	return string(r.Category)
}

// Reason is the redacted failure message, empty on success.
func (r Result[T]) Reason() string {
	if r.Success() {
		return ""
	}
	return Redact(r.Err.Error())
}
