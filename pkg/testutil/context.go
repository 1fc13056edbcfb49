package testutil

import (
	"context"
	"time"

	"enricher/pkg/requestcontext"
)

// FixedNow is the instant used by tests that pin the request clock.
var FixedNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

// ContextAt returns a background context whose request time is now.
func ContextAt(now time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), now)
}

// Context returns a background context pinned to FixedNow with a request ID.
func Context() context.Context {
	return requestcontext.WithRequestID(ContextAt(FixedNow), "test-request")
}
