package orchestrator

import (
	"context"
	"time"

	"enricher/internal/enrichment/providers"
	"enricher/pkg/requestcontext"
)

// logFailure writes one line per failed provider call. A missing credential
// is logged apart from transport and response failures.
// reason must already be redacted.
func (o *Orchestrator) logFailure(ctx context.Context, provider string, capability providers.Capability, category providers.ErrorCategory, reason string, took time.Duration) {
	attrs := []any{
		"provider", provider,
		"capability", string(capability),
		"category", string(category),
		"error", reason,
		"duration_ms", took.Milliseconds(),
	}
	switch category {
	case providers.ErrorMisconfigured:
		o.warn(ctx, "provider misconfigured", attrs...)
	case providers.ErrorNotFound:
		o.info(ctx, "provider has no match", attrs...)
	default:
		o.warn(ctx, "provider call failed", attrs...)
	}
}

func (o *Orchestrator) debug(ctx context.Context, msg string, args ...any) {
	if o.logger != nil {
		o.logger.DebugContext(ctx, msg, withRequestID(ctx, args)...)
	}
}

func (o *Orchestrator) info(ctx context.Context, msg string, args ...any) {
	if o.logger != nil {
		o.logger.InfoContext(ctx, msg, withRequestID(ctx, args)...)
	}
}

func (o *Orchestrator) warn(ctx context.Context, msg string, args ...any) {
	if o.logger != nil {
		o.logger.WarnContext(ctx, msg, withRequestID(ctx, args)...)
	}
}

func withRequestID(ctx context.Context, args []any) []any {
	if id := requestcontext.RequestID(ctx); id != "" {
		return append(args, "request_id", id)
	}
	return args
}
