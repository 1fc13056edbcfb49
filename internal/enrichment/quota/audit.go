package quota

import (
	"context"
	"log/slog"

	"enricher/pkg/requestcontext"
)

// logAudit writes a structured audit line tagged with the request ID.
func logAudit(ctx context.Context, logger *slog.Logger, event string, attrs ...any) {
	if logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	args := append(attrs, "event", event, "log_type", "audit")
	logger.InfoContext(ctx, event, args...)
}
