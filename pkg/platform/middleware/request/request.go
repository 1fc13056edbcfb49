// Package request provides middleware that tags each inbound request with an ID.
package request

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"enricher/pkg/requestcontext"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"

// maxInboundIDLen caps caller-supplied IDs so they cannot bloat log lines.
const maxInboundIDLen = 128

// RequestID reuses a caller-supplied X-Request-ID when present and sane,
// otherwise generates a UUID, and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if id == "" || len(id) > maxInboundIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID stored by RequestID.
func GetRequestID(r *http.Request) string {
	return requestcontext.RequestID(r.Context())
}
