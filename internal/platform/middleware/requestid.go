package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"bloodhound/pkg/requestcontext"
)

// RequestID assigns a correlation ID to every request (honoring an inbound
// X-Request-ID when present) and freezes the request time so all downstream
// timestamps within one request agree.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
