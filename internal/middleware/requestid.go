package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/lribeiro/taskboard/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the client's when one is
// sent. The logger picks it up via WithContext.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), logger.RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
