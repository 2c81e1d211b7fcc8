package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/itaoit/itstock-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns each request an identifier, honoring one supplied by the
// caller, and tags both the response header and the request logger with it.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := WithRequestID(r.Context(), requestID)
			if logg != nil {
				ctx = logg.WithRequestID(ctx, requestID)
			}
			w.Header().Set(requestIDHeader, requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
