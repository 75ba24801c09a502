package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cumarfaruur/safari-pos-backend/pkg/logger"
)

// RequestID tags each request with a unique ID, reusing one supplied by the
// client if present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(logger.RequestIDKey)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		r.Header.Set(logger.RequestIDKey, requestID)
		w.Header().Set(logger.RequestIDKey, requestID)

		next.ServeHTTP(w, r)
	})
}
