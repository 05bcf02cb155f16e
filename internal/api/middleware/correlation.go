package middleware

import (
	"net/http"

	"banking-suite/internal/pkg/correlation"
)

// Correlation lifts the bank-correlation-id header into the request context
// and echoes it back on the response so callers can match request and reply.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(correlation.Header)
		if id != "" {
			r = r.WithContext(correlation.WithID(r.Context(), id))
			w.Header().Set(correlation.Header, id)
		}
		next.ServeHTTP(w, r)
	})
}
