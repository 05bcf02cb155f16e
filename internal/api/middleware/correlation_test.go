package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"banking-suite/internal/pkg/correlation"

	"github.com/stretchr/testify/assert"
)

func TestCorrelation(t *testing.T) {
	t.Run("propagates header into context and response", func(t *testing.T) {
		const id = "4e1c9fd2-0b8f-4a1f-9c77-2f5af13d6a10"

		var seenInContext string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenInContext = correlation.ID(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/customers/4354437687/details", nil)
		req.Header.Set(correlation.Header, id)
		rr := httptest.NewRecorder()

		Correlation(next).ServeHTTP(rr, req)

		assert.Equal(t, id, seenInContext)
		assert.Equal(t, id, rr.Header().Get(correlation.Header))
	})

	t.Run("absent header leaves context and response empty", func(t *testing.T) {
		var seenInContext string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenInContext = correlation.ID(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/accounts/4354437687", nil)
		rr := httptest.NewRecorder()

		Correlation(next).ServeHTTP(rr, req)

		assert.Empty(t, seenInContext)
		assert.Empty(t, rr.Header().Get(correlation.Header))
	})
}
