package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generates when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		id := w.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, seen, "context carries the same id as the header")
	})

	t.Run("passes through a valid incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-supplied-42")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "client-supplied-42", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "client-supplied-42", seen)
	})

	t.Run("replaces an invalid incoming id", func(t *testing.T) {
		tests := []struct {
			name string
			id   string
		}{
			{"control characters", "bad\nid"},
			{"too long", strings.Repeat("x", 129)},
			{"non-ascii", "idé"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.Header.Set("X-Request-ID", tt.id)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)

				got := w.Header().Get("X-Request-ID")
				assert.NotEqual(t, tt.id, got)
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			})
		}
	})
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestIDFromContext(req.Context()))
}
