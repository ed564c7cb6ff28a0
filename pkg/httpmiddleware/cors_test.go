package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsRequest(h http.Handler, method, origin string, preflight bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	t.Run("wildcard by default", func(t *testing.T) {
		h := CORS(CORSConfig{})(okHandler())
		w := corsRequest(h, http.MethodGet, "http://example.com", false)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no origin header means no cors headers", func(t *testing.T) {
		h := CORS(CORSConfig{})(okHandler())
		w := corsRequest(h, http.MethodGet, "", false)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list matches case-insensitively", func(t *testing.T) {
		h := CORS(CORSConfig{AllowOrigins: []string{"http://App.Example.com"}})(okHandler())

		w := corsRequest(h, http.MethodGet, "http://app.example.com", false)
		assert.Equal(t, "http://App.Example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Values("Vary"), "Origin")

		w = corsRequest(h, http.MethodGet, "http://evil.example.com", false)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		h := CORS(CORSConfig{
			AllowOrigins: []string{"http://app.example.com"},
			AllowHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:       600,
		})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("preflight must not reach the handler")
		}))

		w := corsRequest(h, http.MethodOptions, "http://app.example.com", true)
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("credentials echo the specific origin", func(t *testing.T) {
		h := CORS(CORSConfig{AllowCredentials: true})(okHandler())
		w := corsRequest(h, http.MethodGet, "http://app.example.com", false)

		assert.Equal(t, "http://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
