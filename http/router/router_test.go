package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash/http/middleware"
	"github.com/xy-planning-network/cryptodash/http/router"
)

func writeBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, body)
	}
}

func setHeader(key, val string) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, val)
			h.ServeHTTP(w, r)
		})
	}
}

func TestRouterEndpointsBeforeCatchAll(t *testing.T) {
	// Arrange
	r := router.New("DEVELOPMENT", nil)
	r.OnEveryRequest(setHeader("X-Stack", "every"))
	r.Handle(router.Endpoint{Path: "/metrics", Method: http.MethodGet, Handler: writeBody("metrics")})
	r.CatchAll(writeBody("page"), setHeader("X-Stack", "page"))

	for _, tc := range []struct {
		target string
		body   string
		stack  []string
	}{
		{"/metrics", "metrics", []string{"every"}},
		{"/", "page", []string{"every", "page"}},
		{"/coin/42", "page", []string{"every", "page"}},
		{"/nonexistent", "page", []string{"every", "page"}},
	} {
		t.Run(tc.target, func(t *testing.T) {
			// Act
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.target, nil))

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.body, w.Body.String())
			require.Equal(t, tc.stack, w.Header().Values("X-Stack"))
		})
	}
}

func TestRouterHandleNotFound(t *testing.T) {
	// Arrange
	r := router.New("DEVELOPMENT", nil)
	r.HandleNotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	// Act
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	// Assert
	require.Equal(t, http.StatusTeapot, w.Code)
}

func TestRouterSubrouter(t *testing.T) {
	// Arrange
	r := router.New("DEVELOPMENT", nil)
	api := r.Subrouter("/api")
	api.Handle(router.Endpoint{Path: "/health", Method: http.MethodGet, Handler: writeBody("ok")})

	// Act
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	// Assert
	require.Equal(t, "ok", w.Body.String())
}
