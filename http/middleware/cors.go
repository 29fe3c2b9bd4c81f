package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
)

// corsMaxAge is how many seconds browsers may cache a preflight response.
const corsMaxAge = 600

// CORS lets the listed origins read responses cross-origin.
// Only GET and HEAD are allowed; preflight OPTIONS requests are answered with 204
// without reaching the wrapped handler, so it must also be routed for OPTIONS.
//
// Empty origins are ignored. If none remain, NoopAdapter returns and this middleware does nothing.
func CORS(origins ...string) Adapter {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			allowed = append(allowed, o)
		}
	}

	if len(allowed) == 0 {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedOrigins(allowed),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
		handlers.MaxAge(corsMaxAge),
		handlers.OptionStatusCode(http.StatusNoContent),
	)
}
