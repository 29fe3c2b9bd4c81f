package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/cryptodash"
)

// RequestIDHeader carries the request's ID from the proxy and back to the client.
const RequestIDHeader = "X-Request-Id"

// RequestID stores an ID for the request in its context under cryptodash.RequestIDKey
// and echoes it on the response's RequestIDHeader.
// A UUID the proxy sent in RequestIDHeader is kept, so logs on both sides line up;
// otherwise a new one is generated.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				id = uuid.New()
			}

			w.Header().Set(RequestIDHeader, id.String())
			ctx := context.WithValue(r.Context(), cryptodash.RequestIDKey, id.String())
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
