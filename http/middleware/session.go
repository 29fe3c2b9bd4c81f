package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/http/session"
)

// InjectSession stores the visitor's session in the request context under key,
// where page requests read the path the visitor last landed on.
// A cookie that no longer decodes, e.g. after the session keys rotate, yields a fresh session.
//
// If store or key are their zero-values, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer, key cryptodash.Key) Adapter {
	if store == nil || key == "" {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, _ := store.GetSession(r)
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), key, s)))
		})
	}
}
