package middleware

import (
	"net/http"
)

// An Adapter wraps an http.Handler in behavior shared across the dashboard's routes.
type Adapter func(http.Handler) http.Handler

// NoopAdapter returns h as is. Adapters configured to do nothing return it.
func NoopAdapter(h http.Handler) http.Handler { return h }

// Chain wraps h in adapters so a request passes through them in the order listed.
// Nil adapters are skipped.
func Chain(h http.Handler, adapters ...Adapter) http.Handler {
	for i := len(adapters) - 1; i >= 0; i-- {
		a := adapters[i]
		if a != nil {
			h = a(h)
		}
	}

	return h
}
