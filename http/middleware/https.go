package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/cryptodash"
)

// ForceHTTPS sends requests made over plain HTTP to the same URL over HTTPS,
// except in development.
//
// Behind a proxy, the scheme the client used is read from "X-Forwarded-Proto"
// or the "proto" parameter of "Forwarded".
// GET and HEAD requests are moved permanently; anything else keeps its method with 308.
func ForceHTTPS(env cryptodash.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requestedHTTPS(r) {
				h.ServeHTTP(w, r)
				return
			}

			u := *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			code := http.StatusPermanentRedirect
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				code = http.StatusMovedPermanently
			}

			http.Redirect(w, r, u.String(), code)
		})
	}
}

func requestedHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}

	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.EqualFold(strings.TrimSpace(strings.Split(proto, ",")[0]), "https")
	}

	// Forwarded: for=192.0.2.60;proto=https;by=203.0.113.43
	first, _, _ := strings.Cut(r.Header.Get("Forwarded"), ",")
	for _, pair := range strings.Split(first, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && strings.EqualFold(k, "proto") {
			return strings.EqualFold(strings.Trim(v, `"`), "https")
		}
	}

	return false
}
