package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// A page load fetches the shell, the view's chunk and a few API calls.
	defaultVisitorRate  rate.Limit = 5
	defaultVisitorBurst            = 20
	defaultVisitorIdle             = time.Hour
)

// A Visitor tracks how fast one client address is making requests.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// Visitors maps client addresses to their Visitor.
// Visitors is safe for concurrent use.
type Visitors struct {
	mu    sync.Mutex
	val   map[string]Visitor
	limit rate.Limit
	burst int
	idle  time.Duration
	swept time.Time
}

// A VisitorsOption configures a *Visitors.
type VisitorsOption func(*Visitors)

// WithVisitorRate allows each visitor limit requests a second, in bursts of up to burst.
func WithVisitorRate(limit rate.Limit, burst int) VisitorsOption {
	return func(vs *Visitors) {
		vs.limit = limit
		vs.burst = burst
	}
}

// WithVisitorIdle forgets visitors not seen for d.
func WithVisitorIdle(d time.Duration) VisitorsOption {
	return func(vs *Visitors) {
		if d > 0 {
			vs.idle = d
		}
	}
}

// NewVisitors constructs a *Visitors.
// By default, each visitor may make 5 requests a second in bursts of up to 20
// and is forgotten after an hour without requests.
func NewVisitors(opts ...VisitorsOption) *Visitors {
	vs := &Visitors{
		val:   make(map[string]Visitor),
		limit: defaultVisitorRate,
		burst: defaultVisitorBurst,
		idle:  defaultVisitorIdle,
		swept: time.Now(),
	}

	for _, opt := range opts {
		opt(vs)
	}

	return vs
}

// Fetch retrieves the Visitor for ip, creating one if ip has not been seen.
// Fetching also forgets idle visitors, at most once per idle period.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	now := time.Now().UTC()
	if now.Sub(vs.swept) >= vs.idle {
		for k, v := range vs.val {
			if now.Sub(v.LastSeen) >= vs.idle {
				delete(vs.val, k)
			}
		}
		vs.swept = now
	}

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = now
	vs.val[ip] = v
	return v
}

// Len reports how many visitors are remembered.
func (vs *Visitors) Len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.val)
}

// RateLimit answers 429 Too Many Requests to a client exceeding its Visitor's limiter,
// identifying clients by [ClientIP].
// The response's "Retry-After" says how many seconds until the client may try again.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lim := visitors.Fetch(ClientIP(r)).Limiter
			if lim.Allow() {
				h.ServeHTTP(w, r)
				return
			}

			retry := 1
			if lim.Limit() > 0 {
				every := time.Duration(float64(time.Second) / float64(lim.Limit()))
				retry = max(retry, int(math.Ceil(every.Seconds())))
			}

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}
}
