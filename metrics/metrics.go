// Package metrics reports navigations to Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/cryptodash"
)

const defaultNamespace = "cryptodash"

// A Config configures the Navigation metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "cryptodash").
	Namespace string

	// Buckets are the histogram buckets for view load duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// An Option configures the Navigation metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Navigation counts navigations by route, redirects, and view loads.
//
// Navigation implements navigation.Observer.
type Navigation struct {
	navigations *prometheus.CounterVec
	redirects   prometheus.Counter
	loads       *prometheus.CounterVec
	loadSeconds *prometheus.HistogramVec
}

// New registers the Navigation metrics.
// New panics if they are already registered, like promauto does.
func New(opts ...Option) *Navigation {
	cfg := Config{
		Namespace: defaultNamespace,
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Navigation{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "navigations_total",
			Help:      "Total number of committed navigations",
		}, []string{"route"}),

		redirects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "redirects_total",
			Help:      "Total number of redirects followed while navigating",
		}),

		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "view_loads_total",
			Help:      "Total number of view loads by result",
		}, []string{"route", "result"}),

		loadSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "view_load_seconds",
			Help:      "View load duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"route"}),
	}
}

func (n *Navigation) Navigated(route string) {
	n.navigations.WithLabelValues(route).Inc()
}

func (n *Navigation) Redirected() {
	n.redirects.Inc()
}

func (n *Navigation) ViewLoaded(route string, took time.Duration, err error) {
	n.loadSeconds.WithLabelValues(route).Observe(took.Seconds())
	n.loads.WithLabelValues(route, result(err)).Inc()
}

// result labels the outcome of a view load.
func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, cryptodash.ErrNotExist):
		return "missing"
	default:
		return "error"
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
