package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/apiclient"
	"github.com/xy-planning-network/cryptodash/http/router"
	"github.com/xy-planning-network/cryptodash/http/session"
	"github.com/xy-planning-network/cryptodash/logger"
	"github.com/xy-planning-network/cryptodash/navigation"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require components constructed later
// and thus an OptFollowup can be returned in order to be called once those exist.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithServer is an example of the second.
// The *http.Server can only serve the router once the router is constructed.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithAPIClient sets the client for the backend API,
// replacing the one bound to API_ORIGIN.
func WithAPIClient(c *apiclient.Client) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if c == nil {
			return nil, errors.New("nil API client")
		}

		rng.api = c
		return nil, nil
	}
}

// WithContext sets the parent of the context the web server's requests derive from.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithEndpoints registers endpoints on the router ahead of the page routes.
func WithEndpoints(endpoints ...router.Endpoint) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.endpoints = append(rng.endpoints, endpoints...)
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e := cryptodash.Environment(envVar)
		if err := e.Valid(); err != nil {
			e = cryptodash.EnvVarOrEnv(envVar, cryptodash.Development)
		}

		rng.env = e
		return nil, nil
	}
}

// WithFS sets the filesystem holding the client's build output and any templates overriding the defaults.
// By default, that is the working directory.
func WithFS(files fs.FS) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.fs = files
		return nil, nil
	}
}

// WithHooks runs hooks on every navigation after the title and logging hooks.
func WithHooks(hooks ...navigation.Hook) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.hooks = append(rng.hooks, hooks...)
		return nil, nil
	}
}

// WithLogger sets the logger.Logger used by the dashboard.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		return nil, nil
	}
}

// WithMaintenanceMode answers every page request with 503 Service Unavailable.
func WithMaintenanceMode() RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.maintenance = true
		return nil, nil
	}
}

// WithOutput sets where the default loggers write.
func WithOutput(w io.Writer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.output = w
		return nil, nil
	}
}

// WithRegistry sets the registry navigation metrics are registered with and served from.
func WithRegistry(reg *prometheus.Registry) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.registry = reg
		return nil, nil
	}
}

// WithServer serves the dashboard from s.
// Its Handler is replaced with the dashboard's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			s.Handler = rng.Router
			rng.srv = s
			return nil
		}, nil
	}
}

// WithSessionStore sets the session.SessionStorer remembering where clients last navigated.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.sessions = store
		return nil, nil
	}
}

// WithTable replaces the dashboard's route table.
func WithTable(t *router.Table) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.table = t
		return nil, nil
	}
}

// WithTitle sets the application name shown in every document title,
// replacing APP_TITLE.
func WithTitle(title string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.title = title
		return nil, nil
	}
}

// WithURL sets the base URL the dashboard is served from, replacing BASE_URL.
func WithURL(u string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", cryptodash.ErrNotValid, err)
		}

		rng.url = parsed
		return nil, nil
	}
}
