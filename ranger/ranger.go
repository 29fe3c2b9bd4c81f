package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/apiclient"
	"github.com/xy-planning-network/cryptodash/http/req"
	"github.com/xy-planning-network/cryptodash/http/resp"
	"github.com/xy-planning-network/cryptodash/http/router"
	"github.com/xy-planning-network/cryptodash/http/session"
	"github.com/xy-planning-network/cryptodash/http/template"
	"github.com/xy-planning-network/cryptodash/logger"
	"github.com/xy-planning-network/cryptodash/metrics"
	"github.com/xy-planning-network/cryptodash/navigation"
)

// A Ranger manages and exposes all components of the dashboard to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	api         *apiclient.Client
	cancel      context.CancelFunc
	contact     string
	ctx         context.Context
	endpoints   []router.Endpoint
	env         cryptodash.Environment
	fs          fs.FS
	hooks       []navigation.Hook
	l           logger.Logger
	maintenance bool
	nav         *navigation.Navigator
	obs         *metrics.Navigation
	output      io.Writer
	parser      template.Parser
	registry    *prometheus.Registry
	req         *req.Parser
	sessions    session.SessionStorer
	srv         *http.Server
	table       *router.Table
	title       string
	url         *url.URL
}

// New constructs a Ranger from the provided options.
// Options are applied first; every component an option did not supply
// is then constructed from environment variables.
// Followups returned by options run last, once every component exists.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	followups := make([]OptFollowup, 0)

	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", cryptodash.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if err := r.setup(); err != nil {
		return nil, fmt.Errorf("%w: %s", cryptodash.ErrBadConfig, err)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", cryptodash.ErrBadConfig, err)
		}
	}

	return r, nil
}

// setup constructs every component not yet configured, in dependency order.
func (r *Ranger) setup() error {
	if r.ctx == nil {
		r.ctx = context.Background()
	}
	r.ctx, r.cancel = context.WithCancel(r.ctx)

	if r.env == "" {
		r.env = cryptodash.EnvVarOrEnv(environmentEnvVar, cryptodash.Development)
	}

	if r.output == nil {
		r.output = os.Stdout
	}

	if r.l == nil {
		r.l = defaultAppLogger(r.env, r.output)
	}

	if r.url == nil {
		r.url = defaultURL()
		if r.url == nil {
			return fmt.Errorf("%s is not a valid URL", BaseURLEnvVar)
		}
	}

	if r.title == "" {
		r.title = cryptodash.EnvVarOrString(AppTitleEnvVar, navigation.AppName)
	}

	if r.contact == "" {
		r.contact = cryptodash.EnvVarOrString(ContactUsEnvVar, defaultContactUs)
	}

	if !r.maintenance {
		r.maintenance = cryptodash.EnvVarOrBool(maintModeEnvVar, false)
	}

	if r.fs == nil {
		r.fs = os.DirFS(".")
	}

	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	var err error
	if r.table == nil {
		if r.table, err = defaultTable(r.env, r.fs); err != nil {
			return err
		}
	}

	r.obs = metrics.New(metrics.WithRegistry(r.registry))
	r.nav = defaultNavigator(r.table, r.l, r.title, r.obs, r.hooks)

	if r.api == nil {
		if r.api, err = defaultAPIClient(r.url); err != nil {
			return err
		}
	}

	if r.sessions == nil {
		if r.sessions, err = defaultSessionStore(r.env, r.title, r.l); err != nil {
			return err
		}
	}

	if r.parser == nil {
		r.parser = defaultParser(r.env, r.url, r.fs, r.title)
	}

	r.req = req.NewParser()
	r.Responder = defaultResponder(r.l, r.url, r.parser, r.contact)
	r.Router = defaultRouter(r, defaultHTTPLogger(r.env, r.output))

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, r.url)
	}
	r.srv.Handler = r.Router

	r.l.Debug(fmt.Sprintf("configured %s at %s", r.title, r.url), nil)
	return nil
}

func (r *Ranger) EmitAPIClient() *apiclient.Client        { return r.api }
func (r *Ranger) EmitLogger() logger.Logger               { return r.l }
func (r *Ranger) EmitNavigator() *navigation.Navigator    { return r.nav }
func (r *Ranger) EmitSessionStore() session.SessionStorer { return r.sessions }
func (r *Ranger) EmitTable() *router.Table                { return r.table }

// Cancel stops a running Guide.
func (r *Ranger) Cancel() { r.cancel() }

// Guide begins the web server.
//
// These, and [*Ranger.Cancel], stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, stop := signal.NotifyContext(r.ctx, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("could not listen: %w", err)
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			r.l.Error(err.Error(), nil)
			return err
		}
	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	if err := r.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
