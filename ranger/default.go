package ranger

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/apiclient"
	"github.com/xy-planning-network/cryptodash/http/middleware"
	"github.com/xy-planning-network/cryptodash/http/resp"
	"github.com/xy-planning-network/cryptodash/http/router"
	"github.com/xy-planning-network/cryptodash/http/session"
	"github.com/xy-planning-network/cryptodash/http/template"
	"github.com/xy-planning-network/cryptodash/logger"
	"github.com/xy-planning-network/cryptodash/metrics"
	"github.com/xy-planning-network/cryptodash/navigation"
	"github.com/xy-planning-network/cryptodash/view"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonSlugChars = regexp.MustCompile(`[,':]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// defaultAppLogger constructs a [logger.Logger] configured for use in the application.
// Errors are shipped to Sentry when SENTRY_DSN is set.
func defaultAppLogger(env cryptodash.Environment, output io.Writer) logger.Logger {
	cl := logger.NewWriter(
		output,
		logger.WithEnv(env.String()),
		logger.WithKind("app"),
		logger.WithLevel(cryptodash.EnvVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo)),
	)

	cl.Debug("setting up app logger", nil)
	if dsn := os.Getenv(sentryDsnEnvVar); dsn != "" {
		l := logger.NewSentryLogger(cl, dsn)
		l.Debug("using SentryLogger for app logger", nil)
		return l
	}

	return cl
}

// defaultHTTPLogger constructs a [logger.Logger] for use in HTTP request logging.
func defaultHTTPLogger(env cryptodash.Environment, output io.Writer) logger.Logger {
	return logger.NewWriter(
		output,
		logger.WithEnv(env.String()),
		logger.WithKind("http"),
		logger.WithLevel(cryptodash.EnvVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo)),
	)
}

// defaultURL reads BASE_URL or falls back to HOST and PORT.
func defaultURL() *url.URL {
	host := cryptodash.EnvVarOrString(hostEnvVar, DefaultHost)
	port := cryptodash.EnvVarOrString(portEnvVar, DefaultPort)
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return cryptodash.EnvVarOrURL(BaseURLEnvVar, "http://"+host+port)
}

// defaultTable compiles the dashboard's route table,
// loading views lazily from the client's build output found in files.
func defaultTable(env cryptodash.Environment, files fs.FS) (*router.Table, error) {
	return router.DefaultTable(view.NewBundle(env, files).Set())
}

// defaultNavigator constructs the [*navigation.Navigator] every page request goes through.
//
// The title hook always runs first, the logging hook second,
// followed by any hooks passed in.
func defaultNavigator(
	table *router.Table,
	l logger.Logger,
	appTitle string,
	obs navigation.Observer,
	hooks []navigation.Hook,
) *navigation.Navigator {
	all := append([]navigation.Hook{navigation.Title(appTitle), navigation.Log(l)}, hooks...)

	return navigation.NewNavigator(
		table,
		navigation.WithHooks(all...),
		navigation.WithLogger(l),
		navigation.WithObserver(obs),
	)
}

// defaultAPIClient binds the backend API client to API_ORIGIN,
// or to the origin the dashboard itself is served from.
func defaultAPIClient(base *url.URL) (*apiclient.Client, error) {
	return apiclient.Parse(cryptodash.EnvVarOrString(APIOriginEnvVar, base.String()))
}

// defaultParser constructs a *template.Parse to be used
// when responding to HTTP requests with [*resp.Responder.Html].
// Templates may call every function of [template.Site.Funcs],
// with "title" returning the value set by the APP_TITLE env var.
func defaultParser(env cryptodash.Environment, u *url.URL, files fs.FS, appTitle string) *template.Parse {
	site := template.Site{Env: env, RootURL: u, Assets: files, Title: appTitle}
	return template.NewParser(template.WithFS(files), template.WithFuncs(site.Funcs()))
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(l logger.Logger, u *url.URL, p template.Parser, contact string) *resp.Responder {
	return resp.NewResponder(
		resp.WithContactErrMsg(fmt.Sprintf("If the problem persists, contact us at %s.", contact)),
		resp.WithErrTemplate(template.ErrTmpl),
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithRootUrl(u.String()),
		resp.WithVueTemplate(template.VueTmpl),
	)
}

// defaultSessionStore constructs a SessionStorer remembering where each client navigated last.
//
// defaultSessionStore relies on these env vars:
//   - APP_TITLE
//   - SESSION_AUTH_KEY
//   - SESSION_ENCRYPTION_KEY
//   - REDIS_URL, REDIS_PASSWORD: store sessions in Redis instead of cookies
//
// Both KEY env vars must be valid hex encoded values; cf. [encoding/hex].
// Outside of production, missing keys are generated for the life of the process.
func defaultSessionStore(env cryptodash.Environment, appTitle string, l logger.Logger) (session.SessionStorer, error) {
	cfg := session.Config{
		AuthKey:     os.Getenv(SessionAuthKeyEnvVar),
		EncryptKey:  os.Getenv(SessionEncryptKeyEnvVar),
		Env:         env,
		SessionName: sessionName(appTitle),
	}

	if cfg.AuthKey == "" || cfg.EncryptKey == "" {
		if env.IsProduction() || env.IsStaging() {
			return nil, fmt.Errorf(
				"%w: %s and %s must be set in %s",
				cryptodash.ErrBadConfig, SessionAuthKeyEnvVar, SessionEncryptKeyEnvVar, env,
			)
		}

		l.Warn("session keys not set, generating keys valid until shutdown", nil)
		cfg.AuthKey = hex.EncodeToString(securecookie.GenerateRandomKey(64))
		cfg.EncryptKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
	}

	opts := []session.ServiceOpt{session.WithMaxAge(sessionMaxAge)}
	if uri := os.Getenv(redisURLEnvVar); uri != "" {
		opts = append(opts, session.WithRedis(uri, os.Getenv(redisPassEnvVar)))
	} else {
		opts = append(opts, session.WithCookie())
	}

	return session.NewStoreService(cfg, opts...)
}

// sessionName slugifies appTitle, e.g., "Crypto Dashboard" becomes "cryptodash-crypto-dashboard".
func sessionName(appTitle string) string {
	name := cases.Lower(language.English).String(appTitle)
	name = nonSlugChars.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "-")

	return "cryptodash-" + name
}

// defaultRouter constructs the [*router.Router] serving the dashboard.
//
// Every request is rate limited and tagged with a request ID and IP address.
// Page requests carry their session so navigations know where they come from.
func defaultRouter(rng *Ranger, httpLog logger.Logger) *router.Router {
	route := router.New(rng.env, middleware.LogRequest(httpLog))
	route.OnEveryRequest(
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.ForceHTTPS(rng.env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(httpLog),
	)

	cors := middleware.CORS(corsOrigins(rng.env)...)
	route.HandleRoutes(append([]router.Endpoint{
		{Path: MetricsPath, Method: http.MethodGet, Handler: metrics.Handler(rng.registry).ServeHTTP},
		{
			Path:        ResolvePath,
			Method:      http.MethodGet,
			Handler:     rng.resolveHandler,
			Middlewares: []middleware.Adapter{cors},
		},
		{
			Path:        ResolvePath,
			Method:      http.MethodOptions,
			Handler:     rng.resolveHandler,
			Middlewares: []middleware.Adapter{cors},
		},
	}, rng.endpoints...))

	if rng.maintenance {
		route.CatchAll(MaintModeHandler(rng.parser, rng.l, rng.contact))
		return route
	}

	route.CatchAll(
		rng.pageHandler,
		middleware.InjectSession(rng.sessions, cryptodash.SessionKey),
	)

	return route
}

// corsOrigins reads the comma-separated CORS_ORIGIN, defaulting to the Vite dev server in development.
func corsOrigins(env cryptodash.Environment) []string {
	origins := os.Getenv(corsOriginEnvVar)
	if origins == "" && env.IsDevelopment() {
		origins = view.DefaultDevOrigin
	}

	return strings.Split(origins, ",")
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, u *url.URL) *http.Server {
	port := cryptodash.EnvVarOrString(portEnvVar, DefaultPort)
	if p := u.Port(); p != "" && os.Getenv(portEnvVar) == "" {
		port = p
	}

	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  cryptodash.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  cryptodash.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: cryptodash.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}

	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
