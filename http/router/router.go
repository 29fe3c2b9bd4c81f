package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/http/middleware"
)

const (
	assetsPath       = "/assets/"
	assetsPublicPath = "client/public/"
	clientDistPath   = "client/dist/"
)

// An Endpoint maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Endpoint.
type Endpoint struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to their location in a standard cryptodash app layout.
type Router struct {
	Env           cryptodash.Environment
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
// Requests for the client's build output and public assets are served from the working directory.
func New(env cryptodash.Environment, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	r := mux.NewRouter()
	cacheControl := cacheControlMiddleware()

	assetsServer := http.FileServer(http.Dir(assetsPublicPath))
	clientServer := http.FileServer(http.Dir(clientDistPath))

	// NOTE: direct reqs for the client to its distribution,
	// which includes the lazily loaded view chunks
	r.PathPrefix("/" + clientDistPath).Handler(middleware.Chain(
		http.StripPrefix("/"+clientDistPath, clientServer),
		cacheControl,
		logReq,
	))

	r.PathPrefix(assetsPath).Handler(middleware.Chain(
		http.StripPrefix(assetsPath, assetsServer),
		cacheControl,
		logReq,
	))

	return &Router{logReq: logReq, Env: env, r: r}
}

// CatchAll sets up a handler for all requests not matching an Endpoint to funnel to.
// The client-side route table takes over from there.
func (r *Router) CatchAll(handler http.HandlerFunc, middlewares ...middleware.Adapter) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.Env)(handler),
			append(r.stack(), middlewares...)...,
		),
	)
}

// Handle applies the [Endpoint] to the [*Router].
func (r *Router) Handle(e Endpoint) {
	r.HandleRoutes([]Endpoint{e})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Endpoint is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.logReq,
	)
}

// HandleRoutes registers the set of Endpoints on the Router
// and includes all the [middleware.Adapter] on each Endpoint.
// Any [middleware.Adapter] already assigned to an Endpoint is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(endpoints []Endpoint, middlewares ...middleware.Adapter) {
	for _, e := range endpoints {
		mws := append(r.stack(), middlewares...)
		mws = append(mws, e.Middlewares...)
		handler := middleware.Chain(middleware.ReportPanic(r.Env)(e.Handler), mws...)
		r.r.Handle(e.Path, handler).Methods(e.Method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api") handles requests to endpoints like /api/coins/
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.stack(),
	}
}

// stack copies the every-request middlewares so appends never share a backing array.
func (r *Router) stack() []middleware.Adapter {
	return append([]middleware.Adapter(nil), r.everyReqStack...)
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
