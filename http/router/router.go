package router

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
)

const (
	staticPath  = "/static/"
	metricsPath = "/metrics"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to their location in a standard switchback app layout.
type Router struct {
	Env           switchback.Environment
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
func New(env switchback.Environment, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Router{logReq: logReq, Env: env, r: mux.NewRouter()}
}

// CatchAll sets up a handler for every GET or HEAD request no other Route matched,
// e.g. the Pages handler.
// Other methods reaching no Route are answered 405.
//
// CatchAll replaces any handler set with HandleNotFound.
func (r *Router) CatchAll(handler http.Handler) {
	h := middleware.Chain(middleware.ReportPanic(r.Env)(handler), r.everyReqStack...)
	r.r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		h.ServeHTTP(w, req)
	})
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter{}, r.everyReqStack...), middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(middleware.ReportPanic(r.Env)(route.Handler), mws...)
		r.r.Handle(route.Path, handler).Methods(route.Method)
	}
}

// Metrics exposes handler, e.g. (*metrics.Collector).Handler, at /metrics.
func (r *Router) Metrics(handler http.Handler) {
	r.r.Handle(metricsPath, handler).Methods(http.MethodGet)
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

// Static serves files under /static/ from the static/ directory of fsys.
func (r *Router) Static(fsys fs.FS) {
	r.r.PathPrefix(staticPath).Handler(middleware.Chain(
		http.FileServer(http.FS(fsys)),
		cacheControlMiddleware(),
		r.logReq,
	))
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: r.everyReqStack,
	}
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
