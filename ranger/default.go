package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/auth"
	"github.com/xy-planning-network/switchback/content"
	"github.com/xy-planning-network/switchback/guard"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/http/session"
	tmpl "github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/metrics"
	"github.com/xy-planning-network/switchback/route"
)

// homePath is where guard.Anonymous sends parties already signed in.
const homePath = "/"

// defaultOpts lists the options filling in whatever components the options passed to New leave unset.
// Each runs as a followup, in order, since later components are built from earlier ones.
func defaultOpts() []RangerOption {
	return []RangerOption{
		fallback(defaultLogger),
		fallback(defaultMetrics),
		fallback(defaultTable),
		fallback(defaultResolver),
		fallback(defaultRenderer),
		fallback(defaultSessions),
		fallback(defaultAuth),
		fallback(defaultResponder),
		fallback(defaultRouter),
		fallback(defaultServer),
	}
}

func fallback(fn func(*Ranger) error) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error { return fn(rng) }, nil
	}
}

// defaultLogger constructs a logger.Logger for the app,
// reporting to Sentry when SENTRY_DSN is set.
func defaultLogger(rng *Ranger) error {
	if rng.l != nil {
		return nil
	}

	rng.l = logger.NewLogger(
		rng.cfg.SentryDSN,
		logger.WithEnv(rng.cfg.Env.String()),
		logger.WithLevel(rng.cfg.LogLevel),
	)
	rng.debug("setting up app logger")

	return nil
}

func defaultMetrics(rng *Ranger) error {
	if rng.metrics == nil {
		rng.metrics = metrics.New()
	}

	return nil
}

// defaultTable compiles the route table found at ROUTES_FILE.
// Guards are referenced by the names guard.Builtins registers.
func defaultTable(rng *Ranger) error {
	if rng.table != nil {
		return nil
	}

	routes, err := route.LoadFile(rng.cfg.RoutesFile, guard.Builtins(homePath))
	if err != nil {
		return fmt.Errorf("could not load routes from %s: %w", rng.cfg.RoutesFile, err)
	}

	rng.table, err = route.NewTable(routes)
	if err != nil {
		return err
	}

	rng.debug(fmt.Sprintf("using routes from %s", rng.cfg.RoutesFile))
	return nil
}

func defaultResolver(rng *Ranger) error {
	if rng.resolver != nil {
		return nil
	}

	rng.resolver = guard.NewResolver(
		rng.table,
		guard.WithLogger(rng.l),
		guard.WithLoginPath(rng.cfg.LoginPath),
		guard.WithMaxRedirects(rng.cfg.MaxRedirects),
		guard.WithMetrics(rng.metrics),
	)

	return nil
}

// defaultRenderer renders templates, then markdown, found in PAGES_DIR.
// With a positive CONTENT_CACHE_TTL, rendered pages are cached in Redis when REDIS_URL is set
// and in memory otherwise.
func defaultRenderer(rng *Ranger) error {
	if rng.renderer != nil {
		return nil
	}

	pages := os.DirFS(rng.cfg.PagesDir)
	rng.renderer = content.Chain(content.NewTemplates(pages), content.NewMarkdown(pages))
	if rng.cfg.CacheTTL <= 0 {
		return nil
	}

	if rng.cache == nil {
		c, err := defaultCache(rng.cfg)
		if err != nil {
			return err
		}

		rng.cache = c
	}

	rng.renderer = content.NewCached(rng.renderer, rng.cache, rng.cfg.CacheTTL, rng.metrics)
	rng.debug(fmt.Sprintf("caching pages in %T for %s", rng.cache, rng.cfg.CacheTTL))

	return nil
}

func defaultCache(cfg Config) (content.Cache, error) {
	if cfg.RedisURL == "" {
		return content.NewMemoryCache(), nil
	}

	return content.NewRedisCacheURL(cfg.RedisURL, cfg.RedisPassword)
}

// defaultSessions constructs a session.SessionStorer storing sessions in cookies,
// or in Redis when REDIS_URL is set.
//
// Both SESSION_AUTH_KEY and SESSION_ENCRYPTION_KEY must be valid hex encoded values; cf. [encoding/hex].
// In DEVELOPMENT and TESTING, leaving both unset runs the app without sessions.
func defaultSessions(rng *Ranger) error {
	if rng.sessions != nil {
		return nil
	}

	cfg := rng.cfg
	if cfg.SessionAuthKey == "" && cfg.SessionEncryptKey == "" {
		if cfg.Env.IsDevelopment() || cfg.Env.IsTesting() {
			rng.debug("no session keys set, running without sessions")
			return nil
		}

		return fmt.Errorf("%w: %s and %s", switchback.ErrMissingData, SessionAuthKeyEnvVar, SessionEncryptKeyEnvVar)
	}

	args := []session.ServiceOpt{session.WithMaxAge(sessionMaxAge)}
	if cfg.RedisURL != "" {
		args = append(args, session.WithRedis(cfg.RedisURL, cfg.RedisPassword))
	} else {
		args = append(args, session.WithCookie())
	}

	store, err := session.NewStoreService(session.Config{
		AuthKey:     cfg.SessionAuthKey,
		EncryptKey:  cfg.SessionEncryptKey,
		Env:         cfg.Env,
		SessionName: cfg.SessionName(),
	}, args...)
	if err != nil {
		return err
	}

	rng.sessions = store
	rng.debug(fmt.Sprintf("using session store %s", store.Name()))

	return nil
}

// defaultAuth accepts JWTs signed with JWT_SECRET, when set.
func defaultAuth(rng *Ranger) error {
	if rng.auth != nil || rng.cfg.JWTSecret == "" {
		return nil
	}

	svc, err := auth.NewService(rng.cfg.JWTSecret, rng.cfg.BaseURL.Host)
	if err != nil {
		return err
	}

	rng.auth = svc
	return nil
}

// defaultResponder configures the *resp.Responder pages are written with.
// A tmpl/layout.tmpl or tmpl/error.tmpl in PAGES_DIR replaces the embedded one.
func defaultResponder(rng *Ranger) error {
	if rng.Responder != nil {
		return nil
	}

	rng.Responder = resp.NewResponder(
		resp.WithAssets(os.DirFS(rng.cfg.StaticDir)),
		resp.WithContactErrMsg(fmt.Sprintf(session.ContactUsErr, rng.cfg.ContactUs)),
		resp.WithCtxKeys(switchback.CurrentUserKey, switchback.RequestIDKey),
		resp.WithEnv(rng.cfg.Env),
		resp.WithLogger(rng.l),
		resp.WithParser(tmpl.NewParser([]fs.FS{os.DirFS(rng.cfg.PagesDir)})),
		resp.WithRootURL(rng.cfg.BaseURL.String()),
	)

	return nil
}

// defaultRouter constructs the *router.Router the web server uses:
// static assets, metrics, the resolve endpoint and, for every other GET, the pages handler.
func defaultRouter(rng *Ranger) error {
	if rng.Router != nil {
		return nil
	}

	rt := router.New(rng.cfg.Env, middleware.LogRequest(rng.l))
	rt.OnEveryRequest(defaultMiddlewares(rng)...)
	rt.Static(os.DirFS(rng.cfg.StaticDir))
	rt.Metrics(rng.metrics.Handler())

	var opts []router.PagesOpt
	if rng.auth != nil {
		opts = append(opts, router.WithAuthenticator(rng.auth))
	}

	pages := router.NewPages(rng.resolver, rng.renderer, rng.Responder, opts...)
	rt.Handle(router.Route{Path: router.ResolvePath, Method: http.MethodGet, Handler: pages.Resolve})
	rt.CatchAll(pages)
	rng.Router = rt

	return nil
}

// defaultMiddlewares lists the middleware.Adapter every page request passes through, outermost first.
func defaultMiddlewares(rng *Ranger) []middleware.Adapter {
	mws := []middleware.Adapter{
		middleware.ForceHTTPS(rng.cfg.Env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(rng.l),
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.CORS(rng.cfg.CORSOrigin),
		middleware.InjectPartial(),
		middleware.InjectSession(rng.sessions),
		middleware.CurrentSubject(),
	}

	if rng.auth != nil {
		mws = append(mws, rng.auth.Inject)
	}

	return mws
}

// defaultServer constructs a default [*http.Server].
func defaultServer(rng *Ranger) error {
	if rng.srv != nil {
		return nil
	}

	rng.srv = &http.Server{
		Addr:         rng.cfg.Port,
		Handler:      rng.Router,
		IdleTimeout:  rng.cfg.IdleTimeout,
		ReadTimeout:  rng.cfg.ReadTimeout,
		WriteTimeout: rng.cfg.WriteTimeout,
	}

	if ctx := rng.ctx; ctx != nil {
		rng.srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return nil
}
