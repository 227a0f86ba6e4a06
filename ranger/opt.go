package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/auth"
	"github.com/xy-planning-network/switchback/content"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/metrics"
	"github.com/xy-planning-network/switchback/route"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the optFollowup it returns.
// Some RangerOptions require data in others and thus an optFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRouter is an example of the second.
// An unexported field on the passed in *Ranger
// is updated only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithAuth exposes the provided *auth.Service to the switchback app,
// letting bearer tokens satisfy guards alongside sessions.
func WithAuth(svc *auth.Service) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.auth = svc
		rng.debug("using jwt auth service")

		return nil, nil
	}
}

// WithCache exposes the provided content.Cache to the switchback app.
// Rendered pages are cached only when the Config's CacheTTL is positive.
func WithCache(c content.Cache) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.cache = c
		rng.debug(fmt.Sprintf("using content cache %T", c))

		return nil, nil
	}
}

// WithConfig replaces the Config read from environment variables.
func WithConfig(cfg Config) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if cfg.BaseURL == nil {
			return nil, fmt.Errorf("%w: Config.BaseURL cannot be nil", switchback.ErrMissingData)
		}

		rng.cfg = cfg
		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the switchback app.
// When it is done, Guide shuts the web server down.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		rng.debug(fmt.Sprintf("using context %T", ctx))

		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		e := switchback.Environment(envVar)
		if err := e.Valid(); err != nil {
			e = switchback.EnvVarOrEnv(environmentEnvVar, switchback.Development)
		}

		rng.cfg.Env = e
		rng.debug(fmt.Sprintf("using env %s", e))

		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the switchback app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		rng.debug(fmt.Sprintf("using logger %T", l))

		return nil, nil
	}
}

// WithMetrics exposes the provided *metrics.Collector to the switchback app.
func WithMetrics(c *metrics.Collector) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.metrics = c
		return nil, nil
	}
}

// WithRenderer exposes the provided content.Renderer to the switchback app,
// replacing templates and markdown read from the pages directory.
func WithRenderer(r content.Renderer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.renderer = r
		rng.debug(fmt.Sprintf("using renderer %T", r))

		return nil, nil
	}
}

// WithResponder constructs a followup option that, when called,
// exposes the *resp.Responder to the switchback app.
//
// The pages handler a default router mounts keeps the default *resp.Responder;
// pair WithResponder with WithRouter.
func WithResponder(r *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Responder = r
			rng.debug("using responder")

			return nil
		}, nil
	}
}

// WithRouter constructs a followup option that, when called,
// exposes the *router.Router to the switchback app.
func WithRouter(r *router.Router) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Router = r
			rng.srv.Handler = r
			rng.debug(fmt.Sprintf("using router %T", r))

			return nil
		}, nil
	}
}

// WithRoutes compiles routes into the table the switchback app resolves against,
// in place of the ROUTES_FILE.
func WithRoutes(routes []route.Route) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		t, err := route.NewTable(routes)
		if err != nil {
			return nil, err
		}

		rng.table = t
		return nil, nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the switchback app.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.sessions = store
		rng.debug(fmt.Sprintf("using session store %T", store))

		return nil, nil
	}
}

// WithServer exposes the *http.Server to the switchback app.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.srv = s
		return nil, nil
	}
}
