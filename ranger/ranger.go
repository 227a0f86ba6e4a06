package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/switchback/auth"
	"github.com/xy-planning-network/switchback/content"
	"github.com/xy-planning-network/switchback/guard"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/metrics"
	"github.com/xy-planning-network/switchback/route"
)

// A Ranger manages and exposes all components of a switchback app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	auth     *auth.Service
	cache    content.Cache
	cfg      Config
	ctx      context.Context
	l        logger.Logger
	metrics  *metrics.Collector
	renderer content.Renderer
	resolver *guard.Resolver
	sessions session.SessionStorer
	srv      *http.Server
	table    *route.Table
}

// New constructs a Ranger from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{cfg: NewConfig()}
	followups := make([]OptFollowup, 0)

	// NOTE(dlk): calling an option configures the *Ranger under construction.
	// Some options require data from other options.
	// These options, therefore, must delay configuring the *Ranger
	// until either (1) user supplied RangerOptions or (2) default RangerOptions
	// configure the *Ranger first.
	// They return an optFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
		}
	}

	return r, nil
}

func (r *Ranger) Config() Config                          { return r.cfg }
func (r *Ranger) EmitAuth() *auth.Service                 { return r.auth }
func (r *Ranger) EmitLogger() logger.Logger               { return r.l }
func (r *Ranger) EmitMetrics() *metrics.Collector         { return r.metrics }
func (r *Ranger) EmitRenderer() content.Renderer          { return r.renderer }
func (r *Ranger) EmitResolver() *guard.Resolver           { return r.resolver }
func (r *Ranger) EmitSessionStore() session.SessionStorer { return r.sessions }
func (r *Ranger) EmitTable() *route.Table                 { return r.table }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - the context.Context supplied through WithContext being done
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	parent := r.ctx
	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(
		parent,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		r.srv.Handler = r.Router
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		r.l.Error(err.Error(), nil)
		return err

	case <-ctx.Done():
		r.l.Info(fmt.Sprint("stopping web server: ", context.Cause(ctx)), nil)
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server and releases the content cache.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	if c, ok := r.cache.(io.Closer); ok {
		if err := c.Close(); err != nil {
			r.l.Warn(fmt.Sprintf("could not close content cache: %s", err), nil)
		}
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}

func (r *Ranger) debug(msg string) {
	if r.l != nil {
		r.l.Debug(msg, nil)
	}
}
