package guard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/route"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// A Pipeline evaluates the guards of a matched chain.
type Pipeline struct {
	config
}

// NewPipeline constructs a Pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	return &Pipeline{config: newConfig(opts)}
}

// Evaluate runs the guard of every route in chain, outermost first, one at a time,
// stopping at the first outcome that is not Allow.
// A route without a guard allows.
//
// Errors and panics raised by a guard deny the route with a *GuardError;
// Evaluate never returns them.
func (p *Pipeline) Evaluate(ctx context.Context, chain []*route.Route, params route.Params, target string, caps route.Capabilities) route.Outcome {
	var full string
	for _, r := range chain {
		full = route.Join(full, r.Path)
		if r.Guard == nil {
			continue
		}

		gc := &route.GuardContext{
			Path:   target,
			Params: params,
			Route:  r,
			Chain:  chain,
			Caps:   caps,
		}

		out := p.check(ctx, full, gc)
		if out.IsAllow() {
			continue
		}

		if out.IsDeny() && errors.Is(out.Reason, route.ErrRejected) && p.loginPath != "" && !p.isLogin(target) {
			return route.Redirect(p.loginURL(target))
		}

		return out
	}

	return route.Allow()
}

func (p *Pipeline) check(ctx context.Context, pattern string, gc *route.GuardContext) (out route.Outcome) {
	ctx, span := p.tracer.Start(ctx, "switchback.guard",
		trace.WithAttributes(
			attribute.String("switchback.route", pattern),
			attribute.String("switchback.path", gc.Path),
		),
	)
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			err := &GuardError{Route: pattern, Err: fmt.Errorf("%w: %v", ErrGuardPanic, rec)}
			p.logger.Error(err.Error(), &logger.LogContext{Error: err, Path: gc.Path, Route: pattern})
			out = route.Deny(err)
		}

		span.SetAttributes(attribute.String("switchback.outcome", out.Verdict.String()))
		if out.IsDeny() {
			span.SetStatus(codes.Error, fmt.Sprint(out.Reason))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		p.metrics.ObserveGuard(pattern, out.Verdict.String(), time.Since(start))
	}()

	if err := ctx.Err(); err != nil {
		return route.Deny(err)
	}

	out, err := gc.Route.Guard.Check(ctx, gc)
	if err != nil {
		gerr := &GuardError{Route: pattern, Err: err}
		span.RecordError(err)
		p.logger.Error(gerr.Error(), &logger.LogContext{Error: err, Path: gc.Path, Route: pattern})
		return route.Deny(gerr)
	}

	if !out.Valid() {
		err := fmt.Errorf("%w: %s", ErrInvalidOutcome, out)
		p.logger.Warn(err.Error(), &logger.LogContext{Path: gc.Path, Route: pattern})
		return route.Deny(err)
	}

	if out.IsDeny() && out.Reason == nil {
		out = route.Deny(nil)
	}

	if !out.IsAllow() {
		p.logger.Debug("guard stopped navigation: "+out.String(), &logger.LogContext{Path: gc.Path, Route: pattern})
	}

	return out
}

func (p *Pipeline) isLogin(target string) bool {
	login, _ := route.Normalize(p.loginPath)
	path, _ := route.Normalize(target)
	return login == path
}

func (p *Pipeline) loginURL(target string) string {
	sep := "?"
	if strings.Contains(p.loginPath, "?") {
		sep = "&"
	}
	return p.loginPath + sep + p.returnParam + "=" + url.QueryEscape(target)
}
