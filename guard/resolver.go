package guard

import (
	"context"
	"net/url"

	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/route"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// A Resolution is the result of resolving a navigation target.
type Resolution struct {
	// Target is the final target after following redirects.
	Target string

	// Match is the match for Target, nil when nothing matched.
	Match *route.Match

	// Outcome is the pipeline's decision for Match.
	// It is a Redirect only when the redirect leaves the app.
	Outcome route.Outcome

	// Redirects lists every redirect target followed, in order.
	Redirects []string
}

// Found reports whether Target matched a route.
func (r Resolution) Found() bool { return r.Match != nil }

// Redirected reports whether the original target was redirected.
func (r Resolution) Redirected() bool { return len(r.Redirects) > 0 || r.Outcome.IsRedirect() }

// Location is where a redirected navigation ends up.
func (r Resolution) Location() string {
	if r.Outcome.IsRedirect() {
		return r.Outcome.Target
	}
	return r.Target
}

// A Resolver matches navigation targets against a Table and runs their guards,
// re-resolving guard redirects up to a bound.
// It is safe for concurrent use.
type Resolver struct {
	table    *route.Table
	pipeline *Pipeline
}

// NewResolver constructs a Resolver over table.
func NewResolver(table *route.Table, opts ...Option) *Resolver {
	c := newConfig(opts)
	return &Resolver{table: table, pipeline: &Pipeline{config: c}}
}

// Table returns the Table the Resolver matches against.
func (r *Resolver) Table() *route.Table { return r.table }

// Resolve matches target and evaluates the guards of the match.
//
// A Redirect outcome pointing inside the app is resolved in turn.
// Resolve fails with a *TooManyRedirectsError once more redirects
// than the configured bound chain together.
// No match is not an error: the returned Resolution reports Found as false.
func (r *Resolver) Resolve(ctx context.Context, target string, caps route.Capabilities) (Resolution, error) {
	ctx, span := r.pipeline.tracer.Start(ctx, "switchback.resolve",
		trace.WithAttributes(attribute.String("switchback.target", target)),
	)
	defer span.End()

	res := Resolution{Target: target}
	for {
		m := r.table.Match(res.Target)
		if m == nil {
			res.Match = nil
			res.Outcome = route.Outcome{}
			r.finish(span, "not_found")
			return res, nil
		}

		res.Match = m
		res.Outcome = r.pipeline.Evaluate(ctx, m.Chain, m.Params, m.URL(), caps)
		if !res.Outcome.IsRedirect() {
			r.finish(span, res.Outcome.Verdict.String())
			return res, nil
		}

		if external(res.Outcome.Target) {
			r.finish(span, "external")
			return res, nil
		}

		if len(res.Redirects) >= r.pipeline.maxRedirects {
			err := &TooManyRedirectsError{
				Max:   r.pipeline.maxRedirects,
				Chain: append(append([]string{target}, res.Redirects...), res.Outcome.Target),
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.pipeline.metrics.ObserveResolution("loop")
			r.pipeline.logger.Error(err.Error(), &logger.LogContext{Error: err, Path: target})
			return res, err
		}

		r.pipeline.metrics.ObserveRedirect()
		res.Redirects = append(res.Redirects, res.Outcome.Target)
		res.Target = res.Outcome.Target
	}
}

func (r *Resolver) finish(span trace.Span, outcome string) {
	span.SetAttributes(attribute.String("switchback.outcome", outcome))
	span.SetStatus(codes.Ok, "")
	r.pipeline.metrics.ObserveResolution(outcome)
}

// external reports whether target leaves the app.
func external(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.IsAbs() || u.Host != ""
}
