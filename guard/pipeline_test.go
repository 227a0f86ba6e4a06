package guard_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/guard"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/route"
)

// spy records each call, in order, and returns the configured outcome.
type spy struct {
	name  string
	out   route.Outcome
	err   error
	calls *[]string
}

func (s spy) Check(_ context.Context, _ *route.GuardContext) (route.Outcome, error) {
	*s.calls = append(*s.calls, s.name)
	return s.out, s.err
}

func newPipeline(opts ...guard.Option) *guard.Pipeline {
	return guard.NewPipeline(append([]guard.Option{guard.WithLogger(logger.Discard())}, opts...)...)
}

func chainOf(routes ...route.Route) []*route.Route {
	chain := make([]*route.Route, len(routes))
	for i := range routes {
		chain[i] = &routes[i]
	}
	return chain
}

func TestPipelineEvaluateNoGuards(t *testing.T) {
	// Arrange
	p := newPipeline()
	chain := chainOf(route.Route{Path: "/a"}, route.Route{Path: "b"})

	// Act
	out := p.Evaluate(context.Background(), chain, nil, "/a/b", route.Capabilities{})

	// Assert
	require.Equal(t, route.Allow(), out)
}

func TestPipelineEvaluateAncestorFirst(t *testing.T) {
	var calls []string
	boom := errors.New("nope")

	for _, tc := range []struct {
		name     string
		parent   route.Outcome
		child    route.Outcome
		calls    []string
		expected route.Outcome
	}{
		{"Both-Allow", route.Allow(), route.Allow(), []string{"parent", "child"}, route.Allow()},
		{"Parent-Denies", route.Deny(boom), route.Allow(), []string{"parent"}, route.Deny(boom)},
		{"Parent-Redirects", route.Redirect("/elsewhere"), route.Allow(), []string{"parent"}, route.Redirect("/elsewhere")},
		{"Child-Denies", route.Allow(), route.Deny(boom), []string{"parent", "child"}, route.Deny(boom)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			calls = nil
			p := newPipeline()
			chain := chainOf(
				route.Route{Path: "/admin", Guard: spy{name: "parent", out: tc.parent, calls: &calls}},
				route.Route{Path: "users", Guard: spy{name: "child", out: tc.child, calls: &calls}},
			)

			// Act
			out := p.Evaluate(context.Background(), chain, nil, "/admin/users", route.Capabilities{})

			// Assert
			require.Equal(t, tc.expected, out)
			require.Equal(t, tc.calls, calls)
		})
	}
}

func TestPipelineEvaluateGuardContext(t *testing.T) {
	// Arrange
	var got *route.GuardContext
	caps := route.Capabilities{Values: map[string]any{"role": "admin"}}
	params := route.Params{{Key: "id", Value: "7"}}
	chain := chainOf(route.Route{
		Path: "/users/:id",
		Guard: route.GuardFunc(func(_ context.Context, gc *route.GuardContext) (route.Outcome, error) {
			got = gc
			return route.Allow(), nil
		}),
	})

	// Act
	newPipeline().Evaluate(context.Background(), chain, params, "/users/7", caps)

	// Assert
	require.NotNil(t, got)
	require.Equal(t, "/users/7", got.Path)
	require.Equal(t, params, got.Params)
	require.Same(t, chain[0], got.Route)
	require.Equal(t, chain, got.Chain)
	require.Equal(t, "admin", got.Caps.Values["role"])
}

func TestPipelineEvaluateFailures(t *testing.T) {
	boom := errors.New("session store down")

	for _, tc := range []struct {
		name  string
		guard route.Guard
		is    []error
	}{
		{
			"Error",
			route.GuardFunc(func(context.Context, *route.GuardContext) (route.Outcome, error) {
				return route.Outcome{}, boom
			}),
			[]error{guard.ErrGuardFailed, boom},
		},
		{
			"Panic",
			route.GuardFunc(func(context.Context, *route.GuardContext) (route.Outcome, error) {
				panic("kaboom")
			}),
			[]error{guard.ErrGuardFailed, guard.ErrGuardPanic},
		},
		{
			"Zero-Outcome",
			route.GuardFunc(func(context.Context, *route.GuardContext) (route.Outcome, error) {
				return route.Outcome{}, nil
			}),
			[]error{guard.ErrInvalidOutcome},
		},
		{
			"Deny-Without-Reason",
			route.GuardFunc(func(context.Context, *route.GuardContext) (route.Outcome, error) {
				return route.Outcome{Verdict: route.Denied}, nil
			}),
			[]error{route.ErrRejected},
		},
		{
			"Empty-Redirect",
			route.GuardFunc(func(context.Context, *route.GuardContext) (route.Outcome, error) {
				return route.Redirect(""), nil
			}),
			[]error{guard.ErrInvalidOutcome},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			chain := chainOf(route.Route{Path: "/account", Guard: tc.guard})

			// Act
			var out route.Outcome
			require.NotPanics(t, func() {
				out = newPipeline().Evaluate(context.Background(), chain, nil, "/account", route.Capabilities{})
			})

			// Assert
			require.True(t, out.IsDeny())
			for _, err := range tc.is {
				require.ErrorIs(t, out.Reason, err)
			}
		})
	}
}

func TestPipelineEvaluateCancelled(t *testing.T) {
	// Arrange
	var calls []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chain := chainOf(route.Route{Path: "/a", Guard: spy{name: "a", out: route.Allow(), calls: &calls}})

	// Act
	out := newPipeline().Evaluate(ctx, chain, nil, "/a", route.Capabilities{})

	// Assert
	require.True(t, out.IsDeny())
	require.ErrorIs(t, out.Reason, context.Canceled)
	require.Empty(t, calls)
}

func TestPipelineEvaluateSequential(t *testing.T) {
	// Arrange
	var active, maxActive int32
	g := route.Predicate(func(context.Context, *route.GuardContext) (bool, error) {
		n := atomic.AddInt32(&active, 1)
		if n > atomic.LoadInt32(&maxActive) {
			atomic.StoreInt32(&maxActive, n)
		}
		atomic.AddInt32(&active, -1)
		return true, nil
	})
	chain := chainOf(route.Route{Path: "/a", Guard: g}, route.Route{Path: "b", Guard: g}, route.Route{Path: "c", Guard: g})

	// Act
	out := newPipeline().Evaluate(context.Background(), chain, nil, "/a/b/c", route.Capabilities{})

	// Assert
	require.True(t, out.IsAllow())
	require.Equal(t, int32(1), maxActive)
}

func TestPipelineLoginRedirect(t *testing.T) {
	rejects := route.Predicate(func(context.Context, *route.GuardContext) (bool, error) { return false, nil })

	for _, tc := range []struct {
		name     string
		opts     []guard.Option
		target   string
		expected route.Outcome
	}{
		{"No-Login-Path", nil, "/account", route.Deny(route.ErrRejected)},
		{"Account", []guard.Option{guard.WithLoginPath("/login")}, "/account", route.Redirect("/login?returnUrl=%2Faccount")},
		{"With-Query", []guard.Option{guard.WithLoginPath("/login")}, "/account?tab=billing", route.Redirect("/login?returnUrl=%2Faccount%3Ftab%3Dbilling")},
		{"Custom-Param", []guard.Option{guard.WithLoginPath("/signin?via=guard"), guard.WithReturnParam("next")}, "/account", route.Redirect("/signin?via=guard&next=%2Faccount")},
		{"Login-Itself", []guard.Option{guard.WithLoginPath("/login")}, "/login", route.Deny(route.ErrRejected)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			chain := chainOf(route.Route{Path: "/account", Guard: rejects})

			// Act
			out := newPipeline(tc.opts...).Evaluate(context.Background(), chain, nil, tc.target, route.Capabilities{})

			// Assert
			require.Equal(t, tc.expected, out)
		})
	}

	t.Run("Forbidden-Is-Not-Redirected", func(t *testing.T) {
		// Arrange
		chain := chainOf(route.Route{Path: "/admin", Guard: guard.Forbid()})

		// Act
		out := newPipeline(guard.WithLoginPath("/login")).Evaluate(context.Background(), chain, nil, "/admin", route.Capabilities{})

		// Assert
		require.True(t, out.IsDeny())
		require.ErrorIs(t, out.Reason, guard.ErrForbidden)
	})
}

func TestPipelineDenyWithoutReasonRedirectsToLogin(t *testing.T) {
	// Arrange
	bare := route.GuardFunc(func(context.Context, *route.GuardContext) (route.Outcome, error) {
		return route.Outcome{Verdict: route.Denied}, nil
	})
	chain := chainOf(route.Route{Path: "/vault", Guard: bare})

	// Act
	var out route.Outcome
	require.NotPanics(t, func() {
		out = newPipeline(guard.WithLoginPath("/login")).Evaluate(context.Background(), chain, nil, "/vault", route.Capabilities{})
	})

	// Assert
	require.Equal(t, route.Redirect("/login?returnUrl=%2Fvault"), out)
}
