package guard

import (
	"context"

	"github.com/xy-planning-network/switchback/route"
)

// Authenticated rejects navigation unless the Authenticator capability reports a signed in party.
// Paired with WithLoginPath, a rejection becomes a redirect to the login page.
func Authenticated() route.Guard {
	return route.Predicate(func(ctx context.Context, gc *route.GuardContext) (bool, error) {
		if gc.Caps.Auth == nil {
			return false, nil
		}
		return gc.Caps.Auth.Authenticated(ctx)
	})
}

// Anonymous redirects a signed in party to home.
func Anonymous(home string) route.Guard {
	return route.GuardFunc(func(ctx context.Context, gc *route.GuardContext) (route.Outcome, error) {
		if gc.Caps.Auth == nil {
			return route.Allow(), nil
		}

		ok, err := gc.Caps.Auth.Authenticated(ctx)
		if err != nil {
			return route.Outcome{}, err
		}

		if ok {
			return route.Redirect(home), nil
		}

		return route.Allow(), nil
	})
}

// Forbid denies every navigation with ErrForbidden.
func Forbid() route.Guard {
	return route.GuardFunc(func(context.Context, *route.GuardContext) (route.Outcome, error) {
		return route.Deny(ErrForbidden), nil
	})
}

// Builtins names the guards a route file may reference.
func Builtins(home string) map[string]route.Guard {
	return map[string]route.Guard{
		"authenticated": Authenticated(),
		"anonymous":     Anonymous(home),
		"deny":          Forbid(),
	}
}
