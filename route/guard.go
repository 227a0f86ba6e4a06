package route

import "context"

// A Guard decides whether a matched route may activate.
//
// Check may block; callers evaluate guards one at a time, ancestors first.
type Guard interface {
	Check(ctx context.Context, gc *GuardContext) (Outcome, error)
}

// GuardFunc adapts a function into a Guard.
type GuardFunc func(ctx context.Context, gc *GuardContext) (Outcome, error)

func (f GuardFunc) Check(ctx context.Context, gc *GuardContext) (Outcome, error) { return f(ctx, gc) }

// Predicate adapts a yes or no check into a Guard.
// A false result denies the route with ErrRejected.
type Predicate func(ctx context.Context, gc *GuardContext) (bool, error)

func (p Predicate) Check(ctx context.Context, gc *GuardContext) (Outcome, error) {
	ok, err := p(ctx, gc)
	if err != nil {
		return Outcome{}, err
	}

	if !ok {
		return Deny(ErrRejected), nil
	}

	return Allow(), nil
}

// A GuardContext is everything a Guard is handed to reach its decision.
type GuardContext struct {
	// Path is the navigation target being resolved.
	Path string

	// Params are the parameters bound across the whole matched chain.
	Params Params

	// Route is the route whose guard is running.
	Route *Route

	// Chain is the full matched chain, outermost first.
	Chain []*Route

	// Caps are the capabilities a guard may consult.
	Caps Capabilities
}

// Capabilities hands guards the state they may depend on.
type Capabilities struct {
	Auth   Authenticator
	Values map[string]any
}

// Value looks up a named capability.
func (c Capabilities) Value(key string) (any, bool) {
	v, ok := c.Values[key]
	return v, ok
}

// An Authenticator reports whether the navigating party is signed in.
type Authenticator interface {
	Authenticated(ctx context.Context) (bool, error)
}

// AuthenticatorFunc adapts a function into an Authenticator.
type AuthenticatorFunc func(ctx context.Context) (bool, error)

func (f AuthenticatorFunc) Authenticated(ctx context.Context) (bool, error) { return f(ctx) }
