package route

import "fmt"

// A Verdict is the kind of decision a guard reaches.
type Verdict int

const (
	verdictUnknown Verdict = iota
	Allowed
	Redirected
	Denied
)

func (v Verdict) String() string {
	switch v {
	case Allowed:
		return "allow"
	case Redirected:
		return "redirect"
	case Denied:
		return "deny"
	default:
		return "unknown"
	}
}

// An Outcome is the decision a guard reaches for a route.
// The zero value is not a valid Outcome.
type Outcome struct {
	Verdict Verdict
	Target  string
	Reason  error
}

// Allow lets navigation continue to the next guard or activate the route.
func Allow() Outcome { return Outcome{Verdict: Allowed} }

// Redirect sends navigation to target instead.
func Redirect(target string) Outcome { return Outcome{Verdict: Redirected, Target: target} }

// Deny stops navigation. A nil reason is reported as ErrRejected.
func Deny(reason error) Outcome {
	if reason == nil {
		reason = ErrRejected
	}
	return Outcome{Verdict: Denied, Reason: reason}
}

func (o Outcome) IsAllow() bool    { return o.Verdict == Allowed }
func (o Outcome) IsRedirect() bool { return o.Verdict == Redirected }
func (o Outcome) IsDeny() bool     { return o.Verdict == Denied }

// Valid reports whether o was built with Allow, Redirect or Deny.
func (o Outcome) Valid() bool {
	switch o.Verdict {
	case Allowed, Denied:
		return true
	case Redirected:
		return o.Target != ""
	default:
		return false
	}
}

func (o Outcome) String() string {
	switch o.Verdict {
	case Redirected:
		return fmt.Sprintf("redirect(%s)", o.Target)
	case Denied:
		return fmt.Sprintf("deny(%v)", o.Reason)
	default:
		return o.Verdict.String()
	}
}
