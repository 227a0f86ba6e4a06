package guard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrForbidden        = errors.New("forbidden")
	ErrGuardFailed      = errors.New("guard failed")
	ErrGuardPanic       = errors.New("guard panicked")
	ErrInvalidOutcome   = errors.New("invalid guard outcome")
	ErrTooManyRedirects = errors.New("too many redirects")
)

// A GuardError wraps an error a guard returned or a panic it raised.
// It satisfies errors.Is(err, ErrGuardFailed).
type GuardError struct {
	Route string
	Err   error
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%s on %s: %s", ErrGuardFailed, e.Route, e.Err)
}

func (e *GuardError) Unwrap() error { return e.Err }

func (e *GuardError) Is(target error) bool { return target == ErrGuardFailed }

// A TooManyRedirectsError reports a redirect chain longer than the configured bound.
type TooManyRedirectsError struct {
	Max   int
	Chain []string
}

func (e *TooManyRedirectsError) Error() string {
	return fmt.Sprintf("%s: more than %d: %s", ErrTooManyRedirects, e.Max, strings.Join(e.Chain, " -> "))
}

func (e *TooManyRedirectsError) Unwrap() error { return ErrTooManyRedirects }
