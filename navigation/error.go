package navigation

import (
	"errors"
	"fmt"
)

var (
	ErrBodyTooLarge     = errors.New("response body too large")
	ErrCrossOrigin      = errors.New("cross origin navigation")
	ErrNavigationFetch  = errors.New("navigation fetch failed")
	ErrSuperseded       = errors.New("navigation superseded")
	ErrTooManyRedirects = errors.New("too many redirects")
)

// A FetchError reports a navigation whose content could not be retrieved.
// It satisfies errors.Is(err, ErrNavigationFetch).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", ErrNavigationFetch, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s: status %d", ErrNavigationFetch, e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrNavigationFetch }
