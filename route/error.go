package route

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPattern = errors.New("invalid route pattern")
	ErrInvalidTable   = errors.New("invalid route table")
	ErrRejected       = errors.New("rejected by guard")
	ErrUnknownGuard   = errors.New("unknown guard")
)

// An InvalidPatternError reports a route pattern that cannot be compiled.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidPattern, e.Pattern, e.Reason)
}

func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }
