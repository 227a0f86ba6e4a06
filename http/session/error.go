package session

import "errors"

var (
	ErrNoSubject = errors.New("no subject")
	ErrNotValid  = errors.New("not valid")
)
