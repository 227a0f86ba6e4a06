package auth

import "errors"

var (
	ErrNoToken    = errors.New("no token")
	ErrNotValid   = errors.New("not valid")
	ErrUnexpected = errors.New("unexpected")
)
