package content

import "errors"

var (
	ErrCache    = errors.New("content cache")
	ErrNotFound = errors.New("content not found")
	ErrRender   = errors.New("could not render")
)
