package titles

import "errors"

var (
	ErrValidation = errors.New("invalid request")
	// ErrFetch covers navigation, timeout and protocol failures alike.
	ErrFetch = errors.New("title fetch failed")
)
