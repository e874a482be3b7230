package registry

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound    = errors.New("histogram not declared")
	ErrSetMismatch = errors.New("histogram sets cover different definitions")
)
