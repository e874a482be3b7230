package objects

import "errors"

// Sentinel kinds for object-view errors.
var (
	ErrUnknownView = errors.New("unknown derived view")
)
