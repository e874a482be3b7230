package event

import "errors"

// Sentinel kinds for event-batch errors.
var (
	ErrEventLength       = errors.New("collection length does not match batch size")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrSelection         = errors.New("selection violated")
)
