package hist

import "errors"

// Sentinel kinds for histogram errors.
var (
	ErrNoAxes         = errors.New("histogram needs at least one axis")
	ErrShape          = errors.New("axis values have unexpected shape")
	ErrRaggedMismatch = errors.New("ragged axes disagree on per-event lengths")
	ErrWeightLength   = errors.New("weight array length does not match batch size")
	ErrMaskLength     = errors.New("mask length does not match batch size")
	ErrIncompatible   = errors.New("histogram definitions are incompatible")
)
