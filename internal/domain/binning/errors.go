package binning

import "errors"

// Sentinel kinds for binning errors.
var (
	ErrInvalidRange      = errors.New("invalid bin range")
	ErrEmptyCategories   = errors.New("empty category list")
	ErrDuplicateCategory = errors.New("duplicate category value")
)
