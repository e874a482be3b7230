package hist

import (
	"github.com/mariajose2398/SIDM/internal/domain/binning"
	"github.com/mariajose2398/SIDM/internal/domain/event"
)

// Extract produces the raw values one axis contributes for a batch. It
// receives the full, unmasked collections plus the histogram's event
// mask. Implementations that index into passing events (event.At) must
// only be paired with a predicate guaranteeing the multiplicity they
// assume.
type Extract func(objs *event.Batch, mask []bool) (Values, error)

// Predicate selects the events a histogram draws entries from. A nil
// predicate passes every event.
type Predicate func(objs *event.Batch) ([]bool, error)

// Axis pairs a bin layout with the extraction function that feeds it.
// Axes are immutable and unaware of their siblings.
type Axis struct {
	spec binning.Spec
	f    Extract
}

// NewAxis binds an extraction function to a bin layout.
func NewAxis(spec binning.Spec, f Extract) Axis {
	return Axis{spec: spec, f: f}
}

// Spec returns the axis's bin layout.
func (a Axis) Spec() binning.Spec { return a.spec }

func (a Axis) extract(objs *event.Batch, mask []bool) (Values, error) {
	return a.f(objs, mask)
}
