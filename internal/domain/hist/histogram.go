package hist

import (
	"fmt"

	"github.com/mariajose2398/SIDM/internal/domain/binning"
	"github.com/mariajose2398/SIDM/internal/domain/event"
)

// Histogram composes an ordered axis list, an optional event predicate
// and a weighted storage. Fill is the only mutating entry point. A
// Histogram must not be filled concurrently; workers fill private
// Clones and Merge them afterwards.
type Histogram struct {
	name    string
	axes    []Axis
	pred    Predicate
	storage *Storage
}

// Option applies a configuration option to a Histogram.
type Option func(*Histogram)

// WithPredicate restricts the histogram to events satisfying p. The
// predicate is evaluated exactly once per Fill, before any axis, and
// the same mask is handed to every axis.
func WithPredicate(p Predicate) Option {
	return func(h *Histogram) {
		h.pred = p
	}
}

// New builds a histogram over the given axes with empty storage.
func New(name string, axes []Axis, opts ...Option) (*Histogram, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoAxes, name)
	}
	h := &Histogram{
		name: name,
		axes: make([]Axis, len(axes)),
	}
	copy(h.axes, axes)
	for _, opt := range opts {
		opt(h)
	}
	st, err := NewStorage(h.specs())
	if err != nil {
		return nil, err
	}
	h.storage = st
	return h, nil
}

// Name returns the histogram's registry name.
func (h *Histogram) Name() string { return h.name }

// Axes returns the axis list in fill order.
func (h *Histogram) Axes() []Axis {
	out := make([]Axis, len(h.axes))
	copy(out, h.axes)
	return out
}

// Storage exposes the accumulator for serialization and merging.
func (h *Histogram) Storage() *Storage { return h.storage }

// Clone returns a histogram with the same definition and empty storage,
// suitable as a worker-private fill target.
func (h *Histogram) Clone() *Histogram {
	st, _ := NewStorage(h.specs())
	return &Histogram{name: h.name, axes: h.axes, pred: h.pred, storage: st}
}

// Fill processes one batch: evaluate the predicate, run every axis's
// extraction under the resulting mask, align the values into flat
// columns and increment the storage. weights carries one weight per
// event; nil means unit weight. A failed extraction or alignment leaves
// the storage untouched.
func (h *Histogram) Fill(objs *event.Batch, weights []float64) error {
	n := objs.Len()

	mask := make([]bool, n)
	if h.pred == nil {
		for i := range mask {
			mask[i] = true
		}
	} else {
		m, err := h.pred(objs)
		if err != nil {
			return fmt.Errorf("histogram %q: predicate: %w", h.name, err)
		}
		if len(m) != n {
			return fmt.Errorf("histogram %q: predicate: %w: %d flags for %d events", h.name, ErrMaskLength, len(m), n)
		}
		copy(mask, m)
	}

	values := make([]Values, len(h.axes))
	for i, ax := range h.axes {
		v, err := ax.extract(objs, mask)
		if err != nil {
			return fmt.Errorf("histogram %q: axis %d (%s): %w", h.name, i, ax.spec.Name(), err)
		}
		values[i] = v
	}

	cols, w, err := align(values, mask, weights)
	if err != nil {
		return fmt.Errorf("histogram %q: %w", h.name, err)
	}
	return h.storage.Increment(cols, w)
}

// Merge folds another histogram's storage into this one. Both must
// share the same name and bin layouts.
func (h *Histogram) Merge(o *Histogram) error {
	if h.name != o.name {
		return fmt.Errorf("%w: %q vs %q", ErrIncompatible, h.name, o.name)
	}
	if err := h.storage.Merge(o.storage); err != nil {
		return fmt.Errorf("histogram %q: %w", h.name, err)
	}
	return nil
}

func (h *Histogram) specs() []binning.Spec {
	specs := make([]binning.Spec, len(h.axes))
	for i, ax := range h.axes {
		specs[i] = ax.spec
	}
	return specs
}
