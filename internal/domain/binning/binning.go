// Package binning provides immutable axis bin layouts. A Spec maps any
// float64 value, including NaN, to a defined bin index; values outside
// the declared range land in dedicated underflow and overflow bins so
// nothing is ever dropped silently.
package binning

import (
	"fmt"
	"math"
)

// Kind discriminates the three bin layouts.
type Kind int

const (
	// Continuous is n equal-width bins over the half-open interval [lo, hi).
	Continuous Kind = iota
	// Discrete is one unit-width bin per integer in [lo, hi).
	Discrete
	// Category is one bin per declared value plus a trailing "other" bin.
	Category
)

// Spec is one axis's bin layout. Specs are immutable after construction
// and safe for unsynchronized concurrent reads.
//
// In-range bins occupy indices 0..Bins()-1. Continuous and Discrete
// layouts append an underflow bin at Bins() and an overflow bin at
// Bins()+1; Category layouts append a single "other" bin at Bins().
type Spec struct {
	kind   Kind
	name   string
	label  string
	nbins  int
	lo, hi float64
	cats   []int
}

// Option applies a cosmetic setting to a Spec under construction.
type Option func(*Spec)

// WithLabel sets a display label. Labels do not participate in the
// binning contract or in compatibility checks.
func WithLabel(label string) Option {
	return func(s *Spec) {
		s.label = label
	}
}

// NewContinuous builds an n-bin equal-width layout over [lo, hi).
func NewContinuous(name string, n int, lo, hi float64, opts ...Option) (Spec, error) {
	if n <= 0 {
		return Spec{}, fmt.Errorf("%w: axis %q needs a positive bin count, got %d", ErrInvalidRange, name, n)
	}
	if hi <= lo {
		return Spec{}, fmt.Errorf("%w: axis %q has hi %v <= lo %v", ErrInvalidRange, name, hi, lo)
	}
	s := Spec{kind: Continuous, name: name, nbins: n, lo: lo, hi: hi}
	for _, opt := range opts {
		opt(&s)
	}
	return s, nil
}

// NewDiscrete builds a unit-width integer layout over [lo, hi).
func NewDiscrete(name string, lo, hi int, opts ...Option) (Spec, error) {
	if hi <= lo {
		return Spec{}, fmt.Errorf("%w: axis %q has hi %d <= lo %d", ErrInvalidRange, name, hi, lo)
	}
	s := Spec{kind: Discrete, name: name, nbins: hi - lo, lo: float64(lo), hi: float64(hi)}
	for _, opt := range opts {
		opt(&s)
	}
	return s, nil
}

// NewCategory builds a layout with one bin per declared value, in the
// declared order, plus an "other" bin for anything unlisted.
func NewCategory(name string, values []int, opts ...Option) (Spec, error) {
	if len(values) == 0 {
		return Spec{}, fmt.Errorf("%w: axis %q", ErrEmptyCategories, name)
	}
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			return Spec{}, fmt.Errorf("%w: axis %q declares %d twice", ErrDuplicateCategory, name, v)
		}
		seen[v] = struct{}{}
	}
	cats := make([]int, len(values))
	copy(cats, values)
	s := Spec{kind: Category, name: name, nbins: len(cats), cats: cats}
	for _, opt := range opts {
		opt(&s)
	}
	return s, nil
}

// Kind returns the layout variant.
func (s Spec) Kind() Kind { return s.kind }

// Name returns the axis name.
func (s Spec) Name() string { return s.name }

// Label returns the display label, or the axis name when none was set.
func (s Spec) Label() string {
	if s.label == "" {
		return s.name
	}
	return s.label
}

// Bins returns the number of declared in-range bins.
func (s Spec) Bins() int { return s.nbins }

// Total returns the full bin count including underflow/overflow or the
// "other" bin. Index always returns a value in [0, Total()).
func (s Spec) Total() int {
	if s.kind == Category {
		return s.nbins + 1
	}
	return s.nbins + 2
}

// Underflow returns the underflow bin index, or -1 for Category layouts,
// which have no notion of "below range".
func (s Spec) Underflow() int {
	if s.kind == Category {
		return -1
	}
	return s.nbins
}

// Overflow returns the overflow bin index. For Category layouts this is
// the "other" bin, which also absorbs NaN.
func (s Spec) Overflow() int {
	if s.kind == Category {
		return s.nbins
	}
	return s.nbins + 1
}

// Lo returns the inclusive lower edge. Zero for Category layouts.
func (s Spec) Lo() float64 { return s.lo }

// Hi returns the exclusive upper edge. Zero for Category layouts.
func (s Spec) Hi() float64 { return s.hi }

// Categories returns the declared category values, nil for range layouts.
func (s Spec) Categories() []int {
	if s.cats == nil {
		return nil
	}
	out := make([]int, len(s.cats))
	copy(out, s.cats)
	return out
}

// Edges returns the Bins()+1 bin edges for range layouts, nil for
// Category layouts.
func (s Spec) Edges() []float64 {
	if s.kind == Category {
		return nil
	}
	edges := make([]float64, s.nbins+1)
	width := (s.hi - s.lo) / float64(s.nbins)
	for i := range edges {
		edges[i] = s.lo + float64(i)*width
	}
	edges[s.nbins] = s.hi
	return edges
}

// Index maps a value to its bin. NaN routes to the overflow bin so that
// undefined quantities stay visible in the fill counts.
func (s Spec) Index(v float64) int {
	if s.kind == Category {
		for i, c := range s.cats {
			if v == float64(c) {
				return i
			}
		}
		return s.Overflow()
	}
	if math.IsNaN(v) {
		return s.Overflow()
	}
	if v < s.lo {
		return s.Underflow()
	}
	if v >= s.hi {
		return s.Overflow()
	}
	idx := int(float64(s.nbins) * (v - s.lo) / (s.hi - s.lo))
	if idx >= s.nbins {
		// Guards the upper edge against float rounding.
		idx = s.nbins - 1
	}
	return idx
}

// Equal reports whether two Specs describe the identical bin layout.
// Histograms may only merge when every axis pair is Equal. Labels are
// cosmetic and excluded.
func (s Spec) Equal(o Spec) bool {
	if s.kind != o.kind || s.name != o.name || s.nbins != o.nbins {
		return false
	}
	if s.kind == Category {
		for i, c := range s.cats {
			if o.cats[i] != c {
				return false
			}
		}
		return true
	}
	return s.lo == o.lo && s.hi == o.hi
}
