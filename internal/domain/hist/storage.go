package hist

import (
	"fmt"

	"github.com/mariajose2398/SIDM/internal/domain/binning"
)

// Storage is an N-dimensional weighted accumulator. Each cell tracks
// the sum of weights, the sum of squared weights and the raw entry
// count, laid out row-major over the axes' Total() bin counts so that
// under/overflow cells are ordinary addressable bins. Storage is not
// safe for concurrent mutation; parallel fills own private copies and
// combine them with Merge.
type Storage struct {
	specs  []binning.Spec
	shape  []int
	stride []int
	sumw   []float64
	sumw2  []float64
	count  []uint64
}

// NewStorage creates an empty accumulator over the given bin layouts.
func NewStorage(specs []binning.Spec) (*Storage, error) {
	if len(specs) == 0 {
		return nil, ErrNoAxes
	}
	s := &Storage{
		specs:  make([]binning.Spec, len(specs)),
		shape:  make([]int, len(specs)),
		stride: make([]int, len(specs)),
	}
	copy(s.specs, specs)
	cells := 1
	for i, sp := range specs {
		s.shape[i] = sp.Total()
		cells *= s.shape[i]
	}
	str := 1
	for i := len(specs) - 1; i >= 0; i-- {
		s.stride[i] = str
		str *= s.shape[i]
	}
	s.sumw = make([]float64, cells)
	s.sumw2 = make([]float64, cells)
	s.count = make([]uint64, cells)
	return s, nil
}

// Dims returns the number of axes.
func (s *Storage) Dims() int { return len(s.specs) }

// Shape returns the per-axis total bin counts, including under/overflow.
func (s *Storage) Shape() []int {
	out := make([]int, len(s.shape))
	copy(out, s.shape)
	return out
}

// Specs returns the bin layouts the storage was built from.
func (s *Storage) Specs() []binning.Spec {
	out := make([]binning.Spec, len(s.specs))
	copy(out, s.specs)
	return out
}

// Increment bins one flat column per axis, all of equal length, adding
// weights[k] to the cell addressed by entry k of every column.
func (s *Storage) Increment(cols [][]float64, weights []float64) error {
	if len(cols) != len(s.specs) {
		return fmt.Errorf("%w: %d columns for %d axes", ErrShape, len(cols), len(s.specs))
	}
	for ai, col := range cols {
		if len(col) != len(weights) {
			return fmt.Errorf("%w: axis %d column has %d entries, weights have %d", ErrShape, ai, len(col), len(weights))
		}
	}
	for k, w := range weights {
		cell := 0
		for ai, col := range cols {
			cell += s.specs[ai].Index(col[k]) * s.stride[ai]
		}
		s.sumw[cell] += w
		s.sumw2[cell] += w * w
		s.count[cell]++
	}
	return nil
}

// Merge adds o cellwise. Both storages must be built from equal bin
// layouts; merging is associative and commutative, so partial results
// from any partition of an event set combine to the whole-set fill.
func (s *Storage) Merge(o *Storage) error {
	if len(o.specs) != len(s.specs) {
		return fmt.Errorf("%w: %d axes vs %d", ErrIncompatible, len(s.specs), len(o.specs))
	}
	for i := range s.specs {
		if !s.specs[i].Equal(o.specs[i]) {
			return fmt.Errorf("%w: axis %d (%s) differs", ErrIncompatible, i, s.specs[i].Name())
		}
	}
	for c := range s.sumw {
		s.sumw[c] += o.sumw[c]
		s.sumw2[c] += o.sumw2[c]
		s.count[c] += o.count[c]
	}
	return nil
}

// Clone returns a deep copy, contents included.
func (s *Storage) Clone() *Storage {
	c, _ := NewStorage(s.specs)
	copy(c.sumw, s.sumw)
	copy(c.sumw2, s.sumw2)
	copy(c.count, s.count)
	return c
}

// At returns the cell at the given per-axis bin indices.
func (s *Storage) At(idx ...int) (sumw, sumw2 float64, count uint64, err error) {
	if len(idx) != len(s.specs) {
		return 0, 0, 0, fmt.Errorf("%w: %d indices for %d axes", ErrShape, len(idx), len(s.specs))
	}
	cell := 0
	for ai, i := range idx {
		if i < 0 || i >= s.shape[ai] {
			return 0, 0, 0, fmt.Errorf("%w: index %d out of range on axis %d (%d bins)", ErrShape, i, ai, s.shape[ai])
		}
		cell += i * s.stride[ai]
	}
	return s.sumw[cell], s.sumw2[cell], s.count[cell], nil
}

// Entries returns the total entry count over every cell, under/overflow
// included.
func (s *Storage) Entries() uint64 {
	var total uint64
	for _, c := range s.count {
		total += c
	}
	return total
}

// SumW returns the total weight over every cell.
func (s *Storage) SumW() float64 {
	var total float64
	for _, w := range s.sumw {
		total += w
	}
	return total
}
