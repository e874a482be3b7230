// Package registry holds the process-wide declarative histogram table:
// every available histogram, its axis layouts, extraction functions and
// event predicate. The table is assembled once at package init and is
// read-only thereafter, so workers may consult it without
// synchronization; filling happens on private Sets built from it.
package registry

import (
	"fmt"

	"github.com/mariajose2398/SIDM/internal/domain/binning"
	"github.com/mariajose2398/SIDM/internal/domain/event"
	"github.com/mariajose2398/SIDM/internal/domain/hist"
)

// Definition is one immutable histogram declaration.
type Definition struct {
	name string
	axes []hist.Axis
	pred hist.Predicate
}

// Name returns the unique registry name.
func (d Definition) Name() string { return d.name }

func (d Definition) build() (*hist.Histogram, error) {
	var opts []hist.Option
	if d.pred != nil {
		opts = append(opts, hist.WithPredicate(d.pred))
	}
	return hist.New(d.name, d.axes, opts...)
}

var (
	defs  = make(map[string]Definition)
	order []string
)

func init() { //nolint:gochecknoinits // the declaration table is static configuration
	for _, d := range definitions {
		if _, dup := defs[d.name]; dup {
			panic(fmt.Sprintf("registry: histogram %q declared twice", d.name))
		}
		defs[d.name] = d
		order = append(order, d.name)
	}
}

// Names returns every declared histogram name, in declaration order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Has reports whether name is declared.
func Has(name string) bool {
	_, ok := defs[name]
	return ok
}

// New builds a fresh, empty histogram from the named declaration.
func New(name string) (*hist.Histogram, error) {
	d, ok := defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d.build()
}

// Set is an ordered collection of histograms filled together, the unit
// a worker owns privately. Sets built from the same names are
// mergeable.
type Set struct {
	order []string
	hists map[string]*hist.Histogram
}

// NewSet builds empty histograms for the given names; no names selects
// the whole registry.
func NewSet(names ...string) (*Set, error) {
	if len(names) == 0 {
		names = order
	}
	s := &Set{
		order: make([]string, 0, len(names)),
		hists: make(map[string]*hist.Histogram, len(names)),
	}
	for _, name := range names {
		if _, dup := s.hists[name]; dup {
			continue
		}
		h, err := New(name)
		if err != nil {
			return nil, err
		}
		s.order = append(s.order, name)
		s.hists[name] = h
	}
	return s, nil
}

// Clone returns a set over the same definitions with empty storages.
func (s *Set) Clone() *Set {
	c := &Set{
		order: make([]string, len(s.order)),
		hists: make(map[string]*hist.Histogram, len(s.hists)),
	}
	copy(c.order, s.order)
	for name, h := range s.hists {
		c.hists[name] = h.Clone()
	}
	return c
}

// Names returns the set's histogram names in fill order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of histograms in the set.
func (s *Set) Len() int { return len(s.order) }

// Get returns the named histogram.
func (s *Set) Get(name string) (*hist.Histogram, error) {
	h, ok := s.hists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return h, nil
}

// Fill runs one batch through every histogram in the set. The pass is
// all-or-nothing: entries land in a scratch set first and commit only
// once every histogram accepts the batch, so a failing histogram leaves
// the set untouched and a retried batch cannot double-count.
func (s *Set) Fill(objs *event.Batch, wts []float64) error {
	scratch := s.Clone()
	for _, name := range scratch.order {
		if err := scratch.hists[name].Fill(objs, wts); err != nil {
			return err
		}
	}
	return s.Merge(scratch)
}

// Merge folds another set's storages into this one. Both sets must
// cover the same histogram names.
func (s *Set) Merge(o *Set) error {
	if len(o.order) != len(s.order) {
		return fmt.Errorf("%w: %d histograms vs %d", ErrSetMismatch, len(s.order), len(o.order))
	}
	for _, name := range s.order {
		oh, ok := o.hists[name]
		if !ok {
			return fmt.Errorf("%w: %q missing from other set", ErrSetMismatch, name)
		}
		if err := s.hists[name].Merge(oh); err != nil {
			return err
		}
	}
	return nil
}

// TotalEntries sums entry counts over every histogram in the set.
func (s *Set) TotalEntries() uint64 {
	var total uint64
	for _, h := range s.hists {
		total += h.Storage().Entries()
	}
	return total
}

// Static-table constructors. The table is programmer-maintained
// configuration, so construction failures panic at init rather than
// returning errors.

func define(name string, pred hist.Predicate, axes ...hist.Axis) Definition {
	return Definition{name: name, axes: axes, pred: pred}
}

func axis(spec binning.Spec, f hist.Extract) hist.Axis {
	return hist.NewAxis(spec, f)
}

func regular(name string, n int, lo, hi float64, opts ...binning.Option) binning.Spec {
	sp, err := binning.NewContinuous(name, n, lo, hi, opts...)
	if err != nil {
		panic(fmt.Sprintf("registry: axis %q: %v", name, err))
	}
	return sp
}

func integer(name string, lo, hi int, opts ...binning.Option) binning.Spec {
	sp, err := binning.NewDiscrete(name, lo, hi, opts...)
	if err != nil {
		panic(fmt.Sprintf("registry: axis %q: %v", name, err))
	}
	return sp
}

func intCategory(name string, values []int, opts ...binning.Option) binning.Spec {
	sp, err := binning.NewCategory(name, values, opts...)
	if err != nil {
		panic(fmt.Sprintf("registry: axis %q: %v", name, err))
	}
	return sp
}
