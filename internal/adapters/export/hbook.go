package export

import (
	"fmt"

	"go-hep.org/x/hep/hbook"

	"github.com/mariajose2398/SIDM/internal/domain/binning"
	"github.com/mariajose2398/SIDM/internal/domain/hist"
)

// H1D converts a one-dimensional range histogram into an hbook H1D.
// Each bin is filled at its center with the accumulated weight, and the
// under/overflow totals land in hbook's outflow bins.
func H1D(h *hist.Histogram) (*hbook.H1D, error) {
	st := h.Storage()
	specs := st.Specs()
	if len(specs) != 1 {
		return nil, fmt.Errorf("%w: %q has %d axes", ErrNotPlottable, h.Name(), len(specs))
	}
	spec := specs[0]
	if spec.Kind() == binning.Category {
		return nil, fmt.Errorf("%w: %q has a category axis", ErrNotPlottable, h.Name())
	}

	out := hbook.NewH1D(spec.Bins(), spec.Lo(), spec.Hi())
	out.Annotation()["name"] = h.Name()
	out.Annotation()["title"] = spec.Label()

	edges := spec.Edges()
	width := edges[1] - edges[0]

	for i := 0; i < spec.Bins(); i++ {
		sumw, _, _, err := st.At(i)
		if err != nil {
			return nil, err
		}
		if sumw != 0 {
			out.Fill((edges[i]+edges[i+1])/2, sumw)
		}
	}

	if sumw, _, _, err := st.At(spec.Underflow()); err != nil {
		return nil, err
	} else if sumw != 0 {
		out.Fill(spec.Lo()-width, sumw)
	}
	if sumw, _, _, err := st.At(spec.Overflow()); err != nil {
		return nil, err
	} else if sumw != 0 {
		out.Fill(spec.Hi()+width, sumw)
	}

	return out, nil
}

// H2D converts a two-dimensional range histogram into an hbook H2D.
// Outflow weight stays in the source storage; hbook's 2D outflow
// mapping does not line up with the strided layout, so only in-range
// bins transfer.
func H2D(h *hist.Histogram) (*hbook.H2D, error) {
	st := h.Storage()
	specs := st.Specs()
	if len(specs) != 2 {
		return nil, fmt.Errorf("%w: %q has %d axes", ErrNotPlottable, h.Name(), len(specs))
	}
	for _, spec := range specs {
		if spec.Kind() == binning.Category {
			return nil, fmt.Errorf("%w: %q has a category axis", ErrNotPlottable, h.Name())
		}
	}
	x, y := specs[0], specs[1]

	out := hbook.NewH2D(x.Bins(), x.Lo(), x.Hi(), y.Bins(), y.Lo(), y.Hi())
	out.Annotation()["name"] = h.Name()

	xe, ye := x.Edges(), y.Edges()
	for i := 0; i < x.Bins(); i++ {
		for j := 0; j < y.Bins(); j++ {
			sumw, _, _, err := st.At(i, j)
			if err != nil {
				return nil, err
			}
			if sumw != 0 {
				out.Fill((xe[i]+xe[i+1])/2, (ye[j]+ye[j+1])/2, sumw)
			}
		}
	}

	return out, nil
}
