package objects

import (
	"math"

	"github.com/mariajose2398/SIDM/internal/domain/event"
)

// NearestDeltaR computes, for every object in primary, the angular
// separation to the nearest same-event object in secondary. Events are
// never crossed. An event with an empty secondary collection yields NaN
// for each of its primary objects; binning routes the sentinel to
// overflow.
func NearestDeltaR(primary, secondary [][]event.Momentum) [][]float64 {
	out := make([][]float64, len(primary))
	for i, ps := range primary {
		inner := make([]float64, len(ps))
		for j, p := range ps {
			inner[j] = nearest(p, secondary[i]).dr
		}
		out[i] = inner
	}
	return out
}

// PtRatioToNearest computes, for every object in primary, the ratio of
// its transverse momentum to that of its nearest same-event match in
// secondary. An absent match yields NaN.
func PtRatioToNearest(primary, secondary [][]event.Momentum) [][]float64 {
	out := make([][]float64, len(primary))
	for i, ps := range primary {
		inner := make([]float64, len(ps))
		for j, p := range ps {
			m := nearest(p, secondary[i])
			if m.ok {
				inner[j] = p.Pt / m.pt
			} else {
				inner[j] = math.NaN()
			}
		}
		out[i] = inner
	}
	return out
}

type match struct {
	dr float64
	pt float64
	ok bool
}

// nearest scans candidates for the momentum minimizing deltaR to p.
func nearest(p event.Momentum, candidates []event.Momentum) match {
	best := match{dr: math.NaN()}
	for _, c := range candidates {
		dr := p.DeltaR(c)
		if !best.ok || dr < best.dr {
			best = match{dr: dr, pt: c.Pt, ok: true}
		}
	}
	return best
}
