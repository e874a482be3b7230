package registry

import (
	"math"

	"github.com/mariajose2398/SIDM/internal/domain/event"
	"github.com/mariajose2398/SIDM/internal/domain/hist"
	"github.com/mariajose2398/SIDM/internal/domain/objects"
)

// Views fetch one (possibly derived) collection from a batch. The
// definition table composes extraction functions out of a view and a
// per-object accessor, so the same alignment rules apply to primary and
// derived collections alike.
type (
	vertexView func(*event.Batch) ([][]event.Vertex, error)
	leptonView func(*event.Batch) ([][]event.Lepton, error)
	jetView    func(*event.Batch) ([][]event.LeptonJet, error)
	genView    func(*event.Batch) ([][]event.GenParticle, error)
	p4View     func(*event.Batch) ([][]event.Momentum, error)
)

func pvs(b *event.Batch) ([][]event.Vertex, error) { return b.Vertices(event.CollectionPVs) }

func leptons(name string) leptonView {
	return func(b *event.Batch) ([][]event.Lepton, error) { return b.Leptons(name) }
}

func ljs(b *event.Batch) ([][]event.LeptonJet, error) { return b.LeptonJets(event.CollectionLJs) }

func gens(b *event.Batch) ([][]event.GenParticle, error) {
	return b.GenParticles(event.CollectionGens)
}

func matchedGenAs(r float64) genView {
	return func(b *event.Batch) ([][]event.GenParticle, error) {
		return objects.MatchedGenAsWithin(b, r)
	}
}

func matchedGenAsMu(r float64) genView {
	return func(b *event.Batch) ([][]event.GenParticle, error) {
		return objects.MatchedGenAsMuWithin(b, r)
	}
}

func matchedGenAsEGM(r float64) genView {
	return func(b *event.Batch) ([][]event.GenParticle, error) {
		return objects.MatchedGenAsEGMWithin(b, r)
	}
}

func matchedLJs(r float64) jetView {
	return func(b *event.Batch) ([][]event.LeptonJet, error) {
		return objects.MatchedLJsWithin(b, r)
	}
}

// Momentum projections feeding the nearest-match axes.

func leptonP4s(name string) p4View {
	return func(b *event.Batch) ([][]event.Momentum, error) {
		rows, err := b.Leptons(name)
		if err != nil {
			return nil, err
		}
		return objects.LeptonP4s(rows), nil
	}
}

func jetP4s(view jetView) p4View {
	return func(b *event.Batch) ([][]event.Momentum, error) {
		rows, err := view(b)
		if err != nil {
			return nil, err
		}
		return objects.JetP4s(rows), nil
	}
}

func genP4s(view genView) p4View {
	return func(b *event.Batch) ([][]event.Momentum, error) {
		rows, err := view(b)
		if err != nil {
			return nil, err
		}
		return objects.GenP4s(rows), nil
	}
}

// Per-object extractions, one ragged value per object for every event.

func vertexValues(view vertexView, f func(event.Vertex) float64) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Ragged(event.Map(rows, f)), nil
	}
}

func leptonValues(view leptonView, f func(event.Lepton) float64) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Ragged(event.Map(rows, f)), nil
	}
}

func jetValues(view jetView, f func(event.LeptonJet) float64) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Ragged(event.Map(rows, f)), nil
	}
}

func genValues(view genView, f func(event.GenParticle) float64) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Ragged(event.Map(rows, f)), nil
	}
}

// Per-event multiplicities.

func vertexCount(view vertexView) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Scalars(event.Counts(rows)), nil
	}
}

func leptonCount(view leptonView) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Scalars(event.Counts(rows)), nil
	}
}

func jetCount(view jetView) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Scalars(event.Counts(rows)), nil
	}
}

func genCount(view genView) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Scalars(event.Counts(rows)), nil
	}
}

// Masked index selections, one value per passing event. Only paired
// with predicates guaranteeing the multiplicity.

func jetAt(view jetView, k int, f func(event.LeptonJet) float64) hist.Extract {
	return func(b *event.Batch, mask []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		sel, err := event.At(rows, mask, k)
		if err != nil {
			return hist.Values{}, err
		}
		out := make([]float64, len(sel))
		for i, j := range sel {
			out[i] = f(j)
		}
		return hist.Selected(out), nil
	}
}

func genAt(view genView, k int, f func(event.GenParticle) float64) hist.Extract {
	return func(b *event.Batch, mask []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		sel, err := event.At(rows, mask, k)
		if err != nil {
			return hist.Values{}, err
		}
		out := make([]float64, len(sel))
		for i, g := range sel {
			out[i] = f(g)
		}
		return hist.Selected(out), nil
	}
}

// Pair quantities over the leading and subleading objects of passing
// events. Requires a predicate guaranteeing at least two objects.

func jetPair(view jetView, f func(lead, sub event.LeptonJet) float64) hist.Extract {
	return func(b *event.Batch, mask []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		lead, err := event.At(rows, mask, 0)
		if err != nil {
			return hist.Values{}, err
		}
		sub, err := event.At(rows, mask, 1)
		if err != nil {
			return hist.Values{}, err
		}
		out := make([]float64, len(lead))
		for i := range lead {
			out[i] = f(lead[i], sub[i])
		}
		return hist.Selected(out), nil
	}
}

func genPair(view genView, f func(lead, sub event.GenParticle) float64) hist.Extract {
	return func(b *event.Batch, mask []bool) (hist.Values, error) {
		rows, err := view(b)
		if err != nil {
			return hist.Values{}, err
		}
		lead, err := event.At(rows, mask, 0)
		if err != nil {
			return hist.Values{}, err
		}
		sub, err := event.At(rows, mask, 1)
		if err != nil {
			return hist.Values{}, err
		}
		out := make([]float64, len(lead))
		for i := range lead {
			out[i] = f(lead[i], sub[i])
		}
		return hist.Selected(out), nil
	}
}

// Nearest-match axes: one ragged value per primary object.

func nearestDR(primary, secondary p4View) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		p, err := primary(b)
		if err != nil {
			return hist.Values{}, err
		}
		s, err := secondary(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Ragged(objects.NearestDeltaR(p, s)), nil
	}
}

func ptRatioToNearest(primary, secondary p4View) hist.Extract {
	return func(b *event.Batch, _ []bool) (hist.Values, error) {
		p, err := primary(b)
		if err != nil {
			return hist.Values{}, err
		}
		s, err := secondary(b)
		if err != nil {
			return hist.Values{}, err
		}
		return hist.Ragged(objects.PtRatioToNearest(p, s)), nil
	}
}

// Event predicates.

// minJets passes events whose view holds at least k objects.
func minJets(view jetView, k int) hist.Predicate {
	return func(b *event.Batch) ([]bool, error) {
		rows, err := view(b)
		if err != nil {
			return nil, err
		}
		mask := make([]bool, len(rows))
		for i, evt := range rows {
			mask[i] = len(evt) >= k
		}
		return mask, nil
	}
}

// minGens passes events whose view holds at least k particles.
func minGens(view genView, k int) hist.Predicate {
	return func(b *event.Batch) ([]bool, error) {
		rows, err := view(b)
		if err != nil {
			return nil, err
		}
		mask := make([]bool, len(rows))
		for i, evt := range rows {
			mask[i] = len(evt) >= k
		}
		return mask, nil
	}
}

func absPID(g event.GenParticle) float64 {
	return math.Abs(float64(g.PID))
}
