// Package objects resolves the derived object views that axes draw
// from: generator-level selections by PDG id, lepton-jet categories by
// constituent content and the truth-matched subsets obtained by angular
// matching between collections.
package objects

import (
	"fmt"

	"github.com/mariajose2398/SIDM/internal/domain/event"
)

// Derived view names accepted by ResolveJets and ResolveGens.
const (
	ViewMuLJs           = "mu_ljs"
	ViewEGMLJs          = "egm_ljs"
	ViewMatchedLJs      = "matched_ljs"
	ViewMatchedGenAs    = "matched_genAs"
	ViewMatchedGenAsMu  = "matched_genAs_mu"
	ViewMatchedGenAsEGM = "matched_genAs_egm"
)

// JetP4s projects the four-momenta out of a lepton-jet collection.
func JetP4s(rows [][]event.LeptonJet) [][]event.Momentum {
	return event.Map(rows, func(j event.LeptonJet) event.Momentum { return j.P4 })
}

// LeptonP4s projects the four-momenta out of a lepton collection.
func LeptonP4s(rows [][]event.Lepton) [][]event.Momentum {
	return event.Map(rows, func(l event.Lepton) event.Momentum { return l.P4 })
}

// GenP4s projects the four-momenta out of a generator-level collection.
func GenP4s(rows [][]event.GenParticle) [][]event.Momentum {
	return event.Map(rows, func(g event.GenParticle) event.Momentum { return g.P4 })
}

// GenEs selects the generator-level electrons.
func GenEs(objs *event.Batch) ([][]event.GenParticle, error) {
	return genByPID(objs, event.PIDElectron)
}

// GenMus selects the generator-level muons.
func GenMus(objs *event.Batch) ([][]event.GenParticle, error) {
	return genByPID(objs, event.PIDMuon)
}

// GenAs selects the generator-level dark photons.
func GenAs(objs *event.Batch) ([][]event.GenParticle, error) {
	return genByPID(objs, event.PIDDarkPhoton)
}

// GenAsToMu selects the dark photons decaying to muons.
func GenAsToMu(objs *event.Batch) ([][]event.GenParticle, error) {
	return genByDecay(objs, event.PIDDarkPhoton, event.PIDMuon)
}

// GenAsToE selects the dark photons decaying to electrons.
func GenAsToE(objs *event.Batch) ([][]event.GenParticle, error) {
	return genByDecay(objs, event.PIDDarkPhoton, event.PIDElectron)
}

// MuLJs selects the lepton jets built from at least two muons.
func MuLJs(objs *event.Batch) ([][]event.LeptonJet, error) {
	rows, err := objs.LeptonJets(event.CollectionLJs)
	if err != nil {
		return nil, err
	}
	return event.Filter(rows, func(j event.LeptonJet) bool { return j.MuonN >= 2 }), nil
}

// EGMLJs selects the lepton jets carrying no muons.
func EGMLJs(objs *event.Batch) ([][]event.LeptonJet, error) {
	rows, err := objs.LeptonJets(event.CollectionLJs)
	if err != nil {
		return nil, err
	}
	return event.Filter(rows, func(j event.LeptonJet) bool { return j.MuonN == 0 }), nil
}

// MatchedGenAsWithin selects the dark photons within dr of the nearest
// lepton jet.
func MatchedGenAsWithin(objs *event.Batch, dr float64) ([][]event.GenParticle, error) {
	gens, err := GenAs(objs)
	if err != nil {
		return nil, err
	}
	jets, err := objs.LeptonJets(event.CollectionLJs)
	if err != nil {
		return nil, err
	}
	return matchGens(gens, JetP4s(jets), dr), nil
}

// MatchedGenAsMuWithin selects the dark photons within dr of the
// nearest muon-type lepton jet.
func MatchedGenAsMuWithin(objs *event.Batch, dr float64) ([][]event.GenParticle, error) {
	gens, err := GenAs(objs)
	if err != nil {
		return nil, err
	}
	jets, err := MuLJs(objs)
	if err != nil {
		return nil, err
	}
	return matchGens(gens, JetP4s(jets), dr), nil
}

// MatchedGenAsEGMWithin selects the dark photons within dr of the
// nearest el/gamma-type lepton jet.
func MatchedGenAsEGMWithin(objs *event.Batch, dr float64) ([][]event.GenParticle, error) {
	gens, err := GenAs(objs)
	if err != nil {
		return nil, err
	}
	jets, err := EGMLJs(objs)
	if err != nil {
		return nil, err
	}
	return matchGens(gens, JetP4s(jets), dr), nil
}

// MatchedLJsWithin selects the lepton jets within dr of the nearest
// dark photon.
func MatchedLJsWithin(objs *event.Batch, dr float64) ([][]event.LeptonJet, error) {
	jets, err := objs.LeptonJets(event.CollectionLJs)
	if err != nil {
		return nil, err
	}
	gens, err := GenAs(objs)
	if err != nil {
		return nil, err
	}
	drs := NearestDeltaR(JetP4s(jets), GenP4s(gens))

	out := make([][]event.LeptonJet, len(jets))
	for i, evt := range jets {
		var inner []event.LeptonJet
		for j := range evt {
			if drs[i][j] < dr {
				inner = append(inner, evt[j])
			}
		}
		out[i] = inner
	}
	return out, nil
}

// JetResolver produces a derived lepton-jet view, optionally bounded by
// a matching radius.
type JetResolver func(objs *event.Batch, dr float64) ([][]event.LeptonJet, error)

// GenResolver produces a derived generator-level view, optionally
// bounded by a matching radius.
type GenResolver func(objs *event.Batch, dr float64) ([][]event.GenParticle, error)

// ResolveJets returns the named derived lepton-jet resolver.
func ResolveJets(name string) (JetResolver, error) {
	switch name {
	case ViewMuLJs:
		return func(objs *event.Batch, _ float64) ([][]event.LeptonJet, error) { return MuLJs(objs) }, nil
	case ViewEGMLJs:
		return func(objs *event.Batch, _ float64) ([][]event.LeptonJet, error) { return EGMLJs(objs) }, nil
	case ViewMatchedLJs:
		return MatchedLJsWithin, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// ResolveGens returns the named derived generator-level resolver.
func ResolveGens(name string) (GenResolver, error) {
	switch name {
	case ViewMatchedGenAs:
		return MatchedGenAsWithin, nil
	case ViewMatchedGenAsMu:
		return MatchedGenAsMuWithin, nil
	case ViewMatchedGenAsEGM:
		return MatchedGenAsEGMWithin, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

func genByPID(objs *event.Batch, pid int) ([][]event.GenParticle, error) {
	rows, err := objs.GenParticles(event.CollectionGens)
	if err != nil {
		return nil, err
	}
	return event.Filter(rows, func(g event.GenParticle) bool { return abs(g.PID) == pid }), nil
}

func genByDecay(objs *event.Batch, pid, daupid int) ([][]event.GenParticle, error) {
	rows, err := objs.GenParticles(event.CollectionGens)
	if err != nil {
		return nil, err
	}
	return event.Filter(rows, func(g event.GenParticle) bool {
		return abs(g.PID) == pid && abs(g.DauPID) == daupid
	}), nil
}

// matchGens keeps the gens whose nearest candidate lies within dr. An
// event without candidates keeps nothing: NaN never satisfies the cut.
func matchGens(gens [][]event.GenParticle, candidates [][]event.Momentum, dr float64) [][]event.GenParticle {
	drs := NearestDeltaR(GenP4s(gens), candidates)
	out := make([][]event.GenParticle, len(gens))
	for i, evt := range gens {
		var inner []event.GenParticle
		for j := range evt {
			if drs[i][j] < dr {
				inner = append(inner, evt[j])
			}
		}
		out[i] = inner
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
