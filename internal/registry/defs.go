package registry

import (
	"math"

	"github.com/mariajose2398/SIDM/internal/domain/binning"
	"github.com/mariajose2398/SIDM/internal/domain/event"
	"github.com/mariajose2398/SIDM/internal/domain/objects"
)

// matchRadius is the dR cut used by every truth-matched derived view.
const matchRadius = 0.4

var twoPi = 2 * math.Pi

// Per-object accessors shared across the table.

func leptonPt(l event.Lepton) float64     { return l.P4.Pt }
func leptonEta(l event.Lepton) float64    { return l.P4.Eta }
func leptonPhi(l event.Lepton) float64    { return l.P4.Phi }
func leptonCharge(l event.Lepton) float64 { return float64(l.Charge) }
func leptonType(l event.Lepton) float64   { return float64(l.Type) }

func jetPt(j event.LeptonJet) float64  { return j.P4.Pt }
func jetE(j event.LeptonJet) float64   { return j.P4.E }
func jetEta(j event.LeptonJet) float64 { return j.P4.Eta }
func jetPhi(j event.LeptonJet) float64 { return j.P4.Phi }

func genPt(g event.GenParticle) float64  { return g.P4.Pt }
func genEta(g event.GenParticle) float64 { return g.P4.Eta }
func genPhi(g event.GenParticle) float64 { return g.P4.Phi }
func genLxy(g event.GenParticle) float64 { return g.Lxy() }

func pairAbsDPhi(lead, sub event.LeptonJet) float64 {
	return math.Abs(sub.P4.Phi - lead.P4.Phi)
}

func pairInvMass(lead, sub event.LeptonJet) float64 {
	return lead.P4.Add(sub.P4).Mass()
}

// definitions is the full histogram table. Names and binnings are the
// analysis surface; changing an entry changes what every run produces.
var definitions = []Definition{
	// pv
	define("pv_n", nil,
		axis(regular("pv_n", 50, 0, 100), vertexCount(pvs))),
	define("pv_ndof", nil,
		axis(regular("pv_ndof", 25, 0, 100),
			vertexValues(pvs, func(v event.Vertex) float64 { return v.NDOF }))),
	define("pv_z", nil,
		axis(regular("pv_z", 100, -50, 50),
			vertexValues(pvs, func(v event.Vertex) float64 { return v.Pos.Z }))),
	define("pv_rho", nil,
		axis(regular("pv_rho", 100, -0.5, 0.5),
			vertexValues(pvs, event.Vertex.Rho))),

	// pfelectron
	define("electron_n", nil,
		axis(integer("electron_n", 0, 10), leptonCount(leptons(event.CollectionElectrons)))),
	define("electron_pt", nil,
		axis(regular("electron_pt", 100, 0, 200), leptonValues(leptons(event.CollectionElectrons), leptonPt))),
	define("electron_eta_phi", nil,
		axis(regular("electron_eta", 50, -3, 3), leptonValues(leptons(event.CollectionElectrons), leptonEta)),
		axis(regular("electron_phi", 50, -math.Pi, math.Pi), leptonValues(leptons(event.CollectionElectrons), leptonPhi))),

	// pfphoton
	define("photon_n", nil,
		axis(integer("photon_n", 0, 10), leptonCount(leptons(event.CollectionPhotons)))),
	define("photon_pt", nil,
		axis(regular("photon_pt", 100, 0, 200), leptonValues(leptons(event.CollectionPhotons), leptonPt))),
	define("photon_eta_phi", nil,
		axis(regular("photon_eta", 50, -3, 3), leptonValues(leptons(event.CollectionPhotons), leptonEta)),
		axis(regular("photon_phi", 50, -math.Pi, math.Pi), leptonValues(leptons(event.CollectionPhotons), leptonPhi))),

	// pfmuon
	define("muon_n", nil,
		axis(integer("muon_n", 0, 10), leptonCount(leptons(event.CollectionMuons)))),
	define("muon_pt", nil,
		axis(regular("muon_pt", 100, 0, 200), leptonValues(leptons(event.CollectionMuons), leptonPt))),
	define("muon_eta_phi", nil,
		axis(regular("muon_eta", 50, -3, 3), leptonValues(leptons(event.CollectionMuons), leptonEta)),
		axis(regular("muon_phi", 50, -math.Pi, math.Pi), leptonValues(leptons(event.CollectionMuons), leptonPhi))),

	// dsamuon
	define("dsaMuon_n", nil,
		axis(integer("dsaMuon_n", 0, 10), leptonCount(leptons(event.CollectionDSAMuons)))),
	define("dsaMuon_pt", nil,
		axis(regular("dsaMuon_pt", 100, 0, 200), leptonValues(leptons(event.CollectionDSAMuons), leptonPt))),
	define("dsaMuon_eta_phi", nil,
		axis(regular("dsaMuon_eta", 50, -3, 3), leptonValues(leptons(event.CollectionDSAMuons), leptonEta)),
		axis(regular("dsaMuon_phi", 50, -math.Pi, math.Pi), leptonValues(leptons(event.CollectionDSAMuons), leptonPhi))),

	// lj
	define("lj_n", nil,
		axis(integer("lj_n", 0, 10), jetCount(ljs))),
	define("lj_pt", nil,
		axis(regular("lj_pt", 100, 0, 100, binning.WithLabel("Lepton jet pT [GeV]")),
			jetValues(ljs, jetPt))),
	define("lj_pfIsolation05", nil,
		axis(regular("lj_pfIsolation05", 80, 0, 0.8, binning.WithLabel("Lepton jet isolation")),
			jetValues(ljs, func(j event.LeptonJet) float64 { return j.PFIsolation05 }))),
	define("lj0_pfIsolation05", minJets(ljs, 1),
		axis(regular("lj_pfIsolation05", 80, 0, 0.8, binning.WithLabel("Leading lepton jet isolation")),
			jetAt(ljs, 0, func(j event.LeptonJet) float64 { return j.PFIsolation05 }))),
	define("lj1_pfIsolation05", minJets(ljs, 2),
		axis(regular("lj_pfIsolation05", 80, 0, 0.8, binning.WithLabel("Subleading lepton jet isolation")),
			jetAt(ljs, 1, func(j event.LeptonJet) float64 { return j.PFIsolation05 }))),
	define("lj_pfIsolationPtNoPU05", nil,
		axis(regular("lj_pfIsolationPtNoPU05", 80, 0, 0.8, binning.WithLabel("Lepton jet isolation")),
			jetValues(ljs, func(j event.LeptonJet) float64 { return j.PFIsolationPtNoPU05 }))),
	define("lj_pfIsolationPt05", nil,
		axis(regular("lj_pfIsolationPt05", 80, 0, 0.8, binning.WithLabel("Lepton jet isolation")),
			jetValues(ljs, func(j event.LeptonJet) float64 { return j.PFIsolationPt05 }))),
	define("lj_pfIsolation07", nil,
		axis(regular("lj_pfIsolation07", 80, 0, 0.8, binning.WithLabel("Lepton jet isolation")),
			jetValues(ljs, func(j event.LeptonJet) float64 { return j.PFIsolation07 }))),
	define("lj_pfIsolationPtNoPU07", nil,
		axis(regular("lj_pfIsolationPtNoPU07", 80, 0, 0.8, binning.WithLabel("Lepton jet isolation")),
			jetValues(ljs, func(j event.LeptonJet) float64 { return j.PFIsolationPtNoPU07 }))),
	define("lj_pfIsolationPt07", nil,
		axis(regular("lj_pfIsolationPt07", 80, 0, 0.8, binning.WithLabel("Lepton jet isolation")),
			jetValues(ljs, func(j event.LeptonJet) float64 { return j.PFIsolationPt07 }))),
	define("lj_pfiso", nil,
		axis(regular("lj_pfiso", 80, 0, 0.8, binning.WithLabel("Lepton jet isolation")),
			jetValues(ljs, func(j event.LeptonJet) float64 { return j.PFIso }))),
	define("lj0_pt", minJets(ljs, 1),
		axis(regular("lj0_pt", 100, 0, 100, binning.WithLabel("Leading lepton jet pT [GeV]")),
			jetAt(ljs, 0, jetPt))),
	define("lj1_pt", minJets(ljs, 2),
		axis(regular("lj1_pt", 100, 0, 100, binning.WithLabel("Subleading lepton jet pT [GeV]")),
			jetAt(ljs, 1, jetPt))),
	define("lj0_e", minJets(ljs, 1),
		axis(regular("lj_e", 350, 0, 700, binning.WithLabel("Leading lepton jet E [GeV]")),
			jetAt(ljs, 0, jetE))),
	define("lj1_e", minJets(ljs, 2),
		axis(regular("lj_e", 350, 0, 700, binning.WithLabel("Subleading lepton jet E [GeV]")),
			jetAt(ljs, 1, jetE))),
	define("lj_eta_phi", nil,
		axis(regular("lj_eta", 50, -3, 3), jetValues(ljs, jetEta)),
		axis(regular("lj_phi", 50, -math.Pi, math.Pi), jetValues(ljs, jetPhi))),
	define("egm_lj_pt", nil,
		axis(regular("egm_lj_pt", 100, 0, 100, binning.WithLabel("EGM-type lepton jet pT [GeV]")),
			jetValues(objects.EGMLJs, jetPt))),
	define("mu_lj_pt", nil,
		axis(regular("mu_lj_pt", 100, 0, 100, binning.WithLabel("Mu-type lepton jet pT [GeV]")),
			jetValues(objects.MuLJs, jetPt))),
	define("lj_electronN", nil,
		axis(integer("lj_electronN", 0, 10),
			jetValues(ljs, func(j event.LeptonJet) float64 { return float64(j.ElectronN) }))),
	define("lj_photonN", nil,
		axis(integer("lj_photonN", 0, 10),
			jetValues(ljs, func(j event.LeptonJet) float64 { return float64(j.PhotonN) }))),
	define("lj_electronPhotonN", nil,
		axis(integer("lj_electronPhotonN", 0, 10),
			jetValues(ljs, func(j event.LeptonJet) float64 { return float64(j.ElectronN + j.PhotonN) }))),
	define("lj_muonN", nil,
		axis(integer("lj_muonN", 0, 10),
			jetValues(ljs, func(j event.LeptonJet) float64 { return float64(j.MuonN) }))),

	// ljsource
	define("ljsource_n", nil,
		axis(integer("ljsource_n", 0, 10), leptonCount(leptons(event.CollectionLJSources)))),
	define("ljsource_pt", nil,
		axis(regular("ljsource_pt", 100, 0, 100, binning.WithLabel("Lepton jet source pT [GeV]")),
			leptonValues(leptons(event.CollectionLJSources), leptonPt))),
	define("ljsource_eta_phi", nil,
		axis(regular("ljsource_eta", 50, -3, 3), leptonValues(leptons(event.CollectionLJSources), leptonEta)),
		axis(regular("ljsource_phi", 50, -math.Pi, math.Pi), leptonValues(leptons(event.CollectionLJSources), leptonPhi))),
	define("ljsource_charge", nil,
		axis(integer("ljsource_charge", -1, 1), leptonValues(leptons(event.CollectionLJSources), leptonCharge))),
	define("ljsource_type", nil,
		axis(intCategory("lj_type", []int{event.TypeElectron, event.TypePhoton, event.TypeMuon, event.TypeDSAMuon}),
			leptonValues(leptons(event.CollectionLJSources), leptonType))),

	// pfelectron-lj
	define("electron_lj_dR", nil,
		axis(regular("electron_lj_dR", 50, 0, twoPi),
			nearestDR(leptonP4s(event.CollectionElectrons), jetP4s(ljs)))),
	define("electron_lj_dR_lowRange", nil,
		axis(regular("electron_lj_dR_lowRange", 50, 0, 1.0),
			nearestDR(leptonP4s(event.CollectionElectrons), jetP4s(ljs)))),

	// pfphoton-lj
	define("photon_lj_dR", nil,
		axis(regular("photon_lj_dR", 50, 0, twoPi),
			nearestDR(leptonP4s(event.CollectionPhotons), jetP4s(ljs)))),
	define("photon_lj_dR_lowRange", nil,
		axis(regular("photon_lj_dR_lowRange", 50, 0, 1.0),
			nearestDR(leptonP4s(event.CollectionPhotons), jetP4s(ljs)))),
	define("photon_lj_dR_reallyLowRange", nil,
		axis(regular("photon_lj_dR_reallyLowRange", 50, 0, 0.1),
			nearestDR(leptonP4s(event.CollectionPhotons), jetP4s(ljs)))),

	// pfmuon-lj
	define("muon_lj_dR", nil,
		axis(regular("muon_lj_dR", 50, 0, twoPi),
			nearestDR(leptonP4s(event.CollectionMuons), jetP4s(ljs)))),
	define("muon_lj_dR_lowRange", nil,
		axis(regular("muon_lj_dR_lowRange", 50, 0, 1.0),
			nearestDR(leptonP4s(event.CollectionMuons), jetP4s(ljs)))),

	// dsamuon-lj
	define("dsaMuon_lj_dR", nil,
		axis(regular("dsaMuon_lj_dR", 50, 0, twoPi),
			nearestDR(leptonP4s(event.CollectionDSAMuons), jetP4s(ljs)))),
	define("dsaMuon_lj_dR_lowRange", nil,
		axis(regular("dsaMuon_lj_dR_lowRange", 50, 0, 1.0),
			nearestDR(leptonP4s(event.CollectionDSAMuons), jetP4s(ljs)))),

	// lj-lj
	define("lj_lj_absdphi", minJets(ljs, 2),
		axis(regular("ljlj_absdphi", 50, 0, twoPi), jetPair(ljs, pairAbsDPhi))),
	define("lj_lj_invmass", minJets(ljs, 2),
		axis(regular("ljlj_mass", 100, 0, 2000), jetPair(ljs, pairInvMass))),
	define("lj_lj_invmass_lowRange", minJets(ljs, 2),
		axis(regular("ljlj_mass", 100, 0, 500), jetPair(ljs, pairInvMass))),

	// ABCD plane
	define("abcd_lj_lj_dphi_vs_lj0_pfIsolationPt05", minJets(ljs, 2),
		axis(regular("ljlj_absdphi", 200, 0, twoPi, binning.WithLabel("Lepton jet pair |dphi|")),
			jetPair(ljs, pairAbsDPhi)),
		axis(regular("lj_pfIsolationPt05", 80, 0, 0.8, binning.WithLabel("Leading lepton jet isolation")),
			jetAt(ljs, 0, func(j event.LeptonJet) float64 { return j.PFIsolationPt05 }))),

	// gen
	define("gen_abspid", nil,
		axis(integer("gen_abspid", 0, 40), genValues(gens, absPID))),

	// genelectron
	define("genE_pt", nil,
		axis(regular("genE_pt", 100, 0, 200), genValues(objects.GenEs, genPt))),
	define("genE_pt_highRange", nil,
		axis(regular("genE_pt", 100, 0, 700), genValues(objects.GenEs, genPt))),
	define("genE0_pt", minGens(objects.GenEs, 1),
		axis(regular("genE0_pt_lowRange", 100, 0, 200), genAt(objects.GenEs, 0, genPt))),
	define("genE1_pt", minGens(objects.GenEs, 2),
		axis(regular("genE1_pt_lowRange", 100, 0, 200), genAt(objects.GenEs, 1, genPt))),
	define("genE0_pt_highRange", minGens(objects.GenEs, 1),
		axis(regular("genE0_pt", 100, 0, 1000), genAt(objects.GenEs, 0, genPt))),
	define("genE1_pt_highRange", minGens(objects.GenEs, 2),
		axis(regular("genE1_pt", 100, 0, 1000), genAt(objects.GenEs, 1, genPt))),

	// genelectron-genelectron
	define("genE_genE_dR", minGens(objects.GenEs, 2),
		axis(regular("genE_genE_dR", 50, 0, 1.0),
			genPair(objects.GenEs, func(lead, sub event.GenParticle) float64 {
				return sub.P4.DeltaR(lead.P4)
			}))),
	define("genE_genE_pt", minGens(objects.GenEs, 2),
		axis(regular("genE_genE_pt", 100, 0, 200),
			genPair(objects.GenEs, func(lead, sub event.GenParticle) float64 {
				return lead.P4.Add(sub.P4).Pt
			}))),

	// genmuon
	define("genMu_pt", nil,
		axis(regular("genMu_pt", 100, 0, 200), genValues(objects.GenMus, genPt))),
	define("genMu_pt_highRange", nil,
		axis(regular("genMu_pt", 100, 0, 700), genValues(objects.GenMus, genPt))),
	define("genMu0_pt", minGens(objects.GenMus, 1),
		axis(regular("genMu0_pt", 50, 0, 100), genAt(objects.GenMus, 0, genPt))),
	define("genMu1_pt", minGens(objects.GenMus, 2),
		axis(regular("genMu1_pt", 50, 0, 100), genAt(objects.GenMus, 1, genPt))),
	define("genMu0_pt_highRange", minGens(objects.GenMus, 1),
		axis(regular("genMu0_pt", 100, 0, 1000), genAt(objects.GenMus, 0, genPt))),
	define("genMu1_pt_highRange", minGens(objects.GenMus, 2),
		axis(regular("genMu1_pt", 100, 0, 1000), genAt(objects.GenMus, 1, genPt))),

	// genmuon-genmuon
	define("genMu_genMu_dR", minGens(objects.GenMus, 2),
		axis(regular("genMu_genMu_dR", 50, 0, 1.0),
			genPair(objects.GenMus, func(lead, sub event.GenParticle) float64 {
				return sub.P4.DeltaR(lead.P4)
			}))),
	define("genMu_genMu_pt", minGens(objects.GenMus, 2),
		axis(regular("genMu_genMu_pt", 100, 0, 200),
			genPair(objects.GenMus, func(lead, sub event.GenParticle) float64 {
				return lead.P4.Add(sub.P4).Pt
			}))),

	// gen dark photons (A)
	define("genA_n", nil,
		axis(regular("genA_n", 10, 0, 10), genCount(objects.GenAs))),
	define("genA_toMu_n", nil,
		axis(regular("genA_toMu_n", 10, 0, 10), genCount(objects.GenAsToMu))),
	define("genA_toE_n", nil,
		axis(regular("genA_toE_n", 10, 0, 10), genCount(objects.GenAsToE))),
	define("genA_lxy", nil,
		axis(regular("genA_lxy", 100, 0, 500), genValues(objects.GenAs, genLxy))),
	define("genAs_toMu_lxy", nil,
		axis(regular("genA_lxy", 100, 0, 500), genValues(objects.GenAsToMu, genLxy))),
	define("genA_pt", nil,
		axis(regular("genA_pt", 100, 0, 200), genValues(objects.GenAs, genPt))),
	define("genA_pt_highRange", nil,
		axis(regular("genA_pt", 140, 0, 700), genValues(objects.GenAs, genPt))),
	define("genA_eta_phi", nil,
		axis(regular("genA_eta", 50, -3, 3), genValues(objects.GenAs, genEta)),
		axis(regular("genA_phi", 50, -math.Pi, math.Pi), genValues(objects.GenAs, genPhi))),

	// genA-genA
	define("genA_genA_dphi", minGens(objects.GenAs, 2),
		axis(regular("genA_genA_dphi", 50, 0, twoPi),
			genPair(objects.GenAs, func(lead, sub event.GenParticle) float64 {
				return math.Abs(sub.P4.Phi - lead.P4.Phi)
			}))),

	// genA-LJ
	define("genA_lj_dR", nil,
		axis(regular("genA_lj_dR", 50, 0, twoPi),
			nearestDR(genP4s(objects.GenAs), jetP4s(ljs)))),
	define("genA_lj_dR_lowRange", nil,
		axis(regular("genA_lj_dR_lowRange", 50, 0, 1.0),
			nearestDR(genP4s(objects.GenAs), jetP4s(ljs)))),
	define("lj_genA_ptRatio", nil,
		axis(regular("lj_genA_ptRatio", 50, 0, 2.0),
			ptRatioToNearest(jetP4s(ljs), genP4s(objects.GenAs)))),
	define("egm_lj_genA_ptRatio", nil,
		axis(regular("egm_lj_genA_ptRatio", 50, 0, 2.0),
			ptRatioToNearest(jetP4s(objects.EGMLJs), genP4s(objects.GenAs)))),
	define("mu_lj_genA_ptRatio", nil,
		axis(regular("mu_lj_genA_ptRatio", 50, 0, 2.0),
			ptRatioToNearest(jetP4s(objects.MuLJs), genP4s(objects.GenAs)))),

	// derived lepton-jet multiplicities
	define("mu_ljs_n", nil,
		axis(regular("mu_ljs_n", 10, 0, 10), jetCount(objects.MuLJs))),
	define("egm_ljs_n", nil,
		axis(regular("egm_ljs_n", 10, 0, 10), jetCount(objects.EGMLJs))),

	// truth-matched multiplicities and displacement
	define("matched_genA_n", nil,
		axis(regular("matched_genA_n", 10, 0, 10), genCount(matchedGenAs(matchRadius)))),
	define("matched_lj_n", nil,
		axis(regular("matched_lj_n", 10, 0, 10), jetCount(matchedLJs(matchRadius)))),
	define("matched_genA_mu_n", nil,
		axis(regular("matched_genA_mu_n", 10, 0, 10), genCount(matchedGenAsMu(matchRadius)))),
	define("matched_genA_egm_n", nil,
		axis(regular("matched_genA_egm_n", 10, 0, 10), genCount(matchedGenAsEGM(matchRadius)))),
	define("matched_genA_lxy", nil,
		axis(regular("matched_genA_lxy", 100, 0, 500), genValues(matchedGenAs(matchRadius), genLxy))),
	define("matched_genA_mu_lxy", nil,
		axis(regular("matched_genA_mu_lxy", 100, 0, 500), genValues(matchedGenAsMu(matchRadius), genLxy))),
	define("matched_genA_egm_lxy", nil,
		axis(regular("matched_genA_egm_lxy", 100, 0, 500), genValues(matchedGenAsEGM(matchRadius), genLxy))),
}
