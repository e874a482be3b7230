package event

import "math"

// Particle-type codes carried on leptons and lepton-jet sources.
const (
	TypeElectron = 2
	TypePhoton   = 3
	TypeMuon     = 4
	TypeDSAMuon  = 8
)

// PDG identifiers recognized by the generator-level selectors.
const (
	PIDElectron   = 11
	PIDMuon       = 13
	PIDDarkPhoton = 32
)

// Names of the standard per-event collections a batch carries.
const (
	CollectionPVs       = "pvs"
	CollectionElectrons = "electrons"
	CollectionPhotons   = "photons"
	CollectionMuons     = "muons"
	CollectionDSAMuons  = "dsaMuons"
	CollectionLJs       = "ljs"
	CollectionLJSources = "ljsources"
	CollectionGens      = "gens"
)

// Vertex is a reconstructed primary vertex.
type Vertex struct {
	Pos     Point3
	NTracks int
	Chi2    float64
	NDOF    float64
}

// Rho returns the transverse distance of the vertex from the beamline.
func (v Vertex) Rho() float64 { return math.Hypot(v.Pos.X, v.Pos.Y) }

// Lepton is a reconstructed electron, photon, muon or displaced
// standalone muon, tagged by one of the Type* codes. The same record
// represents lepton-jet source candidates, which additionally carry a
// charge.
type Lepton struct {
	P4     Momentum
	Type   int
	Charge int
}

// LeptonJet is a clustered jet of collimated leptons together with its
// constituent counts and the isolation sums computed in cones of 0.5
// and 0.7.
type LeptonJet struct {
	P4 Momentum

	ElectronN int
	PhotonN   int
	MuonN     int

	PFIsolation05       float64
	PFIsolationPt05     float64
	PFIsolationPtNoPU05 float64
	PFIsolation07       float64
	PFIsolationPt07     float64
	PFIsolationPtNoPU07 float64
	PFIso               float64
}

// GenParticle is a generator-level particle with its production vertex,
// the vertex of its daughters and the dominant daughter PDG id.
type GenParticle struct {
	P4     Momentum
	PID    int
	DauPID int
	Vtx    Point3
	DauVtx Point3
}

// Lxy returns the transverse displacement of the particle's decay
// vertex from its production vertex.
func (g GenParticle) Lxy() float64 {
	return math.Hypot(g.DauVtx.X-g.Vtx.X, g.DauVtx.Y-g.Vtx.Y)
}
