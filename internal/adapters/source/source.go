// Package source produces synthetic signal-like event batches for fill
// runs. Generation is seeded, so the same seed yields the same run.
package source

import (
	"context"
	"math"
	"math/rand"

	"github.com/mariajose2398/SIDM/internal/domain/event"
	"github.com/mariajose2398/SIDM/pkg/logger"
	"github.com/mariajose2398/SIDM/pkg/metrics"
)

// Kinematic ranges for generated objects.
const (
	leptonPtMin   = 1.0
	leptonPtScale = 30.0
	genPtMin      = 20.0
	genPtScale    = 150.0
	etaMax        = 2.4
	vertexZSigma  = 5.0
	vertexRhoMax  = 0.05
	ndofMin       = 4.0
	ndofScale     = 96.0
	lxyScale      = 40.0
	isoScale      = 0.8
)

// Object multiplicity bounds per event.
const (
	maxVertices      = 4
	maxLooseLeptons  = 3
	maxLeptonJets    = 3
	darkPhotonPairs  = 2
	sourcesPerJetMax = 3
)

// Generator builds deterministic pseudo-random event batches.
type Generator struct {
	rng  *rand.Rand
	seed int64
	log  logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the pseudo-random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// New creates a generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{seed: 1, log: logger.Get().Named("source")}
	for _, opt := range opts {
		opt(g)
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Generate builds one batch of n events carrying every standard
// collection. Successive calls continue the same pseudo-random stream.
func (g *Generator) Generate(ctx context.Context, n int) (*event.Batch, error) {
	b := event.NewBatch(n)

	vertices := make([][]event.Vertex, n)
	electrons := make([][]event.Lepton, n)
	photons := make([][]event.Lepton, n)
	muons := make([][]event.Lepton, n)
	dsaMuons := make([][]event.Lepton, n)
	ljs := make([][]event.LeptonJet, n)
	ljSources := make([][]event.Lepton, n)
	gens := make([][]event.GenParticle, n)

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		vertices[i] = g.genVertices()
		gens[i] = g.genDarkSector()
		electrons[i] = g.genLeptons(event.TypeElectron)
		photons[i] = g.genLeptons(event.TypePhoton)
		muons[i] = g.genLeptons(event.TypeMuon)
		dsaMuons[i] = g.genLeptons(event.TypeDSAMuon)
		ljs[i], ljSources[i] = g.genLeptonJets(gens[i])
	}

	stores := []struct {
		name string
		err  error
	}{
		{event.CollectionPVs, b.SetVertices(event.CollectionPVs, vertices)},
		{event.CollectionElectrons, b.SetLeptons(event.CollectionElectrons, electrons)},
		{event.CollectionPhotons, b.SetLeptons(event.CollectionPhotons, photons)},
		{event.CollectionMuons, b.SetLeptons(event.CollectionMuons, muons)},
		{event.CollectionDSAMuons, b.SetLeptons(event.CollectionDSAMuons, dsaMuons)},
		{event.CollectionLJs, b.SetLeptonJets(event.CollectionLJs, ljs)},
		{event.CollectionLJSources, b.SetLeptons(event.CollectionLJSources, ljSources)},
		{event.CollectionGens, b.SetGenParticles(event.CollectionGens, gens)},
	}
	for _, s := range stores {
		if s.err != nil {
			return nil, s.err
		}
	}

	metrics.RecordEventsGenerated(n)
	g.log.Debug(ctx, "generated batch", logger.Int("events", n), logger.Int64("seed", g.seed))

	return b, nil
}

func (g *Generator) genVertices() []event.Vertex {
	count := 1 + g.rng.Intn(maxVertices)
	vs := make([]event.Vertex, count)
	for i := range vs {
		rho := g.rng.Float64() * vertexRhoMax
		phi := g.phi()
		vs[i] = event.Vertex{
			Pos:     event.Point3{X: rho * math.Cos(phi), Y: rho * math.Sin(phi), Z: g.rng.NormFloat64() * vertexZSigma},
			NTracks: 2 + g.rng.Intn(60),
			Chi2:    g.rng.Float64() * 50,
			NDOF:    ndofMin + g.rng.Float64()*ndofScale,
		}
	}
	return vs
}

// genDarkSector emits dark-photon candidates plus their daughter
// leptons. Each dark photon decays to an e or mu pair displaced by a
// falling transverse length.
func (g *Generator) genDarkSector() []event.GenParticle {
	pairs := 1 + g.rng.Intn(darkPhotonPairs)
	out := make([]event.GenParticle, 0, pairs*3)

	for i := 0; i < pairs; i++ {
		dauPID := event.PIDMuon
		if g.rng.Float64() < 0.5 {
			dauPID = event.PIDElectron
		}

		p4 := g.momentum(genPtMin, genPtScale, 0.25)
		lxy := g.rng.ExpFloat64() * lxyScale / 4
		decay := event.Point3{
			X: lxy * math.Cos(p4.Phi),
			Y: lxy * math.Sin(p4.Phi),
			Z: p4.Pz() / p4.Pt * lxy,
		}

		out = append(out, event.GenParticle{P4: p4, PID: event.PIDDarkPhoton, DauPID: dauPID, DauVtx: decay})

		for sign := -1; sign <= 1; sign += 2 {
			dau := g.smear(p4, 0.3)
			dau.Pt /= 2
			dau.E /= 2
			out = append(out, event.GenParticle{P4: dau, PID: sign * dauPID, Vtx: decay, DauVtx: decay})
		}
	}
	return out
}

func (g *Generator) genLeptons(typ int) []event.Lepton {
	count := g.rng.Intn(maxLooseLeptons + 1)
	ls := make([]event.Lepton, count)
	for i := range ls {
		charge := 1 - 2*g.rng.Intn(2)
		if typ == event.TypePhoton {
			charge = 0
		}
		ls[i] = event.Lepton{P4: g.momentum(leptonPtMin, leptonPtScale, 0), Type: typ, Charge: charge}
	}
	return ls
}

// genLeptonJets clusters jets near the generated dark photons so the
// dR-matching histograms see realistic in-cone pairs, and emits the
// per-jet source candidates alongside.
func (g *Generator) genLeptonJets(gens []event.GenParticle) ([]event.LeptonJet, []event.Lepton) {
	var seeds []event.Momentum
	for _, gp := range gens {
		if gp.PID == event.PIDDarkPhoton {
			seeds = append(seeds, gp.P4)
		}
	}

	count := g.rng.Intn(maxLeptonJets + 1)
	if count > len(seeds) {
		count = len(seeds)
	}

	jets := make([]event.LeptonJet, count)
	var sources []event.Lepton

	for i := range jets {
		p4 := g.smear(seeds[i], 0.1)

		muonN := 0
		electronN := 0
		photonN := 0
		if g.rng.Float64() < 0.5 {
			muonN = 2
		} else {
			electronN = g.rng.Intn(2) + 1
			photonN = g.rng.Intn(2)
		}

		jets[i] = event.LeptonJet{
			P4:                  p4,
			ElectronN:           electronN,
			PhotonN:             photonN,
			MuonN:               muonN,
			PFIsolation05:       g.rng.Float64() * isoScale,
			PFIsolationPt05:     g.rng.Float64() * isoScale * p4.Pt,
			PFIsolationPtNoPU05: g.rng.Float64() * isoScale * p4.Pt,
			PFIsolation07:       g.rng.Float64() * isoScale,
			PFIsolationPt07:     g.rng.Float64() * isoScale * p4.Pt,
			PFIsolationPtNoPU07: g.rng.Float64() * isoScale * p4.Pt,
			PFIso:               g.rng.Float64() * isoScale,
		}

		srcType := event.TypeMuon
		if muonN == 0 {
			srcType = event.TypeElectron
		}
		nSrc := 1 + g.rng.Intn(sourcesPerJetMax)
		for s := 0; s < nSrc; s++ {
			charge := 1 - 2*g.rng.Intn(2)
			sources = append(sources, event.Lepton{P4: g.smear(p4, 0.2), Type: srcType, Charge: charge})
		}
	}
	return jets, sources
}

// momentum draws a falling-pt four-vector. massFrac sets the invariant
// mass as a fraction of energy; zero gives a massless candidate.
func (g *Generator) momentum(ptMin, ptScale, massFrac float64) event.Momentum {
	pt := ptMin + g.rng.ExpFloat64()*ptScale/3
	eta := (g.rng.Float64()*2 - 1) * etaMax
	phi := g.phi()
	p := pt * math.Cosh(eta)
	e := p * (1 + massFrac)
	return event.Momentum{Pt: pt, Eta: eta, Phi: phi, E: e}
}

// smear returns a copy of p4 displaced by a small gaussian in eta and
// phi, with phi re-wrapped.
func (g *Generator) smear(p4 event.Momentum, sigma float64) event.Momentum {
	out := p4
	out.Eta += g.rng.NormFloat64() * sigma
	out.Phi += g.rng.NormFloat64() * sigma
	for out.Phi > math.Pi {
		out.Phi -= 2 * math.Pi
	}
	for out.Phi <= -math.Pi {
		out.Phi += 2 * math.Pi
	}
	return out
}

func (g *Generator) phi() float64 {
	return g.rng.Float64()*2*math.Pi - math.Pi
}
