// Package event defines the object-collection data model consumed by the
// fill engine: typed object records, the per-batch ragged containers that
// hold them, and the generic selection helpers extraction functions build on.
package event

import "math"

// Momentum is the kinematic state shared by reconstructed and
// generator-level objects, stored in collider coordinates.
type Momentum struct {
	Pt  float64 // transverse momentum [GeV]
	Eta float64 // pseudorapidity
	Phi float64 // azimuthal angle, (-pi, pi]
	E   float64 // energy [GeV]
}

// Px returns the x component of the momentum.
func (m Momentum) Px() float64 { return m.Pt * math.Cos(m.Phi) }

// Py returns the y component of the momentum.
func (m Momentum) Py() float64 { return m.Pt * math.Sin(m.Phi) }

// Pz returns the longitudinal momentum component.
func (m Momentum) Pz() float64 { return m.Pt * math.Sinh(m.Eta) }

// P returns the magnitude of the three-momentum.
func (m Momentum) P() float64 {
	pz := m.Pz()
	return math.Sqrt(m.Pt*m.Pt + pz*pz)
}

// Mass returns the invariant mass. An unphysical state with E < |p|
// yields NaN, which downstream binning routes to overflow.
func (m Momentum) Mass() float64 {
	p := m.P()
	return math.Sqrt((m.E - p) * (m.E + p))
}

// Add returns the four-vector sum of m and o in collider coordinates.
func (m Momentum) Add(o Momentum) Momentum {
	px := m.Px() + o.Px()
	py := m.Py() + o.Py()
	pz := m.Pz() + o.Pz()
	pt := math.Hypot(px, py)
	var eta float64
	switch {
	case pt > 0:
		eta = math.Asinh(pz / pt)
	case pz > 0:
		eta = math.Inf(1)
	case pz < 0:
		eta = math.Inf(-1)
	}
	return Momentum{
		Pt:  pt,
		Eta: eta,
		Phi: math.Atan2(py, px),
		E:   m.E + o.E,
	}
}

// DeltaPhi returns the azimuthal separation wrapped to (-pi, pi].
func (m Momentum) DeltaPhi(o Momentum) float64 {
	d := m.Phi - o.Phi
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// DeltaR returns the angular separation sqrt(dEta^2 + dPhi^2).
func (m Momentum) DeltaR(o Momentum) float64 {
	return math.Hypot(m.Eta-o.Eta, m.DeltaPhi(o))
}

// Point3 is a spatial position, used for production and decay vertices.
type Point3 struct {
	X float64
	Y float64
	Z float64
}
