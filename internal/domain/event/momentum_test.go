package event_test

import (
	"math"
	"testing"

	"github.com/mariajose2398/SIDM/internal/domain/event"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMomentumComponents(t *testing.T) {
	Convey("Given a momentum in collider coordinates", t, func() {
		Convey("When it points along the x axis at central rapidity", func() {
			m := event.Momentum{Pt: 3, Eta: 0, Phi: 0, E: 5}

			Convey("Then the cartesian components follow", func() {
				So(m.Px(), ShouldAlmostEqual, 3)
				So(m.Py(), ShouldAlmostEqual, 0)
				So(m.Pz(), ShouldAlmostEqual, 0)
				So(m.P(), ShouldAlmostEqual, 3)
			})

			Convey("Then the invariant mass closes the triangle", func() {
				So(m.Mass(), ShouldAlmostEqual, 4)
			})
		})

		Convey("When it carries longitudinal momentum", func() {
			m := event.Momentum{Pt: 2, Eta: 1.5, Phi: math.Pi / 2, E: 10}

			Convey("Then pz and |p| follow from eta", func() {
				So(m.Pz(), ShouldAlmostEqual, 2*math.Sinh(1.5))
				So(m.P(), ShouldAlmostEqual, math.Sqrt(4+m.Pz()*m.Pz()))
				So(m.Px(), ShouldAlmostEqual, 0, 1e-12)
				So(m.Py(), ShouldAlmostEqual, 2)
			})
		})

		Convey("When the state is unphysical with E below |p|", func() {
			m := event.Momentum{Pt: 5, Eta: 0, Phi: 0, E: 3}

			Convey("Then the mass is NaN rather than a panic", func() {
				So(math.IsNaN(m.Mass()), ShouldBeTrue)
			})
		})
	})
}

func TestMomentumSum(t *testing.T) {
	Convey("Given two momenta", t, func() {
		Convey("When they are collinear", func() {
			a := event.Momentum{Pt: 1, Eta: 0.5, Phi: 1, E: 2}
			b := event.Momentum{Pt: 2, Eta: 0.5, Phi: 1, E: 4}
			sum := a.Add(b)

			Convey("Then pt, eta and phi are preserved and energy adds", func() {
				So(sum.Pt, ShouldAlmostEqual, 3)
				So(sum.Eta, ShouldAlmostEqual, 0.5)
				So(sum.Phi, ShouldAlmostEqual, 1)
				So(sum.E, ShouldAlmostEqual, 6)
			})
		})

		Convey("When they are back to back in the transverse plane", func() {
			a := event.Momentum{Pt: 1, Eta: 0, Phi: 0, E: 1}
			b := event.Momentum{Pt: 1, Eta: 0, Phi: math.Pi, E: 1}
			sum := a.Add(b)

			Convey("Then the transverse momentum cancels", func() {
				So(sum.Pt, ShouldAlmostEqual, 0, 1e-12)
				So(sum.E, ShouldAlmostEqual, 2)
			})

			Convey("Then the pair mass equals the total energy", func() {
				So(sum.Mass(), ShouldAlmostEqual, 2, 1e-9)
			})
		})
	})
}

func TestAngularSeparation(t *testing.T) {
	Convey("Given azimuthal angles near the wrap point", t, func() {
		a := event.Momentum{Pt: 1, Eta: 0, Phi: 3}
		b := event.Momentum{Pt: 1, Eta: 0, Phi: -3}

		Convey("When computing the wrapped separation", func() {
			d := a.DeltaPhi(b)

			Convey("Then it takes the short way around", func() {
				So(d, ShouldAlmostEqual, 6-2*math.Pi)
				So(d, ShouldBeLessThanOrEqualTo, math.Pi)
				So(d, ShouldBeGreaterThan, -math.Pi)
			})
		})

		Convey("When the separation is exactly pi", func() {
			x := event.Momentum{Pt: 1, Eta: 0, Phi: math.Pi}
			y := event.Momentum{Pt: 1, Eta: 0, Phi: 0}

			Convey("Then both orders land on pi", func() {
				So(x.DeltaPhi(y), ShouldAlmostEqual, math.Pi)
				So(y.DeltaPhi(x), ShouldAlmostEqual, math.Pi)
			})
		})
	})

	Convey("Given a separation in both eta and phi", t, func() {
		a := event.Momentum{Pt: 1, Eta: 0.3, Phi: 0.4}
		b := event.Momentum{Pt: 1, Eta: 0, Phi: 0}

		Convey("Then deltaR combines them in quadrature", func() {
			So(a.DeltaR(b), ShouldAlmostEqual, 0.5)
		})
	})
}

func TestGenParticleDisplacement(t *testing.T) {
	Convey("Given a displaced generator particle", t, func() {
		g := event.GenParticle{
			PID:    event.PIDDarkPhoton,
			Vtx:    event.Point3{X: 1, Y: 1, Z: 5},
			DauVtx: event.Point3{X: 4, Y: 5, Z: 20},
		}

		Convey("Then lxy ignores the longitudinal displacement", func() {
			So(g.Lxy(), ShouldAlmostEqual, 5)
		})
	})
}

func TestVertexRho(t *testing.T) {
	Convey("Given a primary vertex off the beamline", t, func() {
		v := event.Vertex{Pos: event.Point3{X: 0.03, Y: 0.04, Z: 2}}

		Convey("Then rho is the transverse distance", func() {
			So(v.Rho(), ShouldAlmostEqual, 0.05)
		})
	})
}
