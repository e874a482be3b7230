package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mariajose2398/SIDM/internal/adapters/export"
	"github.com/mariajose2398/SIDM/internal/domain/event"
	"github.com/mariajose2398/SIDM/internal/registry"
	"github.com/mariajose2398/SIDM/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// filledSet fills the named histograms from a hand-built batch: one
// vertex per NDOF value, one electron per (eta, phi) pair and one
// lepton-jet source per type code.
func filledSet(t *testing.T, ndofs []float64, etaPhis [][2]float64, srcTypes []int) *registry.Set {
	t.Helper()

	n := len(ndofs)
	b := event.NewBatch(n)

	pvs := make([][]event.Vertex, n)
	electrons := make([][]event.Lepton, n)
	sources := make([][]event.Lepton, n)
	for i := 0; i < n; i++ {
		pvs[i] = []event.Vertex{{NDOF: ndofs[i]}}
		if i < len(etaPhis) {
			electrons[i] = []event.Lepton{{P4: event.Momentum{Eta: etaPhis[i][0], Phi: etaPhis[i][1]}, Type: event.TypeElectron}}
		}
		if i < len(srcTypes) {
			sources[i] = []event.Lepton{{Type: srcTypes[i]}}
		}
	}
	if err := b.SetVertices(event.CollectionPVs, pvs); err != nil {
		t.Fatal(err)
	}
	if err := b.SetLeptons(event.CollectionElectrons, electrons); err != nil {
		t.Fatal(err)
	}
	if err := b.SetLeptons(event.CollectionLJSources, sources); err != nil {
		t.Fatal(err)
	}

	s, err := registry.NewSet("pv_ndof", "electron_eta_phi", "ljsource_type")
	if err != nil {
		t.Fatal(err)
	}
	wts := make([]float64, n)
	for i := range wts {
		wts[i] = 1
	}
	if err := s.Fill(b, wts); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewDocument(t *testing.T) {
	Convey("Given a filled one-dimensional histogram", t, func() {
		s := filledSet(t, []float64{10, 20, 150}, nil, nil)
		h, err := s.Get("pv_ndof")
		So(err, ShouldBeNil)

		Convey("When serializing it", func() {
			doc, err := export.NewDocument(h)

			Convey("Then the document mirrors the storage", func() {
				So(err, ShouldBeNil)
				So(doc.Name, ShouldEqual, "pv_ndof")
				So(doc.Axes, ShouldHaveLength, 1)
				So(doc.Axes[0].Kind, ShouldEqual, "continuous")
				So(len(doc.Axes[0].Edges), ShouldEqual, doc.Axes[0].Bins+1)
				So(doc.SumW, ShouldHaveLength, 27)
				So(doc.Entries, ShouldEqual, 3)
				So(doc.Total, ShouldEqual, 3.0)
			})

			Convey("And the off-range value sits in the overflow slot", func() {
				So(err, ShouldBeNil)
				So(doc.SumW[26], ShouldEqual, 1.0)
			})

			Convey("And the summary covers only in-range weight", func() {
				So(err, ShouldBeNil)
				So(doc.Summary, ShouldNotBeNil)
				So(doc.Summary.Mean, ShouldAlmostEqual, 15, 5)
			})
		})
	})

	Convey("Given a filled two-dimensional histogram", t, func() {
		s := filledSet(t, []float64{10}, [][2]float64{{0.5, 1.0}}, nil)
		h, err := s.Get("electron_eta_phi")
		So(err, ShouldBeNil)

		Convey("When serializing it", func() {
			doc, err := export.NewDocument(h)

			Convey("Then shape and flat length agree", func() {
				So(err, ShouldBeNil)
				So(doc.Shape, ShouldResemble, []int{52, 52})
				So(doc.SumW, ShouldHaveLength, 52*52)
				So(doc.Entries, ShouldEqual, 1)
				So(doc.Summary, ShouldBeNil)
			})
		})
	})

	Convey("Given a filled category histogram", t, func() {
		s := filledSet(t, []float64{10, 10}, nil, []int{event.TypeMuon, 99})
		h, err := s.Get("ljsource_type")
		So(err, ShouldBeNil)

		Convey("When serializing it", func() {
			doc, err := export.NewDocument(h)

			Convey("Then categories are listed and the other bin holds the stray", func() {
				So(err, ShouldBeNil)
				So(doc.Axes[0].Kind, ShouldEqual, "category")
				So(doc.Axes[0].Categories, ShouldResemble, []int{2, 3, 4, 8})
				So(doc.SumW, ShouldHaveLength, 5)
				So(doc.SumW[4], ShouldEqual, 1.0)
				So(doc.Summary, ShouldBeNil)
			})
		})
	})
}

func TestHbookConversion(t *testing.T) {
	Convey("Given a filled set", t, func() {
		s := filledSet(t,
			[]float64{10, 20, 150},
			[][2]float64{{0.5, 1.0}, {-1.2, -2.0}},
			[]int{event.TypeMuon})

		Convey("When converting the 1D histogram", func() {
			h, err := s.Get("pv_ndof")
			So(err, ShouldBeNil)

			out, err := export.H1D(h)

			Convey("Then all weight transfers, overflow included", func() {
				So(err, ShouldBeNil)
				So(out.SumW(), ShouldAlmostEqual, 3.0)
				So(out.Annotation()["name"], ShouldEqual, "pv_ndof")

				var inRange float64
				for _, bin := range out.Binning.Bins {
					inRange += bin.SumW()
				}
				So(inRange, ShouldAlmostEqual, 2.0)
			})
		})

		Convey("When converting the 2D histogram", func() {
			h, err := s.Get("electron_eta_phi")
			So(err, ShouldBeNil)

			out, err := export.H2D(h)

			Convey("Then in-range weight transfers", func() {
				So(err, ShouldBeNil)
				So(out.SumW(), ShouldAlmostEqual, 2.0)
			})
		})

		Convey("When converting unsupported layouts", func() {
			cat, err := s.Get("ljsource_type")
			So(err, ShouldBeNil)

			Convey("Then category and dimension mismatches are rejected", func() {
				_, err := export.H1D(cat)
				So(errors.Is(err, export.ErrNotPlottable), ShouldBeTrue)

				twoD, err := s.Get("electron_eta_phi")
				So(err, ShouldBeNil)
				_, err = export.H1D(twoD)
				So(errors.Is(err, export.ErrNotPlottable), ShouldBeTrue)

				oneD, err := s.Get("pv_ndof")
				So(err, ShouldBeNil)
				_, err = export.H2D(oneD)
				So(errors.Is(err, export.ErrNotPlottable), ShouldBeTrue)
			})
		})
	})
}

func TestWriter(t *testing.T) {
	Convey("Given a filled set and a temp directory", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		s := filledSet(t, []float64{10, 20}, [][2]float64{{0.1, 0.2}}, []int{event.TypeElectron})

		Convey("When writing the set", func() {
			err := export.NewWriter(filepath.Join(dir, "out")).WriteSet(ctx, s)

			Convey("Then one document per histogram plus a manifest exists", func() {
				So(err, ShouldBeNil)

				for _, name := range s.Names() {
					_, err := os.Stat(filepath.Join(dir, "out", name+".json"))
					So(err, ShouldBeNil)
				}

				doc, err := export.ReadDocument(filepath.Join(dir, "out", "pv_ndof.json"))
				So(err, ShouldBeNil)
				So(doc.Name, ShouldEqual, "pv_ndof")
				So(doc.Entries, ShouldEqual, 2)

				_, err = os.Stat(filepath.Join(dir, "out", "manifest.json"))
				So(err, ShouldBeNil)
			})
		})

		Convey("When reading a missing document", func() {
			_, err := export.ReadDocument(filepath.Join(dir, "missing.json"))

			Convey("Then the read fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
