package event_test

import (
	"errors"
	"testing"

	"github.com/mariajose2398/SIDM/internal/domain/event"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRaggedHelpers(t *testing.T) {
	Convey("Given a ragged lepton-jet collection", t, func() {
		rows := [][]event.LeptonJet{
			{},
			{{P4: event.Momentum{Pt: 5}, MuonN: 2}},
			{{P4: event.Momentum{Pt: 7}, MuonN: 0}, {P4: event.Momentum{Pt: 2}, MuonN: 3}},
		}

		Convey("When mapping out the transverse momenta", func() {
			pts := event.Map(rows, func(j event.LeptonJet) float64 { return j.P4.Pt })

			Convey("Then the ragged shape is preserved", func() {
				So(pts, ShouldHaveLength, 3)
				So(pts[0], ShouldBeEmpty)
				So(pts[1], ShouldResemble, []float64{5})
				So(pts[2], ShouldResemble, []float64{7, 2})
			})
		})

		Convey("When counting objects per event", func() {
			n := event.Counts(rows)

			Convey("Then each event reports its own multiplicity", func() {
				So(n, ShouldResemble, []float64{0, 1, 2})
			})
		})

		Convey("When filtering on muon content", func() {
			muType := event.Filter(rows, func(j event.LeptonJet) bool { return j.MuonN >= 2 })

			Convey("Then event boundaries survive the filter", func() {
				So(muType, ShouldHaveLength, 3)
				So(muType[0], ShouldBeEmpty)
				So(muType[1], ShouldHaveLength, 1)
				So(muType[2], ShouldHaveLength, 1)
				So(muType[2][0].P4.Pt, ShouldEqual, 2)
			})
		})
	})
}

func TestMaskedIndexSelection(t *testing.T) {
	Convey("Given events with object counts 0, 1 and 2", t, func() {
		rows := [][]event.LeptonJet{
			{},
			{{P4: event.Momentum{Pt: 5}}},
			{{P4: event.Momentum{Pt: 7}}, {P4: event.Momentum{Pt: 2}}},
		}

		Convey("When selecting the leading object under a count>0 mask", func() {
			leading, err := event.At(rows, []bool{false, true, true}, 0)

			Convey("Then only passing events contribute, in event order", func() {
				So(err, ShouldBeNil)
				So(leading, ShouldHaveLength, 2)
				So(leading[0].P4.Pt, ShouldEqual, 5)
				So(leading[1].P4.Pt, ShouldEqual, 7)
			})
		})

		Convey("When selecting the subleading object under a count>1 mask", func() {
			sub, err := event.At(rows, []bool{false, false, true}, 1)

			Convey("Then exactly one event survives", func() {
				So(err, ShouldBeNil)
				So(sub, ShouldHaveLength, 1)
				So(sub[0].P4.Pt, ShouldEqual, 2)
			})
		})

		Convey("When the mask does not guarantee the requested index", func() {
			_, err := event.At(rows, []bool{true, true, true}, 0)

			Convey("Then the selection contract is reported violated", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, event.ErrSelection), ShouldBeTrue)
			})
		})

		Convey("When no mask is supplied", func() {
			_, err := event.At(rows, nil, 0)

			Convey("Then every event must satisfy the index", func() {
				So(errors.Is(err, event.ErrSelection), ShouldBeTrue)
			})
		})
	})
}
