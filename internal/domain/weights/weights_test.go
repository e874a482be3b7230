package weights_test

import (
	"testing"

	"github.com/mariajose2398/SIDM/internal/domain/weights"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWeighter(t *testing.T) {
	Convey("Given a default weighter", t, func() {
		w := weights.New()

		Convey("Then every event carries unit weight", func() {
			v := w.Vector(4)
			So(v, ShouldResemble, []float64{1, 1, 1, 1})
			So(w.Scale(), ShouldEqual, 1.0)
		})

		Convey("And an empty batch yields an empty vector", func() {
			So(w.Vector(0), ShouldBeEmpty)
		})
	})

	Convey("Given a scaled weighter", t, func() {
		w := weights.New(weights.WithScale(0.25))

		Convey("Then the scale repeats per event", func() {
			So(w.Vector(3), ShouldResemble, []float64{0.25, 0.25, 0.25})
		})
	})

	Convey("Given a non-positive scale", t, func() {
		w := weights.New(weights.WithScale(0))

		Convey("Then the unit default survives", func() {
			So(w.Scale(), ShouldEqual, 1.0)
		})
	})
}
