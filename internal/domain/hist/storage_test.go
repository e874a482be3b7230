package hist_test

import (
	"errors"
	"testing"

	"github.com/mariajose2398/SIDM/internal/domain/binning"
	"github.com/mariajose2398/SIDM/internal/domain/hist"
	. "github.com/smartystreets/goconvey/convey"
)

func mustContinuous(name string, n int, lo, hi float64) binning.Spec {
	s, err := binning.NewContinuous(name, n, lo, hi)
	if err != nil {
		panic(err)
	}
	return s
}

func mustDiscrete(name string, lo, hi int) binning.Spec {
	s, err := binning.NewDiscrete(name, lo, hi)
	if err != nil {
		panic(err)
	}
	return s
}

func TestStorage(t *testing.T) {
	Convey("Given a 2D storage over pt and count", t, func() {
		pt := mustContinuous("pt", 10, 0, 10)
		n := mustDiscrete("n", 0, 5)
		st, err := hist.NewStorage([]binning.Spec{pt, n})
		So(err, ShouldBeNil)

		Convey("Then the shape includes the out-of-range bins", func() {
			So(st.Dims(), ShouldEqual, 2)
			So(st.Shape(), ShouldResemble, []int{12, 7})
			So(st.Entries(), ShouldEqual, 0)
		})

		Convey("When incrementing with aligned columns", func() {
			cols := [][]float64{
				{2.5, 2.5, 7.1},
				{1, 1, 3},
			}
			err := st.Increment(cols, []float64{1, 1, 2})

			Convey("Then the addressed cells accumulate weight and count", func() {
				So(err, ShouldBeNil)

				sw, sw2, c, err := st.At(2, 1)
				So(err, ShouldBeNil)
				So(sw, ShouldEqual, 2)
				So(sw2, ShouldEqual, 2)
				So(c, ShouldEqual, 2)

				sw, sw2, c, err = st.At(7, 3)
				So(err, ShouldBeNil)
				So(sw, ShouldEqual, 2)
				So(sw2, ShouldEqual, 4)
				So(c, ShouldEqual, 1)

				So(st.Entries(), ShouldEqual, 3)
				So(st.SumW(), ShouldEqual, 4)
			})
		})

		Convey("When incrementing with mismatched column counts", func() {
			err := st.Increment([][]float64{{1}}, []float64{1})

			Convey("Then the shape error is reported", func() {
				So(errors.Is(err, hist.ErrShape), ShouldBeTrue)
			})
		})

		Convey("When incrementing with ragged column lengths", func() {
			err := st.Increment([][]float64{{1, 2}, {1}}, []float64{1, 1})

			Convey("Then the shape error is reported", func() {
				So(errors.Is(err, hist.ErrShape), ShouldBeTrue)
			})
		})

		Convey("When reading out of range", func() {
			_, _, _, err := st.At(12, 0)

			Convey("Then the access is rejected", func() {
				So(errors.Is(err, hist.ErrShape), ShouldBeTrue)
			})
		})
	})

	Convey("Given no axes", t, func() {
		_, err := hist.NewStorage(nil)

		Convey("Then construction fails", func() {
			So(errors.Is(err, hist.ErrNoAxes), ShouldBeTrue)
		})
	})
}

func TestStorageMerge(t *testing.T) {
	Convey("Given two storages with the same layout", t, func() {
		spec := mustContinuous("x", 4, 0, 4)
		a, _ := hist.NewStorage([]binning.Spec{spec})
		b, _ := hist.NewStorage([]binning.Spec{spec})

		So(a.Increment([][]float64{{0.5, 1.5}}, []float64{1, 2}), ShouldBeNil)
		So(b.Increment([][]float64{{1.5, 9.0}}, []float64{3, 1}), ShouldBeNil)

		Convey("When merging b into a", func() {
			err := a.Merge(b)

			Convey("Then cells add and nothing is lost", func() {
				So(err, ShouldBeNil)

				sw, sw2, c, _ := a.At(0)
				So(sw, ShouldEqual, 1)
				So(sw2, ShouldEqual, 1)
				So(c, ShouldEqual, 1)

				sw, sw2, c, _ = a.At(1)
				So(sw, ShouldEqual, 5)
				So(sw2, ShouldEqual, 13)
				So(c, ShouldEqual, 2)

				sw, _, c, _ = a.At(spec.Overflow())
				So(sw, ShouldEqual, 1)
				So(c, ShouldEqual, 1)

				So(a.Entries(), ShouldEqual, 4)
			})
		})
	})

	Convey("Given storages with different layouts", t, func() {
		a, _ := hist.NewStorage([]binning.Spec{mustContinuous("x", 4, 0, 4)})
		b, _ := hist.NewStorage([]binning.Spec{mustContinuous("x", 4, 0, 8)})
		c, _ := hist.NewStorage([]binning.Spec{mustContinuous("x", 4, 0, 4), mustDiscrete("n", 0, 3)})

		Convey("Then merging is rejected", func() {
			So(errors.Is(a.Merge(b), hist.ErrIncompatible), ShouldBeTrue)
			So(errors.Is(a.Merge(c), hist.ErrIncompatible), ShouldBeTrue)
		})
	})

	Convey("Given a filled storage", t, func() {
		spec := mustContinuous("x", 4, 0, 4)
		a, _ := hist.NewStorage([]binning.Spec{spec})
		So(a.Increment([][]float64{{2.5}}, []float64{2}), ShouldBeNil)

		Convey("When cloning it", func() {
			b := a.Clone()

			Convey("Then the copy is independent", func() {
				So(b.Entries(), ShouldEqual, 1)
				So(a.Increment([][]float64{{2.5}}, []float64{1}), ShouldBeNil)
				So(a.Entries(), ShouldEqual, 2)
				So(b.Entries(), ShouldEqual, 1)
			})
		})
	})
}
