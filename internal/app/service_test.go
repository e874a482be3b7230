package app

import (
	"context"
	"os"
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

// gapSource generates batches that carry no collections at all, so
// every fill fails and the retry path runs to exhaustion.
type gapSource struct{}

func (gapSource) Generate(_ context.Context, n int) (*event.Batch, error) {
	return event.NewBatch(n), nil
}

// ljOnlySource emits lepton jets but no generator record, so a set
// ordered jets-first fails midway through every fill.
type ljOnlySource struct{}

func (ljOnlySource) Generate(_ context.Context, n int) (*event.Batch, error) {
	b := event.NewBatch(n)
	rows := make([][]event.LeptonJet, n)
	for i := range rows {
		rows[i] = []event.LeptonJet{{P4: event.Momentum{Pt: 20}}}
	}
	if err := b.SetLeptonJets(event.CollectionLJs, rows); err != nil {
		return nil, err
	}
	return b, nil
}

func TestServiceRun(t *testing.T) {
	Convey("Given a service over a small deterministic run", t, func() {
		ctx := context.Background()

		Convey("When running with defaults", func() {
			svc := New(
				WithEventCount(200),
				WithBatchSize(50),
				WithWorkerCount(2),
				WithSeed(3),
			)

			err := svc.Run(ctx)

			Convey("Then the store holds the full registry", func() {
				So(err, ShouldBeNil)
				So(svc.Results().Names(ctx), ShouldResemble, registry.Names())
				So(svc.Results().TotalEntries(ctx), ShouldBeGreaterThan, 0)
			})

			Convey("And every partition was recorded exactly once", func() {
				So(err, ShouldBeNil)
				So(svc.DedupeSize(), ShouldEqual, 4)
			})
		})

		Convey("When restricting the histogram selection", func() {
			svc := New(
				WithEventCount(100),
				WithBatchSize(100),
				WithWorkerCount(1),
				WithSeed(3),
				WithHistograms([]string{"pv_n", "lj_pt"}),
			)

			err := svc.Run(ctx)

			Convey("Then only the selected histograms exist", func() {
				So(err, ShouldBeNil)
				So(svc.Results().Names(ctx), ShouldResemble, []string{"pv_n", "lj_pt"})
			})
		})

		Convey("When running the same seed with different worker counts", func() {
			run := func(workers int) *Service {
				svc := New(
					WithEventCount(300),
					WithBatchSize(40),
					WithWorkerCount(workers),
					WithSeed(17),
				)
				So(svc.Run(ctx), ShouldBeNil)
				return svc
			}

			single := run(1)
			parallel := run(4)

			Convey("Then the merged results are identical", func() {
				So(parallel.Results().TotalEntries(ctx), ShouldEqual, single.Results().TotalEntries(ctx))

				for _, name := range []string{"pv_ndof", "lj_pt", "genA_lxy", "electron_eta_phi"} {
					hs, err := single.Results().Get(ctx, name)
					So(err, ShouldBeNil)
					hp, err := parallel.Results().Get(ctx, name)
					So(err, ShouldBeNil)

					ds, err := export.NewDocument(hs)
					So(err, ShouldBeNil)
					dp, err := export.NewDocument(hp)
					So(err, ShouldBeNil)
					So(dp, ShouldResemble, ds)
				}
			})
		})

		Convey("When scaling the event weight", func() {
			svc := New(
				WithEventCount(100),
				WithBatchSize(50),
				WithWorkerCount(1),
				WithSeed(3),
				WithWeightScale(2.0),
				WithHistograms([]string{"pv_n"}),
			)

			err := svc.Run(ctx)

			Convey("Then weight doubles while entries do not", func() {
				So(err, ShouldBeNil)
				h, err := svc.Results().Get(ctx, "pv_n")
				So(err, ShouldBeNil)
				So(h.Storage().Entries(), ShouldEqual, 100)
				So(h.Storage().SumW(), ShouldAlmostEqual, 200.0)
			})
		})

		Convey("When every partition is poisoned", func() {
			svc := New(
				WithEventCount(16),
				WithBatchSize(8),
				WithWorkerCount(2),
				WithHistograms([]string{"genA_n"}),
			)
			svc.gen = gapSource{}

			err := svc.Run(ctx)

			Convey("Then the run completes with empty results", func() {
				So(err, ShouldBeNil)
				So(svc.Results().TotalEntries(ctx), ShouldEqual, 0)
			})

			Convey("And no failed partition stays recorded", func() {
				So(svc.DedupeSize(), ShouldEqual, 0)
			})
		})

		Convey("When fills fail after their first histogram succeeded", func() {
			svc := New(
				WithEventCount(16),
				WithBatchSize(8),
				WithWorkerCount(2),
				WithHistograms([]string{"lj_n", "genA_n"}),
			)
			svc.gen = ljOnlySource{}

			err := svc.Run(ctx)

			Convey("Then split retries never double-count the earlier histogram", func() {
				So(err, ShouldBeNil)
				h, err := svc.Results().Get(ctx, "lj_n")
				So(err, ShouldBeNil)
				So(h.Storage().Entries(), ShouldEqual, 0)
				So(svc.Results().TotalEntries(ctx), ShouldEqual, 0)
				So(svc.DedupeSize(), ShouldEqual, 0)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			svc := New(WithEventCount(10), WithBatchSize(5), WithWorkerCount(1))
			err := svc.Run(cctx)

			Convey("Then the run aborts", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
