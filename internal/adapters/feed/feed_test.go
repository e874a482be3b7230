package feed

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mariajose2398/SIDM/internal/domain/event"
)

func testPartition(n int) Partition {
	b := event.NewBatch(n)
	wts := make([]float64, n)
	for i := range wts {
		wts[i] = 1
	}
	return NewPartition(0, b, wts)
}

func TestInMemoryFeed(t *testing.T) {
	Convey("Given an in-memory feed", t, func() {
		ctx := context.Background()

		Convey("When created with defaults", func() {
			f := NewInMemoryFeed()

			Convey("Then it should be open and empty", func() {
				So(f.IsClosed(), ShouldBeFalse)
				So(f.Len(ctx), ShouldEqual, 0)
			})
		})

		Convey("When enqueueing a partition", func() {
			f := NewInMemoryFeed()
			p := testPartition(4)

			ok := f.Enqueue(ctx, p)

			Convey("Then the partition should be accepted", func() {
				So(ok, ShouldBeTrue)
				So(f.Len(ctx), ShouldEqual, 1)
			})

			Convey("And dequeue should deliver it unchanged", func() {
				So(f.Close(), ShouldBeNil)

				got, open := <-f.Dequeue(ctx)
				So(open, ShouldBeTrue)
				So(got.ID, ShouldEqual, p.ID)
				So(got.Batch.Len(), ShouldEqual, 4)
				So(len(got.Weights), ShouldEqual, 4)
			})
		})

		Convey("When the feed is at capacity", func() {
			f := NewInMemoryFeed(WithCapacity(2), WithBufferSize(2))

			So(f.Enqueue(ctx, testPartition(1)), ShouldBeTrue)
			So(f.Enqueue(ctx, testPartition(1)), ShouldBeTrue)

			Convey("Then further enqueues should be rejected", func() {
				So(f.Enqueue(ctx, testPartition(1)), ShouldBeFalse)
				So(f.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When the feed is closed", func() {
			f := NewInMemoryFeed()
			So(f.Enqueue(ctx, testPartition(1)), ShouldBeTrue)
			So(f.Close(), ShouldBeNil)

			Convey("Then it should report closed and reject enqueues", func() {
				So(f.IsClosed(), ShouldBeTrue)
				So(f.Enqueue(ctx, testPartition(1)), ShouldBeFalse)
			})

			Convey("And closing again should be a no-op", func() {
				So(f.Close(), ShouldBeNil)
			})

			Convey("And the dequeue channel should drain then close", func() {
				ch := f.Dequeue(ctx)

				_, open := <-ch
				So(open, ShouldBeTrue)

				select {
				case _, open := <-ch:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("dequeue channel did not close")
				}
			})
		})

		Convey("When the dequeue context is cancelled", func() {
			f := NewInMemoryFeed()
			cctx, cancel := context.WithCancel(ctx)

			ch := f.Dequeue(cctx)
			cancel()

			So(f.Enqueue(ctx, testPartition(1)), ShouldBeTrue)

			Convey("Then the channel should close without delivering", func() {
				select {
				case _, open := <-ch:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("dequeue channel did not close after cancel")
				}
			})
		})
	})
}

func TestNewPartition(t *testing.T) {
	Convey("Given a batch and weights", t, func() {
		b := event.NewBatch(3)
		wts := []float64{1, 2, 3}

		Convey("When wrapping them in partitions", func() {
			p1 := NewPartition(0, b, wts)
			p2 := NewPartition(3, b, wts)

			Convey("Then each partition should carry a distinct ID", func() {
				So(p1.ID, ShouldNotEqual, p2.ID)
				So(p1.Offset, ShouldEqual, 0)
				So(p2.Offset, ShouldEqual, 3)
			})
		})
	})
}
