package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given an in-memory deduper", t, func() {
		ctx := context.Background()
		d := NewInMemoryDeduper()

		Convey("When recording a fresh ID", func() {
			id := uuid.New()
			seen := d.SeenAndRecord(ctx, id)

			Convey("Then it should report unseen and grow", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again should report seen", func() {
				So(d.SeenAndRecord(ctx, id), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And unrecording it should allow a retry", func() {
				d.Unrecord(ctx, id)
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, id), ShouldBeFalse)
			})
		})

		Convey("When unrecording an unknown ID", func() {
			d.Unrecord(ctx, uuid.New())

			Convey("Then the size should stay unchanged", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When many goroutines record the same ID", func() {
			id := uuid.New()
			const n = 32

			var wg sync.WaitGroup
			var firsts atomic.Int64
			wg.Add(n)
			for i := 0; i < n; i++ {
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, id) {
						firsts.Add(1)
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one should observe it as fresh", func() {
				So(firsts.Load(), ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}
