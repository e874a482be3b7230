package config_test

import (
	"testing"

	"github.com/mariajose2398/SIDM/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then the defaults are sane", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.BatchSize, ShouldBeGreaterThan, 0)
			So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
			So(cfg.FeedCapacity, ShouldBeGreaterThan, 0)
			So(cfg.WeightScale, ShouldEqual, 1.0)
			So(cfg.Histograms, ShouldBeEmpty)
		})

		Convey("And they validate", func() {
			So(cfg.Validate(), ShouldBeNil)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given invalid settings", t, func() {
		Convey("A negative event count is rejected", func() {
			cfg := config.New()
			cfg.EventCount = -1
			So(cfg.Validate(), ShouldWrap, config.ErrInvalidConfig)
		})

		Convey("A zero batch size is rejected", func() {
			cfg := config.New()
			cfg.BatchSize = 0
			So(cfg.Validate(), ShouldWrap, config.ErrInvalidConfig)
		})

		Convey("A zero worker count is rejected", func() {
			cfg := config.New()
			cfg.WorkerCount = 0
			So(cfg.Validate(), ShouldWrap, config.ErrInvalidConfig)
		})

		Convey("A non-positive weight scale is rejected", func() {
			cfg := config.New()
			cfg.WeightScale = 0
			So(cfg.Validate(), ShouldWrap, config.ErrInvalidConfig)
		})

		Convey("Metrics without an address is rejected", func() {
			cfg := config.New()
			cfg.MetricsEnabled = true
			cfg.Addr = ""
			So(cfg.Validate(), ShouldWrap, config.ErrInvalidConfig)
		})
	})
}
