package registry_test

import (
	"testing"
	"time"

	"github.com/spruked/dals/internal/adapters/registry"
	"github.com/spruked/dals/internal/domain/status"
	"github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	convey.Convey("Given a registry with a fixed clock", t, func() {
		now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		r := registry.New(registry.WithClock(clock), registry.WithStartTime(now.Add(-90*time.Second)))

		r.Register("caleon", "2.0.0", registry.Idle)
		r.Register("certsig", "1.4.0", registry.Idle)
		r.Register("iss", "1.0.0", registry.Active)
		r.Register("prometheus", "1.2.0", registry.Idle)

		convey.Convey("When reading back a registered module", func() {
			m, err := r.Get("caleon")

			convey.Convey("Then the snapshot carries the registration", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(m.Version, convey.ShouldEqual, "2.0.0")
				convey.So(m.State, convey.ShouldEqual, registry.Idle)
				convey.So(m.Processed, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When recording a heartbeat on an idle module", func() {
			err := r.Heartbeat("caleon", "reasoning cycle", 3)

			convey.Convey("Then it becomes active and the counter advances", func() {
				convey.So(err, convey.ShouldBeNil)
				m, err := r.Get("caleon")
				convey.So(err, convey.ShouldBeNil)
				convey.So(m.State, convey.ShouldEqual, registry.Active)
				convey.So(m.Processed, convey.ShouldEqual, 3)
				convey.So(m.LastActivity, convey.ShouldEqual, "reasoning cycle")
				convey.So(r.Wired("caleon"), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a module errors out", func() {
			convey.So(r.SetError("certsig", "mint backend unreachable"), convey.ShouldBeNil)

			convey.Convey("Then the overview degrades", func() {
				ov := r.Overview()
				convey.So(ov.Health, convey.ShouldEqual, registry.HealthDegraded)
				convey.So(ov.Breakdown[registry.Errored], convey.ShouldEqual, 1)
			})

			convey.Convey("And a heartbeat does not clear the error state", func() {
				convey.So(r.Heartbeat("certsig", "mint", 1), convey.ShouldBeNil)
				m, err := r.Get("certsig")
				convey.So(err, convey.ShouldBeNil)
				convey.So(m.State, convey.ShouldEqual, registry.Errored)
			})

			convey.Convey("And SetIdle clears it", func() {
				convey.So(r.SetIdle("certsig"), convey.ShouldBeNil)
				m, err := r.Get("certsig")
				convey.So(err, convey.ShouldBeNil)
				convey.So(m.State, convey.ShouldEqual, registry.Idle)
				convey.So(m.ErrorMessage, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When disabling a module", func() {
			convey.So(r.Disable("prometheus", "maintenance window"), convey.ShouldBeNil)

			convey.Convey("Then the reason is visible and it is not wired", func() {
				m, err := r.Get("prometheus")
				convey.So(err, convey.ShouldBeNil)
				convey.So(m.State, convey.ShouldEqual, registry.Disabled)
				convey.So(m.ErrorMessage, convey.ShouldEqual, "maintenance window")
				convey.So(r.Wired("prometheus"), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When building the overview", func() {
			ov := r.Overview()

			convey.Convey("Then counts, uptime and ordering line up", func() {
				convey.So(ov.TotalModules, convey.ShouldEqual, 4)
				convey.So(ov.Breakdown[registry.Active], convey.ShouldEqual, 1)
				convey.So(ov.Breakdown[registry.Idle], convey.ShouldEqual, 3)
				convey.So(ov.Health, convey.ShouldEqual, registry.HealthOptimal)
				convey.So(ov.UptimeSeconds, convey.ShouldEqual, 90.0)
				convey.So(ov.Modules[0].Name, convey.ShouldEqual, "caleon")
				convey.So(ov.Modules[3].Name, convey.ShouldEqual, "prometheus")
			})
		})

		convey.Convey("When touching an unregistered name", func() {
			convey.Convey("Then every operation fails with ErrUnknownModule", func() {
				_, err := r.Get("vault")
				convey.So(err, convey.ShouldWrap, status.ErrUnknownModule)
				convey.So(r.Heartbeat("vault", "x", 1), convey.ShouldWrap, status.ErrUnknownModule)
				convey.So(r.SetError("vault", "x"), convey.ShouldWrap, status.ErrUnknownModule)
				convey.So(r.Wired("vault"), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When nothing is active", func() {
			convey.So(r.SetIdle("iss"), convey.ShouldBeNil)

			convey.Convey("Then system health reports idle", func() {
				convey.So(r.Overview().Health, convey.ShouldEqual, registry.HealthIdle)
			})
		})
	})
}
