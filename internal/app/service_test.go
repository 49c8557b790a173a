package service

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spruked/dals/internal/adapters/registry"
	"github.com/spruked/dals/internal/domain/stardate"
	"github.com/spruked/dals/internal/domain/status"
	"github.com/spruked/dals/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init(logger.WithOutput(io.Discard))
	os.Exit(m.Run())
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
		svc := New(
			WithName("dals-test"),
			WithVersion("9.9.9"),
			WithClock(fixedClock(now)),
		)

		Convey("Then identity options are applied", func() {
			So(svc.Name(), ShouldEqual, "dals-test")
			So(svc.Version(), ShouldEqual, "9.9.9")
		})

		Convey("When the service starts", func() {
			So(svc.Start(context.Background()), ShouldBeNil)

			Convey("Then the default modules are registered", func() {
				ov := svc.Overview()
				So(ov.TotalModules, ShouldEqual, 4)
				names := make([]string, 0, len(ov.Modules))
				for _, m := range ov.Modules {
					names = append(names, m.Name)
				}
				So(names, ShouldResemble, []string{"caleon", "certsig", "iss", "prometheus"})
			})

			Convey("Then only the chronometer starts active", func() {
				ov := svc.Overview()
				So(ov.Breakdown[registry.Active], ShouldEqual, 1)
				So(ov.Breakdown[registry.Idle], ShouldEqual, 3)
				So(ov.Health, ShouldEqual, registry.HealthOptimal)
			})

			Convey("Then a second start is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
				So(svc.Overview().TotalModules, ShouldEqual, 4)
			})
		})
	})
}

func TestServiceEncoding(t *testing.T) {
	Convey("Given a started service with a fixed clock", t, func() {
		// One day past the epoch, so the expected stardate is exactly 1.
		now := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
		svc := New(WithClock(fixedClock(now)))
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("When encoding the current instant", func() {
			tc, err := svc.Now()

			Convey("Then the timecode reflects the clock", func() {
				So(err, ShouldBeNil)
				So(tc.Stardate, ShouldEqual, 1.0)
				So(tc.ISO, ShouldEqual, "2000-01-02T00:00:00Z")
			})
		})

		Convey("When encoding an injected instant", func() {
			tc, err := svc.EncodeAt(time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC))
			So(err, ShouldBeNil)
			So(tc.Stardate, ShouldEqual, 2.0)
		})

		Convey("When encoding an instant before the epoch", func() {
			_, err := svc.EncodeAt(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC))
			So(err, ShouldWrap, stardate.ErrEpochUnderflow)
		})

		Convey("When encoding the zero instant", func() {
			_, err := svc.EncodeAt(time.Time{})
			So(err, ShouldWrap, stardate.ErrInvalidTimestamp)
		})
	})
}

func TestServiceModuleRecords(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
		svc := New(WithClock(fixedClock(now)))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When fetching a record for an idle module", func() {
			rec, err := svc.ModuleRecord("caleon")

			Convey("Then the record is offline with clamped counters", func() {
				So(err, ShouldBeNil)
				So(rec.Active, ShouldBeFalse)
				So(rec.Status, ShouldEqual, status.Offline)
				So(rec.Counters["data_points_processed"], ShouldEqual, 0)
			})
		})

		Convey("When a module heartbeats and is fetched again", func() {
			So(svc.Heartbeat(ctx, "caleon", "reasoning", 7), ShouldBeNil)
			rec, err := svc.ModuleRecord("caleon")

			Convey("Then the record is online with live counters", func() {
				So(err, ShouldBeNil)
				So(rec.Active, ShouldBeTrue)
				So(rec.Status, ShouldEqual, status.Online)
				So(rec.Counters["data_points_processed"], ShouldEqual, 7)
			})
		})

		Convey("When building a stub record for an unwired module", func() {
			rec, err := svc.StubRecord("certsig", map[string]int64{
				"pending_mints":   12,
				"completed_today": 3,
			})

			Convey("Then every counter is clamped but the keys survive", func() {
				So(err, ShouldBeNil)
				So(rec.Active, ShouldBeFalse)
				So(rec.Counters["pending_mints"], ShouldEqual, 0)
				So(rec.Counters["completed_today"], ShouldEqual, 0)
			})
		})

		Convey("When the module name is unknown", func() {
			_, err := svc.ModuleRecord("phantom")
			So(err, ShouldWrap, status.ErrUnknownModule)

			_, err = svc.StubRecord("phantom", nil)
			So(err, ShouldWrap, status.ErrUnknownModule)
		})
	})
}

func TestServiceErrorReporting(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
		svc := New(WithClock(fixedClock(now)))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When a module reports an error", func() {
			So(svc.ReportError(ctx, "prometheus", "sync loop wedged"), ShouldBeNil)

			Convey("Then the system health degrades", func() {
				ov := svc.Overview()
				So(ov.Health, ShouldEqual, registry.HealthDegraded)
				So(ov.Breakdown[registry.Errored], ShouldEqual, 1)
			})
		})

		Convey("When reporting against an unknown module", func() {
			err := svc.ReportError(ctx, "phantom", "boom")
			So(err, ShouldWrap, status.ErrUnknownModule)
		})
	})
}

func TestServiceUptime(t *testing.T) {
	Convey("Given a service whose clock advances after start", t, func() {
		base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
		current := base
		svc := New(WithClock(func() time.Time { return current }))
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("When ninety seconds pass", func() {
			current = base.Add(90 * time.Second)

			Convey("Then uptime and stats reflect the elapsed time", func() {
				So(svc.Uptime(), ShouldEqual, 90*time.Second)
				stats := svc.GetStats()
				So(stats["uptimeSeconds"], ShouldEqual, 90.0)
				So(stats["registeredModules"], ShouldEqual, 4)
			})
		})
	})
}
