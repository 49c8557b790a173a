package stardate_test

import (
	"math"
	"testing"
	"time"

	"github.com/spruked/dals/internal/domain/stardate"
	"github.com/smartystreets/goconvey/convey"
)

var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestEncoder_Encode(t *testing.T) {
	convey.Convey("Given a canonical encoder", t, func() {
		enc := stardate.New()

		convey.Convey("When encoding the epoch itself", func() {
			tc, err := enc.Encode(epoch)

			convey.Convey("Then the stardate is exactly zero", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Stardate, convey.ShouldEqual, 0.0)
				convey.So(tc.ISO, convey.ShouldEqual, "2000-01-01T00:00:00Z")
				convey.So(tc.Unix, convey.ShouldEqual, int64(946684800))
			})

			convey.Convey("And the Julian date anchors half a day before J2000.0", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Julian, convey.ShouldEqual, 2451544.5)
			})
		})

		convey.Convey("When encoding exactly one day after the epoch", func() {
			tc, err := enc.Encode(epoch.Add(86400 * time.Second))

			convey.Convey("Then the stardate is exactly one", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Stardate, convey.ShouldEqual, 1.0)
			})
		})

		convey.Convey("When encoding noon on the epoch day", func() {
			tc, err := enc.Encode(epoch.Add(12 * time.Hour))

			convey.Convey("Then the stardate is half a day and Julian is J2000.0", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Stardate, convey.ShouldEqual, 0.5)
				convey.So(tc.Julian, convey.ShouldEqual, 2451545.0)
			})
		})

		convey.Convey("When encoding sub-resolution offsets", func() {
			convey.Convey("Then one second rounds down to zero", func() {
				tc, err := enc.Encode(epoch.Add(1 * time.Second))
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Stardate, convey.ShouldEqual, 0.0)
			})

			convey.Convey("And five seconds rounds up to the smallest tick", func() {
				tc, err := enc.Encode(epoch.Add(5 * time.Second))
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Stardate, convey.ShouldEqual, 0.0001)
			})
		})

		convey.Convey("When encoding an exact tick midpoint", func() {
			// 4.32s is half of one 0.0001-day tick and scales to exactly 0.5,
			// which must round to the even neighbor 0, not up to 0.0001.
			convey.Convey("Then the midpoint rounds to even", func() {
				tc, err := enc.Encode(epoch.Add(4320 * time.Millisecond))
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Stardate, convey.ShouldEqual, 0.0)
			})
		})

		convey.Convey("When encoding an arbitrary instant", func() {
			tc, err := enc.Encode(epoch.Add(100000 * time.Second))

			convey.Convey("Then the value carries exactly four decimal places", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Stardate, convey.ShouldEqual, 1.1574)
				scaled := tc.Stardate * 1e4
				convey.So(scaled, convey.ShouldEqual, math.Trunc(scaled))
			})
		})

		convey.Convey("When encoding strictly increasing instants", func() {
			instants := []time.Time{
				epoch,
				epoch.Add(time.Minute),
				epoch.Add(36 * time.Hour),
				time.Date(2020, time.July, 4, 18, 30, 0, 0, time.UTC),
				time.Date(2025, time.October, 5, 5, 29, 47, 0, time.UTC),
			}

			convey.Convey("Then stardates are non-negative and non-decreasing", func() {
				prev := -1.0
				for _, in := range instants {
					tc, err := enc.Encode(in)
					convey.So(err, convey.ShouldBeNil)
					convey.So(tc.Stardate, convey.ShouldBeGreaterThanOrEqualTo, 0)
					convey.So(tc.Stardate, convey.ShouldBeGreaterThanOrEqualTo, prev)
					prev = tc.Stardate
				}
			})
		})

		convey.Convey("When encoding a non-UTC instant", func() {
			loc := time.FixedZone("UTC+2", 2*3600)
			tc, err := enc.Encode(time.Date(2000, time.January, 2, 2, 0, 0, 0, loc))

			convey.Convey("Then it normalizes to the UTC wall clock", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Stardate, convey.ShouldEqual, 1.0)
				convey.So(tc.ISO, convey.ShouldEqual, "2000-01-02T00:00:00Z")
			})
		})

		convey.Convey("When encoding the zero time", func() {
			_, err := enc.Encode(time.Time{})

			convey.Convey("Then it fails with ErrInvalidTimestamp", func() {
				convey.So(err, convey.ShouldWrap, stardate.ErrInvalidTimestamp)
			})
		})

		convey.Convey("When encoding a pre-epoch instant", func() {
			_, err := enc.Encode(epoch.Add(-time.Second))

			convey.Convey("Then it fails with ErrEpochUnderflow", func() {
				convey.So(err, convey.ShouldWrap, stardate.ErrEpochUnderflow)
			})
		})
	})
}

func TestEncoder_WithEpoch(t *testing.T) {
	convey.Convey("Given an encoder with an overridden epoch", t, func() {
		custom := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		enc := stardate.New(stardate.WithEpoch(custom))

		convey.Convey("When encoding one day past the custom epoch", func() {
			tc, err := enc.Encode(custom.AddDate(0, 0, 1))

			convey.Convey("Then the day count measures from the override", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(tc.Stardate, convey.ShouldEqual, 1.0)
				convey.So(enc.Epoch().Equal(custom), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the override is the zero time", func() {
			enc := stardate.New(stardate.WithEpoch(time.Time{}))

			convey.Convey("Then the canonical epoch stays in effect", func() {
				convey.So(enc.Epoch().Equal(epoch), convey.ShouldBeTrue)
			})
		})
	})
}

func TestParseInstant(t *testing.T) {
	convey.Convey("Given the wire instant parser", t, func() {
		convey.Convey("When parsing an RFC3339 instant with offset", func() {
			in, err := stardate.ParseInstant("2024-06-01T10:00:00Z")

			convey.Convey("Then it parses cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(in.Equal(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When parsing a zone-less timestamp", func() {
			_, err := stardate.ParseInstant("2024-06-01T10:00:00")

			convey.Convey("Then it fails with ErrInvalidTimestamp", func() {
				convey.So(err, convey.ShouldWrap, stardate.ErrInvalidTimestamp)
			})
		})

		convey.Convey("When parsing garbage", func() {
			_, err := stardate.ParseInstant("not-a-timestamp")

			convey.Convey("Then it fails with ErrInvalidTimestamp", func() {
				convey.So(err, convey.ShouldWrap, stardate.ErrInvalidTimestamp)
			})
		})
	})
}

func TestFormat(t *testing.T) {
	convey.Convey("Given the display formatter", t, func() {
		convey.Convey("When formatting a stardate", func() {
			convey.So(stardate.Format(9368.229), convey.ShouldEqual, "Stardate 9368.2290")
			convey.So(stardate.Format(0), convey.ShouldEqual, "Stardate 0.0000")
		})
	})
}
