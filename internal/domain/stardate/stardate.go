// Package stardate implements the canonical DALS time encoding: a decimal
// day-count anchored at the Y2K epoch (2000-01-01T00:00:00 UTC).
//
// The legacy TNG-era formula produced negative values and is superseded; this
// package only implements the canonical non-negative encoding.
package stardate

import (
	"fmt"
	"math"
	"time"
)

// Encoding constants.
const (
	secondsPerDay = 86400.0

	// stardateScale fixes the stardate precision at 4 decimal places.
	stardateScale = 1e4

	// julianScale fixes the Julian date precision at 6 decimal places.
	julianScale = 1e6

	// julianAnchor is the Julian date of 2000-01-01T12:00:00Z (J2000.0).
	julianAnchor = 2451545.0
)

// defaultEpoch is the canonical Y2K reference instant.
var defaultEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // immutable reference instant

// julianEpoch is noon on the same day, the J2000.0 anchor instant.
var julianEpoch = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // immutable reference instant

// Timecode bundles every representation of one encoded instant.
type Timecode struct {
	// Stardate is the decimal day-count since the epoch, 4 decimal places.
	Stardate float64 `json:"stardate"`

	// ISO is the RFC3339 rendering of the instant in UTC with a Z suffix.
	ISO string `json:"iso"`

	// Unix is the instant as Unix seconds.
	Unix int64 `json:"unix"`

	// Julian is the astronomical Julian date, 6 decimal places.
	Julian float64 `json:"julian"`
}

// Option applies a configuration option to the Encoder.
type Option func(*Encoder)

// WithEpoch overrides the reference epoch. Zero instants are ignored so the
// canonical epoch stays in effect.
func WithEpoch(epoch time.Time) Option {
	return func(e *Encoder) {
		if !epoch.IsZero() {
			e.epoch = epoch.UTC()
		}
	}
}

// Encoder converts instants into Timecodes against a fixed epoch. It holds no
// mutable state and is safe for concurrent use.
type Encoder struct {
	epoch time.Time
}

// New creates an Encoder anchored at the canonical Y2K epoch unless
// overridden by options.
func New(opts ...Option) *Encoder {
	e := &Encoder{epoch: defaultEpoch}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Epoch reports the reference instant this encoder measures from.
func (e *Encoder) Epoch() time.Time {
	return e.epoch
}

// Encode converts t into a Timecode.
//
// The zero time is rejected with ErrInvalidTimestamp: a zero time.Time is the
// Go analogue of a missing or zone-ambiguous timestamp and must never be
// silently encoded. Instants before the epoch fail with ErrEpochUnderflow;
// the encoding is defined to be non-negative.
func (e *Encoder) Encode(t time.Time) (Timecode, error) {
	if t.IsZero() {
		return Timecode{}, fmt.Errorf("%w: zero instant", ErrInvalidTimestamp)
	}
	if t.Before(e.epoch) {
		return Timecode{}, fmt.Errorf("%w: %s precedes epoch %s",
			ErrEpochUnderflow, t.UTC().Format(time.RFC3339), e.epoch.Format(time.RFC3339))
	}

	utc := t.UTC()

	// Round exactly once, at the end, half-to-even. Rounding intermediate
	// values would compound error across the two divisions.
	days := utc.Sub(e.epoch).Seconds() / secondsPerDay
	sd := math.RoundToEven(days*stardateScale) / stardateScale

	julianDays := utc.Sub(julianEpoch).Seconds() / secondsPerDay
	jd := math.RoundToEven((julianAnchor+julianDays)*julianScale) / julianScale

	return Timecode{
		Stardate: sd,
		ISO:      utc.Format(time.RFC3339),
		Unix:     utc.Unix(),
		Julian:   jd,
	}, nil
}

// ParseInstant parses an RFC3339 timestamp that carries an explicit UTC
// offset. Zone-less ("naive") timestamps fail with ErrInvalidTimestamp rather
// than being silently assigned a zone.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not an RFC3339 instant with offset", ErrInvalidTimestamp, s)
	}
	return t, nil
}

// Format renders a stardate in the conventional display form,
// e.g. "Stardate 9368.2290".
func Format(sd float64) string {
	return fmt.Sprintf("Stardate %.4f", sd)
}
