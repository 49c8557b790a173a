// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spruked/dals/internal/domain/stardate"
)

// timeResponse mirrors the multi-format time payload of GET /api/time.
type timeResponse struct {
	ISO      string `json:"iso"`
	Stardate string `json:"stardate"`
	Julian   string `json:"julian"`
	Unix     int64  `json:"unix"`
	Human    string `json:"human"`
}

// nowResponse is the canonical stardate protocol payload of
// GET /api/v1/iss/now. Field names are part of the protocol.
type nowResponse struct {
	TimestampISO    string  `json:"timestamp_iso"`
	TimestampEpoch  int64   `json:"timestamp_epoch"`
	TimestampJulian float64 `json:"timestamp_julian"`
	StardateISS     float64 `json:"stardate_iss"`
}

// TimeHandler handles time and stardate requests.
type TimeHandler struct {
	deps Dependencies
}

// NewTimeHandler creates a new time handler.
func NewTimeHandler(deps Dependencies) *TimeHandler {
	return &TimeHandler{deps: deps}
}

// HandleTime handles GET /api/time requests.
func (h *TimeHandler) HandleTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	tc, err := h.deps.Now()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	instant := time.Unix(tc.Unix, 0).UTC()
	writeJSON(w, http.StatusOK, timeResponse{
		ISO:      tc.ISO,
		Stardate: stardate.Format(tc.Stardate),
		Julian:   julianDisplay(tc.Julian),
		Unix:     tc.Unix,
		Human:    instant.Format("2006-01-02 15:04:05 UTC"),
	})
}

// HandleNow handles GET /api/v1/iss/now requests. An optional `at` query
// parameter encodes an injected instant instead of the wall clock; it must be
// RFC3339 with an explicit offset.
func (h *TimeHandler) HandleNow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	var (
		tc  stardate.Timecode
		err error
	)
	if at := r.URL.Query().Get("at"); at != "" {
		var instant time.Time
		instant, err = stardate.ParseInstant(at)
		if err == nil {
			tc, err = h.deps.EncodeAt(instant)
		}
	} else {
		tc, err = h.deps.Now()
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nowResponse{
		TimestampISO:    tc.ISO,
		TimestampEpoch:  tc.Unix,
		TimestampJulian: tc.Julian,
		StardateISS:     tc.Stardate,
	})
}

func julianDisplay(jd float64) string {
	return fmt.Sprintf("JD %.6f", jd)
}
