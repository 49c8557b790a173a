// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// healthResponse is the wire shape of the health check.
type healthResponse struct {
	Status    string  `json:"status"`
	Service   string  `json:"service"`
	Version   string  `json:"version"`
	Timestamp string  `json:"timestamp"`
	Stardate  float64 `json:"stardate"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /healthz requests. The process is healthy as long
// as it can encode the current instant; there are no external dependencies
// to probe.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	tc, err := h.deps.Now()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Service:   h.deps.Name(),
		Version:   h.deps.Version(),
		Timestamp: tc.ISO,
		Stardate:  tc.Stardate,
	})
}
