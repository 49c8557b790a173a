// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/spruked/dals/internal/adapters/registry"
)

// systemStatusResponse is the wire shape of GET /api/status.
type systemStatusResponse struct {
	Service       string  `json:"service"`
	Version       string  `json:"version"`
	Health        string  `json:"system_health"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	ActiveModules int     `json:"active_modules"`
	TotalModules  int     `json:"total_modules"`
	CurrentTime   string  `json:"current_time"`
	Stardate      float64 `json:"stardate"`
}

// systemHealthResponse is the condensed rollup of GET /api/system/health.
type systemHealthResponse struct {
	Health        string  `json:"system_health"`
	TotalModules  int     `json:"total_modules"`
	ActiveModules int     `json:"active_modules"`
	IdleModules   int     `json:"idle_modules"`
	ErrorModules  int     `json:"error_modules"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	LastUpdate    string  `json:"last_update"`
}

// SystemStatusHandler handles system-wide status requests.
type SystemStatusHandler struct {
	deps Dependencies
}

// NewSystemStatusHandler creates a new system status handler.
func NewSystemStatusHandler(deps Dependencies) *SystemStatusHandler {
	return &SystemStatusHandler{deps: deps}
}

// HandleSystemStatus handles GET /api/status requests.
func (h *SystemStatusHandler) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	tc, err := h.deps.Now()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	ov := h.deps.Overview()
	writeJSON(w, http.StatusOK, systemStatusResponse{
		Service:       h.deps.Name(),
		Version:       h.deps.Version(),
		Health:        ov.Health,
		UptimeSeconds: ov.UptimeSeconds,
		ActiveModules: ov.Breakdown[registry.Active],
		TotalModules:  ov.TotalModules,
		CurrentTime:   tc.ISO,
		Stardate:      tc.Stardate,
	})
}

// HandleSystemHealth handles GET /api/system/health requests.
func (h *SystemStatusHandler) HandleSystemHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ov := h.deps.Overview()
	writeJSON(w, http.StatusOK, systemHealthResponse{
		Health:        ov.Health,
		TotalModules:  ov.TotalModules,
		ActiveModules: ov.Breakdown[registry.Active],
		IdleModules:   ov.Breakdown[registry.Idle],
		ErrorModules:  ov.Breakdown[registry.Errored],
		UptimeSeconds: ov.UptimeSeconds,
		LastUpdate:    ov.LastUpdate,
	})
}
