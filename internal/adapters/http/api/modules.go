// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"
)

// ModulesHandler handles per-module status requests and the module
// management endpoints.
type ModulesHandler struct {
	deps Dependencies
}

// NewModulesHandler creates a new modules handler.
func NewModulesHandler(deps Dependencies) *ModulesHandler {
	return &ModulesHandler{deps: deps}
}

// HandleAllModules handles GET /api/modules/status requests.
func (h *ModulesHandler) HandleAllModules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Overview())
}

// HandleModuleByName routes /api/modules/status/{name} and its POST
// subroutes {name}/heartbeat and {name}/error.
func (h *ModulesHandler) HandleModuleByName(w http.ResponseWriter, r *http.Request) {
	const op = "api.module_by_name"

	rest := strings.TrimPrefix(r.URL.Path, "/api/modules/status/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	name, action, _ := strings.Cut(rest, "/")

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.getModule(w, name)
	case action == "heartbeat" && r.Method == http.MethodPost:
		h.postHeartbeat(w, r, name)
	case action == "error" && r.Method == http.MethodPost:
		h.postError(w, r, name)
	default:
		http.NotFound(w, r)
	}
}

func (h *ModulesHandler) getModule(w http.ResponseWriter, name string) {
	rec, err := h.deps.ModuleRecord(name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ModulesHandler) postHeartbeat(w http.ResponseWriter, r *http.Request, name string) {
	activity := r.URL.Query().Get("activity")
	if activity == "" {
		activity = "heartbeat"
	}
	if err := h.deps.Heartbeat(r.Context(), name, activity, 1); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "heartbeat recorded for " + name,
		"activity": activity,
	})
}

func (h *ModulesHandler) postError(w http.ResponseWriter, r *http.Request, name string) {
	const op = "api.module_error"

	message := r.URL.Query().Get("message")
	if message == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.ReportError(r.Context(), name, message); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "error state set for " + name,
		"error":   message,
	})
}

// The per-module stub endpoints below carry each subsystem's counter
// vocabulary. While a subsystem is not wired up, the normalizer clamps every
// counter to zero so no stale or simulated value can reach a client.

// HandleCaleonStatus handles GET /api/modules/caleon/status requests.
func (h *ModulesHandler) HandleCaleonStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rec, err := h.deps.StubRecord("caleon", map[string]int64{
		"reasoning_sessions": 0,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleCertsigMintStatus handles GET /api/modules/certsig/mint-status requests.
func (h *ModulesHandler) HandleCertsigMintStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rec, err := h.deps.StubRecord("certsig", map[string]int64{
		"pending_mints":    0,
		"completed_today":  0,
		"validation_queue": 0,
		"nft_types_active": 0,
		"metadata_layers":  0,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandlePrometheusIntegration handles GET /api/modules/prometheus/integration requests.
func (h *ModulesHandler) HandlePrometheusIntegration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rec, err := h.deps.StubRecord("prometheus", map[string]int64{
		"reasoning_cycles":  0,
		"connected_modules": 0,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// issPulseResponse decorates the iss status record with chronometer data.
type issPulseResponse struct {
	Module   string  `json:"module"`
	Active   bool    `json:"active"`
	Status   string  `json:"status"`
	Stardate float64 `json:"stardate"`
	LastSync string  `json:"last_sync"`
}

// HandleIssPulse handles GET /api/modules/iss/pulse requests. The iss
// chronometer is this process, so its pulse is the current timecode.
func (h *ModulesHandler) HandleIssPulse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rec, err := h.deps.StubRecord("iss", nil)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	tc, err := h.deps.Now()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issPulseResponse{
		Module:   rec.Module,
		Active:   rec.Active,
		Status:   string(rec.Status),
		Stardate: tc.Stardate,
		LastSync: tc.ISO,
	})
}
