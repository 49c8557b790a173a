// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/spruked/dals/internal/adapters/registry"
	"github.com/spruked/dals/internal/domain/stardate"
	"github.com/spruked/dals/internal/domain/status"
	"github.com/spruked/dals/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Name and Version identify the service on health and status responses.
	Name() string
	Version() string

	// Now encodes the current wall-clock instant; EncodeAt encodes an
	// injected one.
	Now() (stardate.Timecode, error)
	EncodeAt(t time.Time) (stardate.Timecode, error)

	// ModuleRecord and StubRecord produce normalized status reports.
	ModuleRecord(name string) (status.Record, error)
	StubRecord(name string, counters map[string]int64) (status.Record, error)

	// Heartbeat and ReportError mutate module runtime state.
	Heartbeat(ctx context.Context, name, activity string, points int64) error
	ReportError(ctx context.Context, name, message string) error

	// Overview exposes the system-wide registry rollup.
	Overview() registry.Overview
	Uptime() time.Duration
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	timeHandler    *TimeHandler
	modulesHandler *ModulesHandler
	statusHandler  *SystemStatusHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		timeHandler:    NewTimeHandler(deps),
		modulesHandler: NewModulesHandler(deps),
		statusHandler:  NewSystemStatusHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/time", MetricsMiddleware(s.timeHandler.HandleTime, "time"))
	mux.HandleFunc("/api/v1/iss/now", MetricsMiddleware(s.timeHandler.HandleNow, "iss_now"))
	mux.HandleFunc("/api/status", MetricsMiddleware(s.statusHandler.HandleSystemStatus, "status"))
	mux.HandleFunc("/api/system/health", MetricsMiddleware(s.statusHandler.HandleSystemHealth, "system_health"))
	mux.HandleFunc("/api/modules/status", MetricsMiddleware(s.modulesHandler.HandleAllModules, "modules_status"))
	mux.HandleFunc("/api/modules/status/", MetricsMiddleware(s.modulesHandler.HandleModuleByName, "module_status"))
	mux.HandleFunc("/api/modules/caleon/status", MetricsMiddleware(s.modulesHandler.HandleCaleonStatus, "caleon_status"))
	mux.HandleFunc("/api/modules/certsig/mint-status", MetricsMiddleware(s.modulesHandler.HandleCertsigMintStatus, "certsig_mint_status"))
	mux.HandleFunc("/api/modules/prometheus/integration", MetricsMiddleware(s.modulesHandler.HandlePrometheusIntegration, "prometheus_integration"))
	mux.HandleFunc("/api/modules/iss/pulse", MetricsMiddleware(s.modulesHandler.HandleIssPulse, "iss_pulse"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates core validation failures into the wire
// taxonomy: unknown_module -> 404, invalid_timestamp / epoch_underflow -> 400.
// Anything else is an internal error.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, status.ErrUnknownModule):
		writeError(w, http.StatusNotFound, "unknown_module", err)
	case errors.Is(err, stardate.ErrEpochUnderflow):
		writeError(w, http.StatusBadRequest, "epoch_underflow", err)
	case errors.Is(err, stardate.ErrInvalidTimestamp):
		writeError(w, http.StatusBadRequest, "invalid_timestamp", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
