// Package registry tracks runtime state for every registered DALS module:
// lifecycle, heartbeats, activity counters and error messages. It is the
// stateful counterpart of the stateless status normalizer; the normalizer
// decides how a module is reported, the registry decides what there is to
// report.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spruked/dals/internal/domain/status"
)

// Lifecycle is the internal state of a registered module. Unlike the wire
// vocabulary in the status package, this distinguishes healthy-but-quiet
// (idle) from deliberately turned off (disabled) and from error.
type Lifecycle string

// Lifecycle states.
const (
	Active   Lifecycle = "active"
	Idle     Lifecycle = "idle"
	Disabled Lifecycle = "disabled"
	Errored  Lifecycle = "error"
)

// System health rollup values.
const (
	HealthOptimal  = "optimal"
	HealthIdle     = "idle"
	HealthDegraded = "degraded"
)

// Module is a snapshot of one registered module's runtime state.
type Module struct {
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	State         Lifecycle `json:"state"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
	LastActivity  string    `json:"last_activity,omitempty"`
	Processed     int64     `json:"data_points_processed"`
	ErrorMessage  string    `json:"error_message,omitempty"`
}

// Overview is the system-wide rollup across all registered modules.
type Overview struct {
	Health         string            `json:"system_health"`
	TotalModules   int               `json:"total_modules"`
	Breakdown      map[Lifecycle]int `json:"status_breakdown"`
	TotalProcessed int64             `json:"total_data_processed"`
	UptimeSeconds  float64           `json:"system_uptime_seconds"`
	LastUpdate     string            `json:"last_update"`
	Modules        []Module          `json:"modules"`
}

// Registry is an in-memory, mutex-guarded module state store. All methods
// are safe for concurrent use; reads return snapshots, never live pointers.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Module
	started time.Time
	clock   func() time.Time
}

// New creates an empty Registry. The start instant anchors uptime reporting.
func New(opts ...Option) *Registry {
	r := &Registry{
		modules: make(map[string]*Module),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.started.IsZero() {
		r.started = r.clock()
	}
	return r
}

// Register adds a module or refreshes an existing one's version and state.
func (r *Registry) Register(name, version string, state Lifecycle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock().UTC()
	if m, ok := r.modules[name]; ok {
		m.Version = version
		m.State = state
		m.LastHeartbeat = now
		return
	}
	r.modules[name] = &Module{
		Name:          name,
		Version:       version,
		State:         state,
		LastHeartbeat: now,
	}
}

// Heartbeat records activity for a module and bumps its processed counter.
// An idle module becomes active; disabled and errored modules keep their
// state until explicitly cleared.
func (r *Registry) Heartbeat(name, activity string, points int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules[name]
	if !ok {
		return fmt.Errorf("%w: %q", status.ErrUnknownModule, name)
	}
	m.LastActivity = activity
	m.Processed += points
	m.LastHeartbeat = r.clock().UTC()
	if m.State == Idle {
		m.State = Active
	}
	return nil
}

// SetError marks a module as errored with the given message.
func (r *Registry) SetError(name, message string) error {
	return r.transition(name, Errored, message)
}

// SetIdle clears any error and returns a module to the idle state.
func (r *Registry) SetIdle(name string) error {
	return r.transition(name, Idle, "")
}

// Disable turns a module off. The reason lands in the error message field so
// operators can see why it is down.
func (r *Registry) Disable(name, reason string) error {
	return r.transition(name, Disabled, reason)
}

func (r *Registry) transition(name string, state Lifecycle, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modules[name]
	if !ok {
		return fmt.Errorf("%w: %q", status.ErrUnknownModule, name)
	}
	m.State = state
	m.ErrorMessage = message
	m.LastHeartbeat = r.clock().UTC()
	return nil
}

// Get returns a snapshot of one module's state.
func (r *Registry) Get(name string) (Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[name]
	if !ok {
		return Module{}, fmt.Errorf("%w: %q", status.ErrUnknownModule, name)
	}
	return *m, nil
}

// Wired reports whether a module exists and is in the active state. This is
// the "is this subsystem wired up" input to the status normalizer.
func (r *Registry) Wired(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[name]
	return ok && m.State == Active
}

// List returns snapshots of all modules, sorted by name.
func (r *Registry) List() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *Registry) listLocked() []Module {
	out := make([]Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}

// Overview builds the system-wide health rollup. Health is degraded when any
// module is errored, idle when nothing is active, optimal otherwise.
func (r *Registry) Overview() Overview {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modules := r.listLocked()
	breakdown := map[Lifecycle]int{Active: 0, Idle: 0, Disabled: 0, Errored: 0}
	var processed int64
	for _, m := range modules {
		breakdown[m.State]++
		processed += m.Processed
	}

	health := HealthOptimal
	switch {
	case breakdown[Errored] > 0:
		health = HealthDegraded
	case breakdown[Active] == 0:
		health = HealthIdle
	}

	now := r.clock().UTC()
	return Overview{
		Health:         health,
		TotalModules:   len(modules),
		Breakdown:      breakdown,
		TotalProcessed: processed,
		UptimeSeconds:  now.Sub(r.started).Seconds(),
		LastUpdate:     now.Format(time.RFC3339),
		Modules:        modules,
	}
}
