// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spruked/dals/internal/adapters/registry"
	"github.com/spruked/dals/internal/domain/stardate"
	"github.com/spruked/dals/internal/domain/status"
	"github.com/spruked/dals/pkg/logger"
	"github.com/spruked/dals/pkg/metrics"
)

// Module version constants reported on registry snapshots. These track the
// release trains of the subsystems DALS fronts, not the DALS version itself.
var moduleVersions = map[string]string{ //nolint:gochecknoglobals // static lookup table
	"caleon":     "2.0.0",
	"certsig":    "1.4.0",
	"iss":        "1.0.0",
	"prometheus": "1.2.0",
}

// Service implements the API dependencies for the DALS status system.
type Service struct {
	mu sync.RWMutex

	// Core components
	encoder    *stardate.Encoder
	normalizer *status.Normalizer
	modules    *registry.Registry

	// Configuration
	name        string
	version     string
	moduleNames []string
	clock       func() time.Time

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithName sets the reported service name.
func WithName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.name = name
		}
	}
}

// WithVersion sets the reported service version.
func WithVersion(version string) Option {
	return func(s *Service) {
		if version != "" {
			s.version = version
		}
	}
}

// WithModules sets the subsystem names the service reports on.
func WithModules(names []string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.moduleNames = names
		}
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithEpoch overrides the stardate epoch. Only tests should need this.
func WithEpoch(epoch time.Time) Option {
	return func(s *Service) {
		if !epoch.IsZero() {
			s.encoder = stardate.New(stardate.WithEpoch(epoch))
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		name:        "dals",
		version:     "1.0.0",
		moduleNames: status.DefaultModules(),
		clock:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components and registers the configured
// modules. Every module starts idle except the iss chronometer, which is this
// process itself and therefore live.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.encoder == nil {
		s.encoder = stardate.New()
	}

	s.startedAt = s.clock().UTC()
	s.normalizer = status.New(status.WithModules(s.moduleNames))
	s.modules = registry.New(
		registry.WithClock(s.clock),
		registry.WithStartTime(s.startedAt),
	)

	for _, name := range s.moduleNames {
		version, ok := moduleVersions[name]
		if !ok {
			version = "0.0.0"
		}
		state := registry.Idle
		if name == "iss" {
			state = registry.Active
		}
		s.modules.Register(name, version, state)
	}
	metrics.UpdateRegisteredModules(s.modules.Len())

	s.started = true
	s.logger.Info(ctx, "dals service started",
		logger.String("service", s.name),
		logger.String("version", s.version),
		logger.Int("modules", s.modules.Len()),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// Name returns the reported service name.
func (s *Service) Name() string { return s.name }

// Version returns the reported service version.
func (s *Service) Version() string { return s.version }

// Now encodes the current wall-clock instant.
func (s *Service) Now() (stardate.Timecode, error) {
	return s.EncodeAt(s.clock())
}

// EncodeAt encodes an injected instant. Encoding failures are counted by
// reason before being returned.
func (s *Service) EncodeAt(t time.Time) (stardate.Timecode, error) {
	tc, err := s.encoder.Encode(t)
	if err != nil {
		metrics.RecordStardateError(encodeErrorReason(err))
		return stardate.Timecode{}, err
	}
	metrics.RecordStardateComputation()
	return tc, nil
}

// ModuleRecord builds the normalized wire record for one module from the
// registry's live counters.
func (s *Service) ModuleRecord(name string) (status.Record, error) {
	m, err := s.modules.Get(name)
	if err != nil {
		return status.Record{}, err
	}
	return s.normalize(name, m.State == registry.Active, map[string]int64{
		"data_points_processed": m.Processed,
	})
}

// StubRecord builds the normalized wire record for one module from
// caller-supplied raw counters. While the module is not wired the counters
// are clamped to zero, whatever the caller passed in.
func (s *Service) StubRecord(name string, counters map[string]int64) (status.Record, error) {
	return s.normalize(name, s.modules.Wired(name), counters)
}

func (s *Service) normalize(name string, active bool, counters map[string]int64) (status.Record, error) {
	rec, err := s.normalizer.Normalize(name, active, counters)
	if err != nil {
		return status.Record{}, err
	}
	metrics.RecordModuleStatusRequest(name)
	if !rec.Active {
		metrics.RecordCountersClamped()
	}
	return rec, nil
}

// Heartbeat records module activity.
func (s *Service) Heartbeat(ctx context.Context, name, activity string, points int64) error {
	if err := s.modules.Heartbeat(name, activity, points); err != nil {
		return err
	}
	metrics.RecordHeartbeat(name)
	s.logger.Debug(ctx, "heartbeat recorded",
		logger.String("module", name),
		logger.String("activity", activity),
	)
	return nil
}

// ReportError sets a module into the error state.
func (s *Service) ReportError(ctx context.Context, name, message string) error {
	if err := s.modules.SetError(name, message); err != nil {
		return err
	}
	metrics.RecordModuleError()
	s.logger.Warn(ctx, "module error reported",
		logger.String("module", name),
		logger.String("message", message),
	)
	return nil
}

// Overview returns the system-wide registry rollup.
func (s *Service) Overview() registry.Overview {
	return s.modules.Overview()
}

// Uptime reports how long the service has been running.
func (s *Service) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock().UTC().Sub(s.startedAt)
}

// GetStats returns current service statistics for the metrics updater.
func (s *Service) GetStats() map[string]interface{} {
	ov := s.modules.Overview()
	return map[string]interface{}{
		"registeredModules": ov.TotalModules,
		"activeModules":     ov.Breakdown[registry.Active],
		"uptimeSeconds":     ov.UptimeSeconds,
		"systemHealth":      ov.Health,
	}
}

// encodeErrorReason maps encoder errors onto metric label values.
func encodeErrorReason(err error) string {
	switch {
	case errors.Is(err, stardate.ErrEpochUnderflow):
		return "epoch_underflow"
	case errors.Is(err, stardate.ErrInvalidTimestamp):
		return "invalid_timestamp"
	default:
		return "unknown"
	}
}
