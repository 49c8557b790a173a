// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env
//   on top of those defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/spruked/dals/internal/domain/status"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8003".
	Addr string `koanf:"addr"`

	// ServiceName is the name reported on health and status responses.
	ServiceName string `koanf:"service_name"`

	// Version is the service version reported on status responses.
	Version string `koanf:"version"`

	// Modules lists the subsystem names the service reports on.
	Modules []string `koanf:"modules"`

	// WSBroadcastIntervalMS controls how often the telemetry websocket hub
	// pushes a snapshot to connected dashboard clients.
	WSBroadcastIntervalMS int `koanf:"ws_broadcast_interval_ms"`

	// ShutdownTimeoutS bounds graceful HTTP shutdown.
	ShutdownTimeoutS int `koanf:"shutdown_timeout_s"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":8003",
		ServiceName:           "dals",
		Version:               "1.0.0",
		Modules:               status.DefaultModules(),
		WSBroadcastIntervalMS: 2000,
		ShutdownTimeoutS:      30,
	}
}
