package simulate

import (
	"fmt"
	"time"
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL          string        // Base URL of the service
	Rate             float64       // Heartbeats per second across all modules
	BurstProbability float64       // Chance per tick of a burst
	BurstSize        int           // Heartbeats per burst
	ErrorProbability float64       // Chance per tick of injecting a module error
	Duration         time.Duration // Total run time; zero means run until cancelled
	Workers          int           // Number of concurrent senders
	Timeout          time.Duration // HTTP request timeout
	Verbose          bool          // Enable verbose logging
}

// validate rejects configurations the run loop cannot operate with: the tick
// interval is derived from Rate, and Workers sized channels and senders.
func (c *Config) validate() error {
	switch {
	case c.Rate <= 0:
		return fmt.Errorf("%w: rate must be positive", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Beat is one unit of simulated module activity.
type Beat struct {
	Module   string // Target module name
	Activity string // Activity label posted with the heartbeat
}

// Stats holds simulation statistics.
type Stats struct {
	Heartbeats     int64
	Bursts         int64
	ErrorsInjected int64
	Failed         int64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
