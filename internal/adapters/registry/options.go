package registry

import "time"

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithStartTime anchors uptime reporting at a fixed instant instead of the
// moment the registry was constructed.
func WithStartTime(t time.Time) Option {
	return func(r *Registry) {
		if !t.IsZero() {
			r.started = t
		}
	}
}
