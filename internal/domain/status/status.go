// Package status implements the zero-or-empty response shaping policy for
// subsystem status reports.
//
// A subsystem that is not wired up must be reported with active=false,
// status "offline" and every counter forced to zero. No caller-supplied or
// stale value may leak into a response for a subsystem that is not live, and
// an unrecognized subsystem name is an error rather than an empty record.
package status

import (
	"fmt"
	"sort"
)

// State is the wire status vocabulary for a subsystem.
type State string

// Wire states. There is deliberately nothing between the two: a subsystem is
// either live or it is reported as offline with zeroed counters.
const (
	Offline State = "offline"
	Online  State = "online"
)

// Record is the normalized status report for one subsystem. Records are
// constructed fresh per call and never persisted.
type Record struct {
	Module   string           `json:"module"`
	Active   bool             `json:"active"`
	Status   State            `json:"status"`
	Counters map[string]int64 `json:"counters"`
}

// DefaultModules mirrors the subsystems the service knows how to report on.
func DefaultModules() []string {
	return []string{"caleon", "certsig", "iss", "prometheus"}
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithModules replaces the recognized subsystem set. Empty input is ignored
// so the default set stays in effect.
func WithModules(names []string) Option {
	return func(n *Normalizer) {
		if len(names) == 0 {
			return
		}
		n.known = make(map[string]struct{}, len(names))
		for _, name := range names {
			n.known[name] = struct{}{}
		}
	}
}

// Normalizer shapes subsystem status reports against a fixed set of
// recognized module names. It is stateless apart from that set and safe for
// concurrent use.
type Normalizer struct {
	known map[string]struct{}
}

// New creates a Normalizer recognizing the default module set unless
// overridden by options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	WithModules(DefaultModules())(n)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Known reports whether name is a recognized subsystem.
func (n *Normalizer) Known(name string) bool {
	_, ok := n.known[name]
	return ok
}

// Modules returns the recognized subsystem names in sorted order.
func (n *Normalizer) Modules() []string {
	names := make([]string, 0, len(n.known))
	for name := range n.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize produces the wire record for one subsystem.
//
// Inactive subsystems keep every supplied counter key but with the value
// clamped to zero. Active subsystems pass counters through unchanged. The
// returned map never aliases the caller's map. Unrecognized names fail with
// ErrUnknownModule naming the offending identifier.
func (n *Normalizer) Normalize(module string, active bool, counters map[string]int64) (Record, error) {
	if !n.Known(module) {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownModule, module)
	}

	out := make(map[string]int64, len(counters))
	for key, val := range counters {
		if active {
			out[key] = val
		} else {
			out[key] = 0
		}
	}

	state := Offline
	if active {
		state = Online
	}

	return Record{
		Module:   module,
		Active:   active,
		Status:   state,
		Counters: out,
	}, nil
}
