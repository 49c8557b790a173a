package stardate

import "errors"

// Sentinel kinds for encoding errors. These allow errors.Is/As from callers.
var (
	// ErrInvalidTimestamp marks a malformed or zone-ambiguous input instant.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrEpochUnderflow marks an instant that precedes the fixed epoch.
	ErrEpochUnderflow = errors.New("epoch underflow")
)
