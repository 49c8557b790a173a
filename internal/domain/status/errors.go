package status

import "errors"

// Sentinel kinds for status errors. These allow errors.Is/As from callers.
var (
	// ErrUnknownModule marks a status request for an unregistered subsystem
	// name. Unknown must stay distinguishable from known-but-offline, so this
	// never degrades to an empty record.
	ErrUnknownModule = errors.New("unknown module")
)
