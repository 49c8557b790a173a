package simulate

import (
	"errors"
)

// Sentinel kinds for simulation errors.
var (
	ErrInvalidConfig = errors.New("invalid simulation config")
)
