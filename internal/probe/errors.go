package probe

import "errors"

// Error constants.
var (
	ErrUnhealthy  = errors.New("selector not reachable")
	ErrViolations = errors.New("lineup invariants violated")
	ErrNoCases    = errors.New("no probe cases")
)
