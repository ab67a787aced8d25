package selection

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrNoPlayersRemaining  = errors.New("no players remaining")
	ErrInsufficientPlayers = errors.New("insufficient players")
	ErrInvalidQuotas       = errors.New("invalid quotas")
)
