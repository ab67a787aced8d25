package model

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownRole      = errors.New("unknown role")
	ErrInvalidPitchType = errors.New("invalid pitch type")
)
