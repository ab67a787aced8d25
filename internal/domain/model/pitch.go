package model

import (
	"fmt"
	"strings"
)

// PitchType is the match-condition signal that biases scoring.
type PitchType string

// Supported pitch types.
const (
	PitchNeutral PitchType = "neutral"
	PitchPace    PitchType = "pace"
	PitchSpin    PitchType = "spin"
)

// ParsePitchType parses a pitch type case-insensitively. The boolean is false
// when s is blank, meaning the caller did not supply one.
func ParsePitchType(s string) (PitchType, bool, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch PitchType(v) {
	case "":
		return "", false, nil
	case PitchNeutral, PitchPace, PitchSpin:
		return PitchType(v), true, nil
	default:
		return "", false, fmt.Errorf("%w: %q (want neutral, pace or spin)", ErrInvalidPitchType, s)
	}
}
