package model

import (
	"fmt"
	"strings"
)

// Role is a player's functional category for team composition.
type Role int

// Canonical roles. The zero value is not a valid role.
const (
	RoleUnknown Role = iota
	RoleBatsman
	RoleWicketKeeper
	RoleAllRounder
	RoleBowler
)

// Roles lists the canonical roles in quota order.
var Roles = []Role{RoleBatsman, RoleWicketKeeper, RoleAllRounder, RoleBowler}

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleBatsman:
		return "batsman"
	case RoleWicketKeeper:
		return "wicketkeeper"
	case RoleAllRounder:
		return "allrounder"
	case RoleBowler:
		return "bowler"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the four canonical roles.
func (r Role) Valid() bool {
	return r >= RoleBatsman && r <= RoleBowler
}

// Priority orders roles in a presented lineup: top order first, bowlers last.
func (r Role) Priority() int {
	switch r {
	case RoleBatsman, RoleWicketKeeper:
		return 1
	case RoleAllRounder:
		return 2
	case RoleBowler:
		return 3
	default:
		return 4
	}
}

// ParseRole accepts only the canonical wire names.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if strings.EqualFold(strings.TrimSpace(s), r.String()) {
			return r, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// DefaultRoleAliases maps raw dataset labels to canonical roles.
// Canonical names always pass through and need not be listed.
func DefaultRoleAliases() map[string]Role {
	return map[string]Role{
		"batter":        RoleBatsman,
		"bat":           RoleBatsman,
		"all-rounder":   RoleAllRounder,
		"all rounder":   RoleAllRounder,
		"utility":       RoleAllRounder,
		"wk":            RoleWicketKeeper,
		"wicket-keeper": RoleWicketKeeper,
		"wk-batter":     RoleWicketKeeper,
		"keeper":        RoleWicketKeeper,

		"batting allrounder": RoleAllRounder,
		"bowling allrounder": RoleAllRounder,
	}
}

// RoleNormalizer maps free-text role labels onto canonical roles.
// It is immutable after construction and safe for concurrent use.
type RoleNormalizer struct {
	aliases map[string]Role
}

// NewRoleNormalizer builds a normalizer from an alias table. Keys are matched
// case-insensitively after trimming; canonical names are always accepted.
func NewRoleNormalizer(aliases map[string]Role) *RoleNormalizer {
	n := &RoleNormalizer{aliases: make(map[string]Role, len(aliases)+len(Roles))}
	for _, r := range Roles {
		n.aliases[r.String()] = r
	}
	for label, r := range aliases {
		if r.Valid() {
			n.aliases[strings.ToLower(strings.TrimSpace(label))] = r
		}
	}
	return n
}

// Normalize resolves a raw label. Unrecognized labels return ErrUnknownRole.
func (n *RoleNormalizer) Normalize(raw string) (Role, error) {
	label := strings.ToLower(strings.TrimSpace(raw))
	if r, ok := n.aliases[label]; ok {
		return r, nil
	}
	return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, raw)
}
