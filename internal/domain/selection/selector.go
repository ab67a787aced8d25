// Package selection turns scored players into a captained best XI.
//
// The stages are pure functions over explicit inputs: FilterOpponent, Select,
// ResolveCaptain and Present. Lookup tables (captain pool, venue map) are
// passed in rather than read from package state.
package selection

import (
	"fmt"
	"sort"

	"github.com/okian/bestxi/internal/domain/model"
)

// LineupSize is the number of players in a lineup.
const LineupSize = 11

// Quotas is the number of players required per role.
type Quotas struct {
	Batsman      int `koanf:"batsman"`
	WicketKeeper int `koanf:"wicketkeeper"`
	AllRounder   int `koanf:"allrounder"`
	Bowler       int `koanf:"bowler"`
}

// DefaultQuotas returns the 5-1-2-3 composition.
func DefaultQuotas() Quotas {
	return Quotas{Batsman: 5, WicketKeeper: 1, AllRounder: 2, Bowler: 3}
}

// For returns the quota of a role.
func (q Quotas) For(r model.Role) int {
	switch r {
	case model.RoleBatsman:
		return q.Batsman
	case model.RoleWicketKeeper:
		return q.WicketKeeper
	case model.RoleAllRounder:
		return q.AllRounder
	case model.RoleBowler:
		return q.Bowler
	default:
		return 0
	}
}

// Total sums all quotas.
func (q Quotas) Total() int {
	return q.Batsman + q.WicketKeeper + q.AllRounder + q.Bowler
}

// Validate checks that quotas are non-negative and fill exactly one lineup.
func (q Quotas) Validate() error {
	for _, r := range model.Roles {
		if q.For(r) < 0 {
			return fmt.Errorf("%w: %s quota is negative", ErrInvalidQuotas, r)
		}
	}
	if q.Total() != LineupSize {
		return fmt.Errorf("%w: quotas sum to %d, want %d", ErrInvalidQuotas, q.Total(), LineupSize)
	}
	return nil
}

// Outcome describes how a lineup was assembled.
type Outcome struct {
	Players          []model.ScoredPlayer
	KeeperPromoted   bool // a batsman was relabeled as wicket-keeper
	Backfilled       int  // players added regardless of role
	DuplicatesPruned int
}

// Select picks exactly LineupSize players from pool under the role quotas.
//
// Each role contributes its top-quota players by rank. When the pool has no
// wicket-keeper, the top-ranked batsman is promoted into the keeper slot for
// this lineup only. Picks are deduplicated by player key; any shortfall is
// backfilled from the best remaining players regardless of role.
func Select(pool []model.ScoredPlayer, quotas Quotas) (Outcome, error) {
	if err := quotas.Validate(); err != nil {
		return Outcome{}, err
	}
	if distinct := countDistinct(pool); distinct < LineupSize {
		return Outcome{}, fmt.Errorf("%w: %d distinct players available, need %d",
			ErrInsufficientPlayers, distinct, LineupSize)
	}

	ranked := rank(pool)
	byRole := make(map[model.Role][]model.ScoredPlayer, len(model.Roles))
	for _, p := range ranked {
		byRole[p.Role] = append(byRole[p.Role], p)
	}

	var out Outcome
	if len(byRole[model.RoleWicketKeeper]) == 0 && quotas.WicketKeeper > 0 && len(byRole[model.RoleBatsman]) > 0 {
		keeper := byRole[model.RoleBatsman][0]
		keeper.LineupRole = model.RoleWicketKeeper
		keeper.Promoted = true
		byRole[model.RoleWicketKeeper] = []model.ScoredPlayer{keeper}
		byRole[model.RoleBatsman] = byRole[model.RoleBatsman][1:]
		out.KeeperPromoted = true
	}

	picked := make([]model.ScoredPlayer, 0, LineupSize)
	seen := make(map[string]struct{}, LineupSize)
	for _, r := range model.Roles {
		candidates := byRole[r]
		if n := quotas.For(r); len(candidates) > n {
			candidates = candidates[:n]
		}
		for _, p := range candidates {
			if _, dup := seen[p.Key]; dup {
				out.DuplicatesPruned++
				continue
			}
			seen[p.Key] = struct{}{}
			picked = append(picked, p)
		}
	}

	for _, p := range ranked {
		if len(picked) >= LineupSize {
			break
		}
		if _, dup := seen[p.Key]; dup {
			continue
		}
		seen[p.Key] = struct{}{}
		picked = append(picked, p)
		out.Backfilled++
	}

	if len(picked) > LineupSize {
		picked = picked[:LineupSize]
	}
	out.Players = picked
	return out, nil
}

// rank returns a copy of players ordered by model.Ranks.
func rank(players []model.ScoredPlayer) []model.ScoredPlayer {
	out := make([]model.ScoredPlayer, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool { return model.Ranks(out[i], out[j]) })
	return out
}

func countDistinct(players []model.ScoredPlayer) int {
	keys := make(map[string]struct{}, len(players))
	for _, p := range players {
		keys[p.Key] = struct{}{}
	}
	return len(keys)
}
