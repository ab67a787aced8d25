package probe

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/internal/domain/selection"
	"github.com/okian/bestxi/internal/domain/types"
)

// Verify checks the invariants every lineup must hold and returns one reason
// per broken invariant.
func Verify(c Case, lineup []types.LineupEntry, quotas selection.Quotas) []string {
	var reasons []string

	if len(lineup) != selection.LineupSize {
		reasons = append(reasons, fmt.Sprintf("lineup has %d players, want %d", len(lineup), selection.LineupSize))
	}

	roles := make(map[string]int, len(model.Roles))
	seen := make(map[string]bool, len(lineup))
	captains, vices := 0, 0
	for _, p := range lineup {
		roles[p.Role]++
		key := model.NormalizeKey(p.Player)
		if seen[key] {
			reasons = append(reasons, fmt.Sprintf("player %q picked twice", p.Player))
		}
		seen[key] = true
		if c.Opponent != "" && strings.EqualFold(strings.TrimSpace(p.Country), strings.TrimSpace(c.Opponent)) {
			reasons = append(reasons, fmt.Sprintf("player %q plays for opponent %s", p.Player, c.Opponent))
		}
		if p.IsCaptain {
			captains++
		}
		if p.IsViceCaptain {
			vices++
		}
		if p.IsCaptain && p.IsViceCaptain {
			reasons = append(reasons, fmt.Sprintf("player %q is both captain and vice-captain", p.Player))
		}
	}

	for _, r := range model.Roles {
		if got, want := roles[r.String()], quotas.For(r); got != want {
			reasons = append(reasons, fmt.Sprintf("%d %s picked, want %d", got, r, want))
		}
	}
	if captains != 1 {
		reasons = append(reasons, fmt.Sprintf("%d captains, want 1", captains))
	}
	if vices > 1 {
		reasons = append(reasons, fmt.Sprintf("%d vice-captains, want at most 1", vices))
	}
	if !ordered(lineup) {
		reasons = append(reasons, "lineup is not ordered batsmen first, bowlers last")
	}
	return reasons
}

// ordered reports whether role priority never decreases down the lineup.
func ordered(lineup []types.LineupEntry) bool {
	prev := 0
	for _, p := range lineup {
		r, err := model.ParseRole(p.Role)
		if err != nil {
			return false
		}
		if r.Priority() < prev {
			return false
		}
		prev = r.Priority()
	}
	return true
}

// sameLineup reports whether two answers for the same case are identical.
func sameLineup(a, b []types.LineupEntry) bool {
	return reflect.DeepEqual(a, b)
}
