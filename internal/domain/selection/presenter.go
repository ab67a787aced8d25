package selection

import (
	"math"
	"sort"

	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/internal/domain/scoring"
	"github.com/okian/bestxi/internal/domain/types"
)

// Present orders xi by role priority, then rank, and projects output records.
func Present(xi []model.ScoredPlayer, c Captaincy) []types.LineupEntry {
	ordered := make([]model.ScoredPlayer, len(xi))
	copy(ordered, xi)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i].LineupRole.Priority(), ordered[j].LineupRole.Priority()
		if pi != pj {
			return pi < pj
		}
		return model.Ranks(ordered[i], ordered[j])
	})

	out := make([]types.LineupEntry, len(ordered))
	for i, p := range ordered {
		out[i] = types.LineupEntry{
			Player:         p.Name,
			Role:           p.LineupRole.String(),
			Country:        p.Country,
			Runs:           int(math.Round(p.Runs)),
			StrikeRate:     p.StrikeRate,
			WicketsTaken:   int(math.Round(p.WicketsTaken)),
			BowlingEconomy: p.BowlingEconomy,
			SelectionScore: scoring.Round2(p.SelectionScore),
			IsCaptain:      p.Key == c.Captain,
			IsViceCaptain:  c.ViceCaptain != "" && p.Key == c.ViceCaptain,
		}
	}
	return out
}
