package selection

import (
	"sort"

	"github.com/okian/bestxi/internal/domain/model"
)

// DefaultCaptainPool lists players with proven international leadership.
func DefaultCaptainPool() []string {
	return []string{
		"rohit sharma",
		"virat kohli",
		"kl rahul",
		"shubman gill",
		"hardik pandya",
		"babar azam",
		"mohammad rizwan",
		"shadab khan",
		"pat cummins",
		"steve smith",
		"david warner",
		"mitchell marsh",
		"jos buttler",
		"ben stokes",
		"joe root",
		"eoin morgan",
		"temba bavuma",
		"aiden markram",
		"quinton de kock",
		"kane williamson",
		"tom latham",
		"shakib al hasan",
		"tamim iqbal",
		"hashmatullah shahidi",
		"kusal mendis",
		"dasun shanaka",
	}
}

// CaptainPool is the allow-list of players eligible to lead, by normalized key.
type CaptainPool struct {
	keys map[string]struct{}
}

// NewCaptainPool normalizes names into a pool.
func NewCaptainPool(names []string) CaptainPool {
	p := CaptainPool{keys: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if key := model.NormalizeKey(name); key != "" {
			p.keys[key] = struct{}{}
		}
	}
	return p
}

// Contains reports whether key is in the pool.
func (p CaptainPool) Contains(key string) bool {
	_, ok := p.keys[key]
	return ok
}

// Len returns the number of pooled players.
func (p CaptainPool) Len() int { return len(p.keys) }

// Captaincy is the leadership outcome for a lineup.
type Captaincy struct {
	Captain     string // player key
	ViceCaptain string // player key, empty when none
	Fallback    bool   // no eligible candidate; top selection score leads
}

// LeadershipFunc scores captaincy suitability.
type LeadershipFunc func(model.PlayerRecord) float64

// ResolveCaptain picks a captain and optional vice-captain from xi.
//
// Eligible players are pool members whose lineup role is not Bowler; they are
// ranked by leadership, then selection score, then source order. With no
// eligible player the highest selection score captains and there is no vice.
func ResolveCaptain(xi []model.ScoredPlayer, pool CaptainPool, leadership LeadershipFunc) Captaincy {
	type candidate struct {
		player     model.ScoredPlayer
		leadership float64
	}

	var eligible []candidate
	for _, p := range xi {
		if p.LineupRole == model.RoleBowler || !pool.Contains(p.Key) {
			continue
		}
		eligible = append(eligible, candidate{player: p, leadership: leadership(p.PlayerRecord)})
	}

	if len(eligible) == 0 {
		if len(xi) == 0 {
			return Captaincy{Fallback: true}
		}
		top := rank(xi)[0]
		return Captaincy{Captain: top.Key, Fallback: true}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.leadership != b.leadership {
			return a.leadership > b.leadership
		}
		return model.Ranks(a.player, b.player)
	})

	c := Captaincy{Captain: eligible[0].player.Key}
	if len(eligible) > 1 {
		c.ViceCaptain = eligible[1].player.Key
	}
	return c
}
