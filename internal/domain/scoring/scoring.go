// Package scoring computes selection and leadership scores from player statistics.
package scoring

import (
	"math"

	"github.com/okian/bestxi/internal/domain/model"
)

// Weights parameterizes the selection score. The formula is linear:
//
//	batting = runs*Runs + battingAverage*BattingAverage + strikeRate*StrikeRate
//	bowling = wickets*Wickets + max(0, EconomyBaseline-economy)*Economy
//	spin pitch: + wickets*SpinWicketBonus
//	pace pitch: + strikeRate*PaceStrikeRateBonus
//
// wickets is scaled by EliteWicketMultiplier for declared elite bowlers. An
// economy of 0, as loaded for players who never bowled, earns the full credit.
type Weights struct {
	Runs                  float64 `koanf:"runs"`
	BattingAverage        float64 `koanf:"batting_average"`
	StrikeRate            float64 `koanf:"strike_rate"`
	Wickets               float64 `koanf:"wickets"`
	EconomyBaseline       float64 `koanf:"economy_baseline"`
	Economy               float64 `koanf:"economy"`
	SpinWicketBonus       float64 `koanf:"spin_wicket_bonus"`
	PaceStrikeRateBonus   float64 `koanf:"pace_strike_rate_bonus"`
	EliteWicketMultiplier float64 `koanf:"elite_wicket_multiplier"`
}

// DefaultWeights returns the canonical selection weights.
func DefaultWeights() Weights {
	return Weights{
		Runs:                  0.02,
		BattingAverage:        1.2,
		StrikeRate:            0.4,
		Wickets:               25,
		EconomyBaseline:       6,
		Economy:               8,
		SpinWicketBonus:       10,
		PaceStrikeRateBonus:   2,
		EliteWicketMultiplier: 1.1,
	}
}

// LeadershipWeights parameterizes the captaincy score, which rewards sustained
// batting experience only.
type LeadershipWeights struct {
	MatchesBatted  float64 `koanf:"matches_batted"`
	BattingAverage float64 `koanf:"batting_average"`
	Runs           float64 `koanf:"runs"`
}

// DefaultLeadershipWeights returns the canonical leadership weights.
func DefaultLeadershipWeights() LeadershipWeights {
	return LeadershipWeights{
		MatchesBatted:  1.5,
		BattingAverage: 2,
		Runs:           0.01,
	}
}

// DefaultEliteBowlers is the declared list of high-impact bowlers whose raw
// wicket counts under-represent them.
func DefaultEliteBowlers() []string {
	return []string{
		"jasprit bumrah",
		"rashid khan",
		"mitchell starc",
		"shaheen shah afridi",
		"trent boult",
		"adam zampa",
		"mohammed shami",
		"kagiso rabada",
	}
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights replaces the selection weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithLeadershipWeights replaces the leadership weights.
func WithLeadershipWeights(w LeadershipWeights) Option {
	return func(s *Scorer) {
		s.leadership = w
	}
}

// WithEliteBowlers sets the elite bowler list. Names are normalized.
func WithEliteBowlers(names []string) Option {
	return func(s *Scorer) {
		s.elite = make(map[string]struct{}, len(names))
		for _, name := range names {
			if key := model.NormalizeKey(name); key != "" {
				s.elite[key] = struct{}{}
			}
		}
	}
}

// Scorer computes scores. It is immutable after construction and safe for
// concurrent use.
type Scorer struct {
	weights    Weights
	leadership LeadershipWeights
	elite      map[string]struct{}
}

// New creates a scorer with the canonical weights and elite list.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		weights:    DefaultWeights(),
		leadership: DefaultLeadershipWeights(),
	}
	WithEliteBowlers(DefaultEliteBowlers())(s)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsElite reports whether the player is on the elite bowler list.
func (s *Scorer) IsElite(p model.PlayerRecord) bool {
	_, ok := s.elite[p.Key]
	return ok
}

// Score returns the selection score of p for the given pitch.
func (s *Scorer) Score(p model.PlayerRecord, pitch model.PitchType) float64 {
	w := s.weights
	wickets := p.WicketsTaken
	if s.IsElite(p) && w.EliteWicketMultiplier > 0 {
		wickets *= w.EliteWicketMultiplier
	}

	batting := p.Runs*w.Runs + p.BattingAverage*w.BattingAverage + p.StrikeRate*w.StrikeRate
	bowling := wickets*w.Wickets + math.Max(0, w.EconomyBaseline-p.BowlingEconomy)*w.Economy
	score := batting + bowling

	switch pitch {
	case model.PitchSpin:
		score += wickets * w.SpinWicketBonus
	case model.PitchPace:
		score += p.StrikeRate * w.PaceStrikeRateBonus
	}
	return score
}

// ScoreAll scores every player, preserving input order.
func (s *Scorer) ScoreAll(players []model.PlayerRecord, pitch model.PitchType) []model.ScoredPlayer {
	out := make([]model.ScoredPlayer, len(players))
	for i, p := range players {
		out[i] = model.ScoredPlayer{
			PlayerRecord:   p,
			SelectionScore: s.Score(p, pitch),
			LineupRole:     p.Role,
		}
	}
	return out
}

// Leadership returns the captaincy score of p.
func (s *Scorer) Leadership(p model.PlayerRecord) float64 {
	l := s.leadership
	return p.MatchesBatted*l.MatchesBatted + p.BattingAverage*l.BattingAverage + p.Runs*l.Runs
}

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
