// Package model contains domain models passed between layers.
package model

import "strings"

// PlayerRecord is one row of the player statistics table after loading.
// Numeric fields are always finite and non-negative.
type PlayerRecord struct {
	Name    string // display name as it appears in the source
	Key     string // normalized identity, see NormalizeKey
	Country string
	Role    Role
	RawRole string // label before normalization

	Runs           float64
	BattingAverage float64
	StrikeRate     float64
	WicketsTaken   float64
	BowlingEconomy float64
	MatchesBatted  float64

	Index int // 0-based position among accepted rows; stable tie-break
}

// ScoredPlayer is a PlayerRecord ranked for one request.
type ScoredPlayer struct {
	PlayerRecord
	SelectionScore float64

	// LineupRole is the role played in this lineup. It equals Role unless the
	// player was promoted to wicket-keeper.
	LineupRole Role
	Promoted   bool
}

// NormalizeKey lower-cases, trims and collapses internal whitespace.
func NormalizeKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Ranks reports whether a should be ordered before b: higher score first,
// then earlier source row.
func Ranks(a, b ScoredPlayer) bool {
	if a.SelectionScore != b.SelectionScore {
		return a.SelectionScore > b.SelectionScore
	}
	return a.Index < b.Index
}
