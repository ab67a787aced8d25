// Package types contains common types used across the application
package types

// LineupEntry is one player of a presented best XI
type LineupEntry struct {
	Player         string  `json:"player"`
	Role           string  `json:"role"`
	Country        string  `json:"country"`
	Runs           int     `json:"runs"`
	StrikeRate     float64 `json:"strike_rate"`
	WicketsTaken   int     `json:"wickets_taken"`
	BowlingEconomy float64 `json:"bowling_economy"`
	SelectionScore float64 `json:"selection_score"`
	IsCaptain      bool    `json:"is_captain"`
	IsViceCaptain  bool    `json:"is_vice_captain"`
}

// Venue pairs a known venue with the pitch type inferred for it
type Venue struct {
	Venue     string `json:"venue"`
	PitchType string `json:"pitch_type"`
}
