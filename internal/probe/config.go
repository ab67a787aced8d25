// Package probe exercises a running selector over HTTP and verifies every
// lineup it returns.
package probe

import (
	"time"

	"github.com/okian/bestxi/internal/domain/selection"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL   string        // Base URL of the service
	Pitches   []string      // Pitch types to request
	Opponents []string      // Opponents to exclude; "" means none
	Venue     string        // Venue sent with every request
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	Quotas    selection.Quotas
	Verbose   bool
}

// DefaultConfig returns a probe over every pitch type and the opponents the
// selector page offers.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8000",
		Pitches:   []string{"pace", "spin", "neutral"},
		Opponents: []string{"", "Pakistan", "India", "Australia", "England", "South Africa"},
		Workers:   defaultWorkers,
		Timeout:   defaultTimeout,
		Quotas:    selection.DefaultQuotas(),
	}
}

// Case is one request the probe sends.
type Case struct {
	Pitch    string
	Opponent string
	Venue    string
}

func (c Case) String() string {
	s := "pitch=" + c.Pitch
	if c.Opponent != "" {
		s += " opponent=" + c.Opponent
	}
	if c.Venue != "" {
		s += " venue=" + c.Venue
	}
	return s
}

// Violation is a broken lineup invariant for one case.
type Violation struct {
	Case   Case
	Reason string
}

// Report holds run statistics.
type Report struct {
	Cases      int
	Passed     int
	Failed     int
	Violations []Violation
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
