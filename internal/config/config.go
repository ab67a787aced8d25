// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - Nested sections map to dotted koanf keys (dataset.path, http.rate_limit_rps).
// - Errors wrap ErrInvalidConfig or ErrLoadConfig so callers can use errors.Is.
package config

import (
	"time"

	"github.com/okian/bestxi/internal/domain/scoring"
	"github.com/okian/bestxi/internal/domain/selection"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	Dataset Dataset `koanf:"dataset"`
	HTTP    HTTP    `koanf:"http"`

	// Weights and Leadership tune the scoring formulas.
	Weights    scoring.Weights           `koanf:"weights"`
	Leadership scoring.LeadershipWeights `koanf:"leadership"`

	// Quotas is the per-role lineup composition; it must sum to 11.
	Quotas selection.Quotas `koanf:"quotas"`

	// EliteBowlers get the wicket multiplier. Names are matched normalized.
	EliteBowlers []string `koanf:"elite_bowlers"`

	// CaptainPool lists players eligible to lead.
	CaptainPool []string `koanf:"captain_pool"`

	// Venues maps venue names to pitch types (neutral, pace, spin).
	// Configured entries are merged over the built-in table.
	Venues map[string]string `koanf:"venues"`

	// RoleAliases adds raw role labels on top of the built-in aliases.
	RoleAliases map[string]string `koanf:"role_aliases"`
}

// Dataset locates the player statistics file.
type Dataset struct {
	Path string `koanf:"path"`

	// Delimiter is auto, tab or comma.
	Delimiter string `koanf:"delimiter"`
}

// HTTP tunes the API server.
type HTTP struct {
	// RateLimitRPS caps GET /best-xi per second across all clients; 0 disables.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
	RequestTimeout     time.Duration `koanf:"request_timeout"`
}

// New creates a Config populated with defaults.
func New() *Config {
	venues := make(map[string]string)
	for name, pitch := range selection.DefaultVenues() {
		venues[name] = string(pitch)
	}

	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Addr:      ":8000",
		Dataset: Dataset{
			Path:      "data/players.tsv",
			Delimiter: "auto",
		},
		HTTP: HTTP{
			RateLimitRPS:       20,
			RateLimitBurst:     40,
			CORSAllowedOrigins: []string{"*"},
			RequestTimeout:     10 * time.Second,
		},
		Weights:      scoring.DefaultWeights(),
		Leadership:   scoring.DefaultLeadershipWeights(),
		Quotas:       selection.DefaultQuotas(),
		EliteBowlers: scoring.DefaultEliteBowlers(),
		CaptainPool:  selection.DefaultCaptainPool(),
		Venues:       venues,
		RoleAliases:  map[string]string{},
	}
}
