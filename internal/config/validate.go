package config

import (
	"fmt"
	"strings"

	"github.com/okian/bestxi/internal/adapters/repository"
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/pkg/logger"
)

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return invalid("addr", "must not be empty", nil)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log_level", fmt.Sprintf("is unknown: %q", c.LogLevel), nil)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", logger.FormatText, logger.FormatJSON:
	default:
		return invalid("log_format", fmt.Sprintf("is unknown: %q", c.LogFormat), nil)
	}
	if strings.TrimSpace(c.Dataset.Path) == "" {
		return invalid("dataset.path", "must not be empty", nil)
	}
	if _, err := repository.ParseDelimiter(c.Dataset.Delimiter); err != nil {
		return invalid("dataset.delimiter", "is not supported", err)
	}
	if err := c.Quotas.Validate(); err != nil {
		return invalid("quotas", "do not fill a lineup", err)
	}
	if _, err := c.VenuePitches(); err != nil {
		return err
	}
	if _, err := c.RoleAliasTable(); err != nil {
		return err
	}
	if c.HTTP.RateLimitRPS < 0 {
		return invalid("http.rate_limit_rps", "must not be negative", nil)
	}
	if c.HTTP.RateLimitBurst < 0 {
		return invalid("http.rate_limit_burst", "must not be negative", nil)
	}
	if c.HTTP.RequestTimeout < 0 {
		return invalid("http.request_timeout", "must not be negative", nil)
	}
	return nil
}

// VenuePitches parses the venue table.
func (c *Config) VenuePitches() (map[string]model.PitchType, error) {
	out := make(map[string]model.PitchType, len(c.Venues))
	for venue, raw := range c.Venues {
		pitch, ok, err := model.ParsePitchType(raw)
		if err != nil || !ok {
			return nil, invalid("venues."+venue, fmt.Sprintf("has pitch type %q", raw), err)
		}
		out[venue] = pitch
	}
	return out, nil
}

// RoleAliasTable merges configured role aliases over the built-in ones.
func (c *Config) RoleAliasTable() (map[string]model.Role, error) {
	out := model.DefaultRoleAliases()
	for alias, raw := range c.RoleAliases {
		role, err := model.ParseRole(raw)
		if err != nil {
			return nil, invalid("role_aliases."+alias, "is not a role", err)
		}
		out[strings.ToLower(strings.TrimSpace(alias))] = role
	}
	return out, nil
}
