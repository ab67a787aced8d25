package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/bestxi/internal/domain/selection"
)

// Environment conventions.
const (
	EnvPrefix     = "BESTXI_"
	EnvConfigFile = "BESTXI_CONFIG"
)

// sliceKeys are replaced wholesale when set, instead of merged by index.
var sliceKeys = []string{ //nolint:gochecknoglobals // read-only key list
	"elite_bowlers",
	"captain_pool",
	"http.cors_allowed_origins",
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if BESTXI_CONFIG is set
//  3. env (prefix BESTXI_, "__" separates nested keys)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %w", ErrLoadConfig, path, err)
		}
	}

	// BESTXI_DATASET__PATH -> dataset.path, BESTXI_LOG_LEVEL -> log_level.
	// List keys take comma-separated values.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", envValue)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	for _, key := range sliceKeys {
		if k.Exists(key) {
			clearSlice(&cfg, key)
		}
	}

	// Venue names are normalized before merging so "Lord's" overrides "lords".
	venues := k.StringMap("venues")
	k.Delete("venues")

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	for name, pitch := range venues {
		cfg.Venues[selection.NormalizeVenue(name)] = pitch
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if !isSliceKey(key) {
		return key, value
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

func isSliceKey(key string) bool {
	for _, k := range sliceKeys {
		if k == key {
			return true
		}
	}
	return false
}

func envKey(s string) string {
	s = strings.ToLower(s)
	s = strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func clearSlice(cfg *Config, key string) {
	switch key {
	case "elite_bowlers":
		cfg.EliteBowlers = nil
	case "captain_pool":
		cfg.CaptainPool = nil
	case "http.cors_allowed_origins":
		cfg.HTTP.CORSAllowedOrigins = nil
	}
}
