// Package config loads runtime settings: defaults, then an optional TOML
// file, then RIVER_* environment variables. Command-line flags are applied
// last by the cli package.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

const EnvPrefix = "RIVER_"

var validate = validator.New()

type Config struct {
	Addr       string `toml:"addr" env:"ADDR" validate:"required"`
	LogLevel   string `toml:"log_level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat  string `toml:"log_format" env:"LOG_FORMAT" validate:"oneof=text json"`
	Variant    string `toml:"variant" env:"VARIANT" validate:"required"`
	Strategy   string `toml:"strategy" env:"STRATEGY" validate:"oneof=bfs dfs"`
	VariantDir string `toml:"variant_dir" env:"VARIANT_DIR"`

	// requests per second per client; 0 disables limiting
	RateLimit float64 `toml:"rate_limit" env:"RATE_LIMIT" validate:"gte=0"`
	RateBurst int     `toml:"rate_burst" env:"RATE_BURST" validate:"gte=1"`

	PlaybackIntervalMS int     `toml:"playback_interval_ms" env:"PLAYBACK_INTERVAL_MS" validate:"gte=10,lte=1000"`
	PlaybackSpeed      float64 `toml:"playback_speed" env:"PLAYBACK_SPEED" validate:"gte=0.5,lte=3"`

	Metrics       bool   `toml:"metrics" env:"METRICS_ENABLED"`
	TraceExporter string `toml:"trace_exporter" env:"TRACE_EXPORTER" validate:"oneof=none stdout"`
}

func Default() Config {
	return Config{
		Addr:               ":8080",
		LogLevel:           "info",
		LogFormat:          "text",
		Variant:            "classic",
		Strategy:           "bfs",
		RateLimit:          20,
		RateBurst:          40,
		PlaybackIntervalMS: 50,
		PlaybackSpeed:      1,
		Metrics:            true,
		TraceExporter:      "none",
	}
}

func (c Config) PlaybackInterval() time.Duration {
	return time.Duration(c.PlaybackIntervalMS) * time.Millisecond
}

// Load layers an optional TOML file and the environment over Default.
// An empty path skips the file; a named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// ParseEnv overrides fields whose RIVER_* variable is set.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
