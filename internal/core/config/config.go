package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/aevon-lab/rfm-insight/internal/core/rfm"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level application config.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Source  SourceConfig  `koanf:"source"`
	Dataset DatasetConfig `koanf:"dataset"`
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release
}

type SourceConfig struct {
	Type        string `koanf:"type"` // csv | postgres
	Path        string `koanf:"path"` // csv file path
	MappingPath string `koanf:"mapping_path"`

	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type DatasetConfig struct {
	ReloadInterval string         `koanf:"reload_interval"` // empty disables periodic reload
	Fallback       FallbackConfig `koanf:"fallback"`
}

// FallbackConfig is the selectable range per numeric field when the dataset
// is empty, so filter controls never render with an invalid domain.
type FallbackConfig struct {
	RecencyMin   float64 `koanf:"recency_min"`
	RecencyMax   float64 `koanf:"recency_max"`
	FrequencyMin float64 `koanf:"frequency_min"`
	FrequencyMax float64 `koanf:"frequency_max"`
	MonetaryMin  float64 `koanf:"monetary_min"`
	MonetaryMax  float64 `koanf:"monetary_max"`
}

// ToFallback converts the config form into the engine's fallback value.
func (f FallbackConfig) ToFallback() rfm.Fallback {
	return rfm.Fallback{
		Recency:   rfm.Range{Min: f.RecencyMin, Max: f.RecencyMax},
		Frequency: rfm.Range{Min: f.FrequencyMin, Max: f.FrequencyMax},
		Monetary:  rfm.Range{Min: f.MonetaryMin, Max: f.MonetaryMax},
	}
}

// EffectiveReloadInterval returns the parsed reload interval, or zero when
// periodic reload is disabled.
func (d DatasetConfig) EffectiveReloadInterval() (time.Duration, error) {
	if strings.TrimSpace(d.ReloadInterval) == "" {
		return 0, nil
	}
	interval, err := time.ParseDuration(d.ReloadInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid dataset.reload_interval %q: %w", d.ReloadInterval, err)
	}
	return interval, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Source.Type {
	case "csv":
		if strings.TrimSpace(c.Source.Path) == "" {
			return fmt.Errorf("source.path is required for csv source")
		}
	case "postgres":
		if strings.TrimSpace(c.Source.DSN) == "" {
			return fmt.Errorf("source.dsn is required for postgres source")
		}
		if c.Source.MaxOpenConns <= 0 {
			return fmt.Errorf("source.max_open_conns must be > 0")
		}
		if c.Source.MaxIdleConns <= 0 {
			return fmt.Errorf("source.max_idle_conns must be > 0")
		}
	default:
		return fmt.Errorf("unsupported source.type %q (must be csv or postgres)", c.Source.Type)
	}

	interval, err := c.Dataset.EffectiveReloadInterval()
	if err != nil {
		return err
	}
	if c.Dataset.ReloadInterval != "" && interval <= 0 {
		return fmt.Errorf("dataset.reload_interval must be > 0")
	}

	fb := c.Dataset.Fallback
	if fb.RecencyMin > fb.RecencyMax {
		return fmt.Errorf("dataset.fallback recency range is inverted")
	}
	if fb.FrequencyMin > fb.FrequencyMax {
		return fmt.Errorf("dataset.fallback frequency range is inverted")
	}
	if fb.MonetaryMin > fb.MonetaryMax {
		return fmt.Errorf("dataset.fallback monetary range is inverted")
	}

	return nil
}

// Load parses config from file + env and validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                    8080,
		"server.host":                    "0.0.0.0",
		"server.mode":                    "release",
		"source.type":                    "csv",
		"source.path":                    "rfm_finalone.csv",
		"source.mapping_path":            "",
		"source.dsn":                     "",
		"source.max_open_conns":          25,
		"source.max_idle_conns":          25,
		"source.auto_migrate":            true,
		"dataset.reload_interval":        "",
		"dataset.fallback.recency_min":   0.0,
		"dataset.fallback.recency_max":   100.0,
		"dataset.fallback.frequency_min": 0.0,
		"dataset.fallback.frequency_max": 10.0,
		"dataset.fallback.monetary_min":  0.0,
		"dataset.fallback.monetary_max":  1000.0,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("RFM_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "RFM_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
