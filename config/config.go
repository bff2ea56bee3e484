package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/tower/core/factory"
	"github.com/kilianp07/tower/core/metrics"
	"github.com/kilianp07/tower/core/scenario"
	"github.com/kilianp07/tower/infra/blob"
	"github.com/kilianp07/tower/infra/monitoring"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: TOWER_ENGINE__MTT=45 sets engine.mtt.
const EnvPrefix = "TOWER_"

type Config struct {
	Engine    EngineConfig           `json:"engine"`
	Scenario  ScenarioConfig         `json:"scenario"`
	Log       LogConfig              `json:"log"`
	Journal   JournalConfig          `json:"journal"`
	Metrics   metrics.Config         `json:"metrics"`
	Feeds     []factory.ModuleConfig `json:"feeds"`
	API       APIConfig              `json:"api"`
	Export    blob.Config            `json:"export"`
	Generator scenario.GenConfig     `json:"generator"`
	Sentry    monitoring.Config      `json:"sentry"`
}

// Load reads the file at path, applies environment overrides, defaults and
// validation. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptional behaves like Load but falls back to defaults when the file
// does not exist.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	return Load(path)
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Engine.SetDefaults()
	c.Log.SetDefaults()
	c.Journal.SetDefaults()
	c.API.SetDefaults()
	c.Generator.SetDefaults()
}

func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Journal.Validate(); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if c.Sentry.TracesSampleRate < 0 || c.Sentry.TracesSampleRate > 1 {
		return fmt.Errorf("sentry: traces_sample_rate %v outside [0,1]", c.Sentry.TracesSampleRate)
	}
	for i, s := range c.Metrics.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics: sink %d has no type", i)
		}
	}
	for i, f := range c.Feeds {
		if f.Type == "" {
			return fmt.Errorf("feeds: feed %d has no type", i)
		}
	}
	return nil
}
