package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scheduler"
)

// EngineConfig holds the defaults a scenario file can override.
type EngineConfig struct {
	MTT      model.Minute `json:"mtt"`
	MaxDelay model.Minute `json:"max_delay"`
	// CheckInvariants runs the full invariant check after every mutation.
	CheckInvariants bool `json:"check_invariants"`
}

func (c *EngineConfig) SetDefaults() {
	if c.MTT == 0 {
		c.MTT = scheduler.DefaultMTT
	}
	if c.MaxDelay == 0 {
		c.MaxDelay = scheduler.DefaultMaxDelay
	}
}

func (c EngineConfig) Validate() error {
	if c.MTT < 0 {
		return fmt.Errorf("negative mtt %d", c.MTT)
	}
	if c.MaxDelay < 0 {
		return fmt.Errorf("negative max_delay %d", c.MaxDelay)
	}
	return nil
}

// Options converts the section into engine options.
func (c EngineConfig) Options() scheduler.Options {
	return scheduler.Options{MTT: c.MTT, MaxDelay: c.MaxDelay}
}

// ScenarioConfig points at the scenario loaded on startup.
type ScenarioConfig struct {
	Path string `json:"path"`
}

type LogConfig struct {
	Level string `json:"level"`
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid level %q", c.Level)
	}
	return nil
}
