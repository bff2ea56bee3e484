package config

import (
	"fmt"

	"github.com/kilianp07/tower/core/factory"
)

// JournalConfig defines where disruption records are stored and how the
// file backends rotate.
type JournalConfig struct {
	// Backend selects the store: "memory", "jsonl", "rotating", "sqlite" or "postgres".
	Backend string `json:"backend"`
	// Path is the file location for the jsonl, rotating and sqlite backends.
	Path string `json:"path"`
	// DSN is the connection string for the postgres backend.
	DSN string `json:"dsn"`
	// Capacity bounds the memory backend.
	Capacity   int `json:"capacity"`
	MaxSizeMB  int `json:"max_size_mb"`
	MaxBackups int `json:"max_backups"`
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *JournalConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	switch c.Backend {
	case "jsonl", "rotating":
		if c.Path == "" {
			c.Path = "journal.jsonl"
		}
	case "sqlite":
		if c.Path == "" {
			c.Path = "journal.db"
		}
	}
	if c.Backend == "rotating" {
		if c.MaxSizeMB == 0 {
			c.MaxSizeMB = 10
		}
		if c.MaxBackups == 0 {
			c.MaxBackups = 5
		}
		if c.MaxAgeDays == 0 {
			c.MaxAgeDays = 30
		}
	}
}

// Validate checks mandatory fields.
func (c JournalConfig) Validate() error {
	switch c.Backend {
	case "memory":
		if c.Capacity < 0 {
			return fmt.Errorf("negative capacity %d", c.Capacity)
		}
	case "jsonl", "rotating", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("path is required")
		}
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("dsn is required")
		}
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	return nil
}

// Module converts the section into the store factory configuration.
func (c JournalConfig) Module() factory.ModuleConfig {
	conf := map[string]any{}
	switch c.Backend {
	case "memory":
		conf["capacity"] = c.Capacity
	case "jsonl", "sqlite":
		conf["path"] = c.Path
	case "rotating":
		conf["path"] = c.Path
		conf["max_size_mb"] = c.MaxSizeMB
		conf["max_backups"] = c.MaxBackups
		conf["max_age_days"] = c.MaxAgeDays
	case "postgres":
		conf["dsn"] = c.DSN
	}
	return factory.ModuleConfig{Type: c.Backend, Conf: conf}
}
