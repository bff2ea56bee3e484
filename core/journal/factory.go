package journal

import (
	"errors"

	"github.com/kilianp07/tower/core/factory"
)

var storeRegistry = factory.NewRegistry[Store]()

// RegisterStore adds a store factory identified by name.
func RegisterStore(name string, f factory.Factory[Store]) error {
	return storeRegistry.Register(name, f)
}

// NewStore creates a Store from its configuration. An empty type yields a
// memory store.
func NewStore(cfg factory.ModuleConfig) (Store, error) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}
	return storeRegistry.Create(cfg)
}

type pathConf struct {
	Path string `json:"path"`
}

func init() {
	storeRegistry.MustRegister("memory", func(conf map[string]any) (Store, error) {
		var c struct {
			Capacity int `json:"capacity"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewMemoryStore(c.Capacity), nil
	})
	storeRegistry.MustRegister("jsonl", func(conf map[string]any) (Store, error) {
		var c pathConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, errors.New("jsonl journal: path is required")
		}
		return NewJSONLStore(c.Path)
	})
	storeRegistry.MustRegister("rotating", func(conf map[string]any) (Store, error) {
		c := struct {
			Path       string `json:"path"`
			MaxSizeMB  int    `json:"max_size_mb"`
			MaxBackups int    `json:"max_backups"`
			MaxAgeDays int    `json:"max_age_days"`
		}{MaxSizeMB: 10, MaxBackups: 5, MaxAgeDays: 30}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, errors.New("rotating journal: path is required")
		}
		return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
	})
	storeRegistry.MustRegister("sqlite", func(conf map[string]any) (Store, error) {
		var c pathConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, errors.New("sqlite journal: path is required")
		}
		return NewSQLiteStore(c.Path)
	})
	storeRegistry.MustRegister("postgres", func(conf map[string]any) (Store, error) {
		var c struct {
			DSN string `json:"dsn"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.DSN == "" {
			return nil, errors.New("postgres journal: dsn is required")
		}
		return NewPostgresStore(c.DSN)
	})
}
