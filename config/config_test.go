package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tower/core/model"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `engine:
  mtt: 40
  max_delay: 120
  check_invariants: true
scenario:
  path: "scenarios/alpha.yaml"
log:
  level: "debug"
journal:
  backend: "rotating"
  path: "/tmp/journal.jsonl"
  max_backups: 2
metrics:
  sinks:
    - type: "nop"
feeds:
  - type: "mqtt"
    conf:
      broker: "tcp://localhost:1883"
api:
  listen: ":9000"
  token: "secret"
export:
  bucket: "exports"
  region: "eu-west-3"
generator:
  airports: 10
  seed: 7
sentry:
  dsn: "https://key@sentry.example.com/1"
  environment: "staging"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"engine.mtt", cfg.Engine.MTT, model.Minute(40)},
		{"engine.max_delay", cfg.Engine.MaxDelay, model.Minute(120)},
		{"engine.check_invariants", cfg.Engine.CheckInvariants, true},
		{"scenario.path", cfg.Scenario.Path, "scenarios/alpha.yaml"},
		{"log.level", cfg.Log.Level, "debug"},
		{"journal.backend", cfg.Journal.Backend, "rotating"},
		{"journal.max_backups", cfg.Journal.MaxBackups, 2},
		{"journal.max_size_mb", cfg.Journal.MaxSizeMB, 10},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"feeds", len(cfg.Feeds) == 1 && cfg.Feeds[0].Type == "mqtt", true},
		{"feed broker", cfg.Feeds[0].Conf["broker"], "tcp://localhost:1883"},
		{"api.listen", cfg.API.Listen, ":9000"},
		{"api.token", cfg.API.Token, "secret"},
		{"export.bucket", cfg.Export.Bucket, "exports"},
		{"generator.airports", cfg.Generator.Airports, 10},
		{"generator.aircraft", cfg.Generator.Aircraft, 500},
		{"generator.seed", cfg.Generator.Seed, int64(7)},
		{"sentry.environment", cfg.Sentry.Environment, "staging"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, model.Minute(30), cfg.Engine.MTT)
	assert.Equal(t, model.Minute(2000), cfg.Engine.MaxDelay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Journal.Backend)
	assert.Equal(t, ":8080", cfg.API.Listen)
	assert.Equal(t, []string{"*"}, cfg.API.AllowedOrigins)
	assert.Equal(t, 10.0, cfg.API.Limit())
	assert.Equal(t, 20, cfg.API.BurstSize())
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.Minute(30), cfg.Engine.MTT)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "config.json", `{"engine": {"mtt": 40}}`)
	t.Setenv("TOWER_ENGINE__MTT", "45")
	t.Setenv("TOWER_ENGINE__MAX_DELAY", "90")
	t.Setenv("TOWER_JOURNAL__BACKEND", "sqlite")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.Minute(45), cfg.Engine.MTT)
	assert.Equal(t, model.Minute(90), cfg.Engine.MaxDelay)
	assert.Equal(t, "sqlite", cfg.Journal.Backend)
	assert.Equal(t, "journal.db", cfg.Journal.Path)
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]struct {
		name string
		data string
	}{
		"format":  {"config.toml", `engine = 1`},
		"backend": {"config.yaml", "journal:\n  backend: \"mongo\"\n"},
		"dsn":     {"config.yaml", "journal:\n  backend: \"postgres\"\n"},
		"level":   {"config.yaml", "log:\n  level: \"loud\"\n"},
		"mtt":     {"config.yaml", "engine:\n  mtt: -5\n"},
		"sink":    {"config.yaml", "metrics:\n  sinks:\n    - conf: {}\n"},
		"sample":  {"config.yaml", "sentry:\n  traces_sample_rate: 2\n"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, c.name, c.data))
			if err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestJournalModule(t *testing.T) {
	c := JournalConfig{Backend: "rotating", Path: "j.jsonl"}
	c.SetDefaults()
	m := c.Module()
	assert.Equal(t, "rotating", m.Type)
	assert.Equal(t, "j.jsonl", m.Conf["path"])
	assert.Equal(t, 5, m.Conf["max_backups"])

	pg := JournalConfig{Backend: "postgres", DSN: "postgres://x"}
	assert.Equal(t, map[string]any{"dsn": "postgres://x"}, pg.Module().Conf)
}

func TestEngineOptions(t *testing.T) {
	c := EngineConfig{MaxDelay: 120}
	c.SetDefaults()
	opts := c.Options()
	assert.Equal(t, model.Minute(30), opts.MTT)
	assert.Equal(t, model.Minute(120), opts.MaxDelay)
}
