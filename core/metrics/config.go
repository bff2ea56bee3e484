package metrics

import "github.com/kilianp07/tower/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks" koanf:"sinks"`
	// Listen is the address of the standalone /metrics endpoint used when
	// the HTTP API is disabled. Empty disables it.
	Listen string `json:"listen" koanf:"listen"`
}
