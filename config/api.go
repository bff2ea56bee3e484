package config

import "fmt"

// APIConfig holds settings for the HTTP API served by `tower serve`.
type APIConfig struct {
	Listen string `json:"listen"`
	// Token, when set, is required as a bearer token on every /api route.
	Token string `json:"token"`
	// RateLimit is the sustained number of mutations per second.
	RateLimit      float64  `json:"rate_limit"`
	Burst          int      `json:"burst"`
	AllowedOrigins []string `json:"allowed_origins"`
}

func (c *APIConfig) SetDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

func (c APIConfig) Validate() error {
	if c.RateLimit < 0 {
		return fmt.Errorf("negative rate_limit %v", c.RateLimit)
	}
	if c.Burst < 0 {
		return fmt.Errorf("negative burst %d", c.Burst)
	}
	return nil
}

// Limit returns the mutation rate, 10 per second when unset.
func (c APIConfig) Limit() float64 {
	if c.RateLimit <= 0 {
		return 10
	}
	return c.RateLimit
}

// BurstSize returns the limiter burst, 20 when unset.
func (c APIConfig) BurstSize() int {
	if c.Burst <= 0 {
		return 20
	}
	return c.Burst
}
