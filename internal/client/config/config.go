// Package config handles configuration for the field-force client,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: base URL of the backend HTTP API.
//   - DatabaseDSN: path/DSN of the local SQLite database.
//   - HTTPTimeout: per-request timeout for remote calls.
type Config struct {
	APIBaseURL  string
	DatabaseDSN string
	HTTPTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "fieldforce.db"
	c.HTTPTimeout = 12 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
