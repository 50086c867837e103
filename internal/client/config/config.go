// Package config loads runtime configuration for the parkgate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the gateway (e.g., "http://localhost:8080")
//	-d string   path of the local database file
//	-t int      request timeout in seconds
//
// The JSON loader uses timex.Duration for interval fields, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "gateway_url": "http://localhost:8080",
//	  "database_dsn": "parkgate.db",
//	  "request_timeout": "30s"
//	}
package config

import "time"

// Config holds runtime settings for the parkgate CLI.
//
// Fields:
//   - GatewayURL: base URL of the gateway the client calls through.
//   - DatabaseDSN: path of the local SQLite database holding staged files.
//   - RequestTimeout: per-command timeout applied by the REPL.
type Config struct {
	GatewayURL     string
	DatabaseDSN    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayURL = "http://localhost:8080"
	c.DatabaseDSN = "parkgate.db"
	c.RequestTimeout = 30 * time.Second
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
