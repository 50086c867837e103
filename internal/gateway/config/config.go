// Package config handles configuration for the gateway component,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the parkgate gateway.
//
// Fields:
//   - Addr: bind address for the public HTTP endpoint.
//   - BackendAPIURL: base URL of the real parking backend the proxy forwards
//     to. Without it the gateway starts but every proxied call fails.
//   - CORSAllowOrigins: origins allowed by the CORS policy; empty allows all.
//   - ShutdownTimeout: grace period for draining connections on shutdown.
type Config struct {
	Addr             string
	BackendAPIURL    string
	CORSAllowOrigins []string
	ShutdownTimeout  time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.BackendAPIURL = ""
	c.CORSAllowOrigins = nil
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
