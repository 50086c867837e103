package config

import (
	"os"
	"strings"
)

// parseEnv overlays configuration values from environment variables.
//
// Recognized variables:
//
//	GATEWAY_ADDRESS      bind address (e.g., ":8080")
//	BACKEND_API_URL      base URL of the parking backend
//	CORS_ALLOW_ORIGINS   comma-separated list of allowed origins
func parseEnv(config *Config) {
	if v := os.Getenv("GATEWAY_ADDRESS"); v != "" {
		config.Addr = v
	}
	if v := os.Getenv("BACKEND_API_URL"); v != "" {
		config.BackendAPIURL = v
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		config.CORSAllowOrigins = strings.Split(v, ",")
	}
}
