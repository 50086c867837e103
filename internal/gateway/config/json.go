package config

import (
	"encoding/json"
	"os"

	"github.com/mpavlovs/parkgate/internal/flagx"
	"github.com/mpavlovs/parkgate/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5s" and integer nanoseconds.
type JsonConfig struct {
	Addr             string         `json:"addr"`
	BackendAPIURL    string         `json:"backend_api_url"`
	CORSAllowOrigins []string       `json:"cors_allow_origins"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. An unreadable or
// invalid file panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.BackendAPIURL != "" {
		config.BackendAPIURL = c.BackendAPIURL
	}
	if c.CORSAllowOrigins != nil {
		config.CORSAllowOrigins = c.CORSAllowOrigins
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
