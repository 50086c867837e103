package config

import (
	"encoding/json"
	"os"

	"github.com/mpavlovs/parkgate/internal/flagx"
	"github.com/mpavlovs/parkgate/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	GatewayURL     string         `json:"gateway_url"`
	DatabaseDSN    string         `json:"database_dsn"`
	RequestTimeout timex.Duration `json:"request_timeout"`
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

	if c.GatewayURL != "" {
		config.GatewayURL = c.GatewayURL
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}
