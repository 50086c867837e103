package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.Addr, ":8080")
	assert.Equal(t, c.BackendAPIURL, "")
	assert.Nil(t, c.CORSAllowOrigins)
	assert.Equal(t, c.ShutdownTimeout, 5*time.Second)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("GATEWAY_ADDRESS", ":9090")
	t.Setenv("BACKEND_API_URL", "https://api.parking.example")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":9090", c.Addr)
	assert.Equal(t, "https://api.parking.example", c.BackendAPIURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSAllowOrigins)
}

func TestParseEnv_EmptyKeepsDefaults(t *testing.T) {
	t.Setenv("GATEWAY_ADDRESS", "")
	t.Setenv("BACKEND_API_URL", "")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "", c.BackendAPIURL)
}
