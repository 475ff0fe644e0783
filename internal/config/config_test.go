package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "STORE_DRIVER", "DATABASE_URL", "CATALOG_SERVICE_URL", "CATALOG_TIMEOUT", "CATALOG_RATE_LIMIT", "LOG_LEVEL", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "http://localhost:8081", cfg.Catalog.BaseURL)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locatecar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
store:
  driver: memory
catalog:
  base_url: http://catalog.internal:8081
  timeout: 2s
  rate_limit: 5
logging:
  level: debug
`), 0o600))

	clearEnv(t)
	t.Setenv("PORT", "9100")
	t.Setenv("CATALOG_TIMEOUT", "750ms")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "http://catalog.internal:8081", cfg.Catalog.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Catalog.Timeout)
	assert.Equal(t, 5.0, cfg.Catalog.RateLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := Load("")

	assert.ErrorContains(t, err, "invalid PORT")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "port out of range"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mongo" }, "unknown store driver"},
		{"postgres without url", func(c *Config) { c.Store.DatabaseURL = "" }, "database url is required"},
		{"relative catalog url", func(c *Config) { c.Catalog.BaseURL = "catalog:8081" }, "invalid catalog base url"},
		{"zero timeout", func(c *Config) { c.Catalog.Timeout = 0 }, "timeout must be positive"},
		{"negative rate", func(c *Config) { c.Catalog.RateLimit = -1 }, "rate limit must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}

	cfg := DefaultConfig()
	cfg.Store.Driver = DriverMemory
	cfg.Store.DatabaseURL = ""
	assert.NoError(t, cfg.Validate())
}
