package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.NotEmpty(t, cfg.Storage.DSN)
	assert.Equal(t, "fitdump:", cfg.Storage.Prefix)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 24*time.Hour, cfg.DevServer.TokenTTL)
}

func TestLoad_FileInWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	yaml := `
api:
  base_url: https://fitness.example.com/api/
  timeout: 5s
storage:
  driver: redis
  redis:
    addr: cache:6379
    db: 2
log:
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fitdump.yaml"), []byte(yaml), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://fitness.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FITDUMP_API_BASE_URL", "http://10.0.0.5:9000")
	t.Setenv("FITDUMP_STORAGE_DRIVER", "memory")
	t.Setenv("FITDUMP_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:9000", cfg.API.BaseURL)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return Config{
			API:       APIConfig{BaseURL: "http://localhost:8080/api", Timeout: time.Second},
			Storage:   StorageConfig{Driver: DriverSQLite, DSN: "x.db"},
			Log:       LogConfig{Level: "info", Format: "console"},
			DevServer: DevServerConfig{TokenTTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"relative url", func(c *Config) { c.API.BaseURL = "/api" }, "api.base_url must be an absolute URL"},
		{"ftp url", func(c *Config) { c.API.BaseURL = "ftp://host/api" }, "http or https"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "storage.driver"},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = DriverPostgres; c.Storage.DSN = "" }, "storage.dsn"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"token ttl", func(c *Config) { c.DevServer.TokenTTL = 0 }, "devserver.token_ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
