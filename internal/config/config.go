package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the fitdump configuration
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	DevServer DevServerConfig `mapstructure:"devserver"`
}

// APIConfig points the client at a FitnessDump backend
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig selects where the session and saved foods are kept
type StorageConfig struct {
	Driver string      `mapstructure:"driver"`
	DSN    string      `mapstructure:"dsn"`
	Prefix string      `mapstructure:"prefix"`
	Redis  RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DevServerConfig configures the local API stand-in
type DevServerConfig struct {
	Addr     string        `mapstructure:"addr"`
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Load reads fitdump.yaml from the working directory or
// $HOME/.config/fitdump, then applies FITDUMP_* environment overrides.
// A non-empty file argument is read instead of searching.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.dsn", defaultDSN())
	v.SetDefault("storage.prefix", "fitdump:")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("devserver.addr", "localhost:8080")
	v.SetDefault("devserver.secret", "fitdump-dev-secret")
	v.SetDefault("devserver.token_ttl", 24*time.Hour)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("fitdump")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "fitdump"))
		}
	}

	v.SetEnvPrefix("FITDUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaultDSN() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "fitdump.db"
	}
	return filepath.Join(dir, "fitdump", "fitdump.db")
}

func validateConfig(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got: %q", cfg.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got: %s", u.Scheme)
	}
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got: %s", cfg.API.Timeout)
	}

	switch cfg.Storage.Driver {
	case DriverMemory, DriverRedis:
	case DriverSQLite, DriverPostgres:
		if cfg.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s driver", cfg.Storage.Driver)
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory, sqlite, postgres, redis, got: %q", cfg.Storage.Driver)
	}

	switch cfg.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got: %q", cfg.Log.Format)
	}

	if cfg.DevServer.TokenTTL <= 0 {
		return fmt.Errorf("devserver.token_ttl must be positive, got: %s", cfg.DevServer.TokenTTL)
	}

	return nil
}
