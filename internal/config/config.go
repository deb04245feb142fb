package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Provider ProviderConfig `toml:"provider"`
	Cache    CacheConfig    `toml:"cache"`
	Airports AirportsConfig `toml:"airports"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	ReadTimeoutSecs    int      `toml:"read_timeout_seconds"`
	WriteTimeoutSecs   int      `toml:"write_timeout_seconds"`
}

// ProviderConfig represents the flight schedule provider configuration.
// Credentials are deliberately absent here: they are read from the
// environment, never from the config file.
type ProviderConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ClientID       string `toml:"-"`
	ClientSecret   string `toml:"-"`
}

// CacheConfig represents the lookup cache configuration
type CacheConfig struct {
	TTLHours int `toml:"ttl_hours"`
}

// AirportsConfig represents the airport reference store configuration
type AirportsConfig struct {
	DBPath   string `toml:"db_path"`
	SeedFile string `toml:"seed_file"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Environment variable names for the provider credentials
const (
	EnvClientID     = "AMADEUS_CLIENT_ID"
	EnvClientSecret = "AMADEUS_CLIENT_SECRET"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeoutSecs:  30,
			WriteTimeoutSecs: 30,
		},
		Provider: ProviderConfig{
			BaseURL:        "https://test.api.amadeus.com",
			TimeoutSeconds: 15,
		},
		Cache: CacheConfig{
			TTLHours: 24,
		},
		Airports: AirportsConfig{
			DBPath:   "data/airports.db",
			SeedFile: "data/airports.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads the configuration from the given TOML file and the environment.
// A missing config file is not an error: defaults apply, and the provider
// credentials come from the environment (optionally via a .env file) either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	// Load .env if present, then pick up the credentials
	_ = godotenv.Load()
	cfg.Provider.ClientID = os.Getenv(EnvClientID)
	cfg.Provider.ClientSecret = os.Getenv(EnvClientSecret)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks configuration invariants that would otherwise surface as
// confusing runtime failures
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider base_url must not be empty")
	}
	if c.Provider.TimeoutSeconds <= 0 {
		return fmt.Errorf("provider timeout_seconds must be positive")
	}
	if c.Cache.TTLHours <= 0 {
		return fmt.Errorf("cache ttl_hours must be positive")
	}
	return nil
}

// CacheTTL returns the cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// ProviderTimeout returns the provider request timeout as a duration
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

// HasCredentials reports whether both provider credentials are present
func (c *ProviderConfig) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
