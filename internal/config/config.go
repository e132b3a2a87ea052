package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/canopy/internal/sessions"
	"github.com/JaimeStill/canopy/pkg/auth"
	"github.com/JaimeStill/canopy/pkg/database"
	"github.com/JaimeStill/canopy/pkg/metrics"
	"github.com/JaimeStill/canopy/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvCanopyEnv             = "CANOPY_ENV"
	EnvCanopyShutdownTimeout = "CANOPY_SHUTDOWN_TIMEOUT"
	EnvCanopyVersion         = "CANOPY_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "CANOPY_DB_HOST",
	Port:            "CANOPY_DB_PORT",
	Name:            "CANOPY_DB_NAME",
	User:            "CANOPY_DB_USER",
	Password:        "CANOPY_DB_PASSWORD",
	SSLMode:         "CANOPY_DB_SSL_MODE",
	MaxOpenConns:    "CANOPY_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "CANOPY_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "CANOPY_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "CANOPY_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "CANOPY_STORAGE_CONTAINER_NAME",
	ConnectionString: "CANOPY_STORAGE_CONNECTION_STRING",
	ServiceURL:       "CANOPY_STORAGE_SERVICE_URL",
}

var authEnv = &auth.Env{
	Enabled:   "CANOPY_AUTH_ENABLED",
	IssuerURL: "CANOPY_AUTH_ISSUER_URL",
	ClientID:  "CANOPY_AUTH_CLIENT_ID",
}

var metricsEnv = &metrics.Env{
	Enabled: "CANOPY_METRICS_ENABLED",
	Path:    "CANOPY_METRICS_PATH",
}

var sessionsEnv = &sessions.Env{
	LoadConcurrency: "CANOPY_SESSIONS_LOAD_CONCURRENCY",
	MaxDocuments:    "CANOPY_SESSIONS_MAX_DOCUMENTS",
	EventBuffer:     "CANOPY_SESSIONS_EVENT_BUFFER",
}

// Config is the root configuration for the canopy service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Auth            auth.Config     `toml:"auth"`
	Metrics         metrics.Config  `toml:"metrics"`
	Sessions        sessions.Config `toml:"sessions"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the CANOPY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCanopyEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Auth.Merge(&overlay.Auth)
	c.Metrics.Merge(&overlay.Metrics)
	c.Sessions.Merge(&overlay.Sessions)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Metrics.Finalize(metricsEnv); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.Sessions.Finalize(sessionsEnv); err != nil {
		return fmt.Errorf("sessions: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCanopyShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvCanopyVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvCanopyEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
