package sessions

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds editing session limits.
type Config struct {
	LoadConcurrency int `toml:"load_concurrency"`
	MaxDocuments    int `toml:"max_documents"`
	EventBuffer     int `toml:"event_buffer"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	LoadConcurrency string
	MaxDocuments    string
	EventBuffer     string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.LoadConcurrency != 0 {
		c.LoadConcurrency = overlay.LoadConcurrency
	}
	if overlay.MaxDocuments != 0 {
		c.MaxDocuments = overlay.MaxDocuments
	}
	if overlay.EventBuffer != 0 {
		c.EventBuffer = overlay.EventBuffer
	}
}

func (c *Config) loadDefaults() {
	if c.LoadConcurrency <= 0 {
		c.LoadConcurrency = 4
	}
	if c.MaxDocuments <= 0 {
		c.MaxDocuments = 64
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = 16
	}
}

func (c *Config) loadEnv(env *Env) {
	setInt := func(name string, dst *int) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setInt(env.LoadConcurrency, &c.LoadConcurrency)
	setInt(env.MaxDocuments, &c.MaxDocuments)
	setInt(env.EventBuffer, &c.EventBuffer)
}

func (c *Config) validate() error {
	if c.LoadConcurrency < 1 {
		return fmt.Errorf("invalid load_concurrency: %d", c.LoadConcurrency)
	}
	if c.MaxDocuments < 1 {
		return fmt.Errorf("invalid max_documents: %d", c.MaxDocuments)
	}
	if c.EventBuffer < 1 {
		return fmt.Errorf("invalid event_buffer: %d", c.EventBuffer)
	}
	return nil
}
