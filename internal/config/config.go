// Package config handles loading and parsing the application's configuration.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the application.
// We use struct tags to explicitly map TOML keys to struct fields.
type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Shards      int    `toml:"shards"`        // Number of store shards; must be a power of two
	MaxInFlight int    `toml:"max_in_flight"` // Concurrent request cap; 0 disables the limiter
	LogLevel    string `toml:"log_level"`     // debug, info, warn or error
}

// New returns a new Config with default values.
func New() *Config {
	return &Config{
		Host:        "localhost",
		Port:        8080,
		Shards:      32,
		MaxInFlight: 0,
		LogLevel:    "info",
	}
}

// Load reads a configuration file from the given path and populates the
// Config struct, then validates it.
func (c *Config) Load(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Shards < 1 || c.Shards&(c.Shards-1) != 0 {
		return fmt.Errorf("shards must be a power of two, got %d", c.Shards)
	}
	if c.MaxInFlight < 0 {
		return fmt.Errorf("max_in_flight cannot be negative, got %d", c.MaxInFlight)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}

// Addr returns the host:port address the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
