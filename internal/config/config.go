// Package config resolves server settings from defaults, an optional TOML
// file and the environment, in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Zachkp/neural-portfolio/internal/content"
	"github.com/Zachkp/neural-portfolio/internal/skillgraph"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port         string            `toml:"port"`
	Mode         string            `toml:"mode"` // gin mode: debug, release, test
	ContactEmail string            `toml:"contact_email"`
	CatalogPath  string            `toml:"catalog_path"`
	SessionTTL   time.Duration     `toml:"session_ttl"`
	MaxSessions  int               `toml:"max_sessions"`
	Animation    skillgraph.Timing `toml:"animation"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:         "8080",
		Mode:         "debug",
		ContactEmail: content.OwnerEmail,
		SessionTTL:   10 * time.Minute,
		MaxSessions:  256,
		Animation:    skillgraph.DefaultTiming(),
	}
}

// Load reads PORTFOLIO_CONFIG (if set) and then applies environment
// overrides. The .env file is loaded by the main package.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("PORTFOLIO_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("CONTACT_EMAIL"); v != "" {
		c.ContactEmail = v
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		c.SessionTTL = d
	}
	return nil
}

// Addr is the listen address for gin.
func (c *Config) Addr() string {
	return ":" + c.Port
}
