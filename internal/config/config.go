// Package config loads tada's TOML configuration and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Makepad-fr/tada/internal/model"
)

const AppName = "tada"

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config represents ~/.config/tada/config.toml.
type Config struct {
	// Backend selects the store: "json" (default) or "sqlite".
	Backend string `toml:"backend"`
	// DataDir holds the store. Empty means the current working directory.
	DataDir string `toml:"data_dir"`
	// Theme is used when no theme has been saved yet.
	Theme string `toml:"theme"`
	// LogFile receives diagnostics. Empty means tada.log in the config dir.
	LogFile string `toml:"log_file"`
}

// Dir returns ~/.config/tada.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPath returns the config file path used when none is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads path (or DefaultPath when empty) and applies TADA_* environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("TADA_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := os.LookupEnv("TADA_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := os.LookupEnv("TADA_LOG_FILE"); ok {
		cfg.LogFile = v
	}
}

func (c *Config) normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendJSON
	}
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogFile = strings.TrimSpace(c.LogFile)
}

// Override applies a non-empty flag value on top of the loaded config.
func (c *Config) Override(backend, dataDir string) error {
	if backend != "" {
		c.Backend = backend
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	c.normalize()
	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want json or sqlite)", c.Backend)
	}
	if c.Theme != "" {
		if _, err := model.ParseTheme(c.Theme); err != nil {
			return fmt.Errorf("config theme: %w", err)
		}
	}
	return nil
}

// LogPath resolves where diagnostics go.
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName+".log"), nil
}
