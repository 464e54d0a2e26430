// Package config loads the client configuration from a JSONC file, so the
// file can carry comments. Environment variables override file values.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	RelayURL       string `json:"relay_url"`
	DefaultProject string `json:"default_project,omitempty"`
	PageSize       int    `json:"page_size,omitempty"`
	DayWidth       int    `json:"day_width,omitempty"`
	DataDir        string `json:"data_dir,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RelayURL: "http://localhost:5000",
		PageSize: 20,
		DayWidth: 4,
	}
}

// DefaultPath returns the config file location: WORKDECK_CONFIG if set,
// else ~/.workdeck/config.jsonc.
func DefaultPath() (string, error) {
	if p := os.Getenv("WORKDECK_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".workdeck", "config.jsonc"), nil
}

// Load reads the config file at path, merges it over the defaults, and
// applies environment overrides. A missing file is not an error; the
// defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// fall through to env overrides
	case err != nil:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	default:
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: invalid JSONC: %w", path, err)
		}
		if err := json.Unmarshal(standardized, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: invalid JSON: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.PageSize < 1 {
		cfg.PageSize = Default().PageSize
	}
	if cfg.DayWidth < 1 {
		cfg.DayWidth = Default().DayWidth
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".workdeck")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WORKDECK_RELAY"); v != "" {
		cfg.RelayURL = v
	}
	if v := os.Getenv("WORKDECK_PROJECT"); v != "" {
		cfg.DefaultProject = v
	}
	if v := os.Getenv("WORKDECK_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
}

const starterConfig = `{
	// Base URL of the workdeck backend relay.
	"relay_url": "http://localhost:5000",

	// Optional: pin the dashboard to a single project id.
	// "default_project": "",

	// Items fetched per page.
	"page_size": 20,

	// Gantt cells per day.
	"day_width": 4
}
`

// WriteStarter writes a commented starter config if none exists yet. The
// write is atomic so a crash never leaves a truncated file behind.
func WriteStarter(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader([]byte(starterConfig))); err != nil {
		return fmt.Errorf("writing starter config: %w", err)
	}
	return nil
}
