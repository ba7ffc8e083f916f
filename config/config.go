// Package config loads the small amount of runtime tuning the key
// encoder and cell rebuilder need: row-cache capacity and log verbosity.
// It is not a general CLI/config system — just enough to avoid
// hardcoding the two knobs a deployer would plausibly want to change.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the on-disk settings shape, loaded with plain encoding/json
// rather than a config framework, since the two knobs here don't warrant
// one.
type Config struct {
	// RowCacheCapacity overrides cellgrid's default max(80, rows*10) row
	// cache size. Zero means "use the default".
	RowCacheCapacity int `json:"row_cache_capacity"`

	// LogVerbose enables cellgrid's log lines for glyph and underline-sprite
	// atlas lookup failures; with it off, those failures skip the cell
	// without logging.
	LogVerbose bool `json:"log_verbose"`
}

// Default returns the zero-tuning configuration.
func Default() Config {
	return Config{}
}

// Load reads and parses a Config from path. A missing file is not an
// error; it returns Default() so callers can always just call Load and
// proceed.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
