package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/kbaines/pounce/internal/perr"
)

// DefaultPath returns the conventional config location,
// $XDG_CONFIG_HOME/pounce/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", perr.Wrap(perr.CodeInvalidConfig, "resolve config dir", err)
	}
	return filepath.Join(dir, "pounce", "config.toml"), nil
}

// Load reads and validates the file at path. A missing file is not an
// error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, perr.Wrap(perr.CodeInvalidConfig, "read config", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, perr.Wrap(perr.CodeInvalidConfig, "parse config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
