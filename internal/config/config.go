// Package config persists user preferences between sessions: the
// packaging flags and icon the form was last used with.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the persisted form state. Paths to source files are
// deliberately not remembered; only the options that tend to stay the
// same from build to build.
type Config struct {
	OneFile  bool   `toml:"one_file"`
	Windowed bool   `toml:"windowed"`
	IconPath string `toml:"icon_path"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{OneFile: true}
}

// Path returns the location of the preferences file under the user's
// configuration directory.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "pyforge", "config.toml"), nil
}

// HistoryPath returns the location of the build-history database.
func HistoryPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "pyforge", "history.db"), nil
}

// Load reads the configuration at path. A missing file yields the
// defaults without error; a malformed file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories
// as needed.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
