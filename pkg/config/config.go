// Package config stores the per-user configuration record as a flat JSON
// file at the platform config dir ("~/.config/pypack/config.json" on Linux).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

type Config struct {
	// Theme and Language are part of the stored file format; nothing in
	// the CLI renders with them, but they round-trip so that other
	// frontends sharing the file keep their settings.
	Theme           string `json:"theme"`
	Language        string `json:"language"`
	CheckForUpdates bool   `json:"check_for_updates"`
	// PythonPath overrides which interpreter the tool drives; empty means
	// find python3/python on $PATH.
	PythonPath string `json:"python_path"`
}

func Default() Config {
	return Config{
		Theme:           "system",
		Language:        "en",
		CheckForUpdates: true,
		PythonPath:      "",
	}
}

// Dir returns the directory holding config.json and repositories.json,
// creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "pypack")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, applying defaults for anything unset.  A
// missing file is not an error; you get the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	cfg := Default()
	bs, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(bs, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the file atomically: temp file in the same directory, then
// rename over the target.
func (cfg *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return cfg.SaveFile(path)
}

func (cfg *Config) SaveFile(path string) error {
	bs, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, append(bs, '\n'), 0o644)
}

// WriteFileAtomic is os.WriteFile with a same-directory temp file and a
// rename, so that readers never observe a partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) // no-op after a successful rename
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

var ErrUnknownKey = errors.New("unknown configuration key")

// Keys returns the settable key names, sorted.
func Keys() []string {
	keys := []string{"theme", "language", "check_for_updates", "python_path"}
	sort.Strings(keys)
	return keys
}

// Get returns a key's value rendered as a string.
func (cfg *Config) Get(key string) (string, error) {
	switch key {
	case "theme":
		return cfg.Theme, nil
	case "language":
		return cfg.Language, nil
	case "check_for_updates":
		return strconv.FormatBool(cfg.CheckForUpdates), nil
	case "python_path":
		return cfg.PythonPath, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

// Set parses and assigns a key's value from a string.
func (cfg *Config) Set(key, value string) error {
	switch key {
	case "theme":
		switch value {
		case "system", "light", "dark":
			cfg.Theme = value
		default:
			return fmt.Errorf("config: theme must be one of system, light, dark; got %q", value)
		}
	case "language":
		if value == "" {
			return fmt.Errorf("config: language must not be empty")
		}
		cfg.Language = value
	case "check_for_updates":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: check_for_updates: %w", err)
		}
		cfg.CheckForUpdates = b
	case "python_path":
		cfg.PythonPath = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}
