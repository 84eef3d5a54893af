package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Path returns the file Load read, or the user config file when none was
// found.
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SaveTo writes the config as YAML. The data goes to a temporary file in the
// target directory first, so a failed write leaves an existing file intact.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Update rewrites the file at path with mutate applied to its current
// contents. Values come from defaults and the file only, so CLI flags of the
// running process are not persisted. A missing file starts from defaults.
func Update(path string, mutate func(*Config)) error {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	mutate(cfg)
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config %s: %w", path, err)
	}
	return nil
}
