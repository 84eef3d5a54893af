package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		cfg.path = configPath
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)
	cfg.normalize()

	return cfg, nil
}

// normalize replaces values the engine cannot run with by their defaults.
func (c *Config) normalize() {
	def := Default()
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		c.Graphics.Width, c.Graphics.Height = def.Graphics.Width, def.Graphics.Height
	}
	if c.Graphics.TargetUPS <= 0 {
		c.Graphics.TargetUPS = def.Graphics.TargetUPS
	}
	if c.Render.ShadowMapSize <= 0 {
		c.Render.ShadowMapSize = def.Render.ShadowMapSize
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		c.Camera.Near, c.Camera.Far = def.Camera.Near, def.Camera.Far
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		c.Camera.FOV = def.Camera.FOV
	}
	if c.Animation.SampleRate <= 0 {
		c.Animation.SampleRate = def.Animation.SampleRate
	}
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Lumen")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Lumen")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "lumen")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "lumen")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
