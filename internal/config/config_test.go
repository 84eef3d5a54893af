package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.TargetUPS != 30 {
		t.Errorf("expected 30 updates per second, got %d", cfg.Graphics.TargetUPS)
	}

	// Test render defaults
	if !cfg.Render.FXAA {
		t.Error("expected fxaa to be enabled by default")
	}
	if cfg.Render.ShadowMapSize != 4096 {
		t.Errorf("expected shadow map size 4096, got %d", cfg.Render.ShadowMapSize)
	}

	// Test camera defaults
	if cfg.Camera.Near != 0.01 || cfg.Camera.Far != 1000 {
		t.Errorf("expected near/far 0.01/1000, got %f/%f", cfg.Camera.Near, cfg.Camera.Far)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  target_fps: 144

render:
  shadow_map_size: 2048
  fxaa: false
  clear_color: [0.1, 0.2, 0.3, 1.0]

camera:
  fov: 75
  far: 500

animation:
  sample_rate: 24

data:
  search_paths: ["assets", "extra"]
  scene: "scenes/demo.yaml"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.TargetFPS != 144 {
		t.Errorf("expected target fps 144, got %d", cfg.Graphics.TargetFPS)
	}
	if cfg.Graphics.TargetUPS != 30 {
		t.Errorf("expected target ups to keep default 30, got %d", cfg.Graphics.TargetUPS)
	}
	if cfg.Render.FXAA {
		t.Error("expected fxaa to be false")
	}
	if cfg.Render.ClearColor[2] != 0.3 {
		t.Errorf("expected clear color blue 0.3, got %f", cfg.Render.ClearColor[2])
	}
	if cfg.Camera.FOV != 75 || cfg.Camera.Far != 500 {
		t.Errorf("expected fov 75 far 500, got %f %f", cfg.Camera.FOV, cfg.Camera.Far)
	}
	if cfg.Camera.Near != 0.01 {
		t.Errorf("expected near to keep default, got %f", cfg.Camera.Near)
	}
	if cfg.Animation.SampleRate != 24 {
		t.Errorf("expected sample rate 24, got %f", cfg.Animation.SampleRate)
	}
	if len(cfg.Data.SearchPaths) != 2 || cfg.Data.SearchPaths[1] != "extra" {
		t.Errorf("unexpected search paths %v", cfg.Data.SearchPaths)
	}
	if cfg.Data.Scene != "scenes/demo.yaml" {
		t.Errorf("expected scene path, got %s", cfg.Data.Scene)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestNormalize(t *testing.T) {
	cfg := Default()
	cfg.Graphics.Height = 0
	cfg.Graphics.TargetUPS = -1
	cfg.Camera.Near = 10
	cfg.Camera.Far = 5
	cfg.Camera.FOV = 200
	cfg.Animation.SampleRate = 0

	cfg.normalize()

	def := Default()
	if cfg.Graphics.Width != def.Graphics.Width || cfg.Graphics.Height != def.Graphics.Height {
		t.Errorf("expected default window size, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.TargetUPS != def.Graphics.TargetUPS {
		t.Errorf("expected default ups, got %d", cfg.Graphics.TargetUPS)
	}
	if cfg.Camera.Near != def.Camera.Near || cfg.Camera.Far != def.Camera.Far {
		t.Errorf("expected default clip planes, got %f/%f", cfg.Camera.Near, cfg.Camera.Far)
	}
	if cfg.Camera.FOV != def.Camera.FOV {
		t.Errorf("expected default fov, got %f", cfg.Camera.FOV)
	}
	if cfg.Animation.SampleRate != def.Animation.SampleRate {
		t.Errorf("expected default sample rate, got %f", cfg.Animation.SampleRate)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "scene flag",
			setup: func() { *flagScene = "demo.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.Scene != "demo.yaml" {
					t.Errorf("expected scene demo.yaml, got %s", cfg.Data.Scene)
				}
			},
			teardown: func() { *flagScene = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "no-fxaa flag",
			setup: func() { *flagNoFXAA = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.FXAA {
					t.Error("expected fxaa disabled with no-fxaa flag")
				}
			},
			teardown: func() { *flagNoFXAA = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width comes from the flag, height from the file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Camera.FOV = 90
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Camera.FOV != 90 {
		t.Errorf("expected fov 90 after reload, got %f", loaded.Camera.FOV)
	}
}

func TestSaveToReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("graphics:\n  width: 640\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Graphics.Width = 800
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatal(err)
	}
	if loaded.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", loaded.Graphics.Width)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the config file, found %d entries", len(entries))
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "keeps file values",
			file: "graphics:\n  width: 1920\nlogging:\n  level: warn\n",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 1920 || cfg.Logging.Level != "warn" {
					t.Errorf("file values lost: width %d level %s", cfg.Graphics.Width, cfg.Logging.Level)
				}
			},
		},
		{
			name: "missing file starts from defaults",
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 1280 {
					t.Errorf("expected default width, got %d", cfg.Graphics.Width)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.file != "" {
				if err := os.WriteFile(path, []byte(tt.file), 0644); err != nil {
					t.Fatal(err)
				}
			}

			*flagDebug = true
			defer func() { *flagDebug = false }()

			err := Update(path, func(c *Config) {
				c.Render.FXAA = false
				c.Animation.Interpolate = false
			})
			if err != nil {
				t.Fatalf("Update failed: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, path); err != nil {
				t.Fatal(err)
			}
			if cfg.Render.FXAA || cfg.Animation.Interpolate {
				t.Error("mutation was not persisted")
			}
			if cfg.Logging.Level == "debug" {
				t.Error("flag override leaked into the saved file")
			}
			tt.verify(t, cfg)
		})
	}
}

func TestUpdateRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("graphics: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Update(path, func(*Config) {}); err == nil {
		t.Error("expected error for unparsable config")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "graphics: [\n" {
		t.Error("broken config was overwritten")
	}
}

func TestPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  fxaa: false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Path() != configPath {
		t.Errorf("expected path %s, got %s", configPath, cfg.Path())
	}

	if got, want := Default().Path(), filepath.Join(ConfigDir(), "config.yaml"); got != want {
		t.Errorf("expected fallback %s, got %s", want, got)
	}
}
