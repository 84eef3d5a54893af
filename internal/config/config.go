// Package config handles viewer configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Data      DataConfig      `yaml:"data"`
	Logging   LoggingConfig   `yaml:"logging"`

	path string // file Load read from
}

// GraphicsConfig holds display and frame pacing settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	TargetFPS  int  `yaml:"target_fps"` // 0 renders every tick
	TargetUPS  int  `yaml:"target_ups"`
}

// RenderConfig holds pipeline settings.
type RenderConfig struct {
	ShadowMapSize  int        `yaml:"shadow_map_size"`
	FXAA           bool       `yaml:"fxaa"`
	BypassLighting bool       `yaml:"bypass_lighting"`
	ClearColor     [4]float32 `yaml:"clear_color"`
}

// CameraConfig holds projection and movement settings.
type CameraConfig struct {
	FOV              float32 `yaml:"fov"` // degrees
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	MoveSpeed        float32 `yaml:"move_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
}

// AnimationConfig holds model import settings for skinned meshes.
type AnimationConfig struct {
	SampleRate  float32 `yaml:"sample_rate"` // baked frames per second
	Interpolate bool    `yaml:"interpolate"` // blend between baked frames
}

// DataConfig holds asset locations.
type DataConfig struct {
	SearchPaths []string `yaml:"search_paths"`
	Scene       string   `yaml:"scene"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			TargetFPS:  60,
			TargetUPS:  30,
		},
		Render: RenderConfig{
			ShadowMapSize:  4096,
			FXAA:           true,
			BypassLighting: false,
			ClearColor:     [4]float32{0, 0, 0, 1},
		},
		Camera: CameraConfig{
			FOV:              60,
			Near:             0.01,
			Far:              1000,
			MoveSpeed:        0.005,
			MouseSensitivity: 0.1,
		},
		Animation: AnimationConfig{
			SampleRate:  30,
			Interpolate: true,
		},
		Data: DataConfig{
			SearchPaths: []string{"resources"},
			Scene:       "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
