// Package scenefile reads and writes YAML scene documents.
package scenefile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk description of a scene.
type Document struct {
	Camera    CameraDoc     `yaml:"camera"`
	Models    []ModelDoc    `yaml:"models"`
	Entities  []EntityDoc   `yaml:"entities"`
	Materials []MaterialDoc `yaml:"materials,omitempty"`
	Lights    *LightsDoc    `yaml:"lights,omitempty"` // nil renders unlit
	Fog       *FogDoc       `yaml:"fog,omitempty"`
	SkyBox    *[6]string    `yaml:"skybox,omitempty"` // +X, -X, +Y, -Y, +Z, -Z
}

// CameraDoc places the camera. Angles are in degrees.
type CameraDoc struct {
	Position [3]float32 `yaml:"position,flow"`
	Pitch    float32    `yaml:"pitch"`
	Yaw      float32    `yaml:"yaw"`
}

// ModelDoc registers a model file under an id.
type ModelDoc struct {
	ID       string `yaml:"id"`
	Path     string `yaml:"path"`
	Animated bool   `yaml:"animated,omitempty"`
}

// EntityDoc places one instance of a model.
type EntityDoc struct {
	ID        string        `yaml:"id"`
	Model     string        `yaml:"model"`
	Position  [3]float32    `yaml:"position,flow"`
	Rotation  *RotationDoc  `yaml:"rotation,omitempty"`
	Scale     float32       `yaml:"scale,omitempty"` // 0 means 1
	Animation *AnimationDoc `yaml:"animation,omitempty"`
}

// RotationDoc is an axis and an angle in degrees.
type RotationDoc struct {
	Axis  [3]float32 `yaml:"axis,flow"`
	Angle float32    `yaml:"angle"`
}

// AnimationDoc selects the playback of an animated entity.
type AnimationDoc struct {
	Index       int     `yaml:"index"`
	Speed       float64 `yaml:"speed,omitempty"` // 0 means 1
	Interpolate *bool   `yaml:"interpolate,omitempty"`
}

// MaterialDoc overrides parameters of one imported material. Unset fields
// keep the imported value.
type MaterialDoc struct {
	Model     string      `yaml:"model"`
	Index     int         `yaml:"index"`
	Diffuse   *[4]float32 `yaml:"diffuse,flow,omitempty"`
	Emissive  *[3]float32 `yaml:"emissive,flow,omitempty"`
	Metallic  *float32    `yaml:"metallic,omitempty"`
	Roughness *float32    `yaml:"roughness,omitempty"`
	Texture   string      `yaml:"texture,omitempty"`
}

// LightsDoc is the light set of a scene.
type LightsDoc struct {
	Ambient     AmbientDoc     `yaml:"ambient"`
	Directional DirectionalDoc `yaml:"directional"`
	Points      []PointDoc     `yaml:"points,omitempty"`
	Spots       []SpotDoc      `yaml:"spots,omitempty"`
}

// AmbientDoc is the uniform ambient term.
type AmbientDoc struct {
	Color     [3]float32 `yaml:"color,flow"`
	Intensity float32    `yaml:"intensity"`
}

// DirectionalDoc is the sun. Sun angles take precedence over Direction.
type DirectionalDoc struct {
	Color     [3]float32 `yaml:"color,flow"`
	Intensity float32    `yaml:"intensity"`
	Direction [3]float32 `yaml:"direction,flow"`
	Sun       *SunDoc    `yaml:"sun,omitempty"`
}

// SunDoc describes the sun position by angles in degrees.
type SunDoc struct {
	Longitude float32 `yaml:"longitude"`
	Latitude  float32 `yaml:"latitude"`
}

// PointDoc is a point light.
type PointDoc struct {
	Color       [3]float32 `yaml:"color,flow"`
	Position    [3]float32 `yaml:"position,flow"`
	Intensity   float32    `yaml:"intensity"`
	Attenuation [3]float32 `yaml:"attenuation,flow"` // constant, linear, exponent
}

// SpotDoc is a point light restricted to a cone.
type SpotDoc struct {
	PointDoc  `yaml:",inline"`
	Direction [3]float32 `yaml:"direction,flow"`
	CutOff    float32    `yaml:"cutoff"` // half-angle in degrees
}

// FogDoc is distance fog.
type FogDoc struct {
	Color   [3]float32 `yaml:"color,flow"`
	Density float32    `yaml:"density"`
}

// Load reads a scene document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a scene document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return doc, nil
}

// Save writes the document to path, creating parent directories.
func (d *Document) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating scene directory: %w", err)
		}
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	return nil
}
