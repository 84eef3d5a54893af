package model

import "github.com/go-gl/mathgl/mgl32"

// DefaultColor is used for material colors the source did not specify.
var DefaultColor = mgl32.Vec4{1, 1, 1, 1}

// Material holds surface parameters, optional texture map paths and the
// meshes drawn with them.
type Material struct {
	DiffuseColor  mgl32.Vec4
	AmbientColor  mgl32.Vec4
	SpecularColor mgl32.Vec4
	EmissiveColor mgl32.Vec3

	Metallic   float32
	Roughness  float32
	AOStrength float32

	TexturePath   string
	NormalMapPath string
	MetallicPath  string
	RoughnessPath string
	AOPath        string
	EmissivePath  string

	Meshes []*Mesh
}

// NewMaterial returns a material with default parameters and no textures.
func NewMaterial() *Material {
	return &Material{
		DiffuseColor:  DefaultColor,
		AmbientColor:  DefaultColor,
		SpecularColor: DefaultColor,
		Metallic:      0,
		Roughness:     1,
		AOStrength:    1,
	}
}

// HasNormalMap reports whether a normal map is assigned.
func (m *Material) HasNormalMap() bool {
	return m.NormalMapPath != ""
}

// TexturePaths returns every non-empty texture path of the material.
func (m *Material) TexturePaths() []string {
	var out []string
	for _, p := range []string{m.TexturePath, m.NormalMapPath, m.MetallicPath, m.RoughnessPath, m.AOPath, m.EmissivePath} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
