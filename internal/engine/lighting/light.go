// Package lighting defines the scene light variants and the math shared
// between the CPU side and the lighting shader.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies a light variant.
type Kind int

// Light kinds.
const (
	KindAmbient Kind = iota
	KindDirectional
	KindPoint
	KindSpot
)

func (k Kind) String() string {
	switch k {
	case KindAmbient:
		return "ambient"
	case KindDirectional:
		return "directional"
	case KindPoint:
		return "point"
	case KindSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// Light is implemented only by the variants in this package.
type Light interface {
	Kind() Kind
	isLight()
}

// AmbientLight lights every fragment uniformly.
type AmbientLight struct {
	Color     mgl32.Vec3
	Intensity float32
}

// DirectionalLight is an infinitely distant light. Direction points from the
// scene towards the light.
type DirectionalLight struct {
	Color     mgl32.Vec3
	Direction mgl32.Vec3
	Intensity float32
}

// Attenuation holds distance falloff coefficients.
type Attenuation struct {
	Constant float32
	Linear   float32
	Exponent float32
}

// PointLight radiates in all directions from a position.
type PointLight struct {
	Color       mgl32.Vec3
	Position    mgl32.Vec3
	Intensity   float32
	Attenuation Attenuation
}

// SpotLight is a point light restricted to a cone.
type SpotLight struct {
	PointLight
	ConeDirection mgl32.Vec3

	cutOffAngle float32 // degrees
	cutOff      float32 // cosine of cutOffAngle
}

// NewSpotLight creates a spot light with a cone half-angle in degrees.
func NewSpotLight(pl PointLight, coneDirection mgl32.Vec3, cutOffAngle float32) *SpotLight {
	s := &SpotLight{PointLight: pl, ConeDirection: coneDirection}
	s.SetCutOffAngle(cutOffAngle)
	return s
}

// SetCutOffAngle sets the cone half-angle in degrees and caches its cosine.
func (s *SpotLight) SetCutOffAngle(deg float32) {
	s.cutOffAngle = deg
	s.cutOff = float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

// CutOffAngle returns the cone half-angle in degrees.
func (s *SpotLight) CutOffAngle() float32 { return s.cutOffAngle }

// CutOff returns the cosine of the cone half-angle.
func (s *SpotLight) CutOff() float32 { return s.cutOff }

func (AmbientLight) Kind() Kind     { return KindAmbient }
func (DirectionalLight) Kind() Kind { return KindDirectional }
func (PointLight) Kind() Kind       { return KindPoint }
func (SpotLight) Kind() Kind        { return KindSpot }

func (AmbientLight) isLight()     {}
func (DirectionalLight) isLight() {}
func (PointLight) isLight()       {}
func (SpotLight) isLight()        {}

// SceneLights is the full light set of a scene.
type SceneLights struct {
	Ambient     AmbientLight
	Directional DirectionalLight
	Points      []*PointLight
	Spots       []*SpotLight
}

// NewSceneLights returns a dim white ambient light and a white sun overhead.
func NewSceneLights() *SceneLights {
	return &SceneLights{
		Ambient: AmbientLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: 0.5},
		Directional: DirectionalLight{
			Color:     mgl32.Vec3{1, 1, 1},
			Direction: mgl32.Vec3{0, 1, 0},
			Intensity: 1,
		},
	}
}

// All returns every light as a tagged variant, ambient and directional first.
func (l *SceneLights) All() []Light {
	out := []Light{l.Ambient, l.Directional}
	for _, p := range l.Points {
		out = append(out, *p)
	}
	for _, s := range l.Spots {
		out = append(out, *s)
	}
	return out
}

// Count returns the number of lights of the given kind.
func (l *SceneLights) Count(k Kind) int {
	n := 0
	for _, light := range l.All() {
		if light.Kind() == k {
			n++
		}
	}
	return n
}
