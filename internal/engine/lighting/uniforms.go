package lighting

import "github.com/go-gl/mathgl/mgl32"

// Shader array sizes. Unused slots are uploaded as zero.
const (
	MaxPointLights = 5
	MaxSpotLights  = 5
)

// PackedPoint is a point light in view space.
type PackedPoint struct {
	Position    mgl32.Vec3
	Color       mgl32.Vec3
	Intensity   float32
	Attenuation Attenuation
}

// PackedSpot is a spot light in view space.
type PackedSpot struct {
	PackedPoint
	ConeDirection mgl32.Vec3
	CutOff        float32
}

// Uniforms is the fixed-shape light data uploaded every frame.
type Uniforms struct {
	AmbientColor     mgl32.Vec3
	AmbientIntensity float32

	DirColor     mgl32.Vec3
	DirDirection mgl32.Vec3 // view space, normalized
	DirIntensity float32

	Points [MaxPointLights]PackedPoint
	Spots  [MaxSpotLights]PackedSpot

	PointCount int
	SpotCount  int
}

// Pack transforms the lights into view space. Lights beyond the array caps
// are dropped.
func Pack(l *SceneLights, view mgl32.Mat4) Uniforms {
	var u Uniforms
	if l == nil {
		return u
	}

	u.AmbientColor = l.Ambient.Color
	u.AmbientIntensity = l.Ambient.Intensity

	u.DirColor = l.Directional.Color
	u.DirIntensity = l.Directional.Intensity
	dir := view.Mul4x1(l.Directional.Direction.Vec4(0)).Vec3()
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	u.DirDirection = dir

	for i, p := range l.Points {
		if i >= MaxPointLights {
			break
		}
		u.Points[i] = packPoint(p, view)
		u.PointCount++
	}
	for i, s := range l.Spots {
		if i >= MaxSpotLights {
			break
		}
		cone := view.Mul4x1(s.ConeDirection.Vec4(0)).Vec3()
		if cone.Len() > 0 {
			cone = cone.Normalize()
		}
		u.Spots[i] = PackedSpot{
			PackedPoint:   packPoint(&s.PointLight, view),
			ConeDirection: cone,
			CutOff:        s.CutOff(),
		}
		u.SpotCount++
	}
	return u
}

func packPoint(p *PointLight, view mgl32.Mat4) PackedPoint {
	return PackedPoint{
		Position:    mgl32.TransformCoordinate(p.Position, view),
		Color:       p.Color,
		Intensity:   p.Intensity,
		Attenuation: p.Attenuation,
	}
}
