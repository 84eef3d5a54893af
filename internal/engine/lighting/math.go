package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// At returns the attenuation factor 1 / (constant + linear*d + exponent*d²).
// A zero denominator yields full intensity.
func (a Attenuation) At(d float32) float32 {
	den := a.Constant + a.Linear*d + a.Exponent*d*d
	if den <= 0 {
		return 1
	}
	return 1 / den
}

// SpotConeFactor returns the intensity scale of a fragment whose direction
// from the light has cosine cosAngle with the cone axis. Fragments exactly on
// the cone boundary receive no light.
func SpotConeFactor(cosAngle, cutOff float32) float32 {
	if cosAngle <= cutOff {
		return 0
	}
	return 1 - (1-cosAngle)/(1-cutOff)
}

// SpotFactor evaluates the cone for a fragment position in the light's space.
func SpotFactor(s *SpotLight, fragPos mgl32.Vec3) float32 {
	toFrag := fragPos.Sub(s.Position)
	if toFrag.Len() == 0 || s.ConeDirection.Len() == 0 {
		return 0
	}
	cosAngle := toFrag.Normalize().Dot(s.ConeDirection.Normalize())
	return SpotConeFactor(cosAngle, s.CutOff())
}

// FogFactor returns the share of the surface color kept at distance d:
// clamp(1 / exp((d*density)²), 0, 1).
func FogFactor(d, density float32) float32 {
	x := float64(d * density)
	f := float32(1 / math.Exp(x*x))
	return mgl32.Clamp(f, 0, 1)
}

// FogColor tints the fog by the ambient and directional light.
func FogColor(fog mgl32.Vec3, ambient AmbientLight, dir DirectionalLight) mgl32.Vec3 {
	light := ambient.Color.Mul(ambient.Intensity).Add(dir.Color.Mul(dir.Intensity))
	return mgl32.Vec3{fog[0] * light[0], fog[1] * light[1], fog[2] * light[2]}
}
