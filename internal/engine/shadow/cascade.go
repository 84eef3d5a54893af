// Package shadow computes cascaded directional shadow frustums and owns the
// depth texture array they are rendered into.
package shadow

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// CascadeCount is the number of shadow cascades.
	CascadeCount = 3
	// SplitLambda blends logarithmic (1) and uniform (0) split schemes.
	SplitLambda = 0.95
)

// Cascade is one light-space frustum covering a slice of the camera view.
type Cascade struct {
	ProjView      mgl32.Mat4
	SplitDistance float32 // negative view-space depth of the far end of the slice
}

// Cascades holds every cascade of the directional light.
type Cascades [CascadeCount]Cascade

// SplitFractions returns the far end of each cascade as a fraction of the
// clip range, blending logarithmic and uniform splits with SplitLambda.
// The last fraction is always 1.
func SplitFractions(near, far float32) [CascadeCount]float32 {
	var out [CascadeCount]float32
	n, f := float64(near), float64(far)
	clipRange := f - n
	ratio := f / n

	for i := 0; i < CascadeCount; i++ {
		p := float64(i+1) / CascadeCount
		log := n * math.Pow(ratio, p)
		uniform := n + clipRange*p
		d := SplitLambda*(log-uniform) + uniform
		out[i] = float32((d - n) / clipRange)
	}
	out[CascadeCount-1] = 1
	return out
}

// ndcCorners are the eight corners of the clip cube, near face first.
var ndcCorners = [8]mgl32.Vec3{
	{-1, 1, -1}, {1, 1, -1}, {1, -1, -1}, {-1, -1, -1},
	{-1, 1, 1}, {1, 1, 1}, {1, -1, 1}, {-1, -1, 1},
}

// Update fits every cascade to its slice of the camera frustum. lightDir
// points from the scene towards the light.
func (c *Cascades) Update(view, proj mgl32.Mat4, near, far float32, lightDir mgl32.Vec3) {
	splits := SplitFractions(near, far)
	clipRange := far - near
	invCam := proj.Mul4(view).Inv()

	towards := lightDir.Mul(-1)
	if towards.Len() == 0 {
		towards = mgl32.Vec3{0, -1, 0}
	}
	towards = towards.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if abs32(towards[1]) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}

	var lastSplit float32
	for i := 0; i < CascadeCount; i++ {
		split := splits[i]

		var corners [8]mgl32.Vec3
		for j, ndc := range ndcCorners {
			corners[j] = mgl32.TransformCoordinate(ndc, invCam)
		}
		for j := 0; j < 4; j++ {
			dist := corners[j+4].Sub(corners[j])
			corners[j+4] = corners[j].Add(dist.Mul(split))
			corners[j] = corners[j].Add(dist.Mul(lastSplit))
		}

		var center mgl32.Vec3
		for _, p := range corners {
			center = center.Add(p)
		}
		center = center.Mul(1.0 / 8)

		var radius float32
		for _, p := range corners {
			if d := p.Sub(center).Len(); d > radius {
				radius = d
			}
		}
		radius = float32(math.Ceil(float64(radius)*16)) / 16

		eye := center.Sub(towards.Mul(radius))
		lightView := mgl32.LookAtV(eye, center, up)
		lightOrtho := mgl32.Ortho(-radius, radius, -radius, radius, 0, 2*radius)

		c[i].SplitDistance = -(near + split*clipRange)
		c[i].ProjView = lightOrtho.Mul4(lightView)

		lastSplit = split
	}
}

// Index returns the cascade that covers a fragment at view-space depth viewZ.
func (c *Cascades) Index(viewZ float32) int {
	idx := 0
	for i := 0; i < CascadeCount-1; i++ {
		if viewZ < c[i].SplitDistance {
			idx = i + 1
		}
	}
	return idx
}

// ProjViews returns the cascade matrices in order.
func (c *Cascades) ProjViews() [CascadeCount]mgl32.Mat4 {
	var out [CascadeCount]mgl32.Mat4
	for i := range c {
		out[i] = c[i].ProjView
	}
	return out
}

// SplitDistances returns the cascade split distances in order.
func (c *Cascades) SplitDistances() [CascadeCount]float32 {
	var out [CascadeCount]float32
	for i := range c {
		out[i] = c[i].SplitDistance
	}
	return out
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
