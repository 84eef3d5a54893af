package camera

import "github.com/go-gl/mathgl/mgl32"

// Projection holds perspective parameters and the derived matrices.
type Projection struct {
	FOV  float32 // radians
	Near float32
	Far  float32

	width, height int
	proj          mgl32.Mat4
	invProj       mgl32.Mat4
}

// NewProjection creates a projection for a viewport of width x height pixels.
func NewProjection(fov, near, far float32, width, height int) *Projection {
	p := &Projection{FOV: fov, Near: near, Far: far}
	p.UpdateProjMatrix(width, height)
	return p
}

// UpdateProjMatrix recomputes the matrices for a new viewport size.
// A zero height is treated as one pixel.
func (p *Projection) UpdateProjMatrix(width, height int) {
	if height <= 0 {
		height = 1
	}
	if width <= 0 {
		width = 1
	}
	p.width, p.height = width, height
	p.proj = mgl32.Perspective(p.FOV, float32(width)/float32(height), p.Near, p.Far)
	p.invProj = p.proj.Inv()
}

// ProjMatrix returns the projection matrix.
func (p *Projection) ProjMatrix() mgl32.Mat4 { return p.proj }

// InvProjMatrix returns the inverse projection matrix.
func (p *Projection) InvProjMatrix() mgl32.Mat4 { return p.invProj }

// Size returns the viewport size the matrices were built for.
func (p *Projection) Size() (width, height int) { return p.width, p.height }

// Aspect returns width divided by height.
func (p *Projection) Aspect() float32 { return float32(p.width) / float32(p.height) }
