// Package picking provides ray casting and entity selection.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/model"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// ScreenToRay converts pixel coordinates to a world-space ray starting at the
// camera. The cursor direction is unprojected through the inverse projection,
// forced onto the view's -Z axis, and rotated into world space.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invProj, invView mgl32.Mat4) Ray {
	if viewportW <= 0 {
		viewportW = 1
	}
	if viewportH <= 0 {
		viewportH = 1
	}
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	dir := invProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	dir[2], dir[3] = -1, 0
	world := invView.Mul4x1(dir).Vec3()
	if world.Len() > 0 {
		world = world.Normalize()
	}

	return Ray{Origin: invView.Col(3).Vec3(), Direction: world}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box model.Bounds) (t float32, hit bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if r.Direction[axis] == 0 {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
