// Package camera provides the free-look camera and perspective projection.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-look camera. Rotation holds pitch (X) and yaw (Y) in
// radians. The view matrix and its inverse are recomputed on every change.
type Camera struct {
	position mgl32.Vec3
	rotation mgl32.Vec2

	view    mgl32.Mat4
	invView mgl32.Mat4
}

// New creates a camera at the origin looking down -Z.
func New() *Camera {
	c := &Camera{}
	c.recalculate()
	return c
}

// Position returns the camera position in world space.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Rotation returns pitch and yaw in radians.
func (c *Camera) Rotation() mgl32.Vec2 { return c.rotation }

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 { return c.view }

// InvViewMatrix returns the view-to-world transform.
func (c *Camera) InvViewMatrix() mgl32.Mat4 { return c.invView }

// SetPosition places the camera.
func (c *Camera) SetPosition(x, y, z float32) {
	c.position = mgl32.Vec3{x, y, z}
	c.recalculate()
}

// SetRotation sets pitch and yaw in radians.
func (c *Camera) SetRotation(pitch, yaw float32) {
	c.rotation = mgl32.Vec2{pitch, yaw}
	c.recalculate()
}

// AddRotation adds to pitch and yaw in radians.
func (c *Camera) AddRotation(pitch, yaw float32) {
	c.rotation = c.rotation.Add(mgl32.Vec2{pitch, yaw})
	c.recalculate()
}

// axis returns row i of the view rotation, which is the camera's local
// X, Y or Z axis in world space.
func (c *Camera) axis(i int) mgl32.Vec3 {
	return c.view.Row(i).Vec3()
}

// MoveForward moves along the viewing direction.
func (c *Camera) MoveForward(inc float32) {
	c.position = c.position.Sub(c.axis(2).Mul(inc))
	c.recalculate()
}

// MoveBackwards moves against the viewing direction.
func (c *Camera) MoveBackwards(inc float32) {
	c.position = c.position.Add(c.axis(2).Mul(inc))
	c.recalculate()
}

// MoveLeft strafes left.
func (c *Camera) MoveLeft(inc float32) {
	c.position = c.position.Sub(c.axis(0).Mul(inc))
	c.recalculate()
}

// MoveRight strafes right.
func (c *Camera) MoveRight(inc float32) {
	c.position = c.position.Add(c.axis(0).Mul(inc))
	c.recalculate()
}

// MoveUp moves along the camera's up axis.
func (c *Camera) MoveUp(inc float32) {
	c.position = c.position.Add(c.axis(1).Mul(inc))
	c.recalculate()
}

// MoveDown moves against the camera's up axis.
func (c *Camera) MoveDown(inc float32) {
	c.position = c.position.Sub(c.axis(1).Mul(inc))
	c.recalculate()
}

// FitToBounds places the camera in front of a bounding box so the whole box
// is in view, looking down -Z with a slight downward pitch.
func (c *Camera) FitToBounds(min, max mgl32.Vec3) {
	center := min.Add(max).Mul(0.5)
	size := max.Sub(min).Len()
	if size < 1 {
		size = 1
	}
	c.rotation = mgl32.Vec2{0.3, 0}
	c.position = mgl32.Vec3{center[0], center[1] + size*0.4, center[2] + size*1.2}
	c.recalculate()
}

func (c *Camera) recalculate() {
	c.view = mgl32.HomogRotate3DX(c.rotation[0]).
		Mul4(mgl32.HomogRotate3DY(c.rotation[1])).
		Mul4(mgl32.Translate3D(-c.position[0], -c.position[1], -c.position[2]))
	c.invView = c.view.Inv()
}
