package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func nearVec3(a, b mgl32.Vec3, eps float32) bool {
	return near(a[0], b[0], eps) && near(a[1], b[1], eps) && near(a[2], b[2], eps)
}

func nearMat4(a, b mgl32.Mat4, eps float32) bool {
	for i := range a {
		if !near(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func TestMoveForwardFollowsYaw(t *testing.T) {
	tests := []struct {
		name string
		yaw  float32
		want mgl32.Vec3
	}{
		{"looking down -Z", 0, mgl32.Vec3{0, 0, -1}},
		{"yawed right", mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.SetRotation(0, tt.yaw)
			c.MoveForward(1)
			if !nearVec3(c.Position(), tt.want, 1e-5) {
				t.Errorf("position = %v, want %v", c.Position(), tt.want)
			}
		})
	}
}

func TestStrafeAndVertical(t *testing.T) {
	c := New()
	c.MoveRight(2)
	c.MoveUp(3)
	if !nearVec3(c.Position(), mgl32.Vec3{2, 3, 0}, 1e-6) {
		t.Errorf("position = %v, want (2,3,0)", c.Position())
	}
	c.MoveLeft(2)
	c.MoveDown(3)
	c.MoveBackwards(4)
	if !nearVec3(c.Position(), mgl32.Vec3{0, 0, 4}, 1e-6) {
		t.Errorf("position = %v, want (0,0,4)", c.Position())
	}
}

func TestInverseViewStaysCurrent(t *testing.T) {
	c := New()
	c.SetPosition(5, 1, -2)
	c.AddRotation(0.2, 0.7)

	if !nearMat4(c.ViewMatrix().Mul4(c.InvViewMatrix()), mgl32.Ident4(), 1e-4) {
		t.Error("view * inverse view should be identity")
	}
	origin := mgl32.TransformCoordinate(mgl32.Vec3{}, c.InvViewMatrix())
	if !nearVec3(origin, mgl32.Vec3{5, 1, -2}, 1e-4) {
		t.Errorf("inverse view maps view origin to %v, want camera position", origin)
	}
}

func TestProjectionResize(t *testing.T) {
	p := NewProjection(mgl32.DegToRad(60), 0.01, 1000, 1280, 720)
	if w, h := p.Size(); w != 1280 || h != 720 {
		t.Errorf("size = %dx%d", w, h)
	}

	p.UpdateProjMatrix(800, 0)
	if _, h := p.Size(); h != 1 {
		t.Errorf("zero height should clamp to 1, got %d", h)
	}
	if !nearMat4(p.ProjMatrix().Mul4(p.InvProjMatrix()), mgl32.Ident4(), 1e-2) {
		t.Error("projection * inverse should be identity")
	}
}

func TestFitToBoundsSeesCenter(t *testing.T) {
	c := New()
	c.FitToBounds(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})

	viewPos := mgl32.TransformCoordinate(mgl32.Vec3{}, c.ViewMatrix())
	if viewPos.Z() >= 0 {
		t.Errorf("bounds center should be in front of the camera, view z = %f", viewPos.Z())
	}
}
