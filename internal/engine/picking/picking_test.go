package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/scene"
)

func nearVec3(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func unitBox() model.Bounds {
	return model.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
}

func TestIntersectAABB(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		hit  bool
		t    float32
	}{
		{"front", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, true, 4},
		{"miss", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"inside", Ray{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(unitBox())
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && math.Abs(float64(got-tt.t)) > 1e-5 {
				t.Errorf("t = %f, want %f", got, tt.t)
			}
		})
	}
}

func TestScreenToRayCenter(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 800.0/600.0, 0.1, 100)
	view := mgl32.Translate3D(0, 0, -10) // camera at (0,0,10) looking down -Z
	r := ScreenToRay(400, 300, 800, 600, proj.Inv(), view.Inv())

	if !nearVec3(r.Origin, mgl32.Vec3{0, 0, 10}) {
		t.Errorf("origin = %v, want camera position", r.Origin)
	}
	if !nearVec3(r.Direction, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("direction = %v, want -Z", r.Direction)
	}
}

func newPickScene() (*scene.Scene, *model.Entity, *model.Entity) {
	s := scene.New(800, 600, mgl32.DegToRad(60), 0.1, 100, nil)
	s.Camera.SetPosition(0, 0, 10)

	mat := model.NewMaterial()
	mat.Meshes = []*model.Mesh{{IndexCount: 36, Bounds: unitBox()}}
	s.AddModel(model.NewModel("cube", []*model.Material{mat}, nil))

	near := model.NewEntity("near", "cube")
	near.SetPosition(0, 0, 2)
	far := model.NewEntity("far", "cube")
	far.SetPosition(0, 0, -4)
	s.AddEntity(far)
	s.AddEntity(near)
	return s, near, far
}

func TestSelectEntityClosest(t *testing.T) {
	s, near, _ := newPickScene()
	got := SelectEntity(s, 400, 300)
	if got != near {
		t.Fatalf("selected %v, want the closer entity", got)
	}
	if s.Selected != near {
		t.Error("scene selection not updated")
	}
}

func TestSelectEntityMissClears(t *testing.T) {
	s, near, _ := newPickScene()
	s.Selected = near
	if got := SelectEntity(s, 0, 0); got != nil {
		t.Fatalf("expected miss at the corner, got %s", got.ID)
	}
	if s.Selected != nil {
		t.Error("miss should clear the selection")
	}
}

func TestCastSkipsEmptyModels(t *testing.T) {
	s := scene.New(800, 600, mgl32.DegToRad(60), 0.1, 100, nil)
	s.AddModel(model.NewModel("empty", nil, nil))
	s.AddEntity(model.NewEntity("e", "empty"))
	if _, ok := Cast(Ray{Direction: mgl32.Vec3{0, 0, -1}}, s); ok {
		t.Error("entity without meshes must not be hit")
	}
}
