package picking

import (
	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/scene"
)

// Hit is the closest entity hit by a ray.
type Hit struct {
	Entity   *model.Entity
	Distance float32
}

// Cast returns the closest entity whose mesh bounds, transformed to world
// space, the ray crosses. ok is false when nothing is hit.
func Cast(r Ray, s *scene.Scene) (hit Hit, ok bool) {
	for _, m := range s.Models() {
		for _, e := range m.Entities() {
			matrix := e.Matrix()
			for _, mat := range m.Materials {
				for _, mesh := range mat.Meshes {
					if !mesh.Bounds.Valid() {
						continue
					}
					t, crossed := r.IntersectAABB(mesh.Bounds.Transform(matrix))
					if crossed && (!ok || t < hit.Distance) {
						hit = Hit{Entity: e, Distance: t}
						ok = true
					}
				}
			}
		}
	}
	return hit, ok
}

// SelectEntity casts a ray through the pixel (x, y) and stores the closest
// entity as the scene selection, or clears it when nothing is hit.
func SelectEntity(s *scene.Scene, x, y float32) *model.Entity {
	w, h := s.Projection.Size()
	r := ScreenToRay(x, y, float32(w), float32(h), s.Projection.InvProjMatrix(), s.Camera.InvViewMatrix())
	hit, ok := Cast(r, s)
	if !ok {
		s.Selected = nil
		return nil
	}
	s.Selected = hit.Entity
	return hit.Entity
}
