package render

import "github.com/Faultbox/lumen/internal/engine/model"

// Batch is one mesh drawn once per entity with a single material bound.
type Batch struct {
	Material *model.Material
	Mesh     *model.Mesh
	Entities []*model.Entity
}

// BuildBatches flattens models into draw batches in model, material, mesh
// order. Models without entities and meshes that are not Drawable produce
// nothing.
func BuildBatches(models []*model.Model) []Batch {
	var out []Batch
	for _, m := range models {
		entities := m.Entities()
		if len(entities) == 0 {
			continue
		}
		for _, mat := range m.Materials {
			for _, mesh := range mat.Meshes {
				if !mesh.Drawable() {
					continue
				}
				out = append(out, Batch{Material: mat, Mesh: mesh, Entities: entities})
			}
		}
	}
	return out
}

// DrawCount returns the number of draw calls the batches issue.
func DrawCount(batches []Batch) int {
	n := 0
	for _, b := range batches {
		n += len(b.Entities)
	}
	return n
}
