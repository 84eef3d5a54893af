package model

import "github.com/Faultbox/lumen/internal/engine/anim"

// Model is shared geometry instanced by any number of entities.
type Model struct {
	ID         string
	Path       string
	Materials  []*Material
	Animations []*anim.Animation
	Skeleton   *anim.Skeleton

	entities []*Entity
}

// NewModel creates a model from its materials and optional animations.
func NewModel(id string, materials []*Material, animations []*anim.Animation) *Model {
	return &Model{
		ID:         id,
		Materials:  materials,
		Animations: animations,
	}
}

// IsAnimated reports whether the model carries baked animations.
func (m *Model) IsAnimated() bool {
	return len(m.Animations) > 0
}

// Animation returns the animation at idx, or nil when out of range.
func (m *Model) Animation(idx int) *anim.Animation {
	if idx < 0 || idx >= len(m.Animations) {
		return nil
	}
	return m.Animations[idx]
}

// MeshCount returns the number of meshes across all materials.
func (m *Model) MeshCount() int {
	n := 0
	for _, mat := range m.Materials {
		n += len(mat.Meshes)
	}
	return n
}

// Bounds returns the union of all mesh bounds in model space.
func (m *Model) Bounds() Bounds {
	b := EmptyBounds()
	for _, mat := range m.Materials {
		for _, mesh := range mat.Meshes {
			b.Union(mesh.Bounds)
		}
	}
	return b
}

// Entities returns the entities instancing this model.
func (m *Model) Entities() []*Entity {
	return m.entities
}

// AddEntity registers an instance of the model.
func (m *Model) AddEntity(e *Entity) {
	m.entities = append(m.entities, e)
}

// RemoveEntity drops an instance by id. It reports whether one was removed.
func (m *Model) RemoveEntity(id string) bool {
	for i, e := range m.entities {
		if e.ID == id {
			m.entities = append(m.entities[:i], m.entities[i+1:]...)
			return true
		}
	}
	return false
}

// ClearEntities forgets all instances.
func (m *Model) ClearEntities() {
	m.entities = nil
}

// Cleanup releases the GPU buffers of every mesh.
func (m *Model) Cleanup() {
	for _, mat := range m.Materials {
		for _, mesh := range mat.Meshes {
			mesh.Destroy()
		}
	}
}
