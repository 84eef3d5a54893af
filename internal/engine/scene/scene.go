// Package scene holds the mutable world state rendered each frame: models,
// entities, camera, lights and environment.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/engine/camera"
	"github.com/Faultbox/lumen/internal/engine/lighting"
	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/texture"
	"github.com/Faultbox/lumen/internal/logger"
)

// ErrModelNotFound is returned when an entity references an unregistered model.
var ErrModelNotFound = errors.New("scene: model not found")

// Fog is distance fog applied in the lighting pass.
type Fog struct {
	Active  bool
	Color   mgl32.Vec3
	Density float32
}

// SkyBox is the environment cube map drawn behind all geometry.
type SkyBox struct {
	Faces   texture.CubeFaces
	CubeMap *texture.CubeMap
}

// Overlay is a GUI drawn on top of the 3D passes.
type Overlay interface {
	// DrawGui is called once per frame after the 3D passes.
	DrawGui()
	// ConsumesInput reports whether the overlay has input focus, in which
	// case camera and picking input are suppressed.
	ConsumesInput() bool
	// Resize is called when the framebuffer size changes.
	Resize(width, height int)
}

// Scene is the root aggregate of one level.
type Scene struct {
	Projection   *camera.Projection
	Camera       *camera.Camera
	Lights       *lighting.SceneLights
	Fog          Fog
	SkyBox       *SkyBox
	TextureCache *texture.Cache
	Selected     *model.Entity
	Overlay      Overlay

	// LightingDisabled forces the unlit diagnostic output.
	LightingDisabled bool

	models      map[string]*model.Model
	modelOrder  []string
	entities    map[string]*model.Entity
	entityOrder []string

	log *zap.Logger
}

// New creates an empty scene for a viewport of width x height pixels.
// fov is in radians.
func New(width, height int, fov, near, far float32, cache *texture.Cache) *Scene {
	return &Scene{
		Projection:   camera.NewProjection(fov, near, far, width, height),
		Camera:       camera.New(),
		TextureCache: cache,
		models:       make(map[string]*model.Model),
		entities:     make(map[string]*model.Entity),
		log:          logger.Named("scene"),
	}
}

// AddModel registers a model, replacing any model with the same id.
func (s *Scene) AddModel(m *model.Model) {
	if _, exists := s.models[m.ID]; !exists {
		s.modelOrder = append(s.modelOrder, m.ID)
	}
	s.models[m.ID] = m
	s.log.Debug("model added", zap.String("id", m.ID), zap.Int("meshes", m.MeshCount()))
}

// Model returns a registered model or nil.
func (s *Scene) Model(id string) *model.Model {
	return s.models[id]
}

// Models returns the registered models in registration order.
func (s *Scene) Models() []*model.Model {
	out := make([]*model.Model, 0, len(s.modelOrder))
	for _, id := range s.modelOrder {
		out = append(out, s.models[id])
	}
	return out
}

// AddEntity places an entity of an already registered model.
func (s *Scene) AddEntity(e *model.Entity) error {
	m, ok := s.models[e.ModelID]
	if !ok {
		return fmt.Errorf("adding entity %s: %w: %s", e.ID, ErrModelNotFound, e.ModelID)
	}
	if old, exists := s.entities[e.ID]; exists {
		if prev := s.models[old.ModelID]; prev != nil {
			prev.RemoveEntity(old.ID)
		}
	} else {
		s.entityOrder = append(s.entityOrder, e.ID)
	}
	m.AddEntity(e)
	s.entities[e.ID] = e
	return nil
}

// Entity returns an entity by id or nil.
func (s *Scene) Entity(id string) *model.Entity {
	return s.entities[id]
}

// Entities returns all entities in insertion order.
func (s *Scene) Entities() []*model.Entity {
	out := make([]*model.Entity, 0, len(s.entityOrder))
	for _, id := range s.entityOrder {
		out = append(out, s.entities[id])
	}
	return out
}

// RemoveEntity drops an entity. It reports whether the entity existed.
func (s *Scene) RemoveEntity(id string) bool {
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	if m := s.models[e.ModelID]; m != nil {
		m.RemoveEntity(id)
	}
	delete(s.entities, id)
	for i, eid := range s.entityOrder {
		if eid == id {
			s.entityOrder = append(s.entityOrder[:i], s.entityOrder[i+1:]...)
			break
		}
	}
	if s.Selected == e {
		s.Selected = nil
	}
	return true
}

// BypassLighting reports whether the lighting pass should output unlit albedo.
func (s *Scene) BypassLighting() bool {
	return s.LightingDisabled || s.Lights == nil
}

// WantsInput reports whether camera and picking input should be handled.
func (s *Scene) WantsInput() bool {
	return s.Overlay == nil || !s.Overlay.ConsumesInput()
}

// UpdateAnimations advances every animated entity by dt seconds.
func (s *Scene) UpdateAnimations(dt float64) {
	for _, id := range s.entityOrder {
		if ad := s.entities[id].AnimationData; ad != nil {
			ad.NextFrame(dt)
		}
	}
}

// Resize recomputes the projection and notifies the overlay.
func (s *Scene) Resize(width, height int) {
	s.Projection.UpdateProjMatrix(width, height)
	if s.Overlay != nil {
		s.Overlay.Resize(width, height)
	}
}

// Bounds returns the world-space box around every entity.
func (s *Scene) Bounds() model.Bounds {
	b := model.EmptyBounds()
	for _, e := range s.Entities() {
		if m := s.models[e.ModelID]; m != nil {
			mb := m.Bounds()
			if mb.Valid() {
				b.Union(mb.Transform(e.Matrix()))
			}
		}
	}
	return b
}

// Reset forgets all entities and the selection but keeps models and textures.
func (s *Scene) Reset() {
	for _, m := range s.models {
		m.ClearEntities()
	}
	s.entities = make(map[string]*model.Entity)
	s.entityOrder = nil
	s.Selected = nil
}

// Unload destroys every model and the sky box so another level can be
// loaded. Cached textures are kept for reuse.
func (s *Scene) Unload() {
	s.Reset()
	for _, m := range s.models {
		m.Cleanup()
	}
	s.models = make(map[string]*model.Model)
	s.modelOrder = nil
	if s.SkyBox != nil && s.SkyBox.CubeMap != nil {
		s.SkyBox.CubeMap.Destroy()
	}
	s.SkyBox = nil
}

// Cleanup releases every GPU resource owned by the scene.
func (s *Scene) Cleanup() {
	s.Unload()
	if s.TextureCache != nil {
		s.TextureCache.Cleanup()
	}
}
