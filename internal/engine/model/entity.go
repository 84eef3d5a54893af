package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/anim"
)

// Entity places one instance of a model in the world. Every setter
// recomputes the model matrix, so Matrix is always current.
type Entity struct {
	ID      string
	ModelID string

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    float32
	matrix   mgl32.Mat4

	AnimationData *anim.AnimationData
}

// NewEntity returns an entity at the origin with identity rotation and unit scale.
func NewEntity(id, modelID string) *Entity {
	e := &Entity{
		ID:       id,
		ModelID:  modelID,
		rotation: mgl32.QuatIdent(),
		scale:    1,
	}
	e.updateModelMatrix()
	return e
}

// Position returns the world position.
func (e *Entity) Position() mgl32.Vec3 { return e.position }

// Rotation returns the orientation.
func (e *Entity) Rotation() mgl32.Quat { return e.rotation }

// Scale returns the uniform scale.
func (e *Entity) Scale() float32 { return e.scale }

// Matrix returns translate * rotate * scale.
func (e *Entity) Matrix() mgl32.Mat4 { return e.matrix }

// SetPosition moves the entity.
func (e *Entity) SetPosition(x, y, z float32) {
	e.position = mgl32.Vec3{x, y, z}
	e.updateModelMatrix()
}

// SetRotation sets the orientation from an axis and an angle in radians.
func (e *Entity) SetRotation(axis mgl32.Vec3, angle float32) {
	if axis.Len() < 1e-6 {
		e.rotation = mgl32.QuatIdent()
	} else {
		e.rotation = mgl32.QuatRotate(angle, axis.Normalize())
	}
	e.updateModelMatrix()
}

// SetRotationQuat sets the orientation directly.
func (e *Entity) SetRotationQuat(q mgl32.Quat) {
	e.rotation = q.Normalize()
	e.updateModelMatrix()
}

// SetScale sets the uniform scale.
func (e *Entity) SetScale(s float32) {
	e.scale = s
	e.updateModelMatrix()
}

// BoneMatrices returns the current pose, or zero matrices for static entities.
func (e *Entity) BoneMatrices() []mgl32.Mat4 {
	if e.AnimationData == nil {
		return anim.ZeroBones()
	}
	return e.AnimationData.BoneMatrices()
}

func (e *Entity) updateModelMatrix() {
	e.matrix = mgl32.Translate3D(e.position[0], e.position[1], e.position[2]).
		Mul4(e.rotation.Mat4()).
		Mul4(mgl32.Scale3D(e.scale, e.scale, e.scale))
}
