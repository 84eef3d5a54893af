// Package model holds meshes, materials, models and the entities that instance them.
package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex attribute locations shared by every geometry shader.
const (
	AttribPosition    = 0
	AttribNormal      = 1
	AttribTangent     = 2
	AttribBitangent   = 3
	AttribTexCoord    = 4
	AttribBoneWeights = 5
	AttribBoneIndices = 6
)

// WeightsPerVertex is the number of bone influences stored per vertex.
const WeightsPerVertex = 4

// MeshData is CPU-side geometry ready for upload. Vectors are stored flat:
// three floats per position, normal, tangent and bitangent, two per UV and
// WeightsPerVertex per bone weight and index.
type MeshData struct {
	Positions   []float32
	Normals     []float32
	Tangents    []float32
	Bitangents  []float32
	TexCoords   []float32
	BoneWeights []float32
	BoneIndices []int32
	Indices     []uint32
	Bounds      Bounds
}

// VertexCount returns the number of vertices.
func (d *MeshData) VertexCount() int {
	return len(d.Positions) / 3
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBounds returns inverted bounds that any point will expand.
func EmptyBounds() Bounds {
	return Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}
}

// Valid reports whether the box contains at least one point.
func (b Bounds) Valid() bool {
	return b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2]
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows the box to include o.
func (b *Bounds) Union(o Bounds) {
	if !o.Valid() {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Corners returns the eight corners of the box.
func (b Bounds) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out[i] = c
	}
	return out
}

// Transform returns the axis-aligned box enclosing b after applying m.
func (b Bounds) Transform(m mgl32.Mat4) Bounds {
	out := EmptyBounds()
	for _, c := range b.Corners() {
		out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}
