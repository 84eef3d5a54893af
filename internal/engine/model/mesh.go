package model

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh is uploaded geometry. It is immutable once created and owned by one Material.
type Mesh struct {
	VAO        uint32
	vbos       []uint32
	IndexCount int32
	Bounds     Bounds
}

// NewMesh prepares data and uploads it into a vertex array object with one
// buffer per attribute. A current GL context is required.
func NewMesh(data *MeshData) (*Mesh, error) {
	if err := data.Prepare(); err != nil {
		return nil, fmt.Errorf("invalid mesh data: %w", err)
	}

	m := &Mesh{
		IndexCount: int32(len(data.Indices)),
		Bounds:     data.Bounds,
	}
	if data.VertexCount() == 0 {
		return m, nil
	}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	m.floatAttrib(AttribPosition, 3, data.Positions)
	m.floatAttrib(AttribNormal, 3, data.Normals)
	m.floatAttrib(AttribTangent, 3, data.Tangents)
	m.floatAttrib(AttribBitangent, 3, data.Bitangents)
	m.floatAttrib(AttribTexCoord, 2, data.TexCoords)
	m.floatAttrib(AttribBoneWeights, WeightsPerVertex, data.BoneWeights)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	m.vbos = append(m.vbos, vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.BoneIndices)*4, unsafe.Pointer(&data.BoneIndices[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(AttribBoneIndices)
	gl.VertexAttribIPointer(AttribBoneIndices, WeightsPerVertex, gl.INT, 0, nil)

	if len(data.Indices) > 0 {
		var ebo uint32
		gl.GenBuffers(1, &ebo)
		m.vbos = append(m.vbos, ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, unsafe.Pointer(&data.Indices[0]), gl.STATIC_DRAW)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return m, nil
}

func (m *Mesh) floatAttrib(loc uint32, size int32, values []float32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	m.vbos = append(m.vbos, vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(values)*4, unsafe.Pointer(&values[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
}

// Drawable reports whether the mesh has indices to draw.
func (m *Mesh) Drawable() bool {
	return m != nil && m.VAO != 0 && m.IndexCount > 0
}

// Draw issues the indexed draw call. The caller binds program state.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.VAO)
	gl.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, nil)
}

// Destroy releases the GPU buffers.
func (m *Mesh) Destroy() {
	if len(m.vbos) > 0 {
		gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
		m.vbos = nil
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
}
