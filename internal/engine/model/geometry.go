package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Prepare rejects malformed positions or indices, fills the missing
// attributes and validates the result. It needs no GL context.
func (d *MeshData) Prepare() error {
	if err := d.checkIndices(); err != nil {
		return err
	}
	d.Finalize()
	return d.Validate()
}

// checkIndices must pass before Finalize, which derives normals and
// tangents by indexing positions.
func (d *MeshData) checkIndices() error {
	if len(d.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(d.Positions))
	}
	n := d.VertexCount()
	for _, idx := range d.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d out of range for %d vertices", idx, n)
		}
	}
	return nil
}

// Validate checks that all attribute arrays agree on the vertex count and
// that every index is in range.
func (d *MeshData) Validate() error {
	if err := d.checkIndices(); err != nil {
		return err
	}
	n := d.VertexCount()
	check := func(name string, got, per int) error {
		if got != n*per {
			return fmt.Errorf("%s length %d, want %d for %d vertices", name, got, n*per, n)
		}
		return nil
	}
	if err := check("normals", len(d.Normals), 3); err != nil {
		return err
	}
	if err := check("tangents", len(d.Tangents), 3); err != nil {
		return err
	}
	if err := check("bitangents", len(d.Bitangents), 3); err != nil {
		return err
	}
	if err := check("texcoords", len(d.TexCoords), 2); err != nil {
		return err
	}
	if err := check("bone weights", len(d.BoneWeights), WeightsPerVertex); err != nil {
		return err
	}
	return check("bone indices", len(d.BoneIndices), WeightsPerVertex)
}

// Finalize fills every optional attribute the importer did not provide so
// that all vertex arrays share one stride: zero UVs, computed normals and
// tangents, zero bone data. It also recomputes the bounds.
func (d *MeshData) Finalize() {
	n := d.VertexCount()
	if len(d.Indices) == 0 {
		d.Indices = make([]uint32, n)
		for i := range d.Indices {
			d.Indices[i] = uint32(i)
		}
	}
	if len(d.TexCoords) != n*2 {
		d.TexCoords = make([]float32, n*2)
	}
	if len(d.Normals) != n*3 {
		d.ComputeNormals()
	}
	if len(d.Tangents) != n*3 || len(d.Bitangents) != n*3 {
		d.ComputeTangents()
	}
	if len(d.BoneWeights) != n*WeightsPerVertex {
		d.BoneWeights = make([]float32, n*WeightsPerVertex)
	}
	if len(d.BoneIndices) != n*WeightsPerVertex {
		d.BoneIndices = make([]int32, n*WeightsPerVertex)
	}
	d.ComputeBounds()
}

// ComputeBounds recomputes the bounding box from the positions.
func (d *MeshData) ComputeBounds() {
	d.Bounds = EmptyBounds()
	for i := 0; i < d.VertexCount(); i++ {
		d.Bounds.Extend(vec3At(d.Positions, i))
	}
}

// ComputeNormals accumulates area-weighted face normals per vertex.
// Degenerate triangles are skipped; vertices they leave untouched point up.
func (d *MeshData) ComputeNormals() {
	n := d.VertexCount()
	d.Normals = make([]float32, n*3)

	for t := 0; t+2 < len(d.Indices); t += 3 {
		i0, i1, i2 := int(d.Indices[t]), int(d.Indices[t+1]), int(d.Indices[t+2])
		v0, v1, v2 := vec3At(d.Positions, i0), vec3At(d.Positions, i1), vec3At(d.Positions, i2)
		face := v1.Sub(v0).Cross(v2.Sub(v0))
		if face.Len() < 1e-10 {
			continue
		}
		addVec3At(d.Normals, i0, face)
		addVec3At(d.Normals, i1, face)
		addVec3At(d.Normals, i2, face)
	}

	for i := 0; i < n; i++ {
		setVec3At(d.Normals, i, normalizeOr(vec3At(d.Normals, i), mgl32.Vec3{0, 1, 0}))
	}
}

// ComputeTangents derives tangents from UV gradients, Gram-Schmidt
// orthogonalised against the normal. Bitangents are cross(normal, tangent)
// with the handedness of the UV mapping.
func (d *MeshData) ComputeTangents() {
	n := d.VertexCount()
	tan := make([]float32, n*3)
	bit := make([]float32, n*3)

	if len(d.TexCoords) == n*2 {
		for t := 0; t+2 < len(d.Indices); t += 3 {
			idx := [3]int{int(d.Indices[t]), int(d.Indices[t+1]), int(d.Indices[t+2])}
			p0, p1, p2 := vec3At(d.Positions, idx[0]), vec3At(d.Positions, idx[1]), vec3At(d.Positions, idx[2])
			u0, v0 := d.TexCoords[idx[0]*2], d.TexCoords[idx[0]*2+1]
			u1, v1 := d.TexCoords[idx[1]*2], d.TexCoords[idx[1]*2+1]
			u2, v2 := d.TexCoords[idx[2]*2], d.TexCoords[idx[2]*2+1]

			e1, e2 := p1.Sub(p0), p2.Sub(p0)
			du1, dv1 := u1-u0, v1-v0
			du2, dv2 := u2-u0, v2-v0
			det := du1*dv2 - du2*dv1
			if det > -1e-12 && det < 1e-12 {
				continue
			}
			r := 1 / det
			sdir := e1.Mul(dv2).Sub(e2.Mul(dv1)).Mul(r)
			tdir := e2.Mul(du1).Sub(e1.Mul(du2)).Mul(r)
			for _, i := range idx {
				addVec3At(tan, i, sdir)
				addVec3At(bit, i, tdir)
			}
		}
	}

	for i := 0; i < n; i++ {
		nrm := vec3At(d.Normals, i)
		t := vec3At(tan, i)
		t = t.Sub(nrm.Mul(nrm.Dot(t)))
		t = normalizeOr(t, orthogonal(nrm))
		b := nrm.Cross(t)
		if b.Dot(vec3At(bit, i)) < 0 {
			b = b.Mul(-1)
		}
		setVec3At(tan, i, t)
		setVec3At(bit, i, b)
	}

	d.Tangents = tan
	d.Bitangents = bit
}
