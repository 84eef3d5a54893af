package importer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/model"
)

// primitive is the raw attribute data of one triangle list.
type primitive struct {
	positions [][3]float32
	normals   [][3]float32
	tangents  [][4]float32
	uvs       [][2]float32
	joints    [][4]uint16
	weights   [][4]float32
	indices   []uint32
}

// meshOptions controls how a primitive is converted.
type meshOptions struct {
	// transform pre-transforms static geometry into model space. Nil keeps
	// positions as stored.
	transform *mgl32.Mat4
	// jointRemap maps skin joint indices to skeleton arena indices. Nil
	// drops skinning data.
	jointRemap []int
}

// toMeshData converts a primitive into engine mesh data. V is flipped so that
// glTF's top-left texture origin maps onto the uploaded texture rows.
// Attributes that are missing or of the wrong length are left to Finalize.
func toMeshData(p *primitive, opts meshOptions) *model.MeshData {
	n := len(p.positions)
	d := &model.MeshData{
		Positions: make([]float32, 0, n*3),
		Indices:   p.indices,
	}

	var normalMat mgl32.Mat3
	if opts.transform != nil {
		normalMat = opts.transform.Mat3().Inv().Transpose()
	}

	for _, v := range p.positions {
		pos := mgl32.Vec3{v[0], v[1], v[2]}
		if opts.transform != nil {
			pos = mgl32.TransformCoordinate(pos, *opts.transform)
		}
		d.Positions = append(d.Positions, pos[0], pos[1], pos[2])
	}

	if len(p.normals) == n {
		d.Normals = make([]float32, 0, n*3)
		for _, v := range p.normals {
			nv := mgl32.Vec3{v[0], v[1], v[2]}
			if opts.transform != nil {
				nv = normalMat.Mul3x1(nv)
			}
			if nv.Len() > 0 {
				nv = nv.Normalize()
			}
			d.Normals = append(d.Normals, nv[0], nv[1], nv[2])
		}
	}

	if len(p.tangents) == n && len(d.Normals) == n*3 {
		d.Tangents = make([]float32, 0, n*3)
		d.Bitangents = make([]float32, 0, n*3)
		for i, v := range p.tangents {
			t := mgl32.Vec3{v[0], v[1], v[2]}
			if opts.transform != nil {
				t = opts.transform.Mat3().Mul3x1(t)
			}
			if t.Len() > 0 {
				t = t.Normalize()
			}
			nv := mgl32.Vec3{d.Normals[i*3], d.Normals[i*3+1], d.Normals[i*3+2]}
			w := v[3]
			if w == 0 {
				w = 1
			}
			b := nv.Cross(t).Mul(w)
			d.Tangents = append(d.Tangents, t[0], t[1], t[2])
			d.Bitangents = append(d.Bitangents, b[0], b[1], b[2])
		}
	}

	if len(p.uvs) == n {
		d.TexCoords = make([]float32, 0, n*2)
		for _, uv := range p.uvs {
			d.TexCoords = append(d.TexCoords, uv[0], 1-uv[1])
		}
	}

	if opts.jointRemap != nil && len(p.joints) == n && len(p.weights) == n {
		d.BoneIndices = make([]int32, 0, n*model.WeightsPerVertex)
		d.BoneWeights = make([]float32, 0, n*model.WeightsPerVertex)
		for i := range p.joints {
			idx, w := skinWeights(p.joints[i], p.weights[i], opts.jointRemap)
			d.BoneIndices = append(d.BoneIndices, idx[:]...)
			d.BoneWeights = append(d.BoneWeights, w[:]...)
		}
	}

	return d
}

// skinWeights remaps joint indices and normalizes the weights to sum to 1.
// Influences on joints outside the skin are dropped.
func skinWeights(joints [4]uint16, weights [4]float32, remap []int) ([4]int32, [4]float32) {
	var idx [4]int32
	var w [4]float32
	var sum float32
	for k := 0; k < 4; k++ {
		j := int(joints[k])
		if weights[k] <= 0 || j >= len(remap) || remap[j] < 0 {
			continue
		}
		idx[k] = int32(remap[j])
		w[k] = weights[k]
		sum += weights[k]
	}
	if sum > 0 {
		for k := range w {
			w[k] /= sum
		}
	}
	return idx, w
}
