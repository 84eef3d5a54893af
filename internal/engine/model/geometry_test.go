package model

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func nearVec3(a, b mgl32.Vec3, eps float32) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(a[i]-b[i])) > float64(eps) {
			return false
		}
	}
	return true
}

// quad returns two triangles in the XZ plane facing +Y with a standard UV layout.
func quad() *MeshData {
	return &MeshData{
		Positions: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 0, -1,
			0, 0, -1,
		},
		TexCoords: []float32{
			0, 0,
			1, 0,
			1, 1,
			0, 1,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestFinalizeFillsAttributes(t *testing.T) {
	d := &MeshData{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
	}
	d.Finalize()

	if err := d.Validate(); err != nil {
		t.Fatalf("finalized data should validate: %v", err)
	}
	if len(d.TexCoords) != 6 {
		t.Errorf("expected zero-filled UVs for 3 vertices, got %d floats", len(d.TexCoords))
	}
	for _, v := range d.TexCoords {
		if v != 0 {
			t.Fatalf("expected zero UVs, got %v", d.TexCoords)
		}
	}
	if len(d.Indices) != 3 {
		t.Errorf("expected sequential indices, got %v", d.Indices)
	}
	if len(d.BoneIndices) != 3*WeightsPerVertex || len(d.BoneWeights) != 3*WeightsPerVertex {
		t.Error("expected zero-filled bone data")
	}
	if d.Bounds.Max != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("unexpected bounds max %v", d.Bounds.Max)
	}
}

func TestComputeNormals(t *testing.T) {
	d := quad()
	d.ComputeNormals()

	for i := 0; i < d.VertexCount(); i++ {
		n := vec3At(d.Normals, i)
		if !nearVec3(n, mgl32.Vec3{0, 1, 0}, 1e-6) {
			t.Errorf("vertex %d normal = %v, want +Y", i, n)
		}
	}
}

func TestComputeNormalsSkipsDegenerate(t *testing.T) {
	d := &MeshData{
		Positions: []float32{0, 0, 0, 1, 0, 0, 2, 0, 0},
		Indices:   []uint32{0, 1, 2},
	}
	d.ComputeNormals()

	for i := 0; i < 3; i++ {
		if n := vec3At(d.Normals, i); !nearVec3(n, mgl32.Vec3{0, 1, 0}, 1e-6) {
			t.Errorf("degenerate vertex %d normal = %v, want fallback +Y", i, n)
		}
	}
}

func TestComputeTangents(t *testing.T) {
	d := quad()
	d.ComputeNormals()
	d.ComputeTangents()

	for i := 0; i < d.VertexCount(); i++ {
		tan := vec3At(d.Tangents, i)
		bit := vec3At(d.Bitangents, i)
		if !nearVec3(tan, mgl32.Vec3{1, 0, 0}, 1e-5) {
			t.Errorf("vertex %d tangent = %v, want +X (u direction)", i, tan)
		}
		if !nearVec3(bit, mgl32.Vec3{0, 0, -1}, 1e-5) {
			t.Errorf("vertex %d bitangent = %v, want -Z (v direction)", i, bit)
		}
	}
}

func TestValidateRejectsBadIndex(t *testing.T) {
	d := quad()
	d.Indices = append(d.Indices, 9, 0, 1)

	err := d.Validate()
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("Validate() = %v, want out of range index error", err)
	}
}

func TestPrepareRejectsBadIndexBeforeDeriving(t *testing.T) {
	tests := []struct {
		name string
		data *MeshData
	}{
		{
			name: "index past last vertex",
			data: &MeshData{
				Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
				Indices:   []uint32{0, 1, 7},
			},
		},
		{
			name: "ragged positions",
			data: &MeshData{
				Positions: []float32{0, 0, 0, 1},
				Indices:   []uint32{0, 0, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.data.Prepare(); err == nil {
				t.Fatal("expected error")
			}
			if tt.data.Normals != nil {
				t.Error("normals were derived from invalid data")
			}
		})
	}
}

func TestPrepareFillsMissingAttributes(t *testing.T) {
	d := &MeshData{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
	}
	if err := d.Prepare(); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if len(d.Indices) != 3 || len(d.TexCoords) != 6 || len(d.Normals) != 9 {
		t.Errorf("indices %d texcoords %d normals %d", len(d.Indices), len(d.TexCoords), len(d.Normals))
	}
	if !nearVec3(vec3At(d.Normals, 0), mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("normal = %v, want +Z", vec3At(d.Normals, 0))
	}
}

func TestBoundsTransform(t *testing.T) {
	b := Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	m := mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2))

	out := b.Transform(m)
	if !nearVec3(out.Min, mgl32.Vec3{8, -2, -2}, 1e-5) || !nearVec3(out.Max, mgl32.Vec3{12, 2, 2}, 1e-5) {
		t.Errorf("unexpected transformed bounds %v", out)
	}

	empty := EmptyBounds()
	if empty.Valid() {
		t.Error("empty bounds should be invalid")
	}
	empty.Union(b)
	if empty != b {
		t.Errorf("union with empty should equal operand, got %v", empty)
	}
}
