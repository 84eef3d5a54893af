package render

import "github.com/Faultbox/lumen/internal/engine/model"

// quadData is a full-screen quad in normalized device coordinates.
func quadData() *model.MeshData {
	return &model.MeshData{
		Positions: []float32{
			-1, 1, 0,
			-1, -1, 0,
			1, 1, 0,
			1, -1, 0,
		},
		TexCoords: []float32{
			0, 1,
			0, 0,
			1, 1,
			1, 0,
		},
		Indices: []uint32{0, 1, 2, 2, 1, 3},
	}
}

// cubeData is the sky box cube centered at the origin. It is drawn with
// face culling disabled, so winding does not matter.
func cubeData() *model.MeshData {
	return &model.MeshData{
		Positions: []float32{
			-1, 1, 1,
			-1, -1, 1,
			1, -1, 1,
			1, 1, 1,
			-1, 1, -1,
			-1, -1, -1,
			1, -1, -1,
			1, 1, -1,
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // front
			3, 6, 2, 3, 7, 6, // right
			7, 5, 6, 7, 4, 5, // back
			4, 1, 5, 4, 0, 1, // left
			4, 3, 0, 4, 7, 3, // top
			1, 6, 5, 1, 2, 6, // bottom
		},
	}
}

func newQuad() (*model.Mesh, error) {
	return model.NewMesh(quadData())
}

func newCube() (*model.Mesh, error) {
	return model.NewMesh(cubeData())
}
