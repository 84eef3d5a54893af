package texture

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CubeFaces lists six face image paths in GL order: +X, -X, +Y, -Y, +Z, -Z.
type CubeFaces [6]string

// CubeMap is a GPU cube map texture.
type CubeMap struct {
	ID uint32
}

// LoadCubeMap decodes and uploads the six faces of an environment map.
// Faces are uploaded as stored; cube map sampling expects the top row first.
func LoadCubeMap(source Source, faces CubeFaces) (*CubeMap, error) {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)

	for i, path := range faces {
		data, err := source.Load(path)
		if err != nil {
			gl.DeleteTextures(1, &id)
			return nil, fmt.Errorf("loading cube face %s: %w", path, err)
		}
		img, err := Decode(path, data)
		if err != nil {
			gl.DeleteTextures(1, &id)
			return nil, err
		}
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	return &CubeMap{ID: id}, nil
}

// Bind binds the cube map to the given texture unit.
func (c *CubeMap) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.ID)
}

// Destroy releases the cube map.
func (c *CubeMap) Destroy() {
	if c.ID != 0 {
		gl.DeleteTextures(1, &c.ID)
		c.ID = 0
	}
}
