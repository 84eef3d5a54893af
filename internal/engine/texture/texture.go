package texture

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is a GPU texture handle together with the path it was loaded from.
type Texture struct {
	ID     uint32
	Path   string
	Width  int
	Height int
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Uploader moves decoded pixels to the GPU.
type Uploader interface {
	Upload(img *image.RGBA) (uint32, error)
	Delete(id uint32)
}

// GLUploader uploads 2D RGBA8 textures with mipmaps and repeat wrapping.
type GLUploader struct {
	Anisotropy float32
}

// Upload creates a texture object from img. A current GL context is required.
func (u GLUploader) Upload(img *image.RGBA) (uint32, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("uploading empty image")
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	if u.Anisotropy > 1 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, u.Anisotropy)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return id, nil
}

// Delete releases a texture object.
func (u GLUploader) Delete(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
