package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultResolution is the default edge length of each cascade map.
const DefaultResolution = 4096

// Buffer is a depth-only framebuffer rendering into one layer of a
// CascadeCount-deep depth texture array at a time.
type Buffer struct {
	FBO          uint32
	DepthArray   uint32
	Resolution   int32
	prevViewport [4]int32
}

// NewBuffer creates the shadow framebuffer. An incomplete framebuffer is an error.
func NewBuffer(resolution int32) (*Buffer, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	b := &Buffer{Resolution: resolution}

	gl.GenTextures(1, &b.DepthArray)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, b.DepthArray)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.DEPTH_COMPONENT32F,
		resolution, resolution, CascadeCount, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// Clamp to border with white (1.0) so samples outside a cascade are lit.
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	gl.GenFramebuffers(1, &b.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.FBO)
	gl.FramebufferTextureLayer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, b.DepthArray, 0, 0)

	// No color buffer for shadow pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		b.Destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}
	return b, nil
}

// Bind binds the framebuffer and sets the viewport to the map resolution.
// The previous viewport is restored by Unbind.
func (b *Buffer) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &b.prevViewport[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.FBO)
	gl.Viewport(0, 0, b.Resolution, b.Resolution)
}

// BindLayer attaches cascade i as the sole depth target and clears it.
func (b *Buffer) BindLayer(i int) {
	gl.FramebufferTextureLayer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, b.DepthArray, 0, int32(i))
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// Unbind restores the default framebuffer and the saved viewport.
func (b *Buffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(b.prevViewport[0], b.prevViewport[1], b.prevViewport[2], b.prevViewport[3])
}

// BindTexture binds the depth array to the given texture unit for sampling.
func (b *Buffer) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, b.DepthArray)
}

// Destroy releases all GPU resources.
func (b *Buffer) Destroy() {
	if b.FBO != 0 {
		gl.DeleteFramebuffers(1, &b.FBO)
		b.FBO = 0
	}
	if b.DepthArray != 0 {
		gl.DeleteTextures(1, &b.DepthArray)
		b.DepthArray = 0
	}
}

// IsValid returns true if the buffer holds live GPU objects.
func (b *Buffer) IsValid() bool {
	return b != nil && b.FBO != 0 && b.DepthArray != 0
}
