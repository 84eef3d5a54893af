package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// G-buffer attachment indices.
const (
	GAlbedo = iota
	GNormal
	GMaterial
	GEmissive
	gColorCount
)

type attachment struct {
	internal uint32
	format   uint32
}

var gAttachments = [gColorCount]attachment{
	GAlbedo:   {gl.RGBA32F, gl.RGBA},
	GNormal:   {gl.RGBA32F, gl.RGBA},
	GMaterial: {gl.RGB16F, gl.RGB},
	GEmissive: {gl.RGB16F, gl.RGB},
}

// GBuffer holds the per-pixel surface attributes written by the geometry
// pass: albedo, normal, material, emissive and a DEPTH32F depth texture.
type GBuffer struct {
	fbo      uint32
	textures [gColorCount]uint32
	depth    uint32
	width    int32
	height   int32
}

// NewGBuffer allocates a G-buffer. An incomplete framebuffer is an error.
func NewGBuffer(width, height int32) (*GBuffer, error) {
	g := &GBuffer{}
	if err := g.create(clampSize(width), clampSize(height)); err != nil {
		return nil, fmt.Errorf("creating gbuffer: %w", err)
	}
	return g, nil
}

func clampSize(v int32) int32 {
	if v < 1 {
		return 1
	}
	return v
}

// create allocates the attachments. The size is recorded only once the
// framebuffer is complete, so a failed create leaves Size at 0x0 and the next
// Resize retries.
func (g *GBuffer) create(width, height int32) error {
	gl.GenFramebuffers(1, &g.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, g.fbo)

	gl.GenTextures(gColorCount, &g.textures[0])
	drawBuffers := make([]uint32, gColorCount)
	for i, a := range gAttachments {
		gl.BindTexture(gl.TEXTURE_2D, g.textures[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, int32(a.internal), width, height, 0, a.format, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		attach := uint32(gl.COLOR_ATTACHMENT0 + i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attach, gl.TEXTURE_2D, g.textures[i], 0)
		drawBuffers[i] = attach
	}

	gl.GenTextures(1, &g.depth)
	gl.BindTexture(gl.TEXTURE_2D, g.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F, width, height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, g.depth, 0)

	gl.DrawBuffers(gColorCount, &drawBuffers[0])

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		g.Destroy()
		return fmt.Errorf("gbuffer incomplete: 0x%x", status)
	}
	g.width, g.height = width, height
	return nil
}

// Resize recreates every attachment at the new size, releasing the old ones
// first. It reports whether anything was reallocated; the same size is a no-op.
func (g *GBuffer) Resize(width, height int32) (bool, error) {
	width, height = clampSize(width), clampSize(height)
	if width == g.width && height == g.height {
		return false, nil
	}
	g.Destroy()
	if err := g.create(width, height); err != nil {
		return true, fmt.Errorf("resizing gbuffer: %w", err)
	}
	return true, nil
}

// BindForWriting binds the G-buffer as the draw target.
func (g *GBuffer) BindForWriting() {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, g.fbo)
	gl.Viewport(0, 0, g.width, g.height)
}

// BindTextures binds albedo, normal, material, emissive and depth to
// consecutive texture units starting at first.
func (g *GBuffer) BindTextures(first uint32) {
	for i, tex := range g.textures {
		gl.ActiveTexture(gl.TEXTURE0 + first + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
	gl.ActiveTexture(gl.TEXTURE0 + first + gColorCount)
	gl.BindTexture(gl.TEXTURE_2D, g.depth)
}

// TextureCount is the number of units BindTextures occupies.
func (g *GBuffer) TextureCount() uint32 { return gColorCount + 1 }

// FBO returns the framebuffer object ID.
func (g *GBuffer) FBO() uint32 { return g.fbo }

// Texture returns the color attachment at index i.
func (g *GBuffer) Texture(i int) uint32 { return g.textures[i] }

// DepthTexture returns the depth attachment.
func (g *GBuffer) DepthTexture() uint32 { return g.depth }

// Size returns the G-buffer dimensions.
func (g *GBuffer) Size() (width, height int32) { return g.width, g.height }

// Destroy releases all OpenGL resources and forgets the size.
func (g *GBuffer) Destroy() {
	g.width, g.height = 0, 0
	if g.fbo != 0 {
		gl.DeleteFramebuffers(1, &g.fbo)
		g.fbo = 0
	}
	if g.textures[0] != 0 {
		gl.DeleteTextures(gColorCount, &g.textures[0])
		g.textures = [gColorCount]uint32{}
	}
	if g.depth != 0 {
		gl.DeleteTextures(1, &g.depth)
		g.depth = 0
	}
}
