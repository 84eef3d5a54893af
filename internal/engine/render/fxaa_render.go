package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/render/shaders"
	"github.com/Faultbox/lumen/internal/engine/shader"
)

const unitFXAAInput uint32 = 0

// FXAARender is the anti-aliasing post filter. It keeps no state between
// frames.
type FXAARender struct {
	program *shader.Program
	quad    *model.Mesh
}

// NewFXAARender compiles the FXAA program.
func NewFXAARender(quad *model.Mesh) (*FXAARender, error) {
	p, err := shader.New("fxaa", shaders.FXAAVertexShader, shaders.FXAAFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("creating fxaa render: %w", err)
	}
	p.Use()
	p.SetInt("inputTexture", int32(unitFXAAInput))
	p.Unbind()
	return &FXAARender{program: p, quad: quad}, nil
}

// InverseScreenSize returns the texel size of a width x height target.
func InverseScreenSize(width, height int32) mgl32.Vec2 {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return mgl32.Vec2{1 / float32(width), 1 / float32(height)}
}

// Render filters colorTex into the default framebuffer.
func (r *FXAARender) Render(colorTex uint32, width, height int32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, width, height)
	gl.Disable(gl.DEPTH_TEST)

	p := r.program
	p.Use()
	p.SetVec2("inverseScreenSize", InverseScreenSize(width, height))
	gl.ActiveTexture(gl.TEXTURE0 + unitFXAAInput)
	gl.BindTexture(gl.TEXTURE_2D, colorTex)
	r.quad.Draw()

	gl.BindVertexArray(0)
	p.Unbind()
}

// Cleanup deletes the program. The quad is owned by the engine render.
func (r *FXAARender) Cleanup() {
	r.program.Destroy()
}
