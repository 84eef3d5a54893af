package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/lumen/internal/engine/render/shaders"
	"github.com/Faultbox/lumen/internal/engine/scene"
	"github.com/Faultbox/lumen/internal/engine/shader"
	"github.com/Faultbox/lumen/internal/engine/shadow"
)

// ShadowRender rasterizes depth for every cascade of the directional light.
type ShadowRender struct {
	program  *shader.Program
	buffer   *shadow.Buffer
	cascades shadow.Cascades
}

// NewShadowRender allocates the cascade depth array at the given resolution.
func NewShadowRender(resolution int32) (*ShadowRender, error) {
	p, err := shader.New("shadow", shaders.ShadowVertexShader, shaders.ShadowFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("creating shadow render: %w", err)
	}
	buf, err := shadow.NewBuffer(resolution)
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("creating shadow render: %w", err)
	}
	return &ShadowRender{program: p, buffer: buf}, nil
}

// Cascades returns the cascades computed by the last Render.
func (r *ShadowRender) Cascades() *shadow.Cascades {
	return &r.cascades
}

// Buffer returns the depth array target.
func (r *ShadowRender) Buffer() *shadow.Buffer {
	return r.buffer
}

// Render recomputes the cascades and draws every batch into each layer.
// Without scene lights the cascades keep their previous values and nothing
// is drawn; the lighting pass bypasses shadows in that case.
func (r *ShadowRender) Render(s *scene.Scene, batches []Batch) {
	if s.Lights == nil {
		return
	}
	r.cascades.Update(s.Camera.ViewMatrix(), s.Projection.ProjMatrix(),
		s.Projection.Near, s.Projection.Far, s.Lights.Directional.Direction)

	r.buffer.Bind()
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)

	p := r.program
	p.Use()
	for i := range r.cascades {
		r.buffer.BindLayer(i)
		p.SetMat4("projViewMatrix", r.cascades[i].ProjView)
		for _, b := range batches {
			for _, e := range b.Entities {
				p.SetMat4("modelMatrix", e.Matrix())
				p.SetMat4Array("bonesMatrices", e.BoneMatrices())
				b.Mesh.Draw()
			}
		}
	}

	gl.BindVertexArray(0)
	p.Unbind()
	r.buffer.Unbind()
}

// Cleanup releases the program and depth array.
func (r *ShadowRender) Cleanup() {
	r.program.Destroy()
	r.buffer.Destroy()
}
