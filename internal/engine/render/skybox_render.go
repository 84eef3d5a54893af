package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/render/shaders"
	"github.com/Faultbox/lumen/internal/engine/scene"
	"github.com/Faultbox/lumen/internal/engine/shader"
)

const unitSkyBox uint32 = 0

// SkyBoxRender draws the environment cube behind the lit geometry.
type SkyBoxRender struct {
	program *shader.Program
	cube    *model.Mesh
}

// NewSkyBoxRender compiles the sky box program and uploads its cube.
func NewSkyBoxRender() (*SkyBoxRender, error) {
	p, err := shader.New("skybox", shaders.SkyBoxVertexShader, shaders.SkyBoxFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("creating skybox render: %w", err)
	}
	cube, err := newCube()
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("creating skybox cube: %w", err)
	}
	p.Use()
	p.SetInt("skyBox", int32(unitSkyBox))
	p.Unbind()
	return &SkyBoxRender{program: p, cube: cube}, nil
}

// RotationOnly strips the translation from a view matrix so the sky box
// stays centered on the camera.
func RotationOnly(view mgl32.Mat4) mgl32.Mat4 {
	view[12], view[13], view[14] = 0, 0, 0
	return view
}

// Render draws the sky box into the bound framebuffer. Depth must already
// hold the scene geometry.
func (r *SkyBoxRender) Render(s *scene.Scene) {
	if s.SkyBox == nil || s.SkyBox.CubeMap == nil {
		return
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)

	p := r.program
	p.Use()
	p.SetMat4("projectionMatrix", s.Projection.ProjMatrix())
	p.SetMat4("viewMatrix", RotationOnly(s.Camera.ViewMatrix()))
	p.SetVec4("diffuse", model.DefaultColor)
	s.SkyBox.CubeMap.Bind(unitSkyBox)
	r.cube.Draw()

	gl.BindVertexArray(0)
	p.Unbind()
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
}

// Cleanup releases the program and cube.
func (r *SkyBoxRender) Cleanup() {
	r.program.Destroy()
	r.cube.Destroy()
}
