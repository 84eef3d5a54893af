package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/lumen/internal/engine/framebuffer"
	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/render/shaders"
	"github.com/Faultbox/lumen/internal/engine/scene"
	"github.com/Faultbox/lumen/internal/engine/shader"
	"github.com/Faultbox/lumen/internal/engine/texture"
)

// SceneRender is the geometry pass. It rasterizes every mesh into the
// G-buffer without lighting.
type SceneRender struct {
	program *shader.Program
}

// NewSceneRender compiles the geometry pass program.
func NewSceneRender() (*SceneRender, error) {
	p, err := shader.New("scene", shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("creating scene render: %w", err)
	}
	p.Use()
	p.SetInt("txtSampler", int32(unitDiffuse))
	p.SetInt("normalSampler", int32(unitNormal))
	p.SetInt("metallicSampler", int32(unitMetallic))
	p.SetInt("roughnessSampler", int32(unitRoughness))
	p.SetInt("aoSampler", int32(unitAO))
	p.SetInt("emissiveSampler", int32(unitEmissive))
	p.Unbind()
	return &SceneRender{program: p}, nil
}

// Render draws the batches into gbuf.
func (r *SceneRender) Render(s *scene.Scene, gbuf *framebuffer.GBuffer, batches []Batch) {
	gbuf.BindForWriting()
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	p := r.program
	p.Use()
	p.SetMat4("projectionMatrix", s.Projection.ProjMatrix())
	p.SetMat4("viewMatrix", s.Camera.ViewMatrix())

	var current *model.Material
	for _, b := range batches {
		if b.Material != current {
			r.bindMaterial(b.Material, s.TextureCache)
			current = b.Material
		}
		for _, e := range b.Entities {
			p.SetMat4("modelMatrix", e.Matrix())
			p.SetMat4Array("bonesMatrices", e.BoneMatrices())
			b.Mesh.Draw()
		}
	}

	gl.BindVertexArray(0)
	p.Unbind()
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
}

func (r *SceneRender) bindMaterial(m *model.Material, cache *texture.Cache) {
	p := r.program
	p.SetVec4("material.diffuse", m.DiffuseColor)
	p.SetVec3("material.emissive", m.EmissiveColor)
	p.SetFloat("material.metallic", m.Metallic)
	p.SetFloat("material.roughness", m.Roughness)
	p.SetFloat("material.aoStrength", m.AOStrength)
	hasNormal := int32(0)
	if m.HasNormalMap() {
		hasNormal = 1
	}
	p.SetInt("material.hasNormalMap", hasNormal)

	if cache == nil {
		return
	}
	cache.Get(m.TexturePath).Bind(unitDiffuse)
	cache.Get(m.NormalMapPath).Bind(unitNormal)
	cache.Get(m.MetallicPath).Bind(unitMetallic)
	cache.Get(m.RoughnessPath).Bind(unitRoughness)
	cache.Get(m.AOPath).Bind(unitAO)
	cache.Get(m.EmissivePath).Bind(unitEmissive)
}

// Cleanup deletes the program.
func (r *SceneRender) Cleanup() {
	r.program.Destroy()
}
