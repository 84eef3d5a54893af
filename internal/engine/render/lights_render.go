package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/lumen/internal/engine/framebuffer"
	"github.com/Faultbox/lumen/internal/engine/lighting"
	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/render/shaders"
	"github.com/Faultbox/lumen/internal/engine/scene"
	"github.com/Faultbox/lumen/internal/engine/shader"
	"github.com/Faultbox/lumen/internal/engine/shadow"
)

// pointUniformNames are the member names of one PointLight struct uniform.
type pointUniformNames struct {
	position, color, intensity       string
	attConstant, attLinear, attExpon string
}

func newPointUniformNames(prefix string) pointUniformNames {
	return pointUniformNames{
		position:    prefix + ".position",
		color:       prefix + ".color",
		intensity:   prefix + ".intensity",
		attConstant: prefix + ".att.constant",
		attLinear:   prefix + ".att.linear",
		attExpon:    prefix + ".att.exponent",
	}
}

type spotUniformNames struct {
	pl      pointUniformNames
	coneDir string
	cutOff  string
}

type cascadeUniformNames struct {
	projView string
	split    string
}

// lightUniformNames holds every indexed uniform name so the per-frame upload
// does not format strings.
type lightUniformNames struct {
	points   [lighting.MaxPointLights]pointUniformNames
	spots    [lighting.MaxSpotLights]spotUniformNames
	cascades [shadow.CascadeCount]cascadeUniformNames
}

func newLightUniformNames() lightUniformNames {
	var n lightUniformNames
	for i := range n.points {
		n.points[i] = newPointUniformNames(fmt.Sprintf("pointLights[%d]", i))
	}
	for i := range n.spots {
		prefix := fmt.Sprintf("spotLights[%d]", i)
		n.spots[i] = spotUniformNames{
			pl:      newPointUniformNames(prefix + ".pl"),
			coneDir: prefix + ".coneDir",
			cutOff:  prefix + ".cutOff",
		}
	}
	for i := range n.cascades {
		prefix := fmt.Sprintf("cascadeshadows[%d]", i)
		n.cascades[i] = cascadeUniformNames{
			projView: prefix + ".projViewMatrix",
			split:    prefix + ".splitDistance",
		}
	}
	return n
}

// LightsRender is the full-screen lighting pass resolving the G-buffer.
type LightsRender struct {
	program *shader.Program
	quad    *model.Mesh
	names   lightUniformNames
}

// NewLightsRender compiles the lighting program and binds its samplers.
func NewLightsRender(quad *model.Mesh) (*LightsRender, error) {
	p, err := shader.New("lights", shaders.LightsVertexShader, shaders.LightsFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("creating lights render: %w", err)
	}
	p.Use()
	p.SetInt("albedoSampler", int32(unitGBuffer+framebuffer.GAlbedo))
	p.SetInt("normalSampler", int32(unitGBuffer+framebuffer.GNormal))
	p.SetInt("materialSampler", int32(unitGBuffer+framebuffer.GMaterial))
	p.SetInt("emissiveSampler", int32(unitGBuffer+framebuffer.GEmissive))
	p.SetInt("depthSampler", int32(unitGBuffer+4))
	p.SetInt("shadowMap", int32(unitShadow))
	p.Unbind()

	return &LightsRender{program: p, quad: quad, names: newLightUniformNames()}, nil
}

// Render draws the lit image into whatever framebuffer is bound.
func (r *LightsRender) Render(s *scene.Scene, gbuf *framebuffer.GBuffer, sr *ShadowRender) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	p := r.program
	p.Use()

	gbuf.BindTextures(unitGBuffer)

	if s.BypassLighting() {
		p.SetInt("bypassLighting", 1)
		r.quad.Draw()
		gl.BindVertexArray(0)
		p.Unbind()
		return
	}
	p.SetInt("bypassLighting", 0)

	sr.Buffer().BindTexture(unitShadow)

	view := s.Camera.ViewMatrix()
	p.SetMat4("invProjectionMatrix", s.Projection.InvProjMatrix())
	p.SetMat4("invViewMatrix", s.Camera.InvViewMatrix())

	r.uploadLights(lighting.Pack(s.Lights, view))
	r.uploadFog(s.Fog)
	r.uploadCascades(sr.Cascades())

	r.quad.Draw()
	gl.BindVertexArray(0)
	p.Unbind()
}

func (r *LightsRender) uploadLights(u lighting.Uniforms) {
	p := r.program
	p.SetVec3("ambientLight.color", u.AmbientColor)
	p.SetFloat("ambientLight.intensity", u.AmbientIntensity)
	p.SetVec3("dirLight.color", u.DirColor)
	p.SetVec3("dirLight.direction", u.DirDirection)
	p.SetFloat("dirLight.intensity", u.DirIntensity)

	// Every slot is written so stale values from a previous frame never leak.
	for i := range u.Points {
		r.uploadPoint(r.names.points[i], u.Points[i])
	}
	for i := range u.Spots {
		n := r.names.spots[i]
		r.uploadPoint(n.pl, u.Spots[i].PackedPoint)
		p.SetVec3(n.coneDir, u.Spots[i].ConeDirection)
		p.SetFloat(n.cutOff, u.Spots[i].CutOff)
	}
	p.SetInt("pointLightCount", int32(u.PointCount))
	p.SetInt("spotLightCount", int32(u.SpotCount))
}

func (r *LightsRender) uploadPoint(n pointUniformNames, pl lighting.PackedPoint) {
	p := r.program
	p.SetVec3(n.position, pl.Position)
	p.SetVec3(n.color, pl.Color)
	p.SetFloat(n.intensity, pl.Intensity)
	p.SetFloat(n.attConstant, pl.Attenuation.Constant)
	p.SetFloat(n.attLinear, pl.Attenuation.Linear)
	p.SetFloat(n.attExpon, pl.Attenuation.Exponent)
}

func (r *LightsRender) uploadFog(f scene.Fog) {
	p := r.program
	active := int32(0)
	if f.Active {
		active = 1
	}
	p.SetInt("fog.activeFog", active)
	p.SetVec3("fog.color", f.Color)
	p.SetFloat("fog.density", f.Density)
}

func (r *LightsRender) uploadCascades(c *shadow.Cascades) {
	p := r.program
	for i := range c {
		p.SetMat4(r.names.cascades[i].projView, c[i].ProjView)
		p.SetFloat(r.names.cascades[i].split, c[i].SplitDistance)
	}
}

// Cleanup deletes the program. The quad is owned by the engine render.
func (r *LightsRender) Cleanup() {
	r.program.Destroy()
}
