package scenefile

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/anim"
	"github.com/Faultbox/lumen/internal/engine/lighting"
	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/scene"
	"github.com/Faultbox/lumen/internal/engine/texture"
)

// ModelLoader imports a model file.
type ModelLoader interface {
	LoadModel(id, path string, animated bool) (*model.Model, error)
}

// Apply loads every model of the document and populates s. The sky box is
// recorded by its faces only; uploading the cube map needs a GL context and
// is left to the caller.
func Apply(doc *Document, s *scene.Scene, loader ModelLoader) error {
	for _, md := range doc.Models {
		m, err := loader.LoadModel(md.ID, md.Path, md.Animated)
		if err != nil {
			return fmt.Errorf("loading model %s: %w", md.ID, err)
		}
		s.AddModel(m)
	}

	for _, od := range doc.Materials {
		if err := applyMaterial(s, od); err != nil {
			return err
		}
	}

	for _, ed := range doc.Entities {
		e := newEntity(ed)
		if m := s.Model(ed.Model); m != nil && m.IsAnimated() {
			attachAnimation(e, m, ed.Animation)
		}
		if err := s.AddEntity(e); err != nil {
			return fmt.Errorf("adding entity %s: %w", ed.ID, err)
		}
	}

	s.Camera.SetPosition(doc.Camera.Position[0], doc.Camera.Position[1], doc.Camera.Position[2])
	s.Camera.SetRotation(mgl32.DegToRad(doc.Camera.Pitch), mgl32.DegToRad(doc.Camera.Yaw))

	s.Lights = newLights(doc.Lights)

	s.Fog = scene.Fog{}
	if doc.Fog != nil {
		s.Fog = scene.Fog{Active: true, Color: doc.Fog.Color, Density: doc.Fog.Density}
	}

	if doc.SkyBox != nil {
		s.SkyBox = &scene.SkyBox{Faces: texture.CubeFaces(*doc.SkyBox)}
	}
	return nil
}

func newEntity(ed EntityDoc) *model.Entity {
	e := model.NewEntity(ed.ID, ed.Model)
	e.SetPosition(ed.Position[0], ed.Position[1], ed.Position[2])
	if ed.Rotation != nil {
		e.SetRotation(ed.Rotation.Axis, mgl32.DegToRad(ed.Rotation.Angle))
	}
	if ed.Scale != 0 {
		e.SetScale(ed.Scale)
	}
	return e
}

// attachAnimation binds an animated entity to a clip. Without an explicit
// selection the first clip plays.
func attachAnimation(e *model.Entity, m *model.Model, ad *AnimationDoc) {
	idx := 0
	if ad != nil {
		idx = ad.Index
	}
	a := m.Animation(idx)
	if a == nil {
		a = m.Animation(0)
	}
	e.AnimationData = anim.NewAnimationData(a)
	if ad == nil {
		return
	}
	if ad.Speed != 0 {
		e.AnimationData.Speed = ad.Speed
	}
	if ad.Interpolate != nil {
		e.AnimationData.Interpolate = *ad.Interpolate
	}
}

func applyMaterial(s *scene.Scene, od MaterialDoc) error {
	m := s.Model(od.Model)
	if m == nil {
		return fmt.Errorf("material override for %s: %w", od.Model, scene.ErrModelNotFound)
	}
	if od.Index < 0 || od.Index >= len(m.Materials) {
		return fmt.Errorf("material override for %s: index %d out of range", od.Model, od.Index)
	}
	mat := m.Materials[od.Index]
	if od.Diffuse != nil {
		mat.DiffuseColor = *od.Diffuse
	}
	if od.Emissive != nil {
		mat.EmissiveColor = *od.Emissive
	}
	if od.Metallic != nil {
		mat.Metallic = *od.Metallic
	}
	if od.Roughness != nil {
		mat.Roughness = *od.Roughness
	}
	if od.Texture != "" {
		if s.TextureCache != nil {
			if _, err := s.TextureCache.GetOrCreate(od.Texture); err != nil {
				return fmt.Errorf("material override for %s: %w", od.Model, err)
			}
		}
		mat.TexturePath = od.Texture
	}
	return nil
}

func newLights(ld *LightsDoc) *lighting.SceneLights {
	if ld == nil {
		return nil
	}
	l := &lighting.SceneLights{
		Ambient: lighting.AmbientLight{Color: ld.Ambient.Color, Intensity: ld.Ambient.Intensity},
		Directional: lighting.DirectionalLight{
			Color:     ld.Directional.Color,
			Direction: ld.Directional.Direction,
			Intensity: ld.Directional.Intensity,
		},
	}
	if sun := ld.Directional.Sun; sun != nil {
		l.Directional.Direction = lighting.SunDirection(sun.Longitude, sun.Latitude)
	}
	for _, pd := range ld.Points {
		p := newPoint(pd)
		l.Points = append(l.Points, &p)
	}
	for _, sd := range ld.Spots {
		l.Spots = append(l.Spots, lighting.NewSpotLight(newPoint(sd.PointDoc), sd.Direction, sd.CutOff))
	}
	return l
}

func newPoint(pd PointDoc) lighting.PointLight {
	return lighting.PointLight{
		Color:     pd.Color,
		Position:  pd.Position,
		Intensity: pd.Intensity,
		Attenuation: lighting.Attenuation{
			Constant: pd.Attenuation[0],
			Linear:   pd.Attenuation[1],
			Exponent: pd.Attenuation[2],
		},
	}
}

// FromScene describes s as a document. Material overrides are not
// reconstructed; imported materials are written back by their model files.
func FromScene(s *scene.Scene) *Document {
	doc := &Document{}

	pos := s.Camera.Position()
	rot := s.Camera.Rotation()
	doc.Camera = CameraDoc{
		Position: pos,
		Pitch:    mgl32.RadToDeg(rot[0]),
		Yaw:      mgl32.RadToDeg(rot[1]),
	}

	for _, m := range s.Models() {
		doc.Models = append(doc.Models, ModelDoc{ID: m.ID, Path: m.Path, Animated: m.IsAnimated()})
	}
	for _, e := range s.Entities() {
		doc.Entities = append(doc.Entities, entityDoc(e, s.Model(e.ModelID)))
	}

	if s.Lights != nil {
		doc.Lights = lightsDoc(s.Lights)
	}
	if s.Fog.Active {
		doc.Fog = &FogDoc{Color: s.Fog.Color, Density: s.Fog.Density}
	}
	if s.SkyBox != nil {
		faces := [6]string(s.SkyBox.Faces)
		doc.SkyBox = &faces
	}
	return doc
}

func entityDoc(e *model.Entity, m *model.Model) EntityDoc {
	ed := EntityDoc{
		ID:       e.ID,
		Model:    e.ModelID,
		Position: e.Position(),
		Scale:    e.Scale(),
	}
	if axis, angle, ok := axisAngle(e.Rotation()); ok {
		ed.Rotation = &RotationDoc{Axis: axis, Angle: mgl32.RadToDeg(angle)}
	}
	if d := e.AnimationData; d != nil && m != nil {
		idx := 0
		for i, a := range m.Animations {
			if a == d.Animation() {
				idx = i
				break
			}
		}
		interp := d.Interpolate
		ed.Animation = &AnimationDoc{Index: idx, Speed: d.Speed, Interpolate: &interp}
	}
	return ed
}

// axisAngle decomposes a unit quaternion. ok is false for the identity.
func axisAngle(q mgl32.Quat) (axis mgl32.Vec3, angle float32, ok bool) {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	s := float32(math.Sqrt(float64(1 - q.W*q.W)))
	if s < 1e-6 {
		return mgl32.Vec3{}, 0, false
	}
	angle = 2 * float32(math.Acos(float64(mgl32.Clamp(q.W, -1, 1))))
	return q.V.Mul(1 / s), angle, true
}

func lightsDoc(l *lighting.SceneLights) *LightsDoc {
	ld := &LightsDoc{
		Ambient: AmbientDoc{Color: l.Ambient.Color, Intensity: l.Ambient.Intensity},
		Directional: DirectionalDoc{
			Color:     l.Directional.Color,
			Intensity: l.Directional.Intensity,
			Direction: l.Directional.Direction,
		},
	}
	for _, p := range l.Points {
		ld.Points = append(ld.Points, pointDoc(*p))
	}
	for _, sp := range l.Spots {
		ld.Spots = append(ld.Spots, SpotDoc{
			PointDoc:  pointDoc(sp.PointLight),
			Direction: sp.ConeDirection,
			CutOff:    sp.CutOffAngle(),
		})
	}
	return ld
}

func pointDoc(p lighting.PointLight) PointDoc {
	return PointDoc{
		Color:       p.Color,
		Position:    p.Position,
		Intensity:   p.Intensity,
		Attenuation: [3]float32{p.Attenuation.Constant, p.Attenuation.Linear, p.Attenuation.Exponent},
	}
}
