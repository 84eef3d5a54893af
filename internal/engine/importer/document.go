package importer

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/engine/anim"
	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/texture"
)

// docImport holds the state of one file import.
type docImport struct {
	doc  *gltf.Document
	file string
	dir  string
	l    *Loader

	materials  []*model.Material
	defaultMat *model.Material
	images     map[uint32]string
	parents    []int
	uploaded   []*model.Mesh
}

func newDocImport(doc *gltf.Document, file string, l *Loader) *docImport {
	d := &docImport{
		doc:    doc,
		file:   file,
		dir:    filepath.Dir(file),
		l:      l,
		images: make(map[uint32]string),
	}
	d.parents = parentIndices(len(doc.Nodes), func(i int) []int { return toInts(doc.Nodes[i].Children) })
	return d
}

// toInts widens glTF uint32 indices to the int indices used internally.
func toInts(v []uint32) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}

// lookup dereferences an optional glTF index and checks it against n.
func lookup(idx *uint32, n int) (int, bool) {
	if idx == nil || int(*idx) >= n {
		return 0, false
	}
	return int(*idx), true
}

// rigged reports whether an import keeps skin weights. A skin without clips
// would leave every entity in the zero pose, so such files load static.
func rigged(animated bool, skins, animations int) bool {
	return animated && skins > 0 && animations > 0
}

// parentIndices inverts child lists. Nodes without a parent map to -1.
func parentIndices(n int, children func(int) []int) []int {
	parents := make([]int, n)
	for i := range parents {
		parents[i] = -1
	}
	for i := 0; i < n; i++ {
		for _, c := range children(i) {
			if c >= 0 && c < n {
				parents[c] = i
			}
		}
	}
	return parents
}

func (d *docImport) run(id string, animated bool) (*model.Model, error) {
	if err := d.loadMaterials(); err != nil {
		return nil, err
	}

	var (
		r       *rig
		remap   []int
		skinIdx = -1
	)
	if rigged(animated, len(d.doc.Skins), len(d.doc.Animations)) {
		skinIdx = 0
		var err error
		if r, remap, err = d.buildRig(skinIdx); err != nil {
			return nil, err
		}
	}

	worlds := d.nodeWorlds()
	for ni, node := range d.doc.Nodes {
		meshIdx, ok := lookup(node.Mesh, len(d.doc.Meshes))
		if !ok {
			continue
		}
		world := worlds[ni]
		opts := meshOptions{transform: &world}
		if si, ok := lookup(node.Skin, len(d.doc.Skins)); r != nil && ok && si == skinIdx {
			opts = meshOptions{jointRemap: remap}
		}
		for pi, prim := range d.doc.Meshes[meshIdx].Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				d.l.log.Debug("skipping non-triangle primitive", zap.Int("node", ni), zap.Int("primitive", pi))
				continue
			}
			p, err := d.readPrimitive(prim)
			if err != nil {
				return nil, fmt.Errorf("node %d primitive %d: %w", ni, pi, err)
			}
			mesh, err := d.l.upload(toMeshData(p, opts))
			if err != nil {
				return nil, fmt.Errorf("node %d primitive %d: %w", ni, pi, err)
			}
			d.uploaded = append(d.uploaded, mesh)
			mat := d.materialFor(prim.Material)
			mat.Meshes = append(mat.Meshes, mesh)
		}
	}

	var mats []*model.Material
	for _, m := range d.materials {
		if len(m.Meshes) > 0 {
			mats = append(mats, m)
		}
	}
	if d.defaultMat != nil {
		mats = append(mats, d.defaultMat)
	}
	if len(d.uploaded) == 0 {
		d.l.log.Warn("model has no triangle geometry", zap.String("id", id))
	}

	var anims []*anim.Animation
	if r != nil {
		for ai, ga := range d.doc.Animations {
			c, err := d.readClip(ai, ga, skinIdx, remap)
			if err != nil {
				return nil, err
			}
			anims = append(anims, r.bake(c, d.l.SampleRate))
		}
	}

	m := model.NewModel(id, mats, anims)
	if r != nil {
		m.Skeleton = r.skeleton
	}
	return m, nil
}

// release destroys meshes uploaded before a failure.
func (d *docImport) release() {
	for _, m := range d.uploaded {
		d.l.destroy(m)
	}
	d.uploaded = nil
}

func (d *docImport) materialFor(idx *uint32) *model.Material {
	if i, ok := lookup(idx, len(d.materials)); ok {
		return d.materials[i]
	}
	if d.defaultMat == nil {
		d.defaultMat = model.NewMaterial()
	}
	return d.defaultMat
}

var identity64 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeLocal returns the rest transform of a node.
func nodeLocal(n *gltf.Node) trs {
	if n.Matrix != ([16]float64{}) && n.Matrix != identity64 {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return decompose(m)
	}
	out := identityTRS()
	out.T = mgl32.Vec3{float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2])}
	if n.Rotation != ([4]float64{}) {
		out.R = quatXYZW(float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2]), float32(n.Rotation[3]))
	}
	if n.Scale != ([3]float64{}) {
		out.S = mgl32.Vec3{float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2])}
	}
	return out
}

// nodeWorlds composes every node's transform with its ancestors.
func (d *docImport) nodeWorlds() []mgl32.Mat4 {
	return worldTransforms(d.parents, func(i int) mgl32.Mat4 {
		return nodeLocal(d.doc.Nodes[i]).Mat4()
	})
}

// worldTransforms resolves parent chains with memoization. Cycles are cut at
// the node where they are detected.
func worldTransforms(parents []int, local func(int) mgl32.Mat4) []mgl32.Mat4 {
	worlds := make([]mgl32.Mat4, len(parents))
	state := make([]uint8, len(parents)) // 0 unvisited, 1 in progress, 2 done
	var resolve func(i int) mgl32.Mat4
	resolve = func(i int) mgl32.Mat4 {
		switch state[i] {
		case 2:
			return worlds[i]
		case 1:
			return mgl32.Ident4()
		}
		state[i] = 1
		w := local(i)
		if p := parents[i]; p >= 0 {
			w = resolve(p).Mul4(w)
		}
		worlds[i] = w
		state[i] = 2
		return w
	}
	for i := range parents {
		resolve(i)
	}
	return worlds
}

func (d *docImport) buildRig(skinIdx int) (*rig, []int, error) {
	skin := d.doc.Skins[skinIdx]
	skinJoints := toInts(skin.Joints)
	nodeToJoint := make(map[int]int, len(skinJoints))
	for j, n := range skinJoints {
		if n < 0 || n >= len(d.doc.Nodes) {
			return nil, nil, fmt.Errorf("skin %d joint %d: invalid node %d", skinIdx, j, n)
		}
		nodeToJoint[n] = j
	}

	joints := make([]skinJoint, len(skinJoints))
	rest := make([]trs, len(skinJoints))
	for j, n := range skinJoints {
		node := d.doc.Nodes[n]
		rest[j] = nodeLocal(node)
		name := node.Name
		if name == "" {
			name = fmt.Sprintf("joint_%d", j)
		}
		parent := anim.NoParent
		for p := d.parents[n]; p >= 0; p = d.parents[p] {
			if pj, ok := nodeToJoint[p]; ok {
				parent = pj
				break
			}
		}
		joints[j] = skinJoint{name: name, parent: parent, local: rest[j].Mat4()}
	}

	skel, remap, err := buildSkeleton(joints)
	if err != nil {
		return nil, nil, fmt.Errorf("skin %d: %w", skinIdx, err)
	}

	var ibm []mgl32.Mat4
	if skin.InverseBindMatrices != nil {
		if ibm, err = d.readMat4s(*skin.InverseBindMatrices); err != nil {
			return nil, nil, fmt.Errorf("skin %d inverse bind matrices: %w", skinIdx, err)
		}
	}

	worlds := d.nodeWorlds()
	r := &rig{
		skeleton:    skel,
		rest:        make([]trs, len(joints)),
		inverseBind: make([]mgl32.Mat4, len(joints)),
		rootParent:  make([]mgl32.Mat4, len(joints)),
	}
	for j, n := range skinJoints {
		a := remap[j]
		r.rest[a] = rest[j]
		r.inverseBind[a] = mgl32.Ident4()
		if j < len(ibm) {
			r.inverseBind[a] = ibm[j]
		}
		r.rootParent[a] = mgl32.Ident4()
		if skel.Joints[a].Parent == anim.NoParent {
			if p := d.parents[n]; p >= 0 {
				r.rootParent[a] = worlds[p]
			}
		}
	}
	return r, remap, nil
}

func (d *docImport) readClip(ai int, ga *gltf.Animation, skinIdx int, remap []int) (*clip, error) {
	nodeToArena := make(map[int]int)
	for j, n := range d.doc.Skins[skinIdx].Joints {
		nodeToArena[int(n)] = remap[j]
	}

	name := ga.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", ai)
	}
	c := &clip{name: name, channels: make(map[int]*jointChannels)}

	for ci, ch := range ga.Channels {
		if ch.Target.Node == nil {
			continue
		}
		joint, ok := nodeToArena[int(*ch.Target.Node)]
		if !ok {
			continue
		}
		if int(ch.Sampler) >= len(ga.Samplers) {
			return nil, fmt.Errorf("animation %q channel %d: invalid sampler %d", name, ci, ch.Sampler)
		}
		s := ga.Samplers[ch.Sampler]
		times, err := d.readFloats(s.Input)
		if err != nil {
			return nil, fmt.Errorf("animation %q channel %d times: %w", name, ci, err)
		}
		interp := interpLinear
		if s.Interpolation == gltf.InterpolationStep {
			interp = interpStep
		}
		cubic := s.Interpolation == gltf.InterpolationCubicSpline

		jc := c.channels[joint]
		if jc == nil {
			jc = &jointChannels{}
			c.channels[joint] = jc
		}

		switch ch.Target.Path {
		case gltf.TRSTranslation, gltf.TRSScale:
			vals, err := d.readVec3s(s.Output)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d values: %w", name, ci, err)
			}
			if cubic {
				vals = splineValues(vals)
			}
			tr := &vecTrack{times: times, values: vals, interp: interp}
			if ch.Target.Path == gltf.TRSTranslation {
				jc.translation = tr
			} else {
				jc.scale = tr
			}
		case gltf.TRSRotation:
			raw, err := d.readVec4s(s.Output)
			if err != nil {
				return nil, fmt.Errorf("animation %q channel %d values: %w", name, ci, err)
			}
			if cubic {
				raw = splineValues(raw)
			}
			vals := make([]mgl32.Quat, len(raw))
			for i, v := range raw {
				vals[i] = quatXYZW(v[0], v[1], v[2], v[3])
			}
			jc.rotation = &quatTrack{times: times, values: vals, interp: interp}
		}
	}
	return c, nil
}

// splineValues keeps the value element of each (in-tangent, value,
// out-tangent) triple of a cubic spline output.
func splineValues[T any](vals []T) []T {
	out := make([]T, 0, len(vals)/3)
	for i := 1; i < len(vals); i += 3 {
		out = append(out, vals[i])
	}
	return out
}

func (d *docImport) readPrimitive(prim *gltf.Primitive) (*primitive, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	doc := d.doc
	p := &primitive{}
	acr, err := d.accessor(posIdx)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	if p.positions, err = modeler.ReadPosition(doc, acr, nil); err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err = d.accessor(idx); err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		if p.normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes[gltf.TANGENT]; ok {
		if acr, err = d.accessor(idx); err != nil {
			return nil, fmt.Errorf("reading tangents: %w", err)
		}
		if p.tangents, err = modeler.ReadTangent(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading tangents: %w", err)
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err = d.accessor(idx); err != nil {
			return nil, fmt.Errorf("reading texture coordinates: %w", err)
		}
		if p.uvs, err = modeler.ReadTextureCoord(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading texture coordinates: %w", err)
		}
	}
	if idx, ok := prim.Attributes[gltf.JOINTS_0]; ok {
		if acr, err = d.accessor(idx); err != nil {
			return nil, fmt.Errorf("reading joints: %w", err)
		}
		if p.joints, err = modeler.ReadJoints(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading joints: %w", err)
		}
	}
	if idx, ok := prim.Attributes[gltf.WEIGHTS_0]; ok {
		if acr, err = d.accessor(idx); err != nil {
			return nil, fmt.Errorf("reading weights: %w", err)
		}
		if p.weights, err = modeler.ReadWeights(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading weights: %w", err)
		}
	}
	if prim.Indices != nil {
		if acr, err = d.accessor(*prim.Indices); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
		if p.indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	}
	return p, nil
}

func (d *docImport) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(d.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return d.doc.Accessors[idx], nil
}

func (d *docImport) readFloats(idx uint32) ([]float32, error) {
	acr, err := d.accessor(idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(d.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	v, ok := data.([]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: expected float scalars, got %T", idx, data)
	}
	return v, nil
}

func (d *docImport) readVec3s(idx uint32) ([]mgl32.Vec3, error) {
	acr, err := d.accessor(idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(d.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	raw, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: expected float vec3, got %T", idx, data)
	}
	out := make([]mgl32.Vec3, len(raw))
	for i, v := range raw {
		out[i] = mgl32.Vec3(v)
	}
	return out, nil
}

func (d *docImport) readVec4s(idx uint32) ([][4]float32, error) {
	acr, err := d.accessor(idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(d.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	raw, ok := data.([][4]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: expected float vec4, got %T", idx, data)
	}
	return raw, nil
}

func (d *docImport) readMat4s(idx uint32) ([]mgl32.Mat4, error) {
	acr, err := d.accessor(idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(d.doc, acr, nil)
	if err != nil {
		return nil, err
	}
	raw, ok := data.([][4][4]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: expected float mat4, got %T", idx, data)
	}
	out := make([]mgl32.Mat4, len(raw))
	for i, cols := range raw {
		out[i] = columnsToMat4(cols)
	}
	return out, nil
}

// columnsToMat4 converts glTF's column-major column arrays.
func columnsToMat4(cols [4][4]float32) mgl32.Mat4 {
	var m mgl32.Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			m[c*4+r] = cols[c][r]
		}
	}
	return m
}

func (d *docImport) loadMaterials() error {
	d.materials = make([]*model.Material, len(d.doc.Materials))
	for i, gm := range d.doc.Materials {
		m, err := d.convertMaterial(gm)
		if err != nil {
			return fmt.Errorf("material %d: %w", i, err)
		}
		d.materials[i] = m
	}
	return nil
}

// convertMaterial maps glTF metallic-roughness parameters. The packed
// metallic-roughness texture is referenced for both maps; the shader reads
// metallic from blue and roughness from green.
func (d *docImport) convertMaterial(gm *gltf.Material) (*model.Material, error) {
	m := model.NewMaterial()
	m.Metallic = 1
	m.Roughness = 1

	var err error
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			m.DiffuseColor = mgl32.Vec4{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
		}
		if pbr.MetallicFactor != nil {
			m.Metallic = float32(*pbr.MetallicFactor)
		}
		if pbr.RoughnessFactor != nil {
			m.Roughness = float32(*pbr.RoughnessFactor)
		}
		if t := pbr.BaseColorTexture; t != nil {
			if m.TexturePath, err = d.texturePath(t.Index); err != nil {
				return nil, err
			}
		}
		if t := pbr.MetallicRoughnessTexture; t != nil {
			if m.MetallicPath, err = d.texturePath(t.Index); err != nil {
				return nil, err
			}
			m.RoughnessPath = m.MetallicPath
		}
	}
	if t := gm.NormalTexture; t != nil && t.Index != nil {
		if m.NormalMapPath, err = d.texturePath(*t.Index); err != nil {
			return nil, err
		}
	}
	if t := gm.OcclusionTexture; t != nil && t.Index != nil {
		if m.AOPath, err = d.texturePath(*t.Index); err != nil {
			return nil, err
		}
		if t.Strength != nil {
			m.AOStrength = float32(*t.Strength)
		}
	}
	if t := gm.EmissiveTexture; t != nil {
		if m.EmissivePath, err = d.texturePath(t.Index); err != nil {
			return nil, err
		}
	}
	f := gm.EmissiveFactor
	m.EmissiveColor = mgl32.Vec3{float32(f[0]), float32(f[1]), float32(f[2])}
	return m, nil
}

// texturePath registers the image behind a glTF texture and returns its
// cache key. External images are keyed by file path; embedded images by the
// model file and image index.
func (d *docImport) texturePath(texIdx uint32) (string, error) {
	if int(texIdx) >= len(d.doc.Textures) {
		d.l.log.Warn("material references missing texture", zap.Uint32("texture", texIdx))
		return "", nil
	}
	tex := d.doc.Textures[texIdx]
	if tex.Source == nil || int(*tex.Source) >= len(d.doc.Images) {
		return "", nil
	}
	imgIdx := *tex.Source
	if key, ok := d.images[imgIdx]; ok {
		return key, nil
	}

	img := d.doc.Images[imgIdx]
	var key string
	switch {
	case img.BufferView != nil:
		if int(*img.BufferView) >= len(d.doc.BufferViews) {
			return "", fmt.Errorf("image %d: buffer view %d out of range", imgIdx, *img.BufferView)
		}
		data, err := modeler.ReadBufferView(d.doc, d.doc.BufferViews[*img.BufferView])
		if err != nil {
			return "", fmt.Errorf("image %d: %w", imgIdx, err)
		}
		key = embeddedKey(d.file, imgIdx)
		if err := d.createEmbedded(key, data); err != nil {
			return "", err
		}
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return "", fmt.Errorf("image %d: %w", imgIdx, err)
		}
		key = embeddedKey(d.file, imgIdx)
		if err := d.createEmbedded(key, data); err != nil {
			return "", err
		}
	default:
		uri, err := url.PathUnescape(img.URI)
		if err != nil {
			uri = img.URI
		}
		key = filepath.Join(d.dir, filepath.FromSlash(uri))
		if _, err := d.l.textures.GetOrCreate(key); err != nil {
			return "", err
		}
	}
	d.images[imgIdx] = key
	return key, nil
}

func (d *docImport) createEmbedded(key string, data []byte) error {
	rgba, err := texture.Decode(key, data)
	if err != nil {
		return err
	}
	_, err = d.l.textures.CreateFromImage(key, rgba)
	return err
}

func embeddedKey(file string, imgIdx uint32) string {
	return fmt.Sprintf("%s#image%d", file, imgIdx)
}
