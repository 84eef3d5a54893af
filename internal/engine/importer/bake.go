package importer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/anim"
)

// DefaultSampleRate is the number of baked frames per second of animation.
const DefaultSampleRate = 30

// rig is everything needed to pose a skeleton, indexed by arena joint.
type rig struct {
	skeleton    *anim.Skeleton
	rest        []trs
	inverseBind []mgl32.Mat4
	// rootParent is the static world transform above each root joint.
	rootParent []mgl32.Mat4
}

// clip is one animation's channels, indexed by arena joint.
type clip struct {
	name     string
	channels map[int]*jointChannels
}

func (c *clip) duration() float32 {
	var d float32
	for _, ch := range c.channels {
		d = max(d, ch.end())
	}
	return d
}

// frameCount returns how many frames a clip of duration seconds bakes to at
// sampleRate. At least one frame is always produced.
func frameCount(duration float32, sampleRate float64) int {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	n := int(math.Ceil(float64(duration) * sampleRate))
	if n < 1 {
		n = 1
	}
	return n
}

// pose computes the bone matrices of r at time t.
func (r *rig) pose(c *clip, t float32, bones []mgl32.Mat4) {
	r.skeleton.Walk(func(idx int) mgl32.Mat4 {
		local := r.rest[idx]
		if ch, ok := c.channels[idx]; ok {
			local = ch.sample(t, local)
		}
		m := local.Mat4()
		if r.skeleton.Joints[idx].Parent == anim.NoParent {
			m = r.rootParent[idx].Mul4(m)
		}
		return m
	}, func(idx int, global mgl32.Mat4) {
		if idx < len(bones) {
			bones[idx] = global.Mul4(r.inverseBind[idx])
		}
	})
}

// bake samples c into precomputed frames. Frame i is posed at the start of
// its slot, i*duration/n, matching how AnimationData maps time to frames.
func (r *rig) bake(c *clip, sampleRate float64) *anim.Animation {
	duration := c.duration()
	n := frameCount(duration, sampleRate)
	a := &anim.Animation{
		Name:     c.name,
		Duration: float64(duration),
		Frames:   make([]anim.Frame, n),
	}
	for i := range a.Frames {
		a.Frames[i] = anim.NewFrame()
		t := duration * float32(i) / float32(n)
		r.pose(c, t, a.Frames[i].Bones)
	}
	return a
}
