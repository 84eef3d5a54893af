package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxBones is the size of every bone matrix array uploaded to shaders.
const MaxBones = 150

// Frame holds one pose: exactly MaxBones matrices.
type Frame struct {
	Bones []mgl32.Mat4
}

// NewFrame returns a frame filled with zero matrices.
func NewFrame() Frame {
	return Frame{Bones: make([]mgl32.Mat4, MaxBones)}
}

// Animation is a named sequence of precomputed frames.
type Animation struct {
	Name     string
	Duration float64 // seconds
	Frames   []Frame
}

var zeroBones = make([]mgl32.Mat4, MaxBones)

// ZeroBones returns the shared bone array used for static entities.
// Callers must not modify it.
func ZeroBones() []mgl32.Mat4 {
	return zeroBones
}

// AnimationData binds an entity to one animation and tracks its playback.
type AnimationData struct {
	animation   *Animation
	currentTime float64
	Speed       float64
	Interpolate bool

	blended []mgl32.Mat4
}

// NewAnimationData starts playback of a at time zero with speed 1 and
// interpolation enabled.
func NewAnimationData(a *Animation) *AnimationData {
	return &AnimationData{
		animation:   a,
		Speed:       1,
		Interpolate: true,
		blended:     make([]mgl32.Mat4, MaxBones),
	}
}

// Animation returns the bound animation.
func (d *AnimationData) Animation() *Animation {
	return d.animation
}

// SetAnimation switches to a and rewinds to the start.
func (d *AnimationData) SetAnimation(a *Animation) {
	d.animation = a
	d.currentTime = 0
}

// CurrentTime returns the timeline position in seconds.
func (d *AnimationData) CurrentTime() float64 {
	return d.currentTime
}

// SetCurrentTime places the timeline position, clamped to [0, duration].
func (d *AnimationData) SetCurrentTime(t float64) {
	if d.animation == nil {
		return
	}
	d.currentTime = math.Max(0, math.Min(t, d.animation.Duration))
}

// NextFrame advances the timeline by dt*Speed. Passing the end rewinds to
// exactly zero; the overshoot is discarded.
func (d *AnimationData) NextFrame(dt float64) {
	if d.animation == nil {
		return
	}
	d.currentTime += dt * d.Speed
	if d.currentTime > d.animation.Duration {
		d.currentTime = 0
	}
}

// CurrentFrameIndex maps the timeline position to a stored frame.
func (d *AnimationData) CurrentFrameIndex() int {
	if d.animation == nil {
		return 0
	}
	n := len(d.animation.Frames)
	if n == 0 || d.animation.Duration <= 0 {
		return 0
	}
	idx := int(math.Floor(d.currentTime * float64(n) / d.animation.Duration))
	if idx > n-1 {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// NextFrameIndex is the frame after the current one, wrapping to zero.
func (d *AnimationData) NextFrameIndex() int {
	if d.animation == nil || len(d.animation.Frames) == 0 {
		return 0
	}
	return (d.CurrentFrameIndex() + 1) % len(d.animation.Frames)
}

// Factor is the progress inside the current frame slot, in [0, 1).
func (d *AnimationData) Factor() float32 {
	if d.animation == nil || len(d.animation.Frames) == 0 || d.animation.Duration <= 0 {
		return 0
	}
	frameDuration := d.animation.Duration / float64(len(d.animation.Frames))
	return float32(math.Mod(d.currentTime, frameDuration) / frameDuration)
}

// CurrentFrame returns the raw stored frame at the timeline position.
func (d *AnimationData) CurrentFrame() *Frame {
	if d.animation == nil || len(d.animation.Frames) == 0 {
		return nil
	}
	return &d.animation.Frames[d.CurrentFrameIndex()]
}

// BoneMatrices returns the pose to upload. With interpolation enabled the
// current and next frames are blended element by element; otherwise the
// stored frame is returned as is. The returned slice is reused by later calls.
func (d *AnimationData) BoneMatrices() []mgl32.Mat4 {
	cur := d.CurrentFrame()
	if cur == nil {
		return ZeroBones()
	}
	if !d.Interpolate {
		return cur.Bones
	}

	next := &d.animation.Frames[d.NextFrameIndex()]
	f := d.Factor()
	if d.blended == nil {
		d.blended = make([]mgl32.Mat4, MaxBones)
	}
	for i := range d.blended {
		if i >= len(cur.Bones) || i >= len(next.Bones) {
			d.blended[i] = mgl32.Mat4{}
			continue
		}
		d.blended[i] = lerpMat4(cur.Bones[i], next.Bones[i], f)
	}
	return d.blended
}

func lerpMat4(a, b mgl32.Mat4, f float32) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*f
	}
	return out
}
