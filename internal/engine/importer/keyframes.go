package importer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// interpolation is how a track blends between keys.
type interpolation int

const (
	interpLinear interpolation = iota
	interpStep
)

// vecTrack is a translation or scale channel.
type vecTrack struct {
	times  []float32
	values []mgl32.Vec3
	interp interpolation
}

// quatTrack is a rotation channel.
type quatTrack struct {
	times  []float32
	values []mgl32.Quat
	interp interpolation
}

// surrounding returns the keys at or before t and after t, plus the blend
// factor between them. prev == next when t is outside the key range.
func surrounding(times []float32, t float32) (prev, next int, f float32) {
	for i := range times {
		if times[i] > t {
			next = i
			break
		}
		prev = i
		next = i
	}
	if prev == next {
		return prev, next, 0
	}
	if span := times[next] - times[prev]; span > 0 {
		f = (t - times[prev]) / span
	}
	return prev, next, f
}

func (tr *vecTrack) sample(t float32, fallback mgl32.Vec3) mgl32.Vec3 {
	n := min(len(tr.times), len(tr.values))
	if n == 0 {
		return fallback
	}
	if n == 1 || t <= tr.times[0] {
		return tr.values[0]
	}
	prev, next, f := surrounding(tr.times[:n], t)
	if prev == next || tr.interp == interpStep {
		return tr.values[prev]
	}
	a, b := tr.values[prev], tr.values[next]
	return a.Add(b.Sub(a).Mul(f))
}

func (tr *quatTrack) sample(t float32, fallback mgl32.Quat) mgl32.Quat {
	n := min(len(tr.times), len(tr.values))
	if n == 0 {
		return fallback
	}
	if n == 1 || t <= tr.times[0] {
		return tr.values[0]
	}
	prev, next, f := surrounding(tr.times[:n], t)
	if prev == next || tr.interp == interpStep {
		return tr.values[prev]
	}
	return mgl32.QuatSlerp(tr.values[prev], tr.values[next], f)
}

func (tr *vecTrack) end() float32 {
	if len(tr.times) == 0 {
		return 0
	}
	return tr.times[len(tr.times)-1]
}

func (tr *quatTrack) end() float32 {
	if len(tr.times) == 0 {
		return 0
	}
	return tr.times[len(tr.times)-1]
}

// trs is a decomposed local transform.
type trs struct {
	T mgl32.Vec3
	R mgl32.Quat
	S mgl32.Vec3
}

func identityTRS() trs {
	return trs{R: mgl32.QuatIdent(), S: mgl32.Vec3{1, 1, 1}}
}

// Mat4 composes translation * rotation * scale.
func (x trs) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(x.T[0], x.T[1], x.T[2]).
		Mul4(x.R.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(x.S[0], x.S[1], x.S[2]))
}

// jointChannels holds the animated components of one joint. Nil tracks keep
// the rest pose value.
type jointChannels struct {
	translation *vecTrack
	rotation    *quatTrack
	scale       *vecTrack
}

func (c *jointChannels) sample(t float32, rest trs) trs {
	out := rest
	if c.translation != nil {
		out.T = c.translation.sample(t, rest.T)
	}
	if c.rotation != nil {
		out.R = c.rotation.sample(t, rest.R)
	}
	if c.scale != nil {
		out.S = c.scale.sample(t, rest.S)
	}
	return out
}

func (c *jointChannels) end() float32 {
	var e float32
	if c.translation != nil {
		e = max(e, c.translation.end())
	}
	if c.rotation != nil {
		e = max(e, c.rotation.end())
	}
	if c.scale != nil {
		e = max(e, c.scale.end())
	}
	return e
}
