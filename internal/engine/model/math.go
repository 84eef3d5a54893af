package model

import "github.com/go-gl/mathgl/mgl32"

func vec3At(s []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{s[i*3], s[i*3+1], s[i*3+2]}
}

func addVec3At(s []float32, i int, v mgl32.Vec3) {
	s[i*3] += v[0]
	s[i*3+1] += v[1]
	s[i*3+2] += v[2]
}

func setVec3At(s []float32, i int, v mgl32.Vec3) {
	s[i*3], s[i*3+1], s[i*3+2] = v[0], v[1], v[2]
}

// normalizeOr returns v normalized, or fallback when v is near zero length.
func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-6 {
		return fallback
	}
	return v.Normalize()
}

// orthogonal returns a unit vector perpendicular to n.
func orthogonal(n mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if n[0] > 0.9 || n[0] < -0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return normalizeOr(axis.Cross(n), mgl32.Vec3{0, 0, 1})
}
