package importer

import "github.com/go-gl/mathgl/mgl32"

// quatXYZW builds a quaternion from glTF's x, y, z, w order.
func quatXYZW(x, y, z, w float32) mgl32.Quat {
	return mgl32.Quat{W: w, V: mgl32.Vec3{x, y, z}}
}

// decompose splits an affine matrix without shear into TRS.
func decompose(m mgl32.Mat4) trs {
	out := identityTRS()
	out.T = mgl32.Vec3{m[12], m[13], m[14]}

	sx := mgl32.Vec3{m[0], m[1], m[2]}.Len()
	sy := mgl32.Vec3{m[4], m[5], m[6]}.Len()
	sz := mgl32.Vec3{m[8], m[9], m[10]}.Len()
	out.S = mgl32.Vec3{sx, sy, sz}

	safe := func(s float32) float32 {
		if s < 1e-6 {
			return 1
		}
		return s
	}
	sx, sy, sz = safe(sx), safe(sy), safe(sz)
	rot := mgl32.Mat4{
		m[0] / sx, m[1] / sx, m[2] / sx, 0,
		m[4] / sy, m[5] / sy, m[6] / sy, 0,
		m[8] / sz, m[9] / sz, m[10] / sz, 0,
		0, 0, 0, 1,
	}
	out.R = mgl32.Mat4ToQuat(rot).Normalize()
	return out
}
