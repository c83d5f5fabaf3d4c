package raster

import "math"

// Mat4 is a column-major 4x4 matrix, indexed m[col*4+row] — the
// convention a vertex shader's clip-position multiply expects.
type Mat4 [16]float32

// Frustum bundles the parameters of a perspective projection.
// FovYRadians is the full vertical field of view.
type Frustum struct {
	FovYRadians float32
	Aspect      float32
	Near, Far   float32
}

// Perspective builds a right-handed perspective projection matrix
// mapping view-space Z in [-Near,-Far] to a clip-space position whose
// NDC depth (Z/W after perspective divide) lands in [0,1] — Near maps
// to 0, Far maps to 1. The rasterizer discards any fragment whose
// interpolated depth falls outside that range, so a vertex shader
// must not hand it a matrix using the OpenGL-style [-1,1] convention.
func (f Frustum) Perspective() Mat4 {
	tanHalfFovy := float32(math.Tan(float64(f.FovYRadians) / 2))
	var m Mat4
	m[0] = 1 / (f.Aspect * tanHalfFovy)
	m[5] = 1 / tanHalfFovy
	m[10] = -f.Far / (f.Far - f.Near)
	m[11] = -1
	m[14] = -(f.Far * f.Near) / (f.Far - f.Near)
	return m
}

// MulVec4 applies m to v, treating v as a column vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Mul returns a*b (a applied after b, i.e. (a*b)*v == a*(b*v)).
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// LookAt builds a right-handed view matrix for an eye looking toward
// center with the given up vector.
func LookAt(eye, center, up [3]float32) Mat4 {
	fx, fy, fz := normalize3(sub3(center, eye))
	cx, cy, cz := cross3(fx, fy, fz, up[0], up[1], up[2])
	sx, sy, sz := normalize3([3]float32{cx, cy, cz})
	ux, uy, uz := cross3(sx, sy, sz, fx, fy, fz)

	var m Mat4
	m[0], m[4], m[8] = sx, sy, sz
	m[1], m[5], m[9] = ux, uy, uz
	m[2], m[6], m[10] = -fx, -fy, -fz
	m[15] = 1
	m[12] = -(sx*eye[0] + sy*eye[1] + sz*eye[2])
	m[13] = -(ux*eye[0] + uy*eye[1] + uz*eye[2])
	m[14] = fx*eye[0] + fy*eye[1] + fz*eye[2]
	return m
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross3(ax, ay, az, bx, by, bz float32) (float32, float32, float32) {
	return ay*bz - az*by, az*bx - ax*bz, ax*by - ay*bx
}

func normalize3(v [3]float32) (float32, float32, float32) {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return 0, 0, 0
	}
	return v[0] / l, v[1] / l, v[2] / l
}
