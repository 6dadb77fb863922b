package math3d

// Mat4 is a 4x4 matrix in column-major order: element (row, col) lives at
// index row+4*col, so m[12], m[13], m[14] hold the translation.
type Mat4 [16]float64

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return columns(V4(1, 0, 0, 0), V4(0, 1, 0, 0), V4(0, 0, 1, 0), V4(0, 0, 0, 1))
}

// columns assembles a matrix from its four columns.
func columns(x, y, z, w Vec4) Mat4 {
	return Mat4{
		x.X, x.Y, x.Z, x.W,
		y.X, y.Y, y.Z, y.W,
		z.X, z.Y, z.Z, z.W,
		w.X, w.Y, w.Z, w.W,
	}
}

// Mul returns the product a * b, which applies b first.
//
//nolint:st1016 // a*b reads as the math
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for col := range 4 {
		out.setColumn(col, a.MulVec4(b.column(col)))
	}
	return out
}

func (m Mat4) column(i int) Vec4 {
	return Vec4{m[4*i], m[4*i+1], m[4*i+2], m[4*i+3]}
}

func (m *Mat4) setColumn(i int, v Vec4) {
	m[4*i], m[4*i+1], m[4*i+2], m[4*i+3] = v.X, v.Y, v.Z, v.W
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for i, s := range [4]float64{v.X, v.Y, v.Z, v.W} {
		c := m.column(i)
		out.X += c.X * s
		out.Y += c.Y * s
		out.Z += c.Z * s
		out.W += c.W * s
	}
	return out
}

// MulPoint applies m to p with w = 1 and drops the resulting w without
// dividing. Use it for affine transforms only.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return m.MulVec4(p.Homogeneous(1)).XYZ()
}

// Mat3 returns the upper-left linear block.
func (m Mat4) Mat3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}
