package math3d

import "math"

// SingularEpsilon is the determinant magnitude below which a Mat3 is treated
// as non-invertible.
const SingularEpsilon = 1e-12

// Mat3 is a 3x3 matrix stored in column-major order, used for normal
// transforms.
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of m. ok is false, and the identity is
// returned, when m is singular.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Determinant()
	if math.Abs(det) < SingularEpsilon || math.IsNaN(det) {
		return Identity3(), false
	}
	d := 1 / det

	// Adjugate (transposed cofactors) scaled by 1/det.
	inv[0] = (m[4]*m[8] - m[7]*m[5]) * d
	inv[1] = (m[7]*m[2] - m[1]*m[8]) * d
	inv[2] = (m[1]*m[5] - m[4]*m[2]) * d
	inv[3] = (m[6]*m[5] - m[3]*m[8]) * d
	inv[4] = (m[0]*m[8] - m[6]*m[2]) * d
	inv[5] = (m[3]*m[2] - m[0]*m[5]) * d
	inv[6] = (m[3]*m[7] - m[6]*m[4]) * d
	inv[7] = (m[6]*m[1] - m[0]*m[7]) * d
	inv[8] = (m[0]*m[4] - m[3]*m[1]) * d
	return inv, true
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row+k*3] * b[k+col*3]
			}
			m[row+col*3] = sum
		}
	}
	return m
}

// MulVec3 transforms v by m.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// NormalMatrix returns transpose(inverse(m)), the matrix that carries
// surface normals through m. ok is false when m is singular, in which case
// the identity is returned.
func (m Mat3) NormalMatrix() (Mat3, bool) {
	inv, ok := m.Inverse()
	if !ok {
		return Identity3(), false
	}
	return inv.Transpose(), true
}
