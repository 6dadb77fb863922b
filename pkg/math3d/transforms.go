package math3d

import "math"

// Translate moves points by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m.setColumn(3, v.Homogeneous(1))
	return m
}

// Scale scales each axis independently.
func Scale(v Vec3) Mat4 {
	return columns(V4(v.X, 0, 0, 0), V4(0, v.Y, 0, 0), V4(0, 0, v.Z, 0), V4(0, 0, 0, 1))
}

// ScaleUniform scales all three axes by s.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX rotates counter-clockwise about +X by angle radians.
func RotateX(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return columns(V4(1, 0, 0, 0), V4(0, c, s, 0), V4(0, -s, c, 0), V4(0, 0, 0, 1))
}

// RotateY rotates counter-clockwise about +Y by angle radians.
func RotateY(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return columns(V4(c, 0, -s, 0), V4(0, 1, 0, 0), V4(s, 0, c, 0), V4(0, 0, 0, 1))
}

// RotateZ rotates counter-clockwise about +Z by angle radians.
func RotateZ(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	return columns(V4(c, s, 0, 0), V4(-s, c, 0, 0), V4(0, 0, 1, 0), V4(0, 0, 0, 1))
}

// RotateEuler composes Euler rotations as Rz * Ry * Rx, so X is applied first.
func RotateEuler(r Vec3) Mat4 {
	return RotateZ(r.Z).Mul(RotateY(r.Y)).Mul(RotateX(r.X))
}

// TRS builds the model transform T * S * Rz * Ry * Rx for a uniform scale.
func TRS(translation Vec3, scale float64, rotation Vec3) Mat4 {
	return Translate(translation).Mul(ScaleUniform(scale)).Mul(RotateEuler(rotation))
}

// LookAt builds a right-handed view matrix that places eye at the origin
// looking down -Z towards center.
func LookAt(eye, center, up Vec3) Mat4 {
	forward := center.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)

	return columns(
		V4(right.X, trueUp.X, -forward.X, 0),
		V4(right.Y, trueUp.Y, -forward.Y, 0),
		V4(right.Z, trueUp.Z, -forward.Z, 0),
		V4(-right.Dot(eye), -trueUp.Dot(eye), forward.Dot(eye), 1),
	)
}

// Perspective builds an OpenGL style projection. fovy is the vertical field
// of view in radians and aspect is width/height. The near plane maps to NDC
// z = -1 and the far plane to +1; clip w is the view-space distance -z.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	depth := 1 / (near - far)
	return columns(
		V4(f/aspect, 0, 0, 0),
		V4(0, f, 0, 0),
		V4(0, 0, (far+near)*depth, -1),
		V4(0, 0, 2*far*near*depth, 0),
	)
}

// Orthographic maps the given box onto the NDC cube with w = 1.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	w, h, d := right-left, top-bottom, far-near
	return columns(
		V4(2/w, 0, 0, 0),
		V4(0, 2/h, 0, 0),
		V4(0, 0, -2/d, 0),
		V4(-(right+left)/w, -(top+bottom)/h, -(far+near)/d, 1),
	)
}

// Viewport maps NDC onto a width x height pixel grid with y growing
// downward: x in [-1,1] to [0,width], y in [-1,1] to [height,0]. Depth
// passes through unchanged.
func Viewport(width, height float64) Mat4 {
	hw, hh := width/2, height/2
	return columns(V4(hw, 0, 0, 0), V4(0, -hh, 0, 0), V4(0, 0, 1, 0), V4(hw, hh, 0, 1))
}
