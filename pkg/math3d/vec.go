// Package math3d provides the vector and matrix types used by the orrery
// renderer. Matrices are column-major float64, following OpenGL conventions.
package math3d

import "math"

// Vec2 is a texture or reference-square coordinate.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a point, direction or normal.
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 is a homogeneous position, usually in clip space.
type Vec4 struct {
	X, Y, Z, W float64
}

// V2, V3 and V4 are shorthand constructors.
func V2(x, y float64) Vec2 { return Vec2{x, y} }
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }
func V4(x, y, z, w float64) Vec4 { return Vec4{x, y, z, w} }

// Up is the world up axis, +Y.
func Up() Vec3 { return Vec3{Y: 1} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Len() float64 { return math.Hypot(a.X, a.Y) }
func (a Vec2) Distance(b Vec2) float64 { return a.Sub(b).Len() }
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Negate() Vec3 { return Vec3{-a.X, -a.Y, -a.Z} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }
func (a Vec3) Distance(b Vec3) float64 { return a.Sub(b).Len() }
func (a Vec3) Min(b Vec3) Vec3 { return Vec3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)} }
func (a Vec3) Max(b Vec3) Vec3 { return Vec3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)} }
func (v Vec4) Scale(s float64) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }
func (v Vec4) XYZ() Vec3 { return Vec3{v.X, v.Y, v.Z} }
func (a Vec3) Homogeneous(w float64) Vec4 { return Vec4{a.X, a.Y, a.Z, w} }

// Cross returns the right-handed cross product a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Normalize returns a unit vector, or the zero vector unchanged.
func (a Vec3) Normalize() Vec3 {
	if l := a.Len(); l != 0 {
		return a.Scale(1 / l)
	}
	return Vec3{}
}

// IsFinite reports whether no component is NaN or infinite.
func (a Vec3) IsFinite() bool {
	return finite(a.X) && finite(a.Y) && finite(a.Z)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Divide performs the perspective divide. ok is false when W is below minW,
// which covers points on or behind the eye plane.
func (v Vec4) Divide(minW float64) (ndc Vec3, ok bool) {
	if v.W < minW {
		return Vec3{}, false
	}
	return v.XYZ().Scale(1 / v.W), true
}

// Blend3 weights three values by barycentric coordinates.
func Blend3(a, b, c Vec3, wa, wb, wc float64) Vec3 {
	return Vec3{
		a.X*wa + b.X*wb + c.X*wc,
		a.Y*wa + b.Y*wb + c.Y*wc,
		a.Z*wa + b.Z*wb + c.Z*wc,
	}
}

// Blend2 is Blend3 for Vec2.
func Blend2(a, b, c Vec2, wa, wb, wc float64) Vec2 {
	return Vec2{
		a.X*wa + b.X*wb + c.X*wc,
		a.Y*wa + b.Y*wb + c.Y*wc,
	}
}
