package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Containment is the result of testing a volume against a Frustum.
type Containment int

const (
	Outside Containment = iota
	Intersecting
	Inside
)

func (c Containment) String() string {
	switch c {
	case Outside:
		return "outside"
	case Intersecting:
		return "intersecting"
	case Inside:
		return "inside"
	}
	return "unknown"
}

// Plane is the plane Normal·p + D = 0. Points on the Normal side have
// positive distance.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// NewPlane scales n and d so the normal has unit length. A zero normal is
// kept as is.
func NewPlane(n math3d.Vec3, d float64) Plane {
	if l := n.Len(); l != 0 {
		return Plane{Normal: n.Scale(1 / l), D: d / l}
	}
	return Plane{Normal: n, D: d}
}

// Distance returns the signed distance from the plane to p.
func (p Plane) Distance(pt math3d.Vec3) float64 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum indices into Planes.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum is the view volume as six inward-facing planes.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix extracts the planes of a view-projection matrix by
// adding and subtracting its rows from the w row (Gribb/Hartmann).
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) math3d.Vec4 {
		return math3d.V4(m[i], m[i+4], m[i+8], m[i+12])
	}
	w := row(3)

	var f Frustum
	for axis := range 3 {
		r := row(axis)
		f.Planes[2*axis] = NewPlane(w.XYZ().Add(r.XYZ()), w.W+r.W)
		f.Planes[2*axis+1] = NewPlane(w.XYZ().Sub(r.XYZ()), w.W-r.W)
	}
	return f
}

// ContainsPoint reports whether p is on the inner side of every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// ClassifySphere tests a bounding sphere against the frustum.
func (f Frustum) ClassifySphere(center math3d.Vec3, radius float64) Containment {
	result := Inside
	for _, plane := range f.Planes {
		d := plane.Distance(center)
		if d < -radius {
			return Outside
		}
		if d < radius {
			result = Intersecting
		}
	}
	return result
}

// ClassifyAABB tests box against the frustum using the box's projected
// radius on each plane normal. Boxes near a frustum corner may be reported
// Intersecting while lying fully outside; Outside is always exact.
func (f Frustum) ClassifyAABB(box AABB) Containment {
	c, e := box.Center(), box.HalfExtents()
	result := Inside
	for _, plane := range f.Planes {
		n := plane.Normal
		r := e.X*math.Abs(n.X) + e.Y*math.Abs(n.Y) + e.Z*math.Abs(n.Z)
		d := plane.Distance(c)
		if d < -r {
			return Outside
		}
		if d < r {
			result = Intersecting
		}
	}
	return result
}

// IntersectAABB reports whether any part of box may be visible.
func (f Frustum) IntersectAABB(box AABB) bool {
	return f.ClassifyAABB(box) != Outside
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b AABB) HalfExtents() math3d.Vec3 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// Radius is the radius of the sphere through the box corners.
func (b AABB) Radius() float64 {
	return b.HalfExtents().Len()
}

// Transform returns the tightest box around b after the affine transform m.
// Each output half-extent is the absolute linear part of m applied to the
// input half-extents.
func (b AABB) Transform(m math3d.Mat4) AABB {
	c := m.MulPoint(b.Center())
	e := b.HalfExtents()
	lin := m.Mat3()
	var out math3d.Vec3
	out.X = math.Abs(lin[0])*e.X + math.Abs(lin[3])*e.Y + math.Abs(lin[6])*e.Z
	out.Y = math.Abs(lin[1])*e.X + math.Abs(lin[4])*e.Y + math.Abs(lin[7])*e.Z
	out.Z = math.Abs(lin[2])*e.X + math.Abs(lin[5])*e.Y + math.Abs(lin[8])*e.Z
	return AABB{Min: c.Sub(out), Max: c.Add(out)}
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
