package render

import "github.com/taigrr/orrery/pkg/math3d"

// MinW is the smallest clip-space w accepted by the perspective divide.
// Vertices at or behind the eye plane fall below it and are marked Clipped.
const MinW = 1e-6

// NormalMatrix returns transpose(inverse(mat3(model))). ok is false, and the
// identity is returned, when the linear part of model is singular.
func NormalMatrix(model math3d.Mat4) (math3d.Mat3, bool) {
	return model.Mat3().NormalMatrix()
}

// TransformVertex carries v from object space to screen space using
// Projection * View * Model followed by the perspective divide and Viewport.
// The input is not modified.
func TransformVertex(v Vertex, u *Uniforms) Vertex {
	mvp := u.Projection.Mul(u.View).Mul(u.Model)
	nm, _ := NormalMatrix(u.Model)
	return transformVertex(v, mvp, nm, u.Viewport)
}

// transformVertex is TransformVertex with the per-draw matrices hoisted.
func transformVertex(v Vertex, mvp math3d.Mat4, normalMatrix math3d.Mat3, viewport math3d.Mat4) Vertex {
	out := v
	out.TransformedNormal = normalMatrix.MulVec3(v.Normal)
	ndc, ok := mvp.MulVec4(v.Position.Homogeneous(1)).Divide(MinW)
	out.Clipped = !ok
	if ok {
		out.TransformedPosition = viewport.MulPoint(ndc)
	} else {
		out.TransformedPosition = math3d.Vec3{}
	}
	return out
}

// AssembleTriangles groups consecutive transformed vertices into triangles.
// A trailing group of one or two vertices is dropped.
func AssembleTriangles(vertices []Vertex) []Triangle {
	tris := make([]Triangle, 0, len(vertices)/3)
	for i := 0; i+2 < len(vertices); i += 3 {
		tris = append(tris, Triangle{vertices[i], vertices[i+1], vertices[i+2]})
	}
	return tris
}
