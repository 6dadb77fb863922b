package models

import (
	"fmt"

	"github.com/fogleman/simplify"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Simplify returns a decimated copy of m keeping roughly factor of its
// triangles. Normals are recomputed and texture coordinates are
// regenerated with a spherical mapping. A factor of 1 or more returns a
// clone.
func Simplify(m *Mesh, factor float64) (*Mesh, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("simplify %s: factor %v must be positive", m.Name, factor)
	}
	if factor >= 1 || len(m.Faces) == 0 {
		return m.Clone(), nil
	}

	tris := make([]*simplify.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		tris[i] = simplify.NewTriangle(
			toSimplify(m.Vertices[f[0]].Position),
			toSimplify(m.Vertices[f[1]].Position),
			toSimplify(m.Vertices[f[2]].Position),
		)
	}
	reduced := simplify.NewMesh(tris).Simplify(factor)

	out := NewMesh(m.Name)
	index := make(map[simplify.Vector]int)
	vertex := func(v simplify.Vector) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := out.AddVertex(MeshVertex{Position: math3d.V3(v.X, v.Y, v.Z)})
		index[v] = i
		return i
	}
	for _, t := range reduced.Triangles {
		if t.V1 == t.V2 || t.V2 == t.V3 || t.V1 == t.V3 {
			continue
		}
		out.AddFace(vertex(t.V1), vertex(t.V2), vertex(t.V3))
	}
	if len(out.Faces) == 0 {
		return nil, fmt.Errorf("simplify %s: %w", m.Name, ErrNoGeometry)
	}

	out.CalculateBounds()
	out.CalculateSmoothNormals()
	out.SphericalUVs()
	return out, nil
}

func toSimplify(v math3d.Vec3) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}
