// Package models provides the meshes drawn by the renderer: OBJ and glTF
// loading, procedural spheres and rings, and decimation.
package models

import (
	"errors"
	"math"
	"slices"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// ErrNoGeometry is returned when a model file contains no triangles.
var ErrNoGeometry = errors.New("no triangles")

// Mesh is an indexed triangle mesh with counter-clockwise front faces.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face
	Bounds   render.AABB
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle of indices into Mesh.Vertices.
type Face [3]int

func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v MeshVertex) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{a, b, c})
}

// CalculateBounds refits Bounds to the vertex positions. An empty mesh gets
// a zero box.
func (m *Mesh) CalculateBounds() {
	m.Bounds = render.AABB{}
	for i, v := range m.Vertices {
		if i == 0 {
			m.Bounds = render.NewAABB(v.Position, v.Position)
			continue
		}
		m.Bounds.Min = m.Bounds.Min.Min(v.Position)
		m.Bounds.Max = m.Bounds.Max.Max(v.Position)
	}
}

func (m *Mesh) TriangleCount() int { return len(m.Faces) }
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// HasNormals reports whether any vertex carries a usable normal.
func (m *Mesh) HasNormals() bool {
	return slices.ContainsFunc(m.Vertices, func(v MeshVertex) bool {
		return v.Normal.Len() > 1e-3
	})
}

// HasUVs reports whether any vertex carries a non-zero texture coordinate.
func (m *Mesh) HasUVs() bool {
	return slices.ContainsFunc(m.Vertices, func(v MeshVertex) bool {
		return v.UV != (math3d.Vec2{})
	})
}

// faceNormal returns the unnormalized normal of face f (length is twice
// the face area).
func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f[0]].Position
	v1 := m.Vertices[f[1]].Position
	v2 := m.Vertices[f[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// CalculateNormals assigns each face's normal to its vertices. Shared
// vertices end up with the normal of the last face that uses them.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		n := m.faceNormal(f).Normalize()
		for _, i := range f {
			m.Vertices[i].Normal = n
		}
	}
}

// CalculateSmoothNormals computes area-weighted averaged vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}
	for _, f := range m.Faces {
		n := m.faceNormal(f)
		for _, i := range f {
			m.Vertices[i].Normal = m.Vertices[i].Normal.Add(n)
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// SphericalUVs derives texture coordinates from each vertex's direction
// from the bounding box center: U from longitude, V from latitude.
func (m *Mesh) SphericalUVs() {
	c := m.Bounds.Center()
	for i := range m.Vertices {
		d := m.Vertices[i].Position.Sub(c).Normalize()
		u := math.Atan2(d.X, d.Z) / (2 * math.Pi)
		if u < 0 {
			u++
		}
		v := 0.5 - math.Asin(math.Max(-1, math.Min(1, d.Y)))/math.Pi
		m.Vertices[i].UV = math3d.V2(u, v)
	}
}

// Normalize recenters the mesh on the origin and scales it so its largest
// half-extent is 1.
func (m *Mesh) Normalize() {
	m.CalculateBounds()
	e := m.Bounds.HalfExtents()
	extent := max(e.X, e.Y, e.Z)
	if extent == 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(1 / extent).Mul(math3d.Translate(m.Bounds.Center().Negate())))
}

// Transform applies a transformation matrix to all vertices. Normals use
// the inverse-transpose of the linear part.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm, _ := render.NormalMatrix(mat)
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulPoint(m.Vertices[i].Position)
		m.Vertices[i].Normal = nm.MulVec3(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = slices.Clone(m.Vertices)
	c.Faces = slices.Clone(m.Faces)
	return &c
}

// VertexArray flattens the mesh into the non-indexed triangle list the
// pipeline consumes: three vertices per face, in face order.
func (m *Mesh) VertexArray() []render.Vertex {
	out := make([]render.Vertex, 0, 3*len(m.Faces))
	for _, f := range m.Faces {
		for _, i := range f {
			v := m.Vertices[i]
			out = append(out, render.NewVertex(v.Position, v.Normal, v.UV))
		}
	}
	return out
}

// prepare fills in missing normals and texture coordinates and computes
// bounds. Loaders call it before returning a mesh.
func (m *Mesh) prepare(smooth bool) {
	m.CalculateBounds()
	if !m.HasNormals() {
		if smooth {
			m.CalculateSmoothNormals()
		} else {
			m.CalculateNormals()
		}
	}
	if !m.HasUVs() {
		m.SphericalUVs()
	}
}
