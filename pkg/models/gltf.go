package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/orrery/pkg/math3d"
)

// LoadGLTF reads a .gltf or .glb file and merges every triangle primitive
// of every mesh into one Mesh.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	mesh, err := DecodeGLTF(doc, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return mesh, nil
}

// DecodeGLTF converts a parsed document. Missing normals are smoothed from
// the faces and missing texture coordinates are wrapped spherically.
func DecodeGLTF(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			p, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			if err := p.appendTo(mesh); err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, ErrNoGeometry
	}
	mesh.prepare(true)
	return mesh, nil
}

// primitive holds the decoded accessors of one glTF primitive.
type primitive struct {
	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32
	indices   []uint32
	indexed   bool
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (primitive, error) {
	var p primitive
	pos, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return p, nil
	}
	var err error
	if p.positions, err = modeler.ReadPosition(doc, doc.Accessors[pos], nil); err != nil {
		return p, fmt.Errorf("read positions: %w", err)
	}
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if p.normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return p, fmt.Errorf("read normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if p.uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return p, fmt.Errorf("read uvs: %w", err)
		}
	}
	if prim.Indices != nil {
		p.indexed = true
		if p.indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return p, fmt.Errorf("read indices: %w", err)
		}
	}
	return p, nil
}

// appendTo adds the primitive's vertices and triangles to mesh, keeping the
// counter-clockwise winding glTF specifies for front faces.
func (p primitive) appendTo(mesh *Mesh) error {
	base := len(mesh.Vertices)
	for i, pos := range p.positions {
		v := MeshVertex{Position: vec3(pos)}
		if i < len(p.normals) {
			v.Normal = vec3(p.normals[i])
		}
		if i < len(p.uvs) {
			// glTF puts V=0 at the top of the image
			v.UV = math3d.V2(float64(p.uvs[i][0]), 1-float64(p.uvs[i][1]))
		}
		mesh.AddVertex(v)
	}

	n := len(p.positions)
	corner := func(i int) (int, error) {
		if !p.indexed {
			return i, nil
		}
		if idx := int(p.indices[i]); idx < n {
			return idx, nil
		}
		return 0, fmt.Errorf("index %d out of range in triangle %d", p.indices[i], i/3)
	}
	count := n
	if p.indexed {
		count = len(p.indices)
	}
	for i := 0; i+2 < count; i += 3 {
		var tri [3]int
		for k := range tri {
			c, err := corner(i + k)
			if err != nil {
				return err
			}
			tri[k] = base + c
		}
		mesh.AddFace(tri[0], tri[1], tri[2])
	}
	return nil
}

func vec3(p [3]float32) math3d.Vec3 {
	return math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
}
