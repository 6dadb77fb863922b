package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/orrery/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := LoadOBJFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// objKey identifies a unique position/uv/normal combination.
type objKey struct{ v, vt, vn int }

// LoadOBJFromReader parses OBJ data. Polygons are fan triangulated, and
// vertices sharing the same position/uv/normal triple are deduplicated.
func LoadOBJFromReader(r io.Reader) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		uvs       []math3d.Vec2
		normals   []math3d.Vec3
	)
	mesh := NewMesh("obj")
	seen := make(map[objKey]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, math3d.V3(p[0], p[1], p[2]))
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, math3d.V2(p[0], p[1]))
		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, math3d.V3(p[0], p[1], p[2]))
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				key, err := parseFaceRef(ref, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				i, ok := seen[key]
				if !ok {
					v := MeshVertex{Position: positions[key.v]}
					if key.vt >= 0 {
						v.UV = uvs[key.vt]
					}
					if key.vn >= 0 {
						v.Normal = normals[key.vn]
					}
					i = mesh.AddVertex(v)
					seen[key] = i
				}
				idx = append(idx, i)
			}
			for i := 1; i+1 < len(idx); i++ {
				mesh.AddFace(idx[0], idx[i], idx[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	if len(mesh.Faces) == 0 {
		return nil, ErrNoGeometry
	}

	mesh.prepare(true)
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", fields[i], err)
		}
		out[i] = f
	}
	return out, nil
}

// parseFaceRef parses a v, v/vt, v//vn or v/vt/vn reference into zero-based
// indices, -1 marking an absent attribute.
func parseFaceRef(ref string, nv, nvt, nvn int) (objKey, error) {
	parts := strings.Split(ref, "/")
	key := objKey{v: -1, vt: -1, vn: -1}
	var err error
	if key.v, err = fixIndex(parts[0], nv); err != nil {
		return key, err
	}
	if key.v < 0 {
		return key, fmt.Errorf("face reference %q has no position", ref)
	}
	if len(parts) > 1 {
		if key.vt, err = fixIndex(parts[1], nvt); err != nil {
			return key, err
		}
	}
	if len(parts) > 2 {
		if key.vn, err = fixIndex(parts[2], nvn); err != nil {
			return key, err
		}
	}
	return key, nil
}

// fixIndex resolves a one-based or negative (relative) OBJ index against
// n defined elements. An empty string yields -1.
func fixIndex(s string, n int) (int, error) {
	if s == "" {
		return -1, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("parse index %q: %w", s, err)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return -1, fmt.Errorf("index %d out of range (have %d)", i, n)
}
