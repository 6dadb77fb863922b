package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh, choosing the decoder by file extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("load %s: unsupported model format %q", path, ext)
	}
}
