package render

import "github.com/taigrr/orrery/pkg/math3d"

// Vertex is a mesh vertex. Position, Normal, TexCoords and Color are object
// space inputs. TransformedPosition (screen x, y and NDC depth) and
// TransformedNormal (world space) are only meaningful after TransformVertex.
type Vertex struct {
	Position  math3d.Vec3
	Normal    math3d.Vec3
	TexCoords math3d.Vec2
	Color     Color

	TransformedPosition math3d.Vec3
	TransformedNormal   math3d.Vec3

	// Clipped marks a vertex whose clip-space w was too small to divide by.
	Clipped bool
}

// NewVertex creates an untransformed vertex.
func NewVertex(position, normal math3d.Vec3, texCoords math3d.Vec2) Vertex {
	return Vertex{
		Position:  position,
		Normal:    normal,
		TexCoords: texCoords,
		Color:     ColorWhite,
	}
}

// Triangle is three transformed vertices in submission order.
type Triangle [3]Vertex

// Fragment is a covered pixel produced by the rasterizer for one triangle.
type Fragment struct {
	X, Y  int     // pixel coordinates
	Depth float64 // interpolated NDC depth, smaller is nearer

	// Local is the interpolated procedural reference coordinate, in [-1,1]
	// on both axes regardless of object size.
	Local math3d.Vec2

	// Normal is interpolated but not renormalized.
	Normal math3d.Vec3

	// Intensity is the lighting term in [0,1].
	Intensity float64
}

// Position returns the pixel position and depth.
func (f Fragment) Position() math3d.Vec3 {
	return math3d.V3(float64(f.X), float64(f.Y), f.Depth)
}

// Uniforms are the per-draw-call constants. A fresh value is built for each
// object each frame and must not be modified during the draw.
type Uniforms struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4
	Time       uint32 // frame counter
}

// IdentityUniforms returns uniforms whose matrices are all identity, so
// vertex positions pass through to screen space unchanged.
func IdentityUniforms() Uniforms {
	id := math3d.Identity()
	return Uniforms{Model: id, View: id, Projection: id, Viewport: id}
}
