package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// Mesh references understood besides model file paths.
const (
	MeshSphere = "sphere"
	MeshRing   = "ring"
)

// AnchorCamera pins a body in front of the camera eye instead of an orbit.
const AnchorCamera = "camera"

// Body describes one drawable object of the scene. Speeds are radians per
// frame; the frame counter in Uniforms.Time is the clock.
type Body struct {
	Name     string  `toml:"name" yaml:"name"`
	Mesh     string  `toml:"mesh" yaml:"mesh"`
	Material string  `toml:"material" yaml:"material"`
	Scale    float64 `toml:"scale" yaml:"scale"`

	OrbitRadius   float64 `toml:"orbit_radius,omitempty" yaml:"orbit_radius,omitempty"`
	OrbitSpeed    float64 `toml:"orbit_speed,omitempty" yaml:"orbit_speed,omitempty"`
	RotationSpeed float64 `toml:"rotation_speed,omitempty" yaml:"rotation_speed,omitempty"`
	Phase         float64 `toml:"phase,omitempty" yaml:"phase,omitempty"`

	// Parent names an earlier body whose position is the orbit center.
	Parent string `toml:"parent,omitempty" yaml:"parent,omitempty"`
	// Offset is added to the orbit position. For camera-anchored bodies X
	// and Y are along the view's right and up vectors.
	Offset [3]float64 `toml:"offset,omitempty" yaml:"offset,omitempty"`
	// Tilt is a fixed Euler rotation (radians) added to the spin.
	Tilt [3]float64 `toml:"tilt,omitempty" yaml:"tilt,omitempty"`

	// Simplify, when in (0, 1), decimates a loaded model to that fraction
	// of its triangles.
	Simplify float64 `toml:"simplify,omitempty" yaml:"simplify,omitempty"`

	Anchor   string  `toml:"anchor,omitempty" yaml:"anchor,omitempty"`
	Distance float64 `toml:"distance,omitempty" yaml:"distance,omitempty"`
	Hidden   bool    `toml:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// ModelMatrix composes translation, uniform scale and Euler rotation as
// T * S * Rz * Ry * Rx.
func ModelMatrix(translation math3d.Vec3, scale float64, rotation math3d.Vec3) math3d.Mat4 {
	return math3d.TRS(translation, scale, rotation)
}

// OrbitPosition returns the body's position at frame t around center.
func (b *Body) OrbitPosition(center math3d.Vec3, t float64) math3d.Vec3 {
	a := t*b.OrbitSpeed + b.Phase
	return center.Add(math3d.V3(
		b.OrbitRadius*math.Cos(a)+b.Offset[0],
		b.Offset[1],
		b.OrbitRadius*math.Sin(a)+b.Offset[2],
	))
}

// AnchoredPosition returns the position of a camera-anchored body:
// Distance along the view direction, shifted by Offset in view space.
func (b *Body) AnchoredPosition(cam *render.Camera) math3d.Vec3 {
	up := cam.Right().Cross(cam.Forward())
	return cam.Eye.
		Add(cam.Forward().Scale(b.Distance)).
		Add(cam.Right().Scale(b.Offset[0])).
		Add(up.Scale(b.Offset[1]))
}

// Rotation returns the Euler rotation at frame t.
func (b *Body) Rotation(t float64) math3d.Vec3 {
	return math3d.V3(b.Tilt[0], b.Tilt[1]+t*b.RotationSpeed, b.Tilt[2])
}
