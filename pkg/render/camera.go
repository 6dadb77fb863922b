package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// MinCameraDistance is the closest the eye may get to the orbit center.
const MinCameraDistance = 0.5

// MaxCameraPitch keeps the eye off the poles, where LookAt degenerates.
const MaxCameraPitch = math.Pi/2 - 0.01

// Camera is an orbit camera: the eye circles Center at a distance, looking
// at it. View and projection matrices are cached until a setter changes
// them.
type Camera struct {
	Eye    math3d.Vec3
	Center math3d.Vec3
	Up     math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	viewDirty  bool
	projDirty  bool
}

// NewCamera creates a camera at eye looking at center, with a 45 degree
// field of view and clip planes at 0.1 and 1000.
func NewCamera(eye, center, up math3d.Vec3) *Camera {
	return &Camera{
		Eye:         eye,
		Center:      center,
		Up:          up,
		FOV:         math.Pi / 4,
		AspectRatio: 1,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) {
		return
	}
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Forward returns the unit direction from the eye toward the center.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Center.Sub(c.Eye).Normalize()
}

// Right returns the unit right direction of the view.
func (c *Camera) Right() math3d.Vec3 {
	return c.Forward().Cross(c.Up).Normalize()
}

// Spherical returns the eye position relative to Center as yaw (around Y),
// pitch (elevation) and distance.
func (c *Camera) Spherical() (yaw, pitch, distance float64) {
	d := c.Eye.Sub(c.Center)
	distance = d.Len()
	if distance == 0 {
		return 0, 0, 0
	}
	yaw = math.Atan2(d.X, d.Z)
	pitch = math.Asin(math.Max(-1, math.Min(1, d.Y/distance)))
	return yaw, pitch, distance
}

// SetSpherical places the eye at the given yaw, pitch and distance from
// Center. Pitch is clamped short of the poles and distance to
// MinCameraDistance.
func (c *Camera) SetSpherical(yaw, pitch, distance float64) {
	pitch = math.Max(-MaxCameraPitch, math.Min(MaxCameraPitch, pitch))
	distance = math.Max(MinCameraDistance, distance)
	c.Eye = c.Center.Add(math3d.V3(
		distance*math.Cos(pitch)*math.Sin(yaw),
		distance*math.Sin(pitch),
		distance*math.Cos(pitch)*math.Cos(yaw),
	))
	c.viewDirty = true
}

// Orbit rotates the eye around Center by the given angles (in radians).
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	yaw, pitch, dist := c.Spherical()
	c.SetSpherical(yaw+deltaYaw, pitch+deltaPitch, dist)
}

// Zoom moves the eye toward Center by amount (away if negative).
func (c *Camera) Zoom(amount float64) {
	yaw, pitch, dist := c.Spherical()
	c.SetSpherical(yaw, pitch, dist-amount)
}

// MoveCenter pans eye and center together. delta.X moves along the view's
// right vector, delta.Y along world up and delta.Z along the view direction.
func (c *Camera) MoveCenter(delta math3d.Vec3) {
	move := c.Right().Scale(delta.X).
		Add(math3d.Up().Scale(delta.Y)).
		Add(c.Forward().Scale(delta.Z))
	c.Eye = c.Eye.Add(move)
	c.Center = c.Center.Add(move)
	c.viewDirty = true
}

// SetCenter moves the orbit center, keeping the eye's offset from it.
func (c *Camera) SetCenter(center math3d.Vec3) {
	offset := c.Eye.Sub(c.Center)
	c.Center = center
	c.Eye = center.Add(offset)
	c.viewDirty = true
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Eye, c.Center, c.Up)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns Projection * View.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Frustum returns the current view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// WorldToScreen projects a world point into a width x height pixel grid.
// visible is false for points behind the eye or outside the frustum.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	ndc, ok := c.ViewProjectionMatrix().MulVec4(p.Homogeneous(1)).Divide(MinW)
	if !ok || ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}
	s := math3d.Viewport(float64(width), float64(height)).MulPoint(ndc)
	return s.X, s.Y, s.Z, true
}
