package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// Spring tuning: frequency 6 settles in about half a second, damping 1 is
// critically damped (no overshoot).
const (
	rigFrequency = 6.0
	rigDamping   = 1.0
	settleEps    = 1e-4
)

// springAxis eases one scalar toward a target.
type springAxis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

func newSpringAxis(fps int, pos float64) springAxis {
	return springAxis{
		Position: pos,
		Target:   pos,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), rigFrequency, rigDamping),
	}
}

func (a *springAxis) update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

func (a *springAxis) settled() bool {
	return math.Abs(a.Position-a.Target) < settleEps && math.Abs(a.velocity) < settleEps
}

// Rig drives an orbit camera from input. Orbit and zoom requests move
// targets; Update eases the camera toward them one frame at a time.
type Rig struct {
	Camera *render.Camera

	yaw, pitch, distance springAxis
	fps                  int
}

// NewRig wraps cam, starting from its current placement.
func NewRig(cam *render.Camera, fps int) *Rig {
	r := &Rig{Camera: cam, fps: max(fps, 1)}
	r.Sync()
	return r
}

// Sync restarts the springs at the camera's current placement.
func (r *Rig) Sync() {
	yaw, pitch, dist := r.Camera.Spherical()
	r.yaw = newSpringAxis(r.fps, yaw)
	r.pitch = newSpringAxis(r.fps, pitch)
	r.distance = newSpringAxis(r.fps, dist)
}

// Orbit adds to the yaw and pitch targets (radians). Pitch stays short
// of the poles.
func (r *Rig) Orbit(deltaYaw, deltaPitch float64) {
	r.yaw.Target += deltaYaw
	r.pitch.Target = math.Max(-render.MaxCameraPitch, math.Min(render.MaxCameraPitch, r.pitch.Target+deltaPitch))
}

// Zoom moves the distance target toward the center by amount.
func (r *Rig) Zoom(amount float64) {
	r.distance.Target = math.Max(render.MinCameraDistance, r.distance.Target-amount)
}

// Pan moves the camera and its orbit center immediately. See
// render.Camera.MoveCenter for the axes.
func (r *Rig) Pan(delta math3d.Vec3) {
	r.Camera.MoveCenter(delta)
}

// Update advances the springs one frame and places the camera.
func (r *Rig) Update() {
	r.yaw.update()
	r.pitch.update()
	r.distance.update()
	r.Camera.SetSpherical(r.yaw.Position, r.pitch.Position, r.distance.Position)
}

// Target returns the placement the camera is easing toward.
func (r *Rig) Target() (yaw, pitch, distance float64) {
	return r.yaw.Target, r.pitch.Target, r.distance.Target
}

// Settled reports whether the camera has reached its targets.
func (r *Rig) Settled() bool {
	return r.yaw.settled() && r.pitch.settled() && r.distance.settled()
}
