package main

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

// Input step sizes, per key press or per held frame.
const (
	orbitStep = math.Pi / 50
	panStep   = 1.0
	zoomStep  = 0.1 // fraction of the current distance
)

// action is a viewer command bound to a key by each front end.
type action int

const (
	actNone action = iota
	actOrbitLeft
	actOrbitRight
	actOrbitUp
	actOrbitDown
	actPanLeft
	actPanRight
	actPanUp
	actPanDown
	actZoomIn
	actZoomOut
	actWireframe
	actOrbits
	actPause
	actReset
	actQuit
)

// viewer is the state shared by the terminal and window front ends: the
// scene, its camera rig and the frame clock.
type viewer struct {
	scene  *scene.Scene
	rig    *scene.Rig
	title  string
	fps    int
	time   uint32
	paused bool

	reloads chan scene.Config

	// FPS counter
	measured float64
	frames   int
	since    time.Time
}

func newViewer(sc *scene.Scene, cfg scene.Config) *viewer {
	return &viewer{
		scene:   sc,
		rig:     scene.NewRig(sc.Camera, cfg.Window.FPS),
		title:   cfg.Window.Title,
		fps:     cfg.Window.FPS,
		reloads: make(chan scene.Config, 1),
		since:   time.Now(),
	}
}

// queueReload hands a reloaded config to the render loop. Only the newest
// pending config is kept.
func (v *viewer) queueReload(cfg scene.Config) {
	for {
		select {
		case v.reloads <- cfg:
			return
		default:
			select {
			case <-v.reloads:
			default:
			}
		}
	}
}

// handle applies one action and reports whether the viewer should quit.
func (v *viewer) handle(a action) bool {
	_, _, dist := v.rig.Target()
	switch a {
	case actOrbitLeft:
		v.rig.Orbit(orbitStep, 0)
	case actOrbitRight:
		v.rig.Orbit(-orbitStep, 0)
	case actOrbitUp:
		v.rig.Orbit(0, -orbitStep)
	case actOrbitDown:
		v.rig.Orbit(0, orbitStep)
	case actPanLeft:
		v.rig.Pan(math3d.V3(-panStep, 0, 0))
	case actPanRight:
		v.rig.Pan(math3d.V3(panStep, 0, 0))
	case actPanUp:
		v.rig.Pan(math3d.V3(0, panStep, 0))
	case actPanDown:
		v.rig.Pan(math3d.V3(0, -panStep, 0))
	case actZoomIn:
		v.rig.Zoom(dist * zoomStep)
	case actZoomOut:
		v.rig.Zoom(-dist * zoomStep)
	case actWireframe:
		v.scene.ToggleWireframe()
	case actOrbits:
		v.scene.ToggleOrbits()
	case actPause:
		v.paused = !v.paused
	case actReset:
		v.scene.ResetCamera()
		v.rig.Sync()
	case actQuit:
		return true
	}
	return false
}

// step advances one frame: pending reloads, camera springs and the clock.
func (v *viewer) step() {
	select {
	case cfg := <-v.reloads:
		if err := v.scene.Reload(cfg); err != nil {
			slog.Warn("scene reload rejected", "err", err)
		}
	default:
	}
	v.rig.Update()
	if !v.paused {
		v.time++
	}
}

// render draws the current frame into fb and updates the FPS counter.
func (v *viewer) render(fb *render.Framebuffer) scene.FrameStats {
	st := v.scene.Frame(fb, v.time)
	v.frames++
	if elapsed := time.Since(v.since); elapsed >= time.Second {
		v.measured = float64(v.frames) / elapsed.Seconds()
		v.frames = 0
		v.since = time.Now()
	}
	return st
}

// caption is the title line shown above the image.
func (v *viewer) caption() string {
	s := fmt.Sprintf("%s - FPS: %.0f", v.title, v.measured)
	if v.paused {
		s += " (paused)"
	}
	return s
}
