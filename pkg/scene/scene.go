// Package scene drives the renderer: it turns a list of body descriptors
// into per-frame Uniforms and draw calls, and owns the camera.
package scene

import (
	"fmt"
	"time"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shaders"
)

// Procedural mesh resolution.
const (
	sphereStacks = 16
	sphereSlices = 24
	ringInner    = 0.55
	ringOuter    = 0.9
	ringSegments = 48
)

const orbitColorHex = 0x303848

// meshData is a mesh flattened for the pipeline.
type meshData struct {
	vertices []render.Vertex
	bounds   render.AABB
}

// body is a Body bound to its mesh and shader.
type body struct {
	Body
	mesh   *meshData
	shader render.Shader
	parent int // index into Scene.bodies, -1 for the origin
}

// FrameStats summarizes one Frame call.
type FrameStats struct {
	Bodies int
	Drawn  int
	Culled int
	render.Stats
	Elapsed time.Duration
}

// Scene renders a Config.
type Scene struct {
	Camera   *render.Camera
	Pipeline *render.Pipeline

	// Wireframe overlays triangle edges; Orbits outlines orbit paths.
	Wireframe bool
	Orbits    bool

	config Config
	bodies []body
	meshes map[string]*meshData
	frames int
}

// New builds a scene from cfg, loading every referenced mesh once.
func New(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{
		Camera:   cfg.NewCamera(),
		Pipeline: render.NewPipeline(cfg.Window.Width, cfg.Window.Height),
		meshes:   make(map[string]*meshData),
	}
	if err := s.apply(cfg); err != nil {
		return nil, err
	}
	Logger().Info("scene built", "bodies", len(s.bodies), "meshes", len(s.meshes))
	return s, nil
}

// Reload swaps in a new body list and render settings, keeping the
// camera and cached meshes. On error the scene is left unchanged.
func (s *Scene) Reload(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.apply(cfg); err != nil {
		return err
	}
	Logger().Info("scene reloaded", "bodies", len(s.bodies))
	return nil
}

func (s *Scene) apply(cfg Config) error {
	index := make(map[string]int, len(cfg.Bodies))
	bodies := make([]body, 0, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		m, err := s.mesh(&cfg, b)
		if err != nil {
			return fmt.Errorf("body %q: %w", b.Name, err)
		}
		sh, err := shaders.Lookup(b.Material)
		if err != nil {
			return fmt.Errorf("body %q: %w", b.Name, err)
		}
		parent := -1
		if b.Parent != "" {
			parent = index[b.Parent]
		}
		bodies = append(bodies, body{Body: b, mesh: m, shader: sh, parent: parent})
		index[b.Name] = i
	}

	s.config = cfg
	s.bodies = bodies
	s.Wireframe = cfg.Render.Wireframe
	s.Orbits = cfg.Render.Orbits
	s.Pipeline.Raster.Light = vec3(cfg.Render.Light)
	s.Pipeline.Raster.Ambient = cfg.Render.Ambient
	return nil
}

// mesh returns the cached flattened mesh for b, loading it on first use.
func (s *Scene) mesh(cfg *Config, b Body) (*meshData, error) {
	path := cfg.ModelPath(b.Mesh)
	key := fmt.Sprintf("%s@%g", path, b.Simplify)
	if m, ok := s.meshes[key]; ok {
		return m, nil
	}

	var (
		mesh *models.Mesh
		err  error
	)
	switch path {
	case MeshSphere:
		mesh = models.NewSphere(sphereStacks, sphereSlices)
	case MeshRing:
		mesh = models.NewRing(ringInner, ringOuter, ringSegments)
	default:
		mesh, err = models.Load(path)
		if err != nil {
			return nil, err
		}
		mesh.Normalize()
	}
	if b.Simplify > 0 && b.Simplify < 1 {
		if mesh, err = models.Simplify(mesh, b.Simplify); err != nil {
			return nil, err
		}
	}

	m := &meshData{vertices: mesh.VertexArray(), bounds: mesh.Bounds}
	s.meshes[key] = m
	Logger().Debug("mesh loaded", "mesh", key, "triangles", mesh.TriangleCount())
	return m, nil
}

// Config returns the active configuration.
func (s *Scene) Config() Config {
	return s.config
}

// Bodies returns the body descriptors in draw order.
func (s *Scene) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = b.Body
	}
	return out
}

// Positions returns every body's world position at frame t, in draw order.
func (s *Scene) Positions(t uint32) []math3d.Vec3 {
	pos := make([]math3d.Vec3, len(s.bodies))
	ft := float64(t)
	for i := range s.bodies {
		b := &s.bodies[i]
		switch {
		case b.Anchor == AnchorCamera:
			pos[i] = b.AnchoredPosition(s.Camera)
		case b.parent >= 0:
			pos[i] = b.OrbitPosition(pos[b.parent], ft)
		default:
			pos[i] = b.OrbitPosition(math3d.Vec3{}, ft)
		}
	}
	return pos
}

// Frame clears fb and draws every visible body at frame t. Each body gets
// fresh Uniforms sharing the camera's view and projection. Bodies whose
// bounds lie outside the view frustum are skipped whole.
func (s *Scene) Frame(fb *render.Framebuffer, t uint32) FrameStats {
	start := time.Now()
	fb.SetBackgroundColor(s.config.Background())
	fb.Clear()

	s.Camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	s.Pipeline.Resize(fb.Width, fb.Height)
	s.Pipeline.ResetStats()

	view := s.Camera.ViewMatrix()
	proj := s.Camera.ProjectionMatrix()
	viewport := math3d.Viewport(float64(fb.Width), float64(fb.Height))
	frustum := s.Camera.Frustum()
	wire := render.NewWireframe(fb)

	var st FrameStats
	positions := s.Positions(t)
	if s.Orbits {
		s.drawOrbits(wire, positions)
	}
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.Hidden {
			continue
		}
		st.Bodies++

		model := ModelMatrix(positions[i], b.Scale, b.Rotation(float64(t)))
		if !frustum.IntersectAABB(b.mesh.bounds.Transform(model)) {
			st.Culled++
			continue
		}
		u := render.Uniforms{Model: model, View: view, Projection: proj, Viewport: viewport, Time: t}
		s.Pipeline.Draw(fb, &u, b.mesh.vertices, b.shader)
		if s.Wireframe {
			wire.DrawMesh(&u, b.mesh.vertices, render.ColorWhite)
		}
		st.Drawn++
	}

	st.Stats = s.Pipeline.Stats
	st.Elapsed = time.Since(start)
	s.frames++
	if s.frames%300 == 0 {
		Logger().Debug("frame",
			"t", t,
			"drawn", st.Drawn,
			"culled", st.Culled,
			"triangles", st.Triangles,
			"pixels", st.PixelsWritten,
			"elapsed", st.Elapsed,
		)
	}
	return st
}

func (s *Scene) drawOrbits(wire *render.Wireframe, positions []math3d.Vec3) {
	c := render.ColorFromHex(orbitColorHex)
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.Hidden || b.OrbitRadius <= 0 || b.Anchor != "" {
			continue
		}
		center := math3d.V3(b.Offset[0], b.Offset[1], b.Offset[2])
		if b.parent >= 0 {
			center = center.Add(positions[b.parent])
		}
		wire.DrawOrbit(s.Camera, center, b.OrbitRadius, c)
	}
}

// ToggleWireframe flips the wireframe overlay.
func (s *Scene) ToggleWireframe() bool {
	s.Wireframe = !s.Wireframe
	return s.Wireframe
}

// ToggleOrbits flips the orbit path overlay.
func (s *Scene) ToggleOrbits() bool {
	s.Orbits = !s.Orbits
	return s.Orbits
}

// ResetCamera restores the configured camera placement.
func (s *Scene) ResetCamera() {
	fresh := s.config.NewCamera()
	*s.Camera = *fresh
}
