package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

func TestModelMatrixOrder(t *testing.T) {
	tr := math3d.V3(1, 2, 3)
	rot := math3d.V3(0.3, 0.7, -0.2)
	want := math3d.Translate(tr).
		Mul(math3d.ScaleUniform(2)).
		Mul(math3d.RotateZ(rot.Z)).
		Mul(math3d.RotateY(rot.Y)).
		Mul(math3d.RotateX(rot.X))
	got := ModelMatrix(tr, 2, rot)
	for i := range got {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}
}

func TestOrbitPosition(t *testing.T) {
	b := Body{OrbitRadius: 5, OrbitSpeed: 0.1, Phase: math.Pi / 2, Offset: [3]float64{0, 2, 0}}
	p := b.OrbitPosition(math3d.V3(10, 0, 0), 0)
	assert.InDelta(t, 10.0, p.X, 1e-9)
	assert.InDelta(t, 2.0, p.Y, 1e-9)
	assert.InDelta(t, 5.0, p.Z, 1e-9)

	// Quarter turn later
	p = b.OrbitPosition(math3d.Vec3{}, 5*math.Pi)
	assert.InDelta(t, -5.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Z, 1e-9)

	r := Body{RotationSpeed: 0.5, Tilt: [3]float64{0.1, 0, 0.2}}
	assert.Equal(t, math3d.V3(0.1, 2, 0.2), r.Rotation(4))
}

func TestAnchoredPosition(t *testing.T) {
	cam := render.NewCamera(math3d.V3(0, 0, 10), math3d.Vec3{}, math3d.Up())
	b := Body{Anchor: AnchorCamera, Distance: 6, Offset: [3]float64{1, -1.5, 0}}
	p := b.AnchoredPosition(cam)
	assert.InDelta(t, 1.0, p.X, 1e-9)
	assert.InDelta(t, -1.5, p.Y, 1e-9)
	assert.InDelta(t, 4.0, p.Z, 1e-9)
}

func TestPositionsFollowParents(t *testing.T) {
	s, err := New(Default())
	require.NoError(t, err)

	bodies := s.Bodies()
	pos := s.Positions(120)
	earth, moon := -1, -1
	for i, b := range bodies {
		switch b.Name {
		case "earth":
			earth = i
		case "moon":
			moon = i
		}
	}
	require.GreaterOrEqual(t, earth, 0)
	require.GreaterOrEqual(t, moon, 0)

	d := pos[moon].Sub(pos[earth])
	assert.InDelta(t, 2.0, d.Y, 1e-9)
	assert.InDelta(t, 2.5, math.Hypot(d.X, d.Z), 1e-9)
	assert.InDelta(t, 25.0, math.Hypot(pos[earth].X, pos[earth].Z), 1e-9)
}

func TestFrameDefaultScene(t *testing.T) {
	s, err := New(Default())
	require.NoError(t, err)

	fb := render.NewFramebuffer(80, 60)
	st := s.Frame(fb, 10)
	assert.Equal(t, 10, st.Bodies)
	assert.Equal(t, st.Bodies, st.Drawn+st.Culled)
	assert.Positive(t, st.PixelsWritten)
	assert.Equal(t, st.Drawn, st.DrawCalls)

	// The sun sits at the center of the view
	assert.Less(t, fb.DepthAt(40, 30), render.DepthFar)

	first := append([]uint32(nil), fb.Buffer...)
	s.Frame(fb, 10)
	assert.Equal(t, first, fb.Buffer, "frames are deterministic")

	s.Frame(fb, 11)
	assert.NotEqual(t, first, fb.Buffer, "the scene animates")
}

func TestFrameCullsOffscreenBodies(t *testing.T) {
	cfg := Default()
	cfg.Camera.Eye = [3]float64{0, 0, 10}
	cfg.Bodies = []Body{
		{Name: "front", Mesh: MeshSphere, Material: "purple", Scale: 1},
		{Name: "behind", Mesh: MeshSphere, Material: "purple", Scale: 1, Offset: [3]float64{0, 0, 50}},
		{Name: "off", Mesh: MeshSphere, Material: "purple", Scale: 1, Hidden: true},
	}
	s, err := New(cfg)
	require.NoError(t, err)

	fb := render.NewFramebuffer(40, 40)
	st := s.Frame(fb, 0)
	assert.Equal(t, 2, st.Bodies)
	assert.Equal(t, 1, st.Drawn)
	assert.Equal(t, 1, st.Culled)
	assert.Equal(t, 1, st.DrawCalls)
}

func TestWireframeOverlay(t *testing.T) {
	cfg := Default()
	cfg.Camera.Eye = [3]float64{0, 0, 4}
	cfg.Render.Background = "#000000"
	cfg.Bodies = []Body{{Name: "ring", Mesh: MeshRing, Material: "rings", Scale: 1, Tilt: [3]float64{math.Pi / 2, 0, 0}}}
	s, err := New(cfg)
	require.NoError(t, err)

	fb := render.NewFramebuffer(64, 64)
	s.Frame(fb, 0)
	plain := countColor(fb, render.ColorWhite)

	assert.True(t, s.ToggleWireframe())
	s.Frame(fb, 0)
	assert.Greater(t, countColor(fb, render.ColorWhite), plain)
}

func TestReload(t *testing.T) {
	s, err := New(Default())
	require.NoError(t, err)
	s.Camera.Orbit(0.3, 0)
	eye := s.Camera.Eye

	cfg := Default()
	cfg.Bodies = cfg.Bodies[:1]
	require.NoError(t, s.Reload(cfg))
	assert.Len(t, s.Bodies(), 1)
	assert.Equal(t, eye, s.Camera.Eye)

	bad := Default()
	bad.Bodies[0].Material = "nope"
	assert.ErrorIs(t, s.Reload(bad), ErrInvalidConfig)
	assert.Len(t, s.Bodies(), 1, "failed reload leaves the scene unchanged")

	s.ResetCamera()
	def := Default()
	want := def.NewCamera()
	assert.Equal(t, want.Eye, s.Camera.Eye)
}

func countColor(fb *render.Framebuffer, c render.Color) int {
	n := 0
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.At(x, y) == c {
				n++
			}
		}
	}
	return n
}
