package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Wireframe draws triangle edges and orbit paths over a framebuffer. The
// lines bypass the depth test.
type Wireframe struct {
	fb *Framebuffer
}

// NewWireframe creates a wireframe overlay drawing into fb.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{fb: fb}
}

// DrawMesh transforms vertices with u and outlines every assembled
// triangle. Triangles with a clipped vertex are skipped.
func (w *Wireframe) DrawMesh(u *Uniforms, vertices []Vertex, color Color) {
	mvp := u.Projection.Mul(u.View).Mul(u.Model)
	nm, _ := NormalMatrix(u.Model)
	screen := make([]Vertex, len(vertices))
	for i, v := range vertices {
		screen[i] = transformVertex(v, mvp, nm, u.Viewport)
	}
	for _, tri := range AssembleTriangles(screen) {
		if tri[0].Clipped || tri[1].Clipped || tri[2].Clipped {
			continue
		}
		for i := range 3 {
			a, b := tri[i].TransformedPosition, tri[(i+1)%3].TransformedPosition
			w.line(a, b, color)
		}
	}
}

// DrawOrbit outlines a circle of radius r around center in the XZ plane,
// as seen by cam.
func (w *Wireframe) DrawOrbit(cam *Camera, center math3d.Vec3, r float64, color Color) {
	const segments = 96
	point := func(i int) math3d.Vec3 {
		a := 2 * math.Pi * float64(i) / segments
		return center.Add(math3d.V3(r*math.Cos(a), 0, r*math.Sin(a)))
	}
	prev := point(0)
	for i := 1; i <= segments; i++ {
		next := point(i)
		w.DrawLine3D(cam, prev, next, color)
		prev = next
	}
}

// DrawLine3D draws a world-space segment if both endpoints project inside
// the view.
func (w *Wireframe) DrawLine3D(cam *Camera, p1, p2 math3d.Vec3, color Color) {
	x1, y1, _, vis1 := cam.WorldToScreen(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, vis2 := cam.WorldToScreen(p2, w.fb.Width, w.fb.Height)
	if !vis1 || !vis2 {
		return
	}
	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

func (w *Wireframe) line(a, b math3d.Vec3, color Color) {
	// Skip segments far outside the target; Bresenham would walk them.
	limit := float64(4 * max(w.fb.Width, w.fb.Height))
	if math.Abs(a.X) > limit || math.Abs(a.Y) > limit || math.Abs(b.X) > limit || math.Abs(b.Y) > limit {
		return
	}
	w.fb.DrawLine(int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)), color)
}
