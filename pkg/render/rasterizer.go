package render

import (
	"iter"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// DefaultLight is the light direction used when a Rasterizer has none set.
var DefaultLight = math3d.V3(0, 0, 1)

// Rasterizer converts screen-space triangles into fragments using edge
// functions. Sample points are the integer pixel coordinates (x, y).
// Pixels on an edge shared by two triangles are attributed by the
// top-left rule, so a shared edge or vertex is covered exactly once.
type Rasterizer struct {
	Width, Height int

	// Light is the direction toward the light, in world space. The zero
	// vector selects DefaultLight.
	Light math3d.Vec3

	// Ambient is the minimum intensity of an unlit surface, in [0,1].
	Ambient float64
}

// NewRasterizer creates a rasterizer for a width x height target.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{Width: width, Height: height, Light: DefaultLight}
}

// Screen positions are snapped to a 12.4 fixed-point grid before edge
// setup, so edge functions are exact integers and shared edges and vertices
// resolve through the fill rule rather than rounding.
const (
	subpixelBits  = 4
	subpixelScale = 1 << subpixelBits

	// GuardBand bounds |x| and |y| of a rasterized vertex in pixels. Larger
	// coordinates would overflow the int64 edge functions, and triangles
	// reaching past it are dropped.
	GuardBand = 1 << 23
)

// fixedPoint is a snapped screen position.
type fixedPoint struct{ x, y int64 }

func snap(p math3d.Vec3) fixedPoint {
	return fixedPoint{
		x: int64(math.Round(p.X * subpixelScale)),
		y: int64(math.Round(p.Y * subpixelScale)),
	}
}

func inGuardBand(p math3d.Vec3) bool {
	return math.Abs(p.X) <= GuardBand && math.Abs(p.Y) <= GuardBand
}

// edge is the directed edge from -> to with its fill convention.
type edge struct {
	from    fixedPoint
	a, b    int64
	topLeft bool
}

func newEdge(from, to fixedPoint) edge {
	dx, dy := to.x-from.x, to.y-from.y
	// With positive area in y-down space, top edges run +x and left edges run -y.
	return edge{from: from, a: -dy, b: dx, topLeft: (dy == 0 && dx > 0) || dy < 0}
}

// eval is positive on the interior side of the edge for a positive-area
// triangle, zero on the edge.
func (e edge) eval(p fixedPoint) int64 {
	return e.a*(p.x-e.from.x) + e.b*(p.y-e.from.y)
}

// covers applies the fill rule to an edge function value.
func (e edge) covers(w int64) bool {
	return w > 0 || (w == 0 && e.topLeft)
}

// Rasterize yields a fragment for every pixel covered by tri. Degenerate
// triangles (zero area, non-finite coordinates, or any Clipped vertex) yield
// nothing. Either winding is accepted.
func (r *Rasterizer) Rasterize(tri Triangle) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		r.rasterize(tri, yield)
	}
}

func (r *Rasterizer) rasterize(tri Triangle, yield func(Fragment) bool) {
	if tri[0].Clipped || tri[1].Clipped || tri[2].Clipped {
		return
	}
	v0, v1, v2 := tri[0], tri[1], tri[2]
	p0, p1, p2 := v0.TransformedPosition, v1.TransformedPosition, v2.TransformedPosition
	if !p0.IsFinite() || !p1.IsFinite() || !p2.IsFinite() {
		return
	}
	if !inGuardBand(p0) || !inGuardBand(p1) || !inGuardBand(p2) {
		return
	}

	f0, f1, f2 := snap(p0), snap(p1), snap(p2)
	area := newEdge(f0, f1).eval(f2)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		p1, p2 = p2, p1
		f1, f2 = f2, f1
		area = -area
	}

	// Edge i is opposite vertex i.
	e0 := newEdge(f1, f2)
	e1 := newEdge(f2, f0)
	e2 := newEdge(f0, f1)

	minX, maxX, okX := pixelSpan(min(p0.X, p1.X, p2.X), max(p0.X, p1.X, p2.X), r.Width)
	minY, maxY, okY := pixelSpan(min(p0.Y, p1.Y, p2.Y), max(p0.Y, p1.Y, p2.Y), r.Height)
	if !okX || !okY {
		return
	}

	light := r.Light
	if light == (math3d.Vec3{}) {
		light = DefaultLight
	}
	light = light.Normalize()
	ambient := clamp01(r.Ambient)

	l0, l1, l2 := localCoord(v0), localCoord(v1), localCoord(v2)
	n0, n1, n2 := v0.TransformedNormal, v1.TransformedNormal, v2.TransformedNormal
	invArea := 1 / float64(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			sample := fixedPoint{x: int64(x) << subpixelBits, y: int64(y) << subpixelBits}
			w0 := e0.eval(sample)
			w1 := e1.eval(sample)
			w2 := e2.eval(sample)
			if !e0.covers(w0) || !e1.covers(w1) || !e2.covers(w2) {
				continue
			}

			alpha := float64(w0) * invArea
			beta := float64(w1) * invArea
			gamma := float64(w2) * invArea
			normal := math3d.Blend3(n0, n1, n2, alpha, beta, gamma)
			frag := Fragment{
				X:         x,
				Y:         y,
				Depth:     alpha*p0.Z + beta*p1.Z + gamma*p2.Z,
				Local:     math3d.Blend2(l0, l1, l2, alpha, beta, gamma),
				Normal:    normal,
				Intensity: ambient + (1-ambient)*clamp01(normal.Normalize().Dot(light)),
			}
			if !yield(frag) {
				return
			}
		}
	}
}

// pixelSpan clamps the bounding interval [lo, hi] to the pixel range
// [0, n-1]. ok is false when nothing remains.
func pixelSpan(lo, hi float64, n int) (first, last int, ok bool) {
	lo = math.Max(0, math.Floor(lo))
	hi = math.Min(float64(n-1), math.Ceil(hi))
	if n <= 0 || lo > hi {
		return 0, 0, false
	}
	return int(lo), int(hi), true
}

// localCoord maps texture coordinates in [0,1] to the [-1,1] reference
// square procedural shaders sample.
func localCoord(v Vertex) math3d.Vec2 {
	return math3d.V2(v.TexCoords.X*2-1, v.TexCoords.Y*2-1)
}
