package render

// Shader computes the color of a fragment. Implementations must be pure:
// the same fragment and uniforms always give the same color.
type Shader interface {
	Shade(frag Fragment, u *Uniforms) Color
}

// ShaderFunc adapts an ordinary function to the Shader interface.
type ShaderFunc func(frag Fragment, u *Uniforms) Color

// Shade calls f(frag, u).
func (f ShaderFunc) Shade(frag Fragment, u *Uniforms) Color {
	return f(frag, u)
}

// Stats counts pipeline work. Reset it once per frame.
type Stats struct {
	DrawCalls     int // Draw invocations
	Vertices      int // vertices transformed
	Triangles     int // triangles assembled
	Degenerate    int // triangles that covered no pixel
	Fragments     int // fragments shaded
	PixelsWritten int // fragments that passed the depth test
	DepthRejected int // fragments that failed the depth test
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.DrawCalls += o.DrawCalls
	s.Vertices += o.Vertices
	s.Triangles += o.Triangles
	s.Degenerate += o.Degenerate
	s.Fragments += o.Fragments
	s.PixelsWritten += o.PixelsWritten
	s.DepthRejected += o.DepthRejected
}

// Pipeline runs transform, assembly, rasterization, shading and compositing
// for one object per Draw call. The same loop serves every material; only
// the Shader changes.
type Pipeline struct {
	Raster Rasterizer
	Stats  Stats

	scratch []Vertex
}

// NewPipeline creates a pipeline targeting a width x height framebuffer.
func NewPipeline(width, height int) *Pipeline {
	return &Pipeline{Raster: *NewRasterizer(width, height)}
}

// Resize updates the raster target size.
func (p *Pipeline) Resize(width, height int) {
	p.Raster.Width, p.Raster.Height = width, height
}

// ResetStats zeroes the counters.
func (p *Pipeline) ResetStats() {
	p.Stats = Stats{}
}

// Draw renders vertices, a flat triangle list in object space, into fb.
// Uniforms are read but never modified. The vertex slice is not modified.
func (p *Pipeline) Draw(fb *Framebuffer, u *Uniforms, vertices []Vertex, shader Shader) {
	p.Stats.DrawCalls++

	// Transform
	mvp := u.Projection.Mul(u.View).Mul(u.Model)
	nm, _ := NormalMatrix(u.Model)
	p.scratch = p.scratch[:0]
	for _, v := range vertices {
		p.scratch = append(p.scratch, transformVertex(v, mvp, nm, u.Viewport))
	}
	p.Stats.Vertices += len(vertices)

	// Assemble, rasterize, shade, composite
	for _, tri := range AssembleTriangles(p.scratch) {
		p.Stats.Triangles++
		covered := false
		for frag := range p.Raster.Rasterize(tri) {
			covered = true
			p.Stats.Fragments++
			// Early depth test; shaders are pure.
			if !(frag.Depth < fb.DepthAt(frag.X, frag.Y)) {
				p.Stats.DepthRejected++
				continue
			}
			fb.SetCurrentColor(shader.Shade(frag, u))
			if fb.Point(frag.X, frag.Y, frag.Depth) {
				p.Stats.PixelsWritten++
			} else {
				p.Stats.DepthRejected++
			}
		}
		if !covered {
			p.Stats.Degenerate++
		}
	}
}
