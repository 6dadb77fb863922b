// Package render implements the software rendering pipeline: vertex
// transform, primitive assembly, rasterization, shading and depth-tested
// compositing into a Framebuffer.
package render

import (
	"image"
	"math"
)

// DepthFar is the depth stored in a cleared depth buffer. Smaller depth
// values are nearer to the viewer.
const DepthFar = math.MaxFloat64

// Framebuffer owns a packed 0xRRGGBB color buffer and a per-pixel depth
// buffer of the same size, both row-major.
//
// It has a single writer: the render loop mutates it in place each frame.
type Framebuffer struct {
	Width  int
	Height int
	Buffer []uint32  // packed 0xRRGGBB
	Depth  []float64 // nearer surfaces have smaller values

	background Color
	current    Color
}

// NewFramebuffer creates a cleared framebuffer with a black background.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Buffer: make([]uint32, width*height),
		Depth:  make([]float64, width*height),
	}
	fb.Clear()
	return fb
}

// Resize reallocates both buffers for a new size and clears them.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == fb.Width && height == fb.Height {
		return
	}
	fb.Width, fb.Height = width, height
	fb.Buffer = make([]uint32, width*height)
	fb.Depth = make([]float64, width*height)
	fb.Clear()
}

// SetBackgroundColor sets the color used by Clear.
func (fb *Framebuffer) SetBackgroundColor(c Color) {
	fb.background = c
}

// BackgroundColor returns the color used by Clear.
func (fb *Framebuffer) BackgroundColor() Color {
	return fb.background
}

// SetCurrentColor sets the color written by the next successful Point.
func (fb *Framebuffer) SetCurrentColor(c Color) {
	fb.current = c
}

// Clear resets every color cell to the background color and every depth
// cell to DepthFar.
func (fb *Framebuffer) Clear() {
	n := len(fb.Buffer)
	if n == 0 {
		return
	}
	// Copy-doubling fill.
	fb.Buffer[0] = fb.background.Hex()
	fb.Depth[0] = DepthFar
	for i := 1; i < n; i *= 2 {
		copy(fb.Buffer[i:], fb.Buffer[:i])
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

// Point writes the current color at (x, y) if depth is strictly nearer than
// the stored depth. Equal depth keeps the surface already there.
// Out-of-bounds coordinates are ignored. Point reports whether it wrote.
func (fb *Framebuffer) Point(x, y int, depth float64) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	i := y*fb.Width + x
	if !(depth < fb.Depth[i]) {
		return false
	}
	fb.Buffer[i] = fb.current.Hex()
	fb.Depth[i] = depth
	return true
}

// At returns the color at (x, y), or black if out of bounds.
func (fb *Framebuffer) At(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return ColorBlack
	}
	return ColorFromHex(fb.Buffer[y*fb.Width+x])
}

// DepthAt returns the stored depth at (x, y), or DepthFar if out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return DepthFar
	}
	return fb.Depth[y*fb.Width+x]
}

// Pixels returns the packed 0xRRGGBB color buffer, row-major.
func (fb *Framebuffer) Pixels() []uint32 {
	return fb.Buffer
}

// CopyRGBA writes the color buffer into dst as 8-bit RGBA, dst holding at
// least 4*Width*Height bytes.
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	for i, p := range fb.Buffer {
		j := i * 4
		dst[j] = uint8(p >> 16)
		dst[j+1] = uint8(p >> 8)
		dst[j+2] = uint8(p)
		dst[j+3] = 0xFF
	}
}

// SetPixel writes c at (x, y) and leaves the depth buffer
// untouched. Used for overlays.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Buffer[y*fb.Width+x] = c.Hex()
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Lines are overlays and bypass the depth test.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyRGBA(img.Pix)
	return img
}

// SavePNG saves the framebuffer at native size as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return WriteSnapshot(path, fb, SnapshotOptions{})
}
