package render

import (
	"bytes"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(7, 5)
	fb.SetBackgroundColor(RGB(10, 20, 30))
	fb.SetCurrentColor(ColorRed)
	fb.Point(1, 1, 0.5)
	fb.Point(6, 4, -0.5)
	fb.Clear()

	for i := range fb.Buffer {
		if fb.Buffer[i] != 0x0a141e {
			t.Fatalf("color[%d] = %#x, want 0x0a141e", i, fb.Buffer[i])
		}
		if fb.Depth[i] != DepthFar {
			t.Fatalf("depth[%d] = %v, want DepthFar", i, fb.Depth[i])
		}
	}
}

func TestFramebufferPoint(t *testing.T) {
	tests := []struct {
		name      string
		first     float64
		second    float64
		wantWrite bool
		want      Color
	}{
		{"nearer occludes farther", 0.5, 0.2, true, ColorBlue},
		{"farther is hidden", 0.2, 0.5, false, ColorRed},
		{"equal depth keeps first", 0.3, 0.3, false, ColorRed},
		{"negative depth is nearer", -0.1, -0.9, true, ColorBlue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(2, 2)
			fb.SetCurrentColor(ColorRed)
			if !fb.Point(1, 0, tc.first) {
				t.Fatal("first write into cleared buffer failed")
			}
			fb.SetCurrentColor(ColorBlue)
			if got := fb.Point(1, 0, tc.second); got != tc.wantWrite {
				t.Errorf("Point() = %v, want %v", got, tc.wantWrite)
			}
			if got := fb.At(1, 0); got != tc.want {
				t.Errorf("color = %v, want %v", got, tc.want)
			}
			wantDepth := tc.first
			if tc.wantWrite {
				wantDepth = tc.second
			}
			if got := fb.DepthAt(1, 0); got != wantDepth {
				t.Errorf("depth = %v, want %v", got, wantDepth)
			}
		})
	}
}

func TestFramebufferPointOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(3, 3)
	fb.SetCurrentColor(ColorWhite)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		if fb.Point(p[0], p[1], 0) {
			t.Errorf("Point(%d, %d) wrote out of bounds", p[0], p[1])
		}
	}
	for i, c := range fb.Buffer {
		if c != 0 || fb.Depth[i] != DepthFar {
			t.Fatalf("cell %d modified", i)
		}
	}
}

func TestDepthOrderIndependence(t *testing.T) {
	// Three overlapping quads at different depths, drawn in every order.
	type layer struct {
		z     float64
		color Color
	}
	layers := []layer{
		{0.7, ColorRed},
		{0.1, ColorGreen},
		{0.4, ColorBlue},
	}
	quad := func(x0, y0, x1, y1, z float64) []Vertex {
		v := func(x, y float64) Vertex {
			return NewVertex(math3d.V3(x, y, z), math3d.V3(0, 0, 1), math3d.V2(0, 0))
		}
		return []Vertex{v(x0, y0), v(x1, y0), v(x1, y1), v(x0, y0), v(x1, y1), v(x0, y1)}
	}
	offsets := [][4]float64{{0, 0, 8, 8}, {3, 2, 12, 10}, {1, 5, 10, 12}}

	render := func(order []int) *Framebuffer {
		fb := NewFramebuffer(12, 12)
		p := NewPipeline(12, 12)
		u := IdentityUniforms()
		for _, i := range order {
			o := offsets[i]
			p.Draw(fb, &u, quad(o[0], o[1], o[2], o[3], layers[i].z), solid(layers[i].color))
		}
		return fb
	}

	want := render([]int{0, 1, 2})
	rng := rand.New(rand.NewPCG(1, 2))
	perms := [][]int{{0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for range 5 {
		order := []int{0, 1, 2}
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		perms = append(perms, order)
	}
	for _, order := range perms {
		got := render(order)
		for i := range want.Buffer {
			if got.Buffer[i] != want.Buffer[i] || got.Depth[i] != want.Depth[i] {
				t.Fatalf("order %v differs at cell %d: %#x/%v vs %#x/%v",
					order, i, got.Buffer[i], got.Depth[i], want.Buffer[i], want.Depth[i])
			}
		}
	}
	// The green layer is nearest wherever it is drawn.
	if got := want.At(4, 4); got != ColorGreen {
		t.Errorf("At(4,4) = %v, want green", got)
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetBackgroundColor(ColorGray)
	fb.Resize(4, 3)
	if len(fb.Buffer) != 12 || len(fb.Depth) != 12 {
		t.Fatalf("buffers = %d/%d, want 12", len(fb.Buffer), len(fb.Depth))
	}
	if fb.At(3, 2) != ColorGray || fb.DepthAt(3, 2) != DepthFar {
		t.Error("resized buffer not cleared")
	}
}

func TestDrawLine(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	fb.DrawLine(0, 0, 4, 4, ColorWhite)
	for i := range 5 {
		if fb.At(i, i) != ColorWhite {
			t.Errorf("pixel (%d,%d) not drawn", i, i)
		}
		if fb.DepthAt(i, i) != DepthFar {
			t.Errorf("line touched depth at (%d,%d)", i, i)
		}
	}
}

func TestSnapshot(t *testing.T) {
	fb := NewFramebuffer(20, 10)
	fb.SetBackgroundColor(ColorBlue)
	fb.Clear()

	img := Snapshot(fb, SnapshotOptions{Scale: 3})
	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 30 {
		t.Fatalf("bounds = %v, want 60x30", b)
	}
	if r, g, b, _ := img.At(59, 29).RGBA(); r != 0 || g != 0 || b != 0xffff {
		t.Errorf("corner = %v %v %v, want blue", r, g, b)
	}

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, fb, SnapshotOptions{Scale: 4, Label: "t=1"}); err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 80 || b.Dy() != 40 {
		t.Errorf("decoded bounds = %v, want 80x40", b)
	}
}
