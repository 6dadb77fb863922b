package render

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestNewPlane(t *testing.T) {
	p := NewPlane(math3d.V3(0, 3, 4), 10)
	if l := p.Normal.Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("normal length = %v, want 1", l)
	}
	if math.Abs(p.D-2) > 1e-9 {
		t.Errorf("D = %v, want 2", p.D)
	}
	if d := p.Distance(math3d.V3(0, 0, 0)); math.Abs(d-2) > 1e-9 {
		t.Errorf("Distance(origin) = %v, want 2", d)
	}
	if zero := NewPlane(math3d.Vec3{}, 3); zero.D != 3 {
		t.Errorf("zero normal plane = %+v, want D unchanged", zero)
	}
}

func TestAABBTransform(t *testing.T) {
	unit := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	tests := []struct {
		name     string
		m        math3d.Mat4
		min, max math3d.Vec3
	}{
		{"translate", math3d.Translate(math3d.V3(10, 20, 30)), math3d.V3(9, 19, 29), math3d.V3(11, 21, 31)},
		{"scale", math3d.Scale(math3d.V3(2, 1, 3)), math3d.V3(-2, -1, -3), math3d.V3(2, 1, 3)},
		{"quarter turn", math3d.RotateY(math.Pi / 2), math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)},
		{"eighth turn", math3d.RotateY(math.Pi / 4), math3d.V3(-math.Sqrt2, -1, -math.Sqrt2), math3d.V3(math.Sqrt2, 1, math.Sqrt2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := unit.Transform(tc.m)
			if got.Min.Distance(tc.min) > 1e-9 || got.Max.Distance(tc.max) > 1e-9 {
				t.Errorf("Transform = %+v, want [%v, %v]", got, tc.min, tc.max)
			}
		})
	}
}

func TestAABBMetrics(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(2, 4, 4))
	if c := box.Center(); c != math3d.V3(1, 2, 2) {
		t.Errorf("Center = %v", c)
	}
	if r := box.Radius(); math.Abs(r-3) > 1e-9 {
		t.Errorf("Radius = %v, want 3", r)
	}
	if !box.Contains(math3d.V3(2, 4, 4)) || box.Contains(math3d.V3(2.1, 1, 1)) {
		t.Error("Contains disagrees with bounds")
	}
}

// solarFrustum looks at the sun from ten units down +Z.
func solarFrustum() Frustum {
	cam := NewCamera(math3d.V3(0, 0, 10), math3d.V3(0, 0, 0), math3d.Up())
	cam.SetAspectRatio(16.0 / 9.0)
	return cam.Frustum()
}

func TestFrustumPlanesFaceInward(t *testing.T) {
	f := solarFrustum()
	for i, plane := range f.Planes {
		if l := plane.Normal.Len(); math.Abs(l-1) > 1e-6 {
			t.Errorf("plane %d normal length = %v", i, l)
		}
		if d := plane.Distance(math3d.V3(0, 0, 0)); d <= 0 {
			t.Errorf("plane %d puts the target outside: %v", i, d)
		}
	}
	if n := f.Planes[FrustumNear].Normal; n.Distance(math3d.V3(0, 0, -1)) > 1e-6 {
		t.Errorf("near normal = %v, want (0, 0, -1)", n)
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	f := solarFrustum()

	tests := []struct {
		name string
		p    math3d.Vec3
		want bool
	}{
		{"target", math3d.V3(0, 0, 0), true},
		{"past near plane", math3d.V3(0, 0, 9.5), true},
		{"between eye and near plane", math3d.V3(0, 0, 9.95), false},
		{"behind eye", math3d.V3(0, 0, 11), false},
		{"beyond far plane", math3d.V3(0, 0, -1200), false},
		{"off to the side", math3d.V3(50, 0, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.p); got != tc.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestFrustumClassifyAABB(t *testing.T) {
	f := solarFrustum()
	unit := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	tests := []struct {
		name  string
		model math3d.Mat4
		want  Containment
	}{
		{"sun", math3d.ScaleUniform(1.5), Inside},
		{"straddling the eye", math3d.Translate(math3d.V3(0, 0, 10)), Intersecting},
		{"behind the eye", math3d.Translate(math3d.V3(0, 0, 20)), Outside},
		{"planet on the edge", math3d.Translate(math3d.V3(7, 0, 0)), Intersecting},
		{"outer planet off screen", math3d.Translate(math3d.V3(70, 0, 0)), Outside},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			box := unit.Transform(tc.model)
			got := f.ClassifyAABB(box)
			if got != tc.want {
				t.Errorf("ClassifyAABB(%+v) = %v, want %v", box, got, tc.want)
			}
			if f.IntersectAABB(box) != (tc.want != Outside) {
				t.Errorf("IntersectAABB disagrees with %v", got)
			}
		})
	}
}

func TestFrustumClassifySphere(t *testing.T) {
	f := solarFrustum()

	tests := []struct {
		name   string
		center math3d.Vec3
		radius float64
		want   Containment
	}{
		{"inside", math3d.V3(0, 0, 0), 1, Inside},
		{"touching near plane", math3d.V3(0, 0, 10.5), 1, Intersecting},
		{"behind", math3d.V3(0, 0, 15), 1, Outside},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ClassifySphere(tc.center, tc.radius); got != tc.want {
				t.Errorf("ClassifySphere(%v, %v) = %v, want %v", tc.center, tc.radius, got, tc.want)
			}
		})
	}
}

func BenchmarkCullBody(b *testing.B) {
	f := solarFrustum()
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	model := math3d.TRS(math3d.V3(25, 0, 0), 0.6, math3d.V3(0, 0.5, 0))

	for b.Loop() {
		_ = f.ClassifyAABB(box.Transform(model))
	}
}
