package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// Colors shared by the pattern shaders.
var (
	purple = render.RGB(128, 0, 128)
	yellow = render.RGB(255, 255, 0)
)

// StaticPattern is a red/green checker of |sin(10x) sin(10y)|.
func StaticPattern(f render.Fragment, _ *render.Uniforms) render.Color {
	p := math.Abs(math.Sin(f.Local.X*10) * math.Sin(f.Local.Y*10))
	return render.RGB(uint8(p*255), uint8((1-p)*255), 128)
}

// Purple is a flat purple.
func Purple(render.Fragment, *render.Uniforms) render.Color {
	return purple
}

// Circle draws a yellow disc of radius 0.25 at the local origin on black.
func Circle(f render.Fragment, _ *render.Uniforms) render.Color {
	if f.Local.Len() < 0.25 {
		return yellow
	}
	return render.ColorBlack
}

// MovingCircles draws two white discs sliding horizontally with time.
func MovingCircles(f render.Fragment, u *render.Uniforms) render.Color {
	t := frame(u, 0.05)
	c1 := math.Mod(math.Sin(t)*0.4+0.5, 1)
	c2 := math.Mod(math.Cos(t)*0.4+0.5, 1)

	const radius = 0.1
	hit := f.Local.Distance(math3d.V2(c1, 0.3)) < radius ||
		f.Local.Distance(math3d.V2(c2, 0.7)) < radius
	if hit {
		return render.ColorWhite
	}
	return render.ColorBlack
}

// Combined overlays MovingCircles on StaticPattern and applies lighting.
func Combined(f render.Fragment, u *render.Uniforms) render.Color {
	if c := MovingCircles(f, u); !c.IsBlack() {
		return lit(c, f)
	}
	return lit(StaticPattern(f, u), f)
}

// Blended returns a shader composing Circle onto Purple with mode.
func Blended(mode render.BlendMode) render.ShaderFunc {
	return func(f render.Fragment, u *render.Uniforms) render.Color {
		return lit(Purple(f, u).Blend(mode, Circle(f, u)), f)
	}
}
