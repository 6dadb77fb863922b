package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// Sun is an emissive yellow-to-orange radial gradient with a boiling
// surface. It ignores lighting.
func Sun(f render.Fragment, u *render.Uniforms) render.Color {
	x, y := f.Local.X, f.Local.Y
	t := frame(u, 0.02)

	wx := math.Sin(x+t) * 0.1
	wy := math.Cos(y+t) * 0.1
	dist := math.Hypot(x+wx, y+wy) * 0.5

	gradient := render.RGB(255, 204, 0).Lerp(render.RGB(255, 140, 0), dist)
	noise := math.Abs(math.Sin(x*10+t) * math.Cos(y*10+t))
	return gradient.Scale(noise).Scale(Emission)
}

// Rocky is a cratered gray-brown surface (Mercury).
func Rocky(f render.Fragment, _ *render.Uniforms) render.Color {
	x, y := f.Local.X, f.Local.Y
	base := render.RGB(80, 65, 55).Scale(wave(x*10, y*10))
	noise := base.Scale(5 * wave(x*5, y*5))
	return lit(render.RGB(105, 105, 105).BlendMultiply(noise), f)
}

// Venus is a slowly drifting pale cloud deck.
func Venus(f render.Fragment, u *render.Uniforms) render.Color {
	x, y := f.Local.X, f.Local.Y
	t := frame(u, 0.01)

	base := render.RGB(255, 228, 181).Lerp(render.RGB(220, 220, 220), unit(math.Sin(x*3+t)))
	return lit(base.Lerp(render.RGB(255, 250, 240), unit(math.Cos(y*3+t))), f)
}

// Earth has oceans, continents and mountains drifting under moving clouds.
func Earth(f render.Fragment, u *render.Uniforms) render.Color {
	x, y := f.Local.X, f.Local.Y

	mx := x + frame(u, 0.005)
	continent := math.Abs(math.Sin(mx*3.5+y*2.1) * math.Cos(mx*2.8-y*3.3))
	var c render.Color
	switch {
	case continent > 0.6:
		c = render.RGB(139, 69, 19)
	case continent > 0.4:
		c = render.RGB(34, 139, 34)
	default:
		c = render.RGB(0, 105, 148)
	}

	ct := frame(u, 0.02)
	cloud := wave((x+math.Sin(ct)*0.3)*20, (y+math.Cos(ct)*0.3)*20)
	if cloud > 0.6 {
		c = render.ColorWhite
	}
	return lit(c, f)
}

// Mars is rust red with darker craters.
func Mars(f render.Fragment, _ *render.Uniforms) render.Color {
	x, y := f.Local.X, f.Local.Y
	var c render.Color
	switch {
	case wave(x*15, y*15) > 0.6:
		c = render.RGB(139, 69, 19)
	case wave(x*8, y*8) > 0.4:
		c = render.RGB(165, 42, 42)
	default:
		c = render.RGB(205, 92, 92)
	}
	return lit(c, f)
}

// jupiterSpot is the center of the great red spot in local coordinates.
var jupiterSpot = math3d.V2(0.3, -0.2)

// Jupiter has scrolling horizontal bands and a red spot.
func Jupiter(f render.Fragment, u *render.Uniforms) render.Color {
	x, y := f.Local.X, f.Local.Y

	band := unit(math.Sin(y*10 + frame(u, 0.02)))
	var c render.Color
	switch {
	case band < 0.3:
		c = render.RGB(210, 180, 140)
	case band < 0.6:
		c = render.RGB(245, 245, 245)
	default:
		c = render.RGB(139, 69, 19)
	}

	dx, dy := x-jupiterSpot.X, y-jupiterSpot.Y
	spot := 1 - clamp01(dx*dx/0.1+dy*dy/0.2)
	if spot > 0.7 {
		c = render.RGB(255, 69, 0).Lerp(c, spot)
	}
	return lit(c, f)
}

// Moon is a two-tone gray regolith.
func Moon(f render.Fragment, _ *render.Uniforms) render.Color {
	c := render.RGB(200, 200, 200)
	if wave(f.Local.X*5, f.Local.Y*5) > 0.5 {
		c = render.RGB(105, 105, 105)
	}
	return lit(c, f)
}

// Saturn has pale scrolling bands.
func Saturn(f render.Fragment, u *render.Uniforms) render.Color {
	band := unit(math.Sin(f.Local.Y*5 + frame(u, 0.01)))
	var c render.Color
	switch {
	case band < 0.3:
		c = render.RGB(253, 253, 150)
	case band < 0.6:
		c = render.RGB(245, 222, 179)
	default:
		c = render.RGB(205, 133, 63)
	}
	return lit(c, f)
}

// ringGap is the color between ring bands.
var ringGap = render.ColorBlack

// ringBands are the [inner, outer) radii of the bright ring bands, measured
// in twice the local radius.
var ringBands = [...]struct {
	inner, outer float64
	color        render.Color
}{
	{1.1, 1.2, render.RGB(200, 200, 200)},
	{1.3, 1.4, render.RGB(169, 169, 169)},
	{1.5, 1.6, render.RGB(200, 200, 200)},
	{1.7, 1.8, render.RGB(169, 169, 169)},
}

// Rings shades a flat annulus with concentric bands by radial distance.
// Rings are unlit so both faces look the same.
func Rings(f render.Fragment, _ *render.Uniforms) render.Color {
	d := 2 * f.Local.Len()
	c := ringGap
	for _, b := range ringBands {
		if d > b.inner && d < b.outer {
			c = b.color
			break
		}
	}
	return c
}

// Ship is hull plating with a lit cockpit stripe.
func Ship(f render.Fragment, _ *render.Uniforms) render.Color {
	x, y := f.Local.X, f.Local.Y
	c := render.RGB(150, 155, 165)
	if math.Mod(math.Abs(y*8), 1) < 0.15 {
		c = render.RGB(90, 95, 105)
	}
	if math.Abs(x) < 0.08 {
		c = render.RGB(80, 200, 255)
	}
	return lit(c, f)
}
