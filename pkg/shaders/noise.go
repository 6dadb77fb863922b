// Package shaders holds the procedural materials of the solar system scene.
// Every shader is a pure function of the fragment and the frame uniforms:
// patterns come from trigonometric noise over the fragment's local
// coordinate and animate with the frame counter.
package shaders

import (
	"math"

	"github.com/taigrr/orrery/pkg/render"
)

// Emission is the brightness multiplier of self-lit bodies.
const Emission = 1.5

// wave returns |sin(a) * cos(b)|, the basic noise term in [0,1].
func wave(a, b float64) float64 {
	return math.Abs(math.Sin(a) * math.Cos(b))
}

// unit remaps a sine to [0,1].
func unit(s float64) float64 {
	return clamp01(s*0.5 + 0.5)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// frame returns the frame counter scaled by speed.
func frame(u *render.Uniforms, speed float64) float64 {
	return float64(u.Time) * speed
}

// lit applies the fragment's lighting term.
func lit(c render.Color, f render.Fragment) render.Color {
	return c.Scale(f.Intensity)
}
