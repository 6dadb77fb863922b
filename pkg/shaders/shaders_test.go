package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

func frag(x, y, intensity float64) render.Fragment {
	return render.Fragment{Local: math3d.V2(x, y), Normal: math3d.V3(0, 0, 1), Intensity: intensity}
}

// grid samples a shader over the local square.
func grid(s render.Shader, u *render.Uniforms, intensity float64) []render.Color {
	var out []render.Color
	for i := range 9 {
		for j := range 9 {
			x, y := -1+float64(i)*0.25, -1+float64(j)*0.25
			out = append(out, s.Shade(frag(x, y, intensity), u))
		}
	}
	return out
}

func TestLookupAllNames(t *testing.T) {
	for _, name := range Names() {
		s, err := Lookup(name)
		require.NoError(t, err, name)
		require.NotNil(t, s, name)
	}
	assert.Contains(t, Names(), "blend:multiply")
	assert.Contains(t, Names(), "earth")
}

func TestLookupCaseInsensitive(t *testing.T) {
	_, err := Lookup("  Jupiter ")
	assert.NoError(t, err)
	_, err = Lookup("BLEND:Add")
	assert.NoError(t, err)
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"pluto", "blend:screen", ""} {
		_, err := Lookup(name)
		assert.ErrorIs(t, err, ErrUnknownMaterial, name)
	}
}

func TestShadersDeterministic(t *testing.T) {
	u := &render.Uniforms{Time: 1234}
	for _, name := range Names() {
		s, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, grid(s, u, 0.8), grid(s, u, 0.8), name)
	}
}

func TestLitMaterialsDarkWithoutLight(t *testing.T) {
	u := &render.Uniforms{Time: 50}
	for _, name := range []string{"rocky", "venus", "earth", "mars", "jupiter", "moon", "saturn", "ship", "combined", "blend:add"} {
		s, err := Lookup(name)
		require.NoError(t, err)
		for _, c := range grid(s, u, 0) {
			require.True(t, c.IsBlack(), "%s should be black with zero intensity, got %v", name, c)
		}
	}
}

func TestUnlitMaterialsIgnoreIntensity(t *testing.T) {
	u := &render.Uniforms{Time: 50}
	for _, name := range []string{"sun", "rings", "static", "circle"} {
		s, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, grid(s, u, 1), grid(s, u, 0.1), name)
	}
}

func TestSunIsBright(t *testing.T) {
	u := &render.Uniforms{}
	c := Sun(frag(0.15, 0.05, 0), u)
	// 1.5x emission pushes the red channel to saturation.
	assert.Equal(t, uint8(255), c.R)
	assert.Zero(t, c.B)
}

func TestCircle(t *testing.T) {
	u := &render.Uniforms{}
	assert.Equal(t, yellow, Circle(frag(0, 0, 1), u))
	assert.Equal(t, yellow, Circle(frag(0.1, -0.2, 1), u))
	assert.Equal(t, render.ColorBlack, Circle(frag(0.25, 0, 1), u))
	assert.Equal(t, render.ColorBlack, Circle(frag(0.9, 0.9, 1), u))
}

func TestBlended(t *testing.T) {
	u := &render.Uniforms{}

	tests := []struct {
		mode           render.BlendMode
		inside, border render.Color
	}{
		{render.BlendNormal, yellow, render.ColorBlack},
		{render.BlendMultiply, render.RGB(128, 0, 0), render.ColorBlack},
		{render.BlendAdd, render.RGB(255, 255, 128), purple},
		{render.BlendSubtract, render.RGB(0, 0, 128), purple},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			s := Blended(tc.mode)
			assert.Equal(t, tc.inside, s(frag(0, 0, 1), u))
			assert.Equal(t, tc.border, s(frag(0.8, 0, 1), u))
		})
	}
}

func TestMovingCirclesAnimate(t *testing.T) {
	early := grid(render.ShaderFunc(MovingCircles), &render.Uniforms{Time: 0}, 1)
	late := grid(render.ShaderFunc(MovingCircles), &render.Uniforms{Time: 20}, 1)
	assert.NotEqual(t, early, late)
}

func TestEarthCloudsMove(t *testing.T) {
	a := grid(render.ShaderFunc(Earth), &render.Uniforms{Time: 0}, 1)
	b := grid(render.ShaderFunc(Earth), &render.Uniforms{Time: 40}, 1)
	assert.NotEqual(t, a, b)
}

func TestRingsBands(t *testing.T) {
	u := &render.Uniforms{}

	tests := []struct {
		name   string
		radius float64
		want   render.Color
	}{
		{"inner band", 0.575, render.RGB(200, 200, 200)},
		{"first gap", 0.625, render.ColorBlack},
		{"second band", 0.675, render.RGB(169, 169, 169)},
		{"outer band", 0.875, render.RGB(169, 169, 169)},
		{"beyond rings", 0.95, render.ColorBlack},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Rings(frag(0, tc.radius, 1), u))
			assert.Equal(t, tc.want, Rings(frag(-tc.radius, 0, 1), u))
		})
	}
}

func TestMarsPalette(t *testing.T) {
	palette := map[render.Color]bool{
		render.RGB(139, 69, 19): true,
		render.RGB(165, 42, 42): true,
		render.RGB(205, 92, 92): true,
	}
	for _, c := range grid(render.ShaderFunc(Mars), &render.Uniforms{}, 1) {
		assert.True(t, palette[c], "unexpected mars color %v", c)
	}
}
