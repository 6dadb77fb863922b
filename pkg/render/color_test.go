package render

import (
	"image/color"
	"testing"
)

func TestColorBlend(t *testing.T) {
	base := RGB(200, 100, 50)
	top := RGB(100, 200, 255)

	tests := []struct {
		mode BlendMode
		want Color
	}{
		{BlendNormal, top},
		{BlendMultiply, RGB(78, 78, 50)},
		{BlendAdd, RGB(255, 255, 255)},
		{BlendSubtract, RGB(100, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			if got := base.Blend(tc.mode, top); got != tc.want {
				t.Errorf("Blend(%v) = %v, want %v", tc.mode, got, tc.want)
			}
		})
	}
}

func TestParseBlendMode(t *testing.T) {
	for _, name := range []string{"normal", "Multiply", "ADD", "subtract"} {
		if _, err := ParseBlendMode(name); err != nil {
			t.Errorf("ParseBlendMode(%q): %v", name, err)
		}
	}
	if _, err := ParseBlendMode("screen"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestColorLerp(t *testing.T) {
	a, b := RGB(0, 100, 255), RGB(255, 200, 0)

	tests := []struct {
		name string
		t    float64
		want Color
	}{
		{"start", 0, a},
		{"end", 1, b},
		{"middle rounds", 0.5, RGB(128, 150, 128)},
		{"below range clamps", -2, a},
		{"above range clamps", 3, b},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Lerp(b, tc.t); got != tc.want {
				t.Errorf("Lerp(%v) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

func TestColorScale(t *testing.T) {
	c := RGB(100, 200, 40)

	tests := []struct {
		name string
		f    float64
		want Color
	}{
		{"identity", 1, c},
		{"half", 0.5, RGB(50, 100, 20)},
		{"saturates", 1.5, RGB(150, 255, 60)},
		{"negative is black", -1, ColorBlack},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Scale(tc.f); got != tc.want {
				t.Errorf("Scale(%v) = %v, want %v", tc.f, got, tc.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c.Hex() != 0x123456 {
		t.Errorf("Hex() = %#x", c.Hex())
	}
	if ColorFromHex(0xff123456) != c {
		t.Errorf("ColorFromHex ignored high bits incorrectly")
	}
	if c.String() != "#123456" {
		t.Errorf("String() = %q", c.String())
	}
	parsed, err := ParseHexColor("#123456")
	if err != nil || parsed != c {
		t.Errorf("ParseHexColor = %v, %v", parsed, err)
	}
	if _, err := ParseHexColor("#12345"); err == nil {
		t.Error("expected error for short color")
	}
	if _, err := ParseHexColor("zzzzzz"); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestColorImplementsColor(t *testing.T) {
	var c color.Color = RGB(255, 0, 128)
	r, g, b, a := c.RGBA()
	if r != 0xffff || g != 0 || b != 0x8080 || a != 0xffff {
		t.Errorf("RGBA() = %x %x %x %x", r, g, b, a)
	}
	if !ColorBlack.IsBlack() || RGB(0, 0, 1).IsBlack() {
		t.Error("IsBlack mismatch")
	}
}
