package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an opaque 8-bit RGB color. All arithmetic on it saturates to
// [0,255]. Color implements image/color.Color.
type Color struct {
	R, G, B uint8
}

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Colors for convenience
var (
	ColorBlack   = Color{0, 0, 0}
	ColorWhite   = Color{255, 255, 255}
	ColorRed     = Color{255, 0, 0}
	ColorGreen   = Color{0, 255, 0}
	ColorBlue    = Color{0, 0, 255}
	ColorYellow  = Color{255, 255, 0}
	ColorMagenta = Color{255, 0, 255}
	ColorGray    = Color{128, 128, 128}
)

// RGBA implements image/color.Color. Alpha is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex packs the color as 0xRRGGBB.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ColorFromHex unpacks a 0xRRGGBB value. Bits above 24 are ignored.
func ColorFromHex(v uint32) Color {
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// ParseHexColor parses "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// IsBlack reports whether all channels are zero.
func (c Color) IsBlack() bool {
	return c == ColorBlack
}

// Lerp interpolates from c to d by t. t is clamped to [0,1] and channels are
// rounded to the nearest integer.
func (c Color) Lerp(d Color, t float64) Color {
	t = clamp01(t)
	return Color{
		lerpChannel(c.R, d.R, t),
		lerpChannel(c.G, d.G, t),
		lerpChannel(c.B, d.B, t),
	}
}

// Scale multiplies every channel by f, saturating at 255. Negative factors
// produce black.
func (c Color) Scale(f float64) Color {
	if f <= 0 || math.IsNaN(f) {
		return ColorBlack
	}
	return Color{scaleChannel(c.R, f), scaleChannel(c.G, f), scaleChannel(c.B, f)}
}

// Add returns the channel-wise saturating sum.
func (c Color) Add(d Color) Color {
	return Color{addChannel(c.R, d.R), addChannel(c.G, d.G), addChannel(c.B, d.B)}
}

func clamp01(t float64) float64 {
	switch {
	case t < 0 || math.IsNaN(t):
		return 0
	case t > 1:
		return 1
	}
	return t
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func scaleChannel(v uint8, f float64) uint8 {
	s := math.Round(float64(v) * f)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func addChannel(a, b uint8) uint8 {
	s := int(a) + int(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}
