package render

import (
	"fmt"
	"strings"
)

// BlendMode selects how a top color composes onto a base color.
type BlendMode int

const (
	// BlendNormal replaces the base with the top color.
	BlendNormal BlendMode = iota
	// BlendMultiply darkens: base*top/255 per channel.
	BlendMultiply
	// BlendAdd brightens: saturating base+top.
	BlendAdd
	// BlendSubtract darkens: base-top clamped at zero.
	BlendSubtract
)

var blendModeNames = [...]string{
	BlendNormal:   "normal",
	BlendMultiply: "multiply",
	BlendAdd:      "add",
	BlendSubtract: "subtract",
}

// String returns the lowercase mode name.
func (m BlendMode) String() string {
	if m < 0 || int(m) >= len(blendModeNames) {
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
	return blendModeNames[m]
}

// ParseBlendMode parses a mode name case-insensitively.
func ParseBlendMode(s string) (BlendMode, error) {
	for i, name := range blendModeNames {
		if strings.EqualFold(s, name) {
			return BlendMode(i), nil
		}
	}
	return BlendNormal, fmt.Errorf("unknown blend mode %q", s)
}

// Blend composes top onto c using mode. Unknown modes behave as BlendNormal.
func (c Color) Blend(mode BlendMode, top Color) Color {
	switch mode {
	case BlendMultiply:
		return c.BlendMultiply(top)
	case BlendAdd:
		return c.BlendAdd(top)
	case BlendSubtract:
		return c.BlendSubtract(top)
	default:
		return c.BlendNormal(top)
	}
}

// BlendNormal returns top.
func (c Color) BlendNormal(top Color) Color {
	return top
}

// BlendMultiply returns c*top/255 per channel.
func (c Color) BlendMultiply(top Color) Color {
	return Color{
		uint8(uint16(c.R) * uint16(top.R) / 255),
		uint8(uint16(c.G) * uint16(top.G) / 255),
		uint8(uint16(c.B) * uint16(top.B) / 255),
	}
}

// BlendAdd returns the saturating sum of c and top.
func (c Color) BlendAdd(top Color) Color {
	return c.Add(top)
}

// BlendSubtract returns c-top per channel, clamped at zero.
func (c Color) BlendSubtract(top Color) Color {
	return Color{subChannel(c.R, top.R), subChannel(c.G, top.G), subChannel(c.B, top.B)}
}

func subChannel(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}
