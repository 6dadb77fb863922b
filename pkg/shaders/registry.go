package shaders

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/taigrr/orrery/pkg/render"
)

// ErrUnknownMaterial is returned by Lookup for names with no shader.
var ErrUnknownMaterial = errors.New("unknown material")

var materials = map[string]render.Shader{
	"sun":            render.ShaderFunc(Sun),
	"rocky":          render.ShaderFunc(Rocky),
	"mercury":        render.ShaderFunc(Rocky),
	"venus":          render.ShaderFunc(Venus),
	"earth":          render.ShaderFunc(Earth),
	"mars":           render.ShaderFunc(Mars),
	"jupiter":        render.ShaderFunc(Jupiter),
	"moon":           render.ShaderFunc(Moon),
	"saturn":         render.ShaderFunc(Saturn),
	"rings":          render.ShaderFunc(Rings),
	"ship":           render.ShaderFunc(Ship),
	"static":         render.ShaderFunc(StaticPattern),
	"purple":         render.ShaderFunc(Purple),
	"circle":         render.ShaderFunc(Circle),
	"moving-circles": render.ShaderFunc(MovingCircles),
	"combined":       render.ShaderFunc(Combined),
}

// blendPrefix selects Blended: "blend:multiply" etc.
const blendPrefix = "blend:"

// Lookup returns the shader registered under name. Names are
// case-insensitive. "blend:<mode>" returns Blended(mode).
func Lookup(name string) (render.Shader, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if mode, ok := strings.CutPrefix(key, blendPrefix); ok {
		m, err := render.ParseBlendMode(mode)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w: %w", name, ErrUnknownMaterial, err)
		}
		return Blended(m), nil
	}
	s, ok := materials[key]
	if !ok {
		return nil, fmt.Errorf("material %q: %w", name, ErrUnknownMaterial)
	}
	return s, nil
}

// Names returns the registered material names in sorted order, including
// one "blend:<mode>" entry per blend mode.
func Names() []string {
	names := make([]string, 0, len(materials)+4)
	for name := range materials {
		names = append(names, name)
	}
	for _, m := range []render.BlendMode{render.BlendNormal, render.BlendMultiply, render.BlendAdd, render.BlendSubtract} {
		names = append(names, blendPrefix+m.String())
	}
	slices.Sort(names)
	return names
}
