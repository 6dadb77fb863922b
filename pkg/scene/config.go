package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shaders"
)

//go:embed default.toml
var defaultConfig []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid scene config")

// Config is a complete scene description.
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Camera CameraConfig `toml:"camera" yaml:"camera"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Bodies []Body       `toml:"bodies" yaml:"bodies"`

	// dir resolves relative model paths; set by Load.
	dir string
}

// WindowConfig sizes the output.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	FPS    int    `toml:"fps" yaml:"fps"`
}

// CameraConfig is the initial camera placement. FOV is in degrees.
type CameraConfig struct {
	Eye    [3]float64 `toml:"eye" yaml:"eye"`
	Center [3]float64 `toml:"center" yaml:"center"`
	Up     [3]float64 `toml:"up" yaml:"up"`
	FOV    float64    `toml:"fov" yaml:"fov"`
	Near   float64    `toml:"near" yaml:"near"`
	Far    float64    `toml:"far" yaml:"far"`
}

// RenderConfig holds lighting and overlay settings.
type RenderConfig struct {
	Background string     `toml:"background" yaml:"background"`
	Light      [3]float64 `toml:"light" yaml:"light"`
	Ambient    float64    `toml:"ambient" yaml:"ambient"`
	Orbits     bool       `toml:"orbits" yaml:"orbits"`
	Wireframe  bool       `toml:"wireframe" yaml:"wireframe"`
}

// Default returns the built-in solar system.
func Default() Config {
	cfg, err := Parse(defaultConfig, "toml")
	if err != nil {
		panic(fmt.Sprintf("embedded scene: %v", err))
	}
	return cfg
}

// Load reads a scene file. The format follows the extension: .toml, or
// .yaml/.yml. Relative model paths resolve against the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scene: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes and validates a scene in the given format ("toml",
// "yaml" or "yml"). Missing camera and window fields take defaults.
func Parse(data []byte, format string) (Config, error) {
	cfg := Config{
		Window: WindowConfig{Title: "Orrery", Width: 800, Height: 600, FPS: 30},
		Camera: CameraConfig{
			Eye: [3]float64{0, 0, 10},
			Up:  [3]float64{0, 1, 0},
			FOV: 45, Near: 0.1, Far: 1000,
		},
		Render: RenderConfig{Background: "#000000", Light: [3]float64{0, 0, 1}},
	}

	switch format {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported scene format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks the config for errors the renderer cannot recover from.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		add("fps %d", c.Window.FPS)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		add("camera fov %v", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		add("camera clip planes %v..%v", c.Camera.Near, c.Camera.Far)
	}
	if _, err := render.ParseHexColor(c.Render.Background); err != nil {
		add("background: %v", err)
	}
	if c.Render.Ambient < 0 || c.Render.Ambient > 1 {
		add("ambient %v outside [0, 1]", c.Render.Ambient)
	}

	seen := make(map[string]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		switch {
		case b.Name == "":
			add("body %d has no name", i)
		case seen[b.Name]:
			add("duplicate body %q", b.Name)
		}
		if b.Parent != "" && !seen[b.Parent] {
			add("body %q: parent %q is not an earlier body", b.Name, b.Parent)
		}
		seen[b.Name] = true

		if b.Mesh == "" {
			add("body %q has no mesh", b.Name)
		}
		if _, err := shaders.Lookup(b.Material); err != nil {
			add("body %q: %v", b.Name, err)
		}
		if b.Scale <= 0 {
			add("body %q: scale %v must be positive", b.Name, b.Scale)
		}
		if b.Simplify < 0 || b.Simplify > 1 {
			add("body %q: simplify %v outside [0, 1]", b.Name, b.Simplify)
		}
		switch b.Anchor {
		case "":
		case AnchorCamera:
			if b.Parent != "" {
				add("body %q: anchored bodies cannot have a parent", b.Name)
			}
		default:
			add("body %q: unknown anchor %q", b.Name, b.Anchor)
		}
	}
	return errors.Join(errs...)
}

// ModelPath resolves a body's mesh reference against the config file.
func (c *Config) ModelPath(mesh string) string {
	if mesh == MeshSphere || mesh == MeshRing || filepath.IsAbs(mesh) || c.dir == "" {
		return mesh
	}
	return filepath.Join(c.dir, mesh)
}

// NewCamera builds the configured camera.
func (c *Config) NewCamera() *render.Camera {
	cam := render.NewCamera(vec3(c.Camera.Eye), vec3(c.Camera.Center), vec3(c.Camera.Up))
	cam.SetFOV(c.Camera.FOV * math.Pi / 180)
	cam.SetClipPlanes(c.Camera.Near, c.Camera.Far)
	cam.SetAspectRatio(float64(c.Window.Width) / float64(c.Window.Height))
	return cam
}

// Background returns the parsed background color.
func (c *Config) Background() render.Color {
	bg, _ := render.ParseHexColor(c.Render.Background)
	return bg
}

func vec3(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
