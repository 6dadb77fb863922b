package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/orrery/pkg/render"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	names := make([]string, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		names[i] = b.Name
	}
	assert.Equal(t, []string{
		"sun", "mercury", "venus", "earth", "moon",
		"mars", "jupiter", "saturn", "saturn-rings", "ship",
	}, names)
	assert.Equal(t, "earth", cfg.Bodies[4].Parent)
	assert.Equal(t, AnchorCamera, cfg.Bodies[9].Anchor)
	assert.Equal(t, render.ColorBlack, cfg.Background())
}

const yamlScene = `
window:
  width: 320
  height: 200
  fps: 24
render:
  background: "#102030"
  ambient: 0.2
bodies:
  - name: star
    mesh: sphere
    material: sun
    scale: 2
  - name: rock
    mesh: sphere
    material: Blend:Multiply
    scale: 0.5
    parent: star
    orbit_radius: 5
    orbit_speed: 0.1
    offset: [0, 1, 0]
`

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(yamlScene), "yaml")
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, "Orrery", cfg.Window.Title) // default kept
	assert.InDelta(t, 45.0, cfg.Camera.FOV, 1e-9)
	assert.Equal(t, render.RGB(0x10, 0x20, 0x30), cfg.Background())
	require.Len(t, cfg.Bodies, 2)
	assert.Equal(t, [3]float64{0, 1, 0}, cfg.Bodies[1].Offset)
}

func TestParseTOMLRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	cfg, err := Parse(data, "toml")
	require.NoError(t, err)
	assert.Equal(t, Default().Bodies, cfg.Bodies)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("[window]\nwidht = 3\n"), "toml")
	assert.Error(t, err, "unknown fields are rejected")

	_, err = Parse([]byte("window: {width: 3, bogus: 1}\n"), "yaml")
	assert.Error(t, err)

	_, err = Parse(nil, "ini")
	assert.ErrorContains(t, err, "unsupported scene format")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := Default()
		cfg.Bodies = []Body{
			{Name: "a", Mesh: MeshSphere, Material: "sun", Scale: 1},
			{Name: "b", Mesh: MeshSphere, Material: "rocky", Scale: 1, Parent: "a"},
		}
		return cfg
	}
	require.NoError(t, func() error { c := base(); return c.Validate() }())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty name", func(c *Config) { c.Bodies[1].Name = "" }, "no name"},
		{"duplicate", func(c *Config) { c.Bodies[1].Name = "a" }, "duplicate"},
		{"forward parent", func(c *Config) { c.Bodies[0].Parent = "b" }, "not an earlier body"},
		{"unknown parent", func(c *Config) { c.Bodies[1].Parent = "zz" }, "not an earlier body"},
		{"unknown material", func(c *Config) { c.Bodies[1].Material = "plaid" }, "unknown material"},
		{"zero scale", func(c *Config) { c.Bodies[1].Scale = 0 }, "scale"},
		{"no mesh", func(c *Config) { c.Bodies[1].Mesh = "" }, "no mesh"},
		{"bad anchor", func(c *Config) { c.Bodies[1].Anchor = "mouse" }, "unknown anchor"},
		{"anchored child", func(c *Config) { c.Bodies[1].Anchor = AnchorCamera }, "cannot have a parent"},
		{"simplify", func(c *Config) { c.Bodies[1].Simplify = 2 }, "simplify"},
		{"window", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"clip planes", func(c *Config) { c.Camera.Far = c.Camera.Near }, "clip planes"},
		{"background", func(c *Config) { c.Render.Background = "black" }, "background"},
		{"ambient", func(c *Config) { c.Render.Ambient = 1.5 }, "ambient"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadResolvesModelPaths(t *testing.T) {
	dir := t.TempDir()
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(obj), 0o644))
	toml := `
[[bodies]]
name = "tri"
mesh = "tri.obj"
material = "purple"
scale = 1.0
`
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tri.obj"), cfg.ModelPath("tri.obj"))
	assert.Equal(t, MeshSphere, cfg.ModelPath(MeshSphere))

	s, err := New(cfg)
	require.NoError(t, err)
	assert.Len(t, s.Bodies(), 1)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
