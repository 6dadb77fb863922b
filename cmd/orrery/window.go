package main

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

// Held keys repeat every frame; toggles fire once per press.
var (
	windowHeld = map[ebiten.Key]action{
		ebiten.KeyArrowLeft:      actOrbitLeft,
		ebiten.KeyArrowRight:     actOrbitRight,
		ebiten.KeyArrowUp:        actOrbitUp,
		ebiten.KeyW:              actOrbitUp,
		ebiten.KeyArrowDown:      actOrbitDown,
		ebiten.KeyS:              actOrbitDown,
		ebiten.KeyA:              actPanLeft,
		ebiten.KeyD:              actPanRight,
		ebiten.KeyQ:              actPanUp,
		ebiten.KeyE:              actPanDown,
		ebiten.KeyEqual:          actZoomIn,
		ebiten.KeyNumpadAdd:      actZoomIn,
		ebiten.KeyMinus:          actZoomOut,
		ebiten.KeyNumpadSubtract: actZoomOut,
	}
	windowPressed = map[ebiten.Key]action{
		ebiten.KeyX:      actWireframe,
		ebiten.KeyO:      actOrbits,
		ebiten.KeyP:      actPause,
		ebiten.KeySpace:  actPause,
		ebiten.KeyR:      actReset,
		ebiten.KeyEscape: actQuit,
	}
)

// windowGame presents the viewer in a desktop window. The framebuffer is
// copied into an ebiten image every Draw.
type windowGame struct {
	ctx   context.Context
	v     *viewer
	fb    *render.Framebuffer
	img   *ebiten.Image
	pix   []byte
	title string
}

func runWindow(ctx context.Context, v *viewer, cfg scene.Config) error {
	g := &windowGame{
		ctx: ctx,
		v:   v,
		fb:  render.NewFramebuffer(cfg.Window.Width, cfg.Window.Height),
	}
	ebiten.SetWindowTitle(v.caption())
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(v.fps)
	return ebiten.RunGame(g)
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	for key, a := range windowHeld {
		if ebiten.IsKeyPressed(key) {
			g.v.handle(a)
		}
	}
	for key, a := range windowPressed {
		if inpututil.IsKeyJustPressed(key) && g.v.handle(a) {
			return ebiten.Termination
		}
	}
	g.v.step()
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	fb := g.fb
	if g.img == nil {
		g.img = ebiten.NewImage(fb.Width, fb.Height)
		g.pix = make([]byte, 4*fb.Width*fb.Height)
	}

	g.v.render(fb)
	fb.CopyRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)

	if title := g.v.caption(); title != g.title {
		ebiten.SetWindowTitle(title)
		g.title = title
	}
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
