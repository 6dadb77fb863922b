package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/orrery/pkg/render"
)

// terminalKeys binds key names, as understood by uv.KeyPressEvent, to
// actions.
var terminalKeys = []struct {
	keys []string
	act  action
}{
	{[]string{"left"}, actOrbitLeft},
	{[]string{"right"}, actOrbitRight},
	{[]string{"up", "w"}, actOrbitUp},
	{[]string{"down", "s"}, actOrbitDown},
	{[]string{"a"}, actPanLeft},
	{[]string{"d"}, actPanRight},
	{[]string{"q"}, actPanUp},
	{[]string{"e"}, actPanDown},
	{[]string{"+", "="}, actZoomIn},
	{[]string{"-", "_"}, actZoomOut},
	{[]string{"x"}, actWireframe},
	{[]string{"o"}, actOrbits},
	{[]string{"p", "space"}, actPause},
	{[]string{"r"}, actReset},
	{[]string{"escape", "ctrl+c"}, actQuit},
}

func terminalAction(ev uv.KeyPressEvent) action {
	for _, b := range terminalKeys {
		if ev.MatchString(b.keys...) {
			return b.act
		}
	}
	return actNone
}

// terminalFramebuffer sizes a framebuffer for a width x height cell
// screen: one row is kept for the title and every other cell holds two
// pixels stacked vertically.
func terminalFramebuffer(width, height int) *render.Framebuffer {
	return render.NewFramebuffer(max(width, 1), max(2*(height-1), 2))
}

func runTerminal(ctx context.Context, v *viewer) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Input is read on its own goroutine and handed to the frame loop.
	actions := make(chan action, 16)
	resizes := make(chan [2]int, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-resizes:
				default:
				}
				resizes <- [2]int{ev.Width, ev.Height}
			case uv.KeyPressEvent:
				if a := terminalAction(ev); a != actNone {
					select {
					case actions <- a:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	fb := terminalFramebuffer(width, height)
	targetDuration := time.Second / time.Duration(v.fps)

	for {
		now := time.Now()

		select {
		case <-ctx.Done():
			cleanup()
			return nil
		case size := <-resizes:
			width, height = size[0], size[1]
			term.Erase()
			term.Resize(width, height)
			fb = terminalFramebuffer(width, height)
		default:
		}

	drain:
		for {
			select {
			case a := <-actions:
				if v.handle(a) {
					cancel()
				}
			default:
				break drain
			}
		}

		v.step()
		v.render(fb)

		drawTitle(term, v.caption(), width)
		fb.Draw(term, uv.Rect(0, 1, width, height-1))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// drawTitle writes s on the first row, padded with blanks to width.
func drawTitle(scr uv.Screen, s string, width int) {
	style := uv.Style{Fg: render.ColorWhite, Bg: render.RGB(20, 20, 30)}
	runes := []rune(s)
	for x := range width {
		content := " "
		if x < len(runes) {
			content = string(runes[x])
		}
		scr.SetCell(x, 0, &uv.Cell{Content: content, Width: 1, Style: style})
	}
}
