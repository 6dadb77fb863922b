package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// upperHalfBlock carries two vertically stacked pixels per cell: the
// foreground paints the top pixel and the background the bottom one.
const upperHalfBlock = "▀"

// Draw presents the framebuffer on a terminal screen. Each cell row shows
// two framebuffer rows, so the framebuffer height should be twice the
// area height. The framebuffer's top-left pixel lands at area.Min.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= fb.Height {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: upperHalfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: fb.At(x, topY),
					Bg: fb.At(x, topY+1),
				},
			})
		}
	}
}
