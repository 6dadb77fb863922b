package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// SnapshotOptions controls how a framebuffer is exported as an image.
type SnapshotOptions struct {
	// Scale is the integer upscale factor; values below 2 keep the
	// native size.
	Scale int

	// Label is drawn in the top-left corner when non-empty.
	Label string

	// LabelColor defaults to white.
	LabelColor *Color
}

// Snapshot renders fb to an image, upscaled with nearest-neighbour
// sampling and optionally labelled.
func Snapshot(fb *Framebuffer, opts SnapshotOptions) *image.RGBA {
	src := fb.ToImage()
	var img *image.RGBA
	if opts.Scale > 1 {
		w := uint(fb.Width * opts.Scale)
		h := uint(fb.Height * opts.Scale)
		scaled := resize.Resize(w, h, src, resize.NearestNeighbor)
		img = image.NewRGBA(scaled.Bounds())
		draw.Draw(img, img.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	} else {
		img = src
	}

	if opts.Label != "" {
		c := ColorWhite
		if opts.LabelColor != nil {
			c = *opts.LabelColor
		}
		face := basicfont.Face7x13
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: face,
			Dot:  fixed.P(4, face.Metrics().Ascent.Ceil()+2),
		}
		d.DrawString(opts.Label)
	}
	return img
}

// EncodeSnapshot writes the snapshot of fb as PNG to w.
func EncodeSnapshot(w io.Writer, fb *Framebuffer, opts SnapshotOptions) error {
	if err := png.Encode(w, Snapshot(fb, opts)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteSnapshot writes the snapshot of fb as a PNG file.
func WriteSnapshot(path string, fb *Framebuffer, opts SnapshotOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := EncodeSnapshot(f, fb, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}
