// Package synth renders idealized resistor images from a band list.
// The images are crisp and evenly lit; they exercise the segmenter and the
// full pipeline without camera fixtures.
package synth

import (
	"image"
	"image/color"
	"image/draw"

	"resistor-reader/internal/bands"
)

// Options controls the rendered layout. All sizes are in pixels and refer
// to a horizontal resistor; Vertical rotates the layout by 90°.
type Options struct {
	Width, Height int

	Background color.RGBA
	Body       color.RGBA

	// BodyMargin is the space between the image edge and the body along the
	// band axis; the body is half the image height and vertically centered.
	BodyMargin int

	// Lead is the body length before the first band and after the last one.
	Lead int

	BandWidth int
	Gap       int

	Vertical bool
}

// DefaultOptions returns a layout with room for six bands.
func DefaultOptions() Options {
	return Options{
		Width:      480,
		Height:     160,
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Body:       color.RGBA{R: 230, G: 210, B: 170, A: 255}, // pale beige, unclassified
		BodyMargin: 40,
		Lead:       30,
		BandWidth:  24,
		Gap:        20,
	}
}

// Resistor draws a resistor body carrying the given bands. All bands but
// the last are packed from the left; the last sits alone at the right end,
// as tolerance bands usually do.
func Resistor(labels []bands.Label, opts Options) *image.RGBA {
	img := canvas(opts)

	body := image.Rect(opts.BodyMargin, opts.Height/4, opts.Width-opts.BodyMargin, opts.Height-opts.Height/4)
	fill(img, body, opts.Body, opts.Vertical)

	for i, l := range labels {
		x := body.Min.X + opts.Lead + i*(opts.BandWidth+opts.Gap)
		if i == len(labels)-1 && i > 0 {
			x = body.Max.X - opts.Lead - opts.BandWidth
		}
		band := image.Rect(x, body.Min.Y, x+opts.BandWidth, body.Max.Y)
		fill(img, band, bands.DisplayColor(l), opts.Vertical)
	}
	return img
}

// Blank returns an image filled with the background color only.
func Blank(opts Options) *image.RGBA {
	return canvas(opts)
}

// Patch draws a single filled rectangle on the background.
func Patch(r image.Rectangle, c color.RGBA, opts Options) *image.RGBA {
	img := canvas(opts)
	fill(img, r, c, opts.Vertical)
	return img
}

func canvas(opts Options) *image.RGBA {
	w, h := opts.Width, opts.Height
	if opts.Vertical {
		w, h = h, w
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)
	return img
}

// fill paints r, given in horizontal-layout coordinates, transposing it
// when the layout is vertical.
func fill(img *image.RGBA, r image.Rectangle, c color.RGBA, vertical bool) {
	if vertical {
		r = image.Rect(r.Min.Y, r.Min.X, r.Max.Y, r.Max.X)
	}
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
