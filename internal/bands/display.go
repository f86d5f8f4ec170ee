package bands

import "image/color"

// displayColors are representative sRGB values for each label. Every one
// classifies back to its own label under DefaultRanges.
var displayColors = [numLabels]color.RGBA{
	Black:  {R: 20, G: 20, B: 20, A: 255},
	Brown:  {R: 150, G: 75, B: 0, A: 255},
	Red:    {R: 255, G: 0, B: 0, A: 255},
	Orange: {R: 255, G: 140, B: 0, A: 255},
	Yellow: {R: 255, G: 255, B: 0, A: 255},
	Green:  {R: 0, G: 200, B: 0, A: 255},
	Blue:   {R: 0, G: 0, B: 255, A: 255},
	Violet: {R: 128, G: 0, B: 255, A: 255},
	Gray:   {R: 128, G: 128, B: 128, A: 255},
	White:  {R: 250, G: 250, B: 250, A: 255},
	Gold:   {R: 180, G: 159, B: 57, A: 255},
	Silver: {R: 192, G: 192, B: 192, A: 255},
}

// DisplayColor returns a representative RGB value for l.
func DisplayColor(l Label) color.RGBA {
	if !l.Valid() {
		return color.RGBA{A: 255}
	}
	return displayColors[l]
}
