package bands

import (
	"image/color"

	"resistor-reader/pkg/colorutil"
)

// Classifier maps HSV samples to labels using a palette's ordered ranges.
// It keeps no state beyond the palette pointer and is safe for concurrent use.
type Classifier struct {
	palette *Palette
}

// NewClassifier creates a classifier over p. A nil palette uses DefaultPalette.
func NewClassifier(p *Palette) *Classifier {
	if p == nil {
		p = DefaultPalette()
	}
	return &Classifier{palette: p}
}

// Palette returns the tables the classifier was built with.
func (c *Classifier) Palette() *Palette {
	return c.palette
}

// Classify returns the label of the first range containing s.
// The second result is false when no range matches.
func (c *Classifier) Classify(s colorutil.HSV) (Label, bool) {
	for _, r := range c.palette.Ranges {
		if r.Contains(s) {
			return r.Label, true
		}
	}
	return 0, false
}

// ClassifyColor converts an RGB color to HSV and classifies it.
func (c *Classifier) ClassifyColor(col color.Color) (Label, bool) {
	return c.Classify(colorutil.FromColor(col))
}
