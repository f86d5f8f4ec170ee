// Package colorutil provides shared color utilities for the resistor reader.
//
// All HSV values follow the OpenCV 8-bit convention: H 0-180, S 0-255, V 0-255,
// so samples taken in Go and samples taken from a gocv HSV Mat compare directly.
package colorutil

import (
	"image/color"
	"math"
)

// HueRange is the span of the hue channel in OpenCV convention.
const HueRange = 180.0

// HSV is one color sample in OpenCV HSV space.
type HSV struct {
	H float64 `json:"h" yaml:"h" toml:"h"`
	S float64 `json:"s" yaml:"s" toml:"s"`
	V float64 `json:"v" yaml:"v" toml:"v"`
}

// Channel returns channel i (0=H, 1=S, 2=V).
func (c HSV) Channel(i int) float64 {
	switch i {
	case 0:
		return c.H
	case 1:
		return c.S
	default:
		return c.V
	}
}

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}

// FromColor converts any color.Color to an HSV sample. Alpha is ignored.
func FromColor(c color.Color) HSV {
	r, g, b, _ := c.RGBA()
	h, s, v := RGBToHSV(float64(r>>8), float64(g>>8), float64(b>>8))
	return HSV{H: h, S: s, V: v}
}

// HSVToRGB converts an OpenCV-convention HSV triple back to 8-bit RGB.
func HSVToRGB(h, s, v float64) color.RGBA {
	hd := math.Mod(h*2, 360)
	if hd < 0 {
		hd += 360
	}
	sf := s / 255.0
	vf := v / 255.0

	c := vf * sf
	x := c * (1 - math.Abs(math.Mod(hd/60, 2)-1))
	m := vf - c

	var r, g, b float64
	switch {
	case hd < 60:
		r, g, b = c, x, 0
	case hd < 120:
		r, g, b = x, c, 0
	case hd < 180:
		r, g, b = 0, c, x
	case hd < 240:
		r, g, b = 0, x, c
	case hd < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// HueDistance returns the circular distance between two hues (0-90).
func HueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > HueRange/2 {
		d = HueRange - d
	}
	return d
}

// Distance is a rough perceptual distance between two samples.
// Hue only counts in proportion to how saturated both samples are, since
// hue is noise for grays.
func Distance(a, b HSV) float64 {
	chroma := math.Min(a.S, b.S) / 255.0
	dh := HueDistance(a.H, b.H) * 2 * chroma
	ds := a.S - b.S
	dv := a.V - b.V
	return math.Sqrt(dh*dh + ds*ds + dv*dv)
}
